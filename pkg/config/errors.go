package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be
	// parsed into the configuration struct. Use errors.Is() to check.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrLoadingEnvFile is returned when an explicitly requested .env file
	// cannot be read.
	ErrLoadingEnvFile = errors.New("failed to load env file")

	// ErrConfigNotLoaded is returned when a configuration type failed to
	// parse in a concurrent first call and no cached value exists.
	ErrConfigNotLoaded = errors.New("configuration has not been loaded")
)
