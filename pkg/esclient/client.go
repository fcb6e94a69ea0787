package esclient

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Client is a cheap handle around one IndexTarget. All clients in a process
// share the same lazily-built HTTP transport unless one is injected with
// WithHTTPClient. The zero value is not usable; construct with New.
type Client struct {
	target IndexTarget
	httpc  *http.Client
	schema SchemaLookup
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the shared process-wide HTTP client. Intended for
// custom transports, proxies and tests; nil clients are ignored.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		if httpc != nil {
			c.httpc = httpc
		}
	}
}

// WithSchemaLookup injects the schema-metadata collaborator used by the
// aggregation rewriter. When absent, the rewriter fetches the live index
// mapping on demand.
func WithSchemaLookup(s SchemaLookup) Option {
	return func(c *Client) {
		if s != nil {
			c.schema = s
		}
	}
}

// New validates the target and returns a client bound to it. The URL is
// normalized to carry a trailing slash so endpoint paths concatenate
// without further checks.
func New(target IndexTarget, opts ...Option) (*Client, error) {
	if target.Index == "" {
		return nil, errors.Join(ErrInvalidTarget, errors.New("index name is required"))
	}
	u, err := url.Parse(target.URL)
	if err != nil {
		return nil, errors.Join(ErrInvalidTarget, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Join(ErrInvalidTarget,
			fmt.Errorf("unsupported URL scheme %q", u.Scheme))
	}
	if !strings.HasSuffix(target.URL, "/") {
		target.URL += "/"
	}
	if target.Alias == "" {
		target.Alias = target.Index
	}

	c := &Client{target: target}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpc == nil {
		httpc, err := sharedClient()
		if err != nil {
			return nil, err
		}
		c.httpc = httpc
	}
	return c, nil
}

// Target returns a copy of the client's index target.
func (c *Client) Target() IndexTarget { return c.target }

// URL returns the cluster root URL, always with a trailing slash.
func (c *Client) URL() string { return c.target.URL }

// BaseURL returns the index URL (cluster root + index name).
func (c *Client) BaseURL() string { return c.target.URL + c.target.Index }

// AliasURL returns the alias URL (cluster root + alias name).
func (c *Client) AliasURL() string { return c.target.URL + c.target.Alias }

func (c *Client) IndexName() string { return c.target.Index }

func (c *Client) AliasName() string { return c.target.Alias }

func (c *Client) TypeName() string { return c.target.TypeName }
