package esclient

import (
	"context"
	"net/http"
)

// AddAlias points the alias at the physical index.
func (c *Client) AddAlias(ctx context.Context, alias string) error {
	return c.updateAliases(ctx, "add", alias)
}

// RemoveAlias detaches the alias from the physical index.
func (c *Client) RemoveAlias(ctx context.Context, alias string) error {
	return c.updateAliases(ctx, "remove", alias)
}

func (c *Client) updateAliases(ctx context.Context, action, alias string) error {
	body := map[string]any{
		"actions": []any{
			map[string]any{
				action: map[string]any{
					"index": c.IndexName(),
					"alias": alias,
				},
			},
		},
	}
	_, err := ExecuteJSON(ctx, c, http.MethodPost, c.URL()+"_aliases", body, discardBody)
	return err
}
