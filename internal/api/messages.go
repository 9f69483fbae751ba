package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	http "github.com/bogdanfinn/fhttp"

	apierrors "github.com/diogo/wallchat/internal/errors"
	"github.com/diogo/wallchat/internal/models"
)

// FetchWall returns the current message wall exactly as the server sent it
func (c *Client) FetchWall(ctx context.Context) (string, error) {
	data, err := c.do(ctx, http.MethodGet, models.PathMessages, nil, nil)
	if err != nil {
		return "", fmt.Errorf("failed to fetch wall: %w", err)
	}
	return string(data), nil
}

// PostMessage sends text as the raw request body
func (c *Client) PostMessage(ctx context.Context, text string) error {
	if text == "" {
		return apierrors.ErrEmptyMessage
	}

	_, err := c.do(ctx, http.MethodPost, models.PathMessages, strings.NewReader(text), models.MessageHeaders())
	if err != nil {
		return fmt.Errorf("failed to post message: %w", err)
	}
	return nil
}

// Rename changes the caller's display name. The name is sent as a single
// path segment; callers strip whitespace before calling.
func (c *Client) Rename(ctx context.Context, name string) error {
	if name == "" {
		return apierrors.ErrEmptyName
	}

	_, err := c.do(ctx, http.MethodGet, models.PathRename+url.PathEscape(name), nil, nil)
	if err != nil {
		return fmt.Errorf("failed to rename: %w", err)
	}
	return nil
}
