package api

import (
	"context"
	"fmt"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/wallchat/internal/errors"
	"github.com/diogo/wallchat/internal/models"
)

// FetchHelp retrieves the service's endpoint list
func (c *Client) FetchHelp(ctx context.Context) (*models.HelpDocument, error) {
	data, err := c.do(ctx, http.MethodGet, models.PathHelp, nil, map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch help: %w", err)
	}

	return ParseHelp(data)
}

// ParseHelp decodes a help document, keeping endpoint order.
// Fields that are missing or not strings are rendered as their raw JSON text,
// or empty when absent.
func ParseHelp(data []byte) (*models.HelpDocument, error) {
	if !gjson.ValidBytes(data) {
		return nil, apierrors.NewParseError("help response is not valid JSON", "")
	}

	endpoints := gjson.GetBytes(data, PathEndpoints)
	if !endpoints.Exists() {
		return &models.HelpDocument{}, apierrors.NewParseError("missing endpoints", PathEndpoints)
	}
	if !endpoints.IsArray() {
		return nil, apierrors.NewParseError("endpoints is not an array", PathEndpoints)
	}

	doc := &models.HelpDocument{Endpoints: []models.EndpointDescriptor{}}
	var parseErr error

	endpoints.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			parseErr = apierrors.NewParseError(
				fmt.Sprintf("endpoint %d is not an object", key.Int()),
				fmt.Sprintf("%s.%d", PathEndpoints, key.Int()),
			)
			return false
		}
		doc.Endpoints = append(doc.Endpoints, models.EndpointDescriptor{
			Operation: fieldText(value, PathEndpointOperation),
			URL:       fieldText(value, PathEndpointURL),
			Handler:   fieldText(value, PathEndpointHandler),
		})
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}

	return doc, nil
}

func fieldText(obj gjson.Result, path string) string {
	v := obj.Get(path)
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return v.Str
	default:
		return v.Raw
	}
}
