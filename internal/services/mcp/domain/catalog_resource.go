package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const catalogLevelsURI = "catalog://levels"

// CatalogLevelsResource defines the readable level map.
func CatalogLevelsResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "catalog_levels",
		Title:       "Level Map",
		Description: "Readable level map with unlock state and best stars",
		MIMEType:    "application/json",
		URI:         catalogLevelsURI,
	}
}

// CatalogLevelsResourceHandler reads the level map for the active session.
func CatalogLevelsResourceHandler(client PlayClient, getContext func() Context) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if client == nil {
			return nil, fmt.Errorf("play client is not configured")
		}
		uri := catalogLevelsURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		if uri != catalogLevelsURI {
			return nil, fmt.Errorf("invalid URI: expected %s, got %q", catalogLevelsURI, uri)
		}

		result, err := listLevels(ctx, client, getContext)
		if err != nil {
			return nil, err
		}
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal levels: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: uri, MIMEType: "application/json", Text: string(data)},
			},
		}, nil
	}
}
