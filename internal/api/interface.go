package api

import (
	"context"

	"github.com/diogo/wallchat/internal/models"
)

// ChatClientInterface is the surface the chat widget and docs renderer need
type ChatClientInterface interface {
	WallFetcher
	FetchHelp(ctx context.Context) (*models.HelpDocument, error)
	PostMessage(ctx context.Context, text string) error
	Rename(ctx context.Context, name string) error
	Close()
}

// Ensure Client implements ChatClientInterface
var _ ChatClientInterface = (*Client)(nil)
