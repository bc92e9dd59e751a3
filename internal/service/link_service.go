package service

import (
	"context"

	"redirector/internal/domain"
)

// LinkService defines the business logic for short links.
// The redirector only resolves; the shortener only allocates.
type LinkService interface {
	// Resolve looks up the long URL for a short code with a single store read
	Resolve(ctx context.Context, code string) (string, error)

	// Shorten allocates a fresh code for longURL
	Shorten(ctx context.Context, longURL string) (*domain.ShortenResponse, error)
}
