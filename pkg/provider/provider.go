package provider

import "context"

// Provider abstracts a chat backend. Implementations must be safe for
// concurrent use by multiple goroutines and must not share per-request
// state between calls.
type Provider interface {
	// Name returns the provider identifier (e.g., "duckchat").
	Name() string

	// Complete runs one chat exchange and returns the reassembled reply.
	// Failures are returned as *api.APIError.
	Complete(ctx context.Context, req *ProviderRequest) (*ProviderResponse, error)

	// Close releases provider resources (idle HTTP connections).
	Close() error
}
