// Package transport defines the interface for the network surfaces duocast
// serves on.
//
// Each transport (HTTP, gRPC) implements this interface and is started by
// the serve command. Transports share one Backend: the podcast service and
// the in-memory session store.
package transport

import (
	"context"

	"github.com/nadzzz/duocast/internal/podcast"
	"github.com/nadzzz/duocast/internal/source"
)

// Backend is the state every transport serves.
type Backend struct {
	Service  *podcast.Service
	Sessions *source.Store
}

// Transport is the interface that every transport adapter must implement.
type Transport interface {
	// Name returns the transport identifier (e.g., "http", "grpc").
	Name() string

	// Listen starts serving the backend. It blocks until the context is
	// cancelled.
	Listen(ctx context.Context, backend Backend) error

	// Close gracefully shuts down the transport, draining in-flight work.
	Close() error
}
