// Package delivery defines the contract every transport implementation
// (HTTP, workers) exposes to the application entrypoint.
package delivery

import (
	"context"
	"time"
)

// ShutdownTimeout bounds graceful shutdown of a delivery.
const ShutdownTimeout = 10 * time.Second

// Delivery is a serving surface started by the entrypoint.
type Delivery interface {
	Serve(ctx context.Context) error
}
