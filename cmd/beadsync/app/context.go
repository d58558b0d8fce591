package app

import (
	"context"
	"os/signal"
	"syscall"
)

// Context returns a background context cancelled on SIGINT or SIGTERM. An
// interrupted sync stops before it writes the store.
func Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
