package worker

import (
	"context"
)

// Worker is the contract every background worker satisfies.
type Worker interface {
	// Start runs the worker loop until Stop is called or ctx is cancelled.
	Start(ctx context.Context) error

	// Stop signals the worker to finish its current batch and exit.
	Stop() error

	// Name returns the worker name used in logs.
	Name() string
}
