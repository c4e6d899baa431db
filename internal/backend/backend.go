// Package backend abstracts the raw keyboard event source feeding the event
// loop.
package backend

import (
	"context"

	"github.com/MurdeRM3L0DY/strata/internal/input"
)

// Backend produces translated keyboard events. Implementations own their read
// goroutines; consumers drain Events until Stop.
type Backend interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan input.KeyboardEvent
}
