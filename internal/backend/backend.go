// Package backend holds the optional generative text backends consulted when
// the rule-based answerer is not confident enough. A backend is a narrow
// text-in/text-out collaborator; failures are always non-fatal to the caller.
package backend

import (
	"context"
	"fmt"
)

// Completer is the single operation a generative backend must provide.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Error wraps any backend failure (transport, timeout, non-success status)
// with the provider that produced it.
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend %s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
