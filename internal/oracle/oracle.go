// Package oracle provides the text-completion capability behind the
// translation pipeline. Two real backends exist (Gemini and Ollama), chosen
// by configuration and injected where needed; the pipeline never knows which
// one it is talking to.
package oracle

import (
	"context"
	"errors"
	"fmt"
)

// Oracle is a single-prompt request/response capability: given a prompt it
// returns a text completion. Implementations must honor ctx cancellation and
// wrap transport, timeout and quota failures in *UnavailableError.
type Oracle interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// UnavailableError marks a backend-level failure (transport, timeout, quota),
// as opposed to a response the caller could not interpret. The classifier
// retries these; everywhere else they are terminal.
type UnavailableError struct {
	Backend string
	Err     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("oracle %s unavailable: %v", e.Backend, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func unavailable(backend string, err error) error {
	return &UnavailableError{Backend: backend, Err: err}
}

// IsUnavailable reports whether err is a backend-level oracle failure.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}
