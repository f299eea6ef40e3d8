package oracle

import "context"

// Fake is a scripted oracle for tests. Each call consumes the next response
// from the script; when the script runs out the last response repeats. A
// non-nil Err is returned for every call instead.
type Fake struct {
	Responses []string
	Err       error

	// Prompts records every prompt received, in order.
	Prompts []string
}

// NewFake creates a fake oracle that always returns response.
func NewFake(response string) *Fake {
	return &Fake{Responses: []string{response}}
}

func (f *Fake) Complete(ctx context.Context, prompt string) (string, error) {
	f.Prompts = append(f.Prompts, prompt)
	if f.Err != nil {
		return "", f.Err
	}
	if len(f.Responses) == 0 {
		return "", nil
	}
	i := len(f.Prompts) - 1
	if i >= len(f.Responses) {
		i = len(f.Responses) - 1
	}
	return f.Responses[i], nil
}

// CallCount returns how many times the oracle was invoked.
func (f *Fake) CallCount() int { return len(f.Prompts) }
