package ai

import (
	"context"
	"fmt"
)

// Completer turns one prompt into the model's text answer
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	// Model names the underlying model, e.g. "gpt-4"
	Model() string
}

// CompleterFunc adapts a function to Completer
type CompleterFunc struct {
	Name string
	Fn   func(ctx context.Context, prompt string) (string, error)
}

func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	if f.Fn == nil {
		return "", fmt.Errorf("completer %q has no function", f.Name)
	}
	return f.Fn(ctx, prompt)
}

func (f CompleterFunc) Model() string { return f.Name }
