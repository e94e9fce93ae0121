package domain

import "context"

// Generator produces free text from a system instruction and a filled prompt.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}
