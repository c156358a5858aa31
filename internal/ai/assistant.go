package ai

import "context"

// SamplingParams controls how the model samples a single response.
type SamplingParams struct {
	Temperature     float32
	MaxOutputTokens int32
}

// Generator is the contract for a language-model collaborator: a prompt goes
// in, free-form text comes out. Implementations make exactly one attempt per
// call; recovery from failures is the caller's business.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string, params SamplingParams) (string, error)
	Model() string
}
