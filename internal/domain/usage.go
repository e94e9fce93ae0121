package domain

import "context"

type usageKey struct{}

// Usage collects provider token usage for a single recommendation run or
// HTTP request. The caller puts a mutable pointer into the context, the
// provider decorators write to it, and the caller reads it at the end.
type Usage struct {
	EmbeddingTokens  int `json:"embedding_tokens"`
	EmbeddingCalls   int `json:"embedding_calls"`
	GenerationTokens int `json:"generation_tokens"`
	GenerationCalls  int `json:"generation_calls"`
}

// NewContextWithUsage returns a context with an embedded usage collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *Usage) {
	u := &Usage{}
	return context.WithValue(ctx, usageKey{}, u), u
}

// UsageFromContext extracts the usage collector from context. Returns nil if not set.
func UsageFromContext(ctx context.Context) *Usage {
	u, _ := ctx.Value(usageKey{}).(*Usage)
	return u
}

// AddEmbedding records one embedding call. A cache hit counts with 0 tokens.
func (u *Usage) AddEmbedding(tokens int) {
	if u != nil {
		u.EmbeddingTokens += tokens
		u.EmbeddingCalls++
	}
}

// AddGeneration records one chat completion.
func (u *Usage) AddGeneration(tokens int) {
	if u != nil {
		u.GenerationTokens += tokens
		u.GenerationCalls++
	}
}
