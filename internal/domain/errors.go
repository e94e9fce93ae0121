package domain

import "errors"

var (
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrIndexUnavailable signals a vector index transport failure.
	ErrIndexUnavailable = errors.New("vector index unavailable")
	// ErrGenerationFailed signals a text generation failure.
	ErrGenerationFailed = errors.New("text generation failed")
	// ErrMissingField signals a record without a field required for scoring.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidScore signals a non-finite similarity or score.
	ErrInvalidScore = errors.New("invalid score")
)
