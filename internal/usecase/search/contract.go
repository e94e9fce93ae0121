package search

import (
	"context"

	"github.com/mahendramedapati27/unimatch/internal/domain"
)

// Repository runs one filtered similarity search against the program index.
type Repository interface {
	Search(ctx context.Context, vector []float32, f domain.SearchFilter, limit int) ([]domain.MatchResult, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
