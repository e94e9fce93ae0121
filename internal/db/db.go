package db

import (
	"context"
	"time"
)

// Pinger checks backend connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Searcher runs filtered nearest-neighbour queries against a collection.
type Searcher interface {
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)
}

// VectorIndex is the vector database facade used by the composition root.
type VectorIndex interface {
	Pinger
	Searcher
	WaitForReady(ctx context.Context, timeout time.Duration) error
	Close() error
}
