// Package embcache caches query embeddings in Valkey. Profile queries repeat
// often (the same program and interests), so the ladder's single embedding
// call is usually served from the cache.
package embcache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/mahendramedapati27/unimatch/internal/db"
	"github.com/mahendramedapati27/unimatch/internal/domain"
)

const (
	keyPrefix    = "unimatch:qemb:"
	entryVersion = 1
	headerSize   = 4 // version (uint16) + dimensions (uint16)
)

// Cache lookup results, used as the "result" metric label.
const (
	ResultHit   = "hit"
	ResultMiss  = "miss"
	ResultStale = "stale"
)

type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Config scopes and bounds cache entries.
type Config struct {
	Model      string
	Dimensions int // 0 accepts any stored size
	TTL        time.Duration
	Lookups    *prometheus.CounterVec // label "result"; nil disables
}

// CachedEmbedder serves query vectors from the store and falls through to the
// inner embedder on a miss, a stale entry or any store failure.
type CachedEmbedder struct {
	inner  domain.Embedder
	store  store
	cfg    Config
	logger *zap.Logger
}

// New creates a caching decorator.
func New(inner domain.Embedder, s store, cfg Config, logger *zap.Logger) *CachedEmbedder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedEmbedder{inner: inner, store: s, cfg: cfg, logger: logger}
}

// Embed never fails because of the cache; only inner errors are returned.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	key := c.key(text)

	vec, result := c.lookup(ctx, key)
	c.count(result)
	if result == ResultHit {
		return domain.EmbeddingResult{Embedding: vec}, nil
	}

	res, err := c.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed query: %w", err)
	}
	c.save(ctx, key, res.Embedding)
	return res, nil
}

func (c *CachedEmbedder) count(result string) {
	if c.cfg.Lookups != nil {
		c.cfg.Lookups.WithLabelValues(result).Inc()
	}
}

// key hashes the model, the dimension setting and the whitespace-normalized
// query, so "Program:  CS" and "Program: CS" share an entry.
func (c *CachedEmbedder) key(text string) string {
	h := sha256.New()
	h.Write([]byte(c.cfg.Model))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(c.cfg.Dimensions)))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(strings.Fields(text), " ")))
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

func (c *CachedEmbedder) lookup(ctx context.Context, key string) ([]float32, string) {
	data, err := c.store.Get(ctx, key)
	switch {
	case errors.Is(err, db.ErrKeyNotFound):
		return nil, ResultMiss
	case err != nil:
		c.logger.Warn("Embedding cache read failed", zap.String("key", key), zap.Error(err))
		return nil, ResultMiss
	}

	vec, err := decodeEntry(data)
	if err != nil {
		c.logger.Warn("Discarding unreadable embedding cache entry", zap.String("key", key), zap.Error(err))
		return nil, ResultStale
	}
	if c.cfg.Dimensions > 0 && len(vec) != c.cfg.Dimensions {
		c.logger.Debug("Embedding cache entry has wrong dimensions",
			zap.Int("expected", c.cfg.Dimensions), zap.Int("got", len(vec)))
		return nil, ResultStale
	}
	return vec, ResultHit
}

func (c *CachedEmbedder) save(ctx context.Context, key string, vec []float32) {
	if len(vec) == 0 || len(vec) > math.MaxUint16 {
		return
	}
	if err := c.store.SetWithTTL(ctx, key, encodeEntry(vec), c.cfg.TTL); err != nil {
		c.logger.Warn("Embedding cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func encodeEntry(v []float32) []byte {
	buf := make([]byte, headerSize+len(v)*4)
	binary.LittleEndian.PutUint16(buf[0:], entryVersion)
	binary.LittleEndian.PutUint16(buf[2:], uint16(len(v)))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[headerSize+i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeEntry(data []byte) ([]float32, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("entry too short: %d bytes", len(data))
	}
	if v := binary.LittleEndian.Uint16(data[0:]); v != entryVersion {
		return nil, fmt.Errorf("unsupported entry version %d", v)
	}
	dims := int(binary.LittleEndian.Uint16(data[2:]))
	if dims == 0 || len(data) != headerSize+dims*4 {
		return nil, fmt.Errorf("entry size %d does not match %d dimensions", len(data), dims)
	}
	vec := make([]float32, dims)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[headerSize+i*4:]))
	}
	return vec, nil
}
