package extract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketExtractions = []byte("extractions")

// CachingExtractor remembers the text extracted for each image so the
// same receipt uploaded twice is not sent to the model again. Only text
// that parses is cached.
type CachingExtractor struct {
	next Extractor
	db   *bolt.DB
}

// Lookup is implemented by extractors that can answer from a cache
// without calling the model.
type Lookup interface {
	Cached(img Image) (text string, ok bool, err error)
}

var _ Lookup = (*CachingExtractor)(nil)

// NewCache opens (or creates) the cache file at path in front of next.
func NewCache(path string, next Extractor) (*CachingExtractor, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open extraction cache: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketExtractions)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create cache bucket: %w", err)
	}

	return &CachingExtractor{next: next, db: db}, nil
}

// Cached returns the stored text for img, if any.
func (c *CachingExtractor) Cached(img Image) (string, bool, error) {
	var cached string
	err := c.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketExtractions).Get(imageKey(img)); v != nil {
			cached = string(v)
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read extraction cache: %w", err)
	}
	return cached, cached != "", nil
}

// Extract returns the cached text for img or asks the wrapped extractor.
func (c *CachingExtractor) Extract(ctx context.Context, img Image) (string, error) {
	key := imageKey(img)

	cached, ok, err := c.Cached(img)
	if err != nil {
		return "", err
	}
	if ok {
		slog.DebugContext(ctx, "Extraction cache hit", "key", hex.EncodeToString(key[:8]))
		return cached, nil
	}

	text, err := c.next.Extract(ctx, img)
	if err != nil {
		return "", err
	}

	if _, err := Parse(text, time.Now()); err != nil {
		return text, nil
	}
	err = c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketExtractions).Put(key, []byte(text))
	})
	if err != nil {
		slog.WarnContext(ctx, "Failed to cache extraction", "error", err)
	}
	return text, nil
}

// Len returns the number of cached extractions.
func (c *CachingExtractor) Len() (int, error) {
	var n int
	err := c.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketExtractions).Stats().KeyN
		return nil
	})
	return n, err
}

// Close closes the cache file.
func (c *CachingExtractor) Close() error {
	return c.db.Close()
}

func imageKey(img Image) []byte {
	sum := sha256.Sum256(img.Data)
	return sum[:]
}
