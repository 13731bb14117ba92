package market

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
)

var (
	ErrMetadataExists   = errors.New("metadata already exists")
	ErrMetadataNotFound = errors.New("metadata not found")
)

// MetadataRegistry is an in-memory MetadataStore
type MetadataRegistry struct {
	mu    sync.RWMutex
	items map[solana.PublicKey]Metadata
}

func NewMetadataRegistry() *MetadataRegistry {
	return &MetadataRegistry{items: make(map[solana.PublicKey]Metadata)}
}

func (r *MetadataRegistry) Create(ctx context.Context, mint solana.PublicKey, md Metadata) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[mint]; ok {
		return fmt.Errorf("%w: %s", ErrMetadataExists, mint)
	}
	r.items[mint] = md
	return nil
}

func (r *MetadataRegistry) Update(ctx context.Context, mint solana.PublicKey, md Metadata) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[mint]; !ok {
		return fmt.Errorf("%w: %s", ErrMetadataNotFound, mint)
	}
	r.items[mint] = md
	return nil
}

func (r *MetadataRegistry) Get(mint solana.PublicKey) (Metadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	md, ok := r.items[mint]
	return md, ok
}
