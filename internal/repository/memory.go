package repository

import (
	"context"
	"sync"

	"shortlink/internal/domain"
)

// MemoryRepository keeps links in a process-local map.
// Nothing survives a restart and entries are never evicted.
type MemoryRepository struct {
	mu    sync.RWMutex
	links map[string]*domain.ShortLink
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		links: make(map[string]*domain.ShortLink),
	}
}

// InsertIfAbsent checks and inserts under one write lock, so two concurrent
// inserts of the same identifier can't both succeed.
func (r *MemoryRepository) InsertIfAbsent(ctx context.Context, link *domain.ShortLink) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.links[link.Identifier]; exists {
		return domain.ErrIdentifierTaken
	}

	r.links[link.Identifier] = link.Clone()
	return nil
}

// FindByIdentifier returns a copy of the stored link
func (r *MemoryRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.ShortLink, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	link, exists := r.links[identifier]
	if !exists {
		return nil, domain.ErrNotFound
	}

	return link.Clone(), nil
}

// Count returns the number of stored links
func (r *MemoryRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.links), nil
}
