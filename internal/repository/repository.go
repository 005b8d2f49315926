package repository

import (
	"context"

	"shortlink/internal/domain"
)

// LinkRepository defines the storage contract for short links.
// This is the "Repository Pattern": the link store only sees this interface,
// so the in-memory map can be replaced without touching the allocation logic.
//
// All implementations must be safe for concurrent use. Every method is a
// single atomic step: no observer may see a partially inserted link.
type LinkRepository interface {
	// InsertIfAbsent stores the link only if its identifier is free.
	// Returns domain.ErrIdentifierTaken if the identifier already exists;
	// the existing link is left untouched.
	InsertIfAbsent(ctx context.Context, link *domain.ShortLink) error

	// FindByIdentifier retrieves a link by its identifier (e.g., "abc123").
	// Returns domain.ErrNotFound if the identifier was never inserted.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.ShortLink, error)

	// Count returns the number of stored links.
	Count(ctx context.Context) (int, error)
}
