package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"shortlink/internal/domain"
	"shortlink/internal/metrics"
	"shortlink/internal/repository"
	"shortlink/internal/shortid"
)

// DefaultMaxAttempts bounds how many identifiers Create generates before
// giving up. With 64^6 identifiers, ten straight collisions only happen when
// the space is nearly full.
const DefaultMaxAttempts = 10

// LinkStore allocates identifiers and resolves them back to targets.
// It is the only writer of the repository and is safe for concurrent use:
// atomicity comes from repository.InsertIfAbsent, so no lock is held while
// identifiers are generated.
type LinkStore struct {
	repo        repository.LinkRepository
	generator   shortid.Generator
	maxAttempts int
	checkTarget func(string) error
	logger      *slog.Logger
}

// Option configures a LinkStore
type Option func(*LinkStore)

// WithMaxAttempts sets the collision retry budget. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(s *LinkStore) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithTargetCheck installs a check that runs before anything is stored.
// By default every target is accepted verbatim.
func WithTargetCheck(check func(target string) error) Option {
	return func(s *LinkStore) {
		s.checkTarget = check
	}
}

// WithLogger sets the logger used for collision and allocation messages
func WithLogger(logger *slog.Logger) Option {
	return func(s *LinkStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewLinkStore creates a link store on top of repo, drawing identifiers from generator
func NewLinkStore(repo repository.LinkRepository, generator shortid.Generator, opts ...Option) *LinkStore {
	s := &LinkStore{
		repo:        repo,
		generator:   generator,
		maxAttempts: DefaultMaxAttempts,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores target under a fresh identifier and returns the new link.
// Once Create returns, Lookup of the identifier returns target on any goroutine.
//
// Errors:
//   - domain.ErrInvalidInput if an installed target check rejects target
//   - domain.ErrIdentifierSpaceExhausted if every attempt collided
//   - repository errors (including context cancellation), wrapped
func (s *LinkStore) Create(ctx context.Context, target string) (*domain.ShortLink, error) {
	if s.checkTarget != nil {
		if err := s.checkTarget(target); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		link := domain.NewShortLink(s.generator.Generate(), target)

		err := s.repo.InsertIfAbsent(ctx, link)
		if err == nil {
			metrics.RecordLinkCreated()
			return link, nil
		}

		if !errors.Is(err, domain.ErrIdentifierTaken) {
			return nil, fmt.Errorf("failed to store link: %w", err)
		}

		metrics.RecordCollision()
		s.logger.Debug("Identifier collision, retrying",
			"identifier", link.Identifier,
			"attempt", attempt,
		)
	}

	metrics.RecordAllocationFailure()
	s.logger.Error("Identifier allocation failed", "attempts", s.maxAttempts)
	return nil, fmt.Errorf("%w after %d attempts", domain.ErrIdentifierSpaceExhausted, s.maxAttempts)
}

// Lookup returns the target stored under identifier, or domain.ErrNotFound.
// It has no side effects on the store.
func (s *LinkStore) Lookup(ctx context.Context, identifier string) (string, error) {
	link, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.RecordLookup(false)
			return "", err
		}
		return "", fmt.Errorf("failed to look up link: %w", err)
	}

	metrics.RecordLookup(true)
	return link.Target, nil
}

// Count returns the number of links issued so far
func (s *LinkStore) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
