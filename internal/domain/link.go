package domain

import "time"

// ShortLink is a single identifier → target association.
// The target is stored exactly as submitted: it is not parsed, normalized or
// checked for a scheme.
type ShortLink struct {
	Identifier string    // Fixed-length, URL-safe key (e.g., "abc123")
	Target     string    // The URL to redirect to
	CreatedAt  time.Time // When the link was issued
}

// NewShortLink creates a link issued now
func NewShortLink(identifier, target string) *ShortLink {
	return &ShortLink{
		Identifier: identifier,
		Target:     target,
		CreatedAt:  time.Now(),
	}
}

// Clone returns a copy that shares nothing with the receiver.
// Repositories hand out clones so callers can't mutate stored state.
func (l *ShortLink) Clone() *ShortLink {
	c := *l
	return &c
}
