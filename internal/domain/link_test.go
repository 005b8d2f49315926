package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewShortLink(t *testing.T) {
	before := time.Now()
	link := NewShortLink("abc123", "http://example.com")

	assert.Equal(t, "abc123", link.Identifier)
	assert.Equal(t, "http://example.com", link.Target)
	assert.False(t, link.CreatedAt.Before(before))
}

func TestNewShortLink_KeepsTargetVerbatim(t *testing.T) {
	targets := []string{"", "not a url", "  http://example.com/ ", "ftp://x", "HTTP://EXAMPLE.COM/%7e"}

	for _, target := range targets {
		assert.Equal(t, target, NewShortLink("abc123", target).Target)
	}
}

func TestShortLink_Clone(t *testing.T) {
	link := NewShortLink("abc123", "http://example.com")

	clone := link.Clone()
	clone.Target = "http://changed.example.com"

	assert.Equal(t, "http://example.com", link.Target)
	assert.Equal(t, link.Identifier, clone.Identifier)
	assert.Equal(t, link.CreatedAt, clone.CreatedAt)
}
