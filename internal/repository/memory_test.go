package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"shortlink/internal/domain"
	"shortlink/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_InsertIfAbsent_Success(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ctx := context.Background()

	err := repo.InsertIfAbsent(ctx, domain.NewShortLink("abc123", "http://example.com"))
	require.NoError(t, err)

	found, err := repo.FindByIdentifier(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", found.Target)
}

func TestMemoryRepository_InsertIfAbsent_Duplicate(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.InsertIfAbsent(ctx, domain.NewShortLink("abc123", "http://example.com")))

	err := repo.InsertIfAbsent(ctx, domain.NewShortLink("abc123", "http://different.com"))
	assert.ErrorIs(t, err, domain.ErrIdentifierTaken)

	// The first mapping must survive the collision
	found, err := repo.FindByIdentifier(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", found.Target)
}

func TestMemoryRepository_InsertIfAbsent_StoresClone(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ctx := context.Background()

	link := domain.NewShortLink("abc123", "http://example.com")
	require.NoError(t, repo.InsertIfAbsent(ctx, link))

	link.Target = "http://mutated.example.com"

	found, err := repo.FindByIdentifier(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", found.Target)
}

func TestMemoryRepository_FindByIdentifier_NotFound(t *testing.T) {
	repo := repository.NewMemoryRepository()

	found, err := repo.FindByIdentifier(context.Background(), "zzzzzz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, found)
}

func TestMemoryRepository_FindByIdentifier_ReturnsClone(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.InsertIfAbsent(ctx, domain.NewShortLink("abc123", "http://example.com")))

	found, _ := repo.FindByIdentifier(ctx, "abc123")
	found.Target = "http://mutated.example.com"

	again, _ := repo.FindByIdentifier(ctx, "abc123")
	assert.Equal(t, "http://example.com", again.Target)
}

func TestMemoryRepository_Count(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.InsertIfAbsent(ctx, domain.NewShortLink(fmt.Sprintf("id%04d", i), "http://example.com")))
	}
	// A rejected duplicate doesn't grow the store
	_ = repo.InsertIfAbsent(ctx, domain.NewShortLink("id0000", "http://example.com"))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestMemoryRepository_InsertIfAbsent_ConcurrentCollision(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ctx := context.Background()

	const numGoroutines = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	var successCount int32
	var collisionCount int32

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			err := repo.InsertIfAbsent(ctx, domain.NewShortLink("same00", fmt.Sprintf("https://example.com/%d", id)))
			if err == nil {
				atomic.AddInt32(&successCount, 1)
			} else if errors.Is(err, domain.ErrIdentifierTaken) {
				atomic.AddInt32(&collisionCount, 1)
			}
		}(i)
	}

	wg.Wait()

	assert.Equal(t, int32(1), successCount)
	assert.Equal(t, int32(numGoroutines-1), collisionCount)
}

func TestMemoryRepository_ConcurrentReadersAndWriters(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ctx := context.Background()

	const writers = 50
	var wg sync.WaitGroup

	for i := 0; i < writers; i++ {
		wg.Add(2)
		id := fmt.Sprintf("w%05d", i)
		target := fmt.Sprintf("https://example.com/%d", i)

		go func() {
			defer wg.Done()
			assert.NoError(t, repo.InsertIfAbsent(ctx, domain.NewShortLink(id, target)))
		}()
		go func() {
			defer wg.Done()
			// Either not there yet or fully there: never a half-written link
			found, err := repo.FindByIdentifier(ctx, id)
			if err == nil {
				assert.Equal(t, target, found.Target)
			} else {
				assert.ErrorIs(t, err, domain.ErrNotFound)
			}
		}()
	}

	wg.Wait()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, writers, count)
}

func TestMemoryRepository_RespectsContextCancellation(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.InsertIfAbsent(ctx, domain.NewShortLink("abc123", "http://example.com"))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = repo.FindByIdentifier(ctx, "abc123")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = repo.Count(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
