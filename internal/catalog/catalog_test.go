package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"catalog-app/internal/domain/works"
	"catalog-app/internal/remote"
	"catalog-app/internal/remote/memory"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_RunKeepsStoreCurrent(t *testing.T) {
	backend := memory.New()
	store := NewStore()
	c := New(NewWatcher(backend, backend, backend, 0), store, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	g := NewGateway(backend, backend)
	_, err := g.AddCategory(context.Background(), "Mesa")
	require.NoError(t, err)
	_, err = g.Create(context.Background(), works.ArtworkInput{Title: "A", Price: 1, Category: "Mesa", Image: "img"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		snap := store.Snapshot()
		return len(snap.Artworks) == 1 && len(snap.Categories) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
}

func TestCatalog_RunReturnsSubscriptionError(t *testing.T) {
	backend := memory.New()
	store := NewStore()
	c := New(NewWatcher(backend, backend, backend, 0), store, zerolog.Nop())

	done := make(chan error, 1)
	go func() { done <- c.Run(context.Background()) }()

	assert.Eventually(t, func() bool {
		snap := store.Snapshot()
		return snap.Loaded() && !snap.CategoriesAt.IsZero()
	}, time.Second, 5*time.Millisecond)
	backend.Break(remote.TopicCategories, errors.New("gone"))

	select {
	case err := <-done:
		assert.ErrorIs(t, err, works.ErrRemoteRead)
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
}

func TestCatalog_ServeResubscribes(t *testing.T) {
	backend := memory.New()
	store := NewStore()
	c := New(NewWatcher(backend, backend, backend, 0), store, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- c.Serve(ctx, 10*time.Millisecond) }()

	assert.Eventually(t, func() bool { return store.Snapshot().Loaded() }, time.Second, 5*time.Millisecond)
	backend.Break(remote.TopicArtworks, errors.New("gone"))

	_, err := backend.Add(context.Background(), &works.Artwork{Title: "after reconnect"})
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return len(store.Snapshot().Artworks) == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
