package catalog

import (
	"context"
	"sync"

	"catalog-app/internal/domain/works"
	"catalog-app/internal/remote"
)


// Watcher subscribes to the artwork collection and the category singleton.
// Each change delivers the full current set; there is no diffing and no automatic retry.
type Watcher struct {
	artworks remote.Artworks
	settings remote.Settings
	feed     remote.Feed
	limit    int
}

// NewWatcher builds a watcher. limit > 0 caps each artwork snapshot to the newest limit records;
// otherwise every snapshot carries the whole collection.
func NewWatcher(artworks remote.Artworks, settings remote.Settings, feed remote.Feed, limit int) *Watcher {
	if limit < 0 {
		limit = 0
	}
	return &Watcher{artworks: artworks, settings: settings, feed: feed, limit: limit}
}

// Subscription is the handle of a running subscription.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	stopped bool
}

// Close stops the subscription. No callback runs after Close returns.
// Close must not be called from inside one of the subscription's own callbacks.
func (s *Subscription) Close() {
	s.cancel()
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	<-s.done
}

// Done is closed when the subscription has ended, by Close or by an error.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// SubscribeArtworks delivers the artwork set, newest first, on subscribe and after every change.
func (w *Watcher) SubscribeArtworks(ctx context.Context, onSnapshot func([]works.Artwork), onError func(error)) (*Subscription, error) {
	load := func(ctx context.Context) ([]works.Artwork, error) {
		list, err := w.artworks.List(ctx, w.limit)
		return list, works.ReadFailed("list artworks", err)
	}
	return subscribe(ctx, w.feed, remote.TopicArtworks, load, onSnapshot, onError)
}

// SubscribeCategories delivers the category list; an absent document yields an empty list.
func (w *Watcher) SubscribeCategories(ctx context.Context, onSnapshot func(works.CategoryList), onError func(error)) (*Subscription, error) {
	load := func(ctx context.Context) (works.CategoryList, error) {
		list, _, err := w.settings.GetCategories(ctx)
		if err != nil {
			return nil, works.ReadFailed("get "+works.CategoriesPath, err)
		}
		if list == nil {
			list = works.CategoryList{}
		}
		return list, nil
	}
	return subscribe(ctx, w.feed, remote.TopicCategories, load, onSnapshot, onError)
}

func subscribe[T any](
	ctx context.Context,
	feed remote.Feed,
	topic remote.Topic,
	load func(context.Context) (T, error),
	onSnapshot func(T),
	onError func(error),
) (*Subscription, error) {
	subCtx, cancel := context.WithCancel(ctx)
	events, err := feed.Watch(subCtx, topic)
	if err != nil {
		cancel()
		return nil, works.ReadFailed("watch "+string(topic), err)
	}

	sub := &Subscription{cancel: cancel, done: make(chan struct{})}

	deliver := func(fn func()) bool {
		sub.mu.Lock()
		defer sub.mu.Unlock()
		if sub.stopped || subCtx.Err() != nil {
			return false
		}
		fn()
		return true
	}

	fail := func(err error) {
		deliver(func() {
			if onError != nil {
				onError(err)
			}
		})
	}

	reload := func() bool {
		v, err := load(subCtx)
		if err != nil {
			if subCtx.Err() == nil {
				fail(err)
			}
			return false
		}
		return deliver(func() { onSnapshot(v) })
	}

	go func() {
		defer close(sub.done)
		defer cancel()

		if !reload() {
			return
		}
		for {
			select {
			case <-subCtx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if ev.Err != nil {
					fail(works.ReadFailed("watch "+string(topic), ev.Err))
					return
				}
				if !reload() {
					return
				}
			}
		}
	}()
	return sub, nil
}
