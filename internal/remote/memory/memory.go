// Package memory is an in-process backend for the catalog. It serves local development
// (STORE=memory) and tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"catalog-app/internal/domain/works"
	"catalog-app/internal/remote"

	"github.com/google/uuid"
)

type record struct {
	works.Artwork
	seq uint64
}

// Store keeps artworks and the category document in memory and notifies watchers after every write.
type Store struct {
	mu         sync.RWMutex
	artworks   map[string]record
	categories works.CategoryList
	hasCats    bool
	seq        uint64
	fault      error

	watchMu  sync.Mutex
	watchers map[remote.Topic]map[chan remote.Event]struct{}

	now func() time.Time
}

var _ remote.Backend = (*Store)(nil)

type Option func(*Store)

// WithClock replaces time.Now for CreatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(opts ...Option) *Store {
	s := &Store{
		artworks: map[string]record{},
		watchers: map[remote.Topic]map[chan remote.Event]struct{}{},
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SetFault makes every following operation fail with err until cleared with nil.
func (s *Store) SetFault(err error) {
	s.mu.Lock()
	s.fault = err
	s.mu.Unlock()
}

// Break delivers err to the watchers of topic and closes their channels.
func (s *Store) Break(topic remote.Topic, err error) {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	for ch := range s.watchers[topic] {
		select {
		case <-ch:
		default:
		}
		ch <- remote.Event{Topic: topic, Err: err}
		close(ch)
	}
	delete(s.watchers, topic)
}

func (s *Store) Add(ctx context.Context, a *works.Artwork) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	if s.fault != nil {
		s.mu.Unlock()
		return "", s.fault
	}
	s.seq++
	a.ID = uuid.NewString()
	a.CreatedAt = s.now().UTC()
	a.UpdatedAt = a.CreatedAt
	if a.Status == "" {
		a.Status = works.StatusAvailable
	}
	s.artworks[a.ID] = record{Artwork: *a, seq: s.seq}
	s.mu.Unlock()

	s.notify(remote.TopicArtworks)
	return a.ID, nil
}

func (s *Store) Update(ctx context.Context, id string, patch works.ArtworkPatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	if s.fault != nil {
		s.mu.Unlock()
		return s.fault
	}
	r, ok := s.artworks[id]
	if !ok {
		s.mu.Unlock()
		return works.ErrNotFound
	}
	patch.Apply(&r.Artwork)
	r.UpdatedAt = s.now().UTC()
	s.artworks[id] = r
	s.mu.Unlock()

	s.notify(remote.TopicArtworks)
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	if s.fault != nil {
		s.mu.Unlock()
		return s.fault
	}
	if _, ok := s.artworks[id]; !ok {
		s.mu.Unlock()
		return works.ErrNotFound
	}
	delete(s.artworks, id)
	s.mu.Unlock()

	s.notify(remote.TopicArtworks)
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*works.Artwork, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fault != nil {
		return nil, s.fault
	}
	r, ok := s.artworks[id]
	if !ok {
		return nil, works.ErrNotFound
	}
	a := r.Artwork
	return &a, nil
}

// List orders by CreatedAt descending; records created at the same instant keep reverse insertion order.
func (s *Store) List(ctx context.Context, limit int) ([]works.Artwork, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	if s.fault != nil {
		s.mu.RUnlock()
		return nil, s.fault
	}
	rows := make([]record, 0, len(s.artworks))
	for _, r := range s.artworks {
		rows = append(rows, r)
	}
	s.mu.RUnlock()

	slices.SortFunc(rows, func(a, b record) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.seq, a.seq)
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	out := make([]works.Artwork, len(rows))
	for i, r := range rows {
		out[i] = r.Artwork
	}
	return out, nil
}

func (s *Store) GetCategories(ctx context.Context) (works.CategoryList, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fault != nil {
		return nil, false, s.fault
	}
	if !s.hasCats {
		return nil, false, nil
	}
	return slices.Clone(s.categories), true, nil
}

func (s *Store) SetCategories(ctx context.Context, list works.CategoryList) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	if s.fault != nil {
		s.mu.Unlock()
		return s.fault
	}
	s.categories = slices.Clone(list)
	s.hasCats = true
	s.mu.Unlock()

	s.notify(remote.TopicCategories)
	return nil
}

func (s *Store) Watch(ctx context.Context, topic remote.Topic) (<-chan remote.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// one slot: pending notifications coalesce, the watcher reloads the full set anyway
	ch := make(chan remote.Event, 1)

	s.watchMu.Lock()
	if s.watchers[topic] == nil {
		s.watchers[topic] = map[chan remote.Event]struct{}{}
	}
	s.watchers[topic][ch] = struct{}{}
	s.watchMu.Unlock()

	go func() {
		<-ctx.Done()
		s.watchMu.Lock()
		defer s.watchMu.Unlock()
		if _, ok := s.watchers[topic][ch]; ok {
			delete(s.watchers[topic], ch)
			close(ch)
		}
	}()
	return ch, nil
}

func (s *Store) notify(topic remote.Topic) {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	for ch := range s.watchers[topic] {
		select {
		case ch <- remote.Event{Topic: topic}:
		default:
		}
	}
}
