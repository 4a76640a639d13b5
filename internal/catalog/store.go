package catalog

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"catalog-app/internal/domain/works"
)

// Snapshot is an immutable view of both remote resources. Callers must not modify the slices.
type Snapshot struct {
	Version    uint64
	Artworks   []works.Artwork
	Categories works.CategoryList
	// zero until the first delivery of the resource
	ArtworksAt   time.Time
	CategoriesAt time.Time
}

// Store holds the latest snapshot. Every replacement swaps the whole value, so readers never
// observe a half-applied change.
type Store struct {
	current atomic.Pointer[Snapshot]
	mu      sync.Mutex // serializes writers and guards listeners
	subs    map[chan uint64]struct{}
}

func NewStore() *Store {
	s := &Store{subs: map[chan uint64]struct{}{}}
	s.current.Store(&Snapshot{})
	return s
}

func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// ReplaceArtworks installs a new artwork set and keeps the current categories.
func (s *Store) ReplaceArtworks(list []works.Artwork) {
	list = slices.Clone(list)
	s.replace(func(next *Snapshot) {
		next.Artworks = list
		next.ArtworksAt = time.Now()
	})
}

// ReplaceCategories installs a new category list and keeps the current artworks.
func (s *Store) ReplaceCategories(list works.CategoryList) {
	list = slices.Clone(list)
	s.replace(func(next *Snapshot) {
		next.Categories = list
		next.CategoriesAt = time.Now()
	})
}

func (s *Store) replace(mut func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *s.current.Load()
	next.Version++
	mut(&next)
	s.current.Store(&next)

	for ch := range s.subs {
		select {
		case ch <- next.Version:
		default:
			// listener is behind; drop the stale version and leave the newest
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- next.Version:
			default:
			}
		}
	}
}

// Changes returns a channel receiving the version of each replacement, coalesced for slow readers.
// Call the returned func to stop listening.
func (s *Store) Changes() (<-chan uint64, func()) {
	ch := make(chan uint64, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, ch)
			s.mu.Unlock()
		})
	}
}

// Find returns the record with id from the current snapshot.
func (s *Store) Find(id string) (works.Artwork, bool) {
	for _, a := range s.Snapshot().Artworks {
		if a.ID == id {
			return a, true
		}
	}
	return works.Artwork{}, false
}

// Loaded reports whether the artwork subscription has delivered at least once.
func (s *Snapshot) Loaded() bool {
	return !s.ArtworksAt.IsZero()
}
