package catalog

import (
	"context"
	"errors"
	"time"

	"catalog-app/internal/domain/works"

	"github.com/rs/zerolog"
)

// Catalog owns the two subscriptions that keep a Store current.
type Catalog struct {
	watcher *Watcher
	store   *Store
	log     zerolog.Logger
}

func New(watcher *Watcher, store *Store, log zerolog.Logger) *Catalog {
	return &Catalog{watcher: watcher, store: store, log: log.With().Str("component", "catalog").Logger()}
}

func (c *Catalog) Store() *Store { return c.store }

// Run subscribes to artworks and categories and blocks until ctx is done or either subscription
// fails. Both subscriptions are released before Run returns.
func (c *Catalog) Run(ctx context.Context) error {
	errs := make(chan error, 2)
	onError := func(err error) {
		select {
		case errs <- err:
		default:
		}
	}

	arts, err := c.watcher.SubscribeArtworks(ctx, func(list []works.Artwork) {
		c.store.ReplaceArtworks(list)
		c.log.Debug().Int("artworks", len(list)).Msg("artwork snapshot")
	}, onError)
	if err != nil {
		return err
	}
	defer arts.Close()

	cats, err := c.watcher.SubscribeCategories(ctx, func(list works.CategoryList) {
		c.store.ReplaceCategories(list)
		c.log.Debug().Int("categories", len(list)).Msg("category snapshot")
	}, onError)
	if err != nil {
		return err
	}
	defer cats.Close()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errs:
		return err
	}
}

// Serve keeps Run going: after a failure it waits delay and subscribes again.
// With delay <= 0 the first failure is returned.
func (c *Catalog) Serve(ctx context.Context, delay time.Duration) error {
	for {
		err := c.Run(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err == nil {
			err = errors.New("subscription ended")
		}
		if delay <= 0 {
			return err
		}
		c.log.Warn().Err(err).Dur("retry_in", delay).Msg("catalog subscription failed")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
	}
}
