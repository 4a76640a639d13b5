package postgres

import (
	"context"
	"errors"
	"time"

	"catalog-app/database"
	"catalog-app/internal/remote"

	"github.com/jackc/pgx/v5"
)

var tableTopics = map[string]remote.Topic{
	"artworks": remote.TopicArtworks,
	"settings": remote.TopicCategories,
}

// TopicFor maps a notification payload to the topic it concerns.
func TopicFor(payload string) (remote.Topic, bool) {
	t, ok := tableTopics[payload]
	return t, ok
}

// Watch opens a dedicated connection, LISTENs on the change channel and forwards the
// notifications for topic. Connection failures end the stream with an error event.
func (s *Store) Watch(ctx context.Context, topic remote.Topic) (<-chan remote.Event, error) {
	conn, err := pgx.Connect(ctx, s.dsn)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(ctx, "LISTEN "+database.NotifyChannel); err != nil {
		conn.Close(context.Background())
		return nil, err
	}

	ch := make(chan remote.Event, 1)
	go func() {
		defer close(ch)
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			conn.Close(closeCtx)
		}()

		for {
			n, err := conn.WaitForNotification(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, context.Canceled) {
					return
				}
				select {
				case ch <- remote.Event{Topic: topic, Err: err}:
				case <-ctx.Done():
				}
				return
			}
			if t, ok := TopicFor(n.Payload); !ok || t != topic {
				continue
			}
			select {
			case ch <- remote.Event{Topic: topic}:
			default:
				// a reload is already pending
			}
		}
	}()
	return ch, nil
}
