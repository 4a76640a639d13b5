package postgres

import (
	"context"
	"testing"
	"time"

	"catalog-app/internal/domain/works"
	"catalog-app/internal/remote"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newStoreWithMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(pgdriver.New(pgdriver.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return New(db, ""), mock
}

const id1 = "5f0c8a3e-2c1b-4d7e-9a4f-1b2c3d4e5f60"

func TestDelete_NotFoundWhenNoRows(t *testing.T) {
	s, mock := newStoreWithMock(t)

	mock.ExpectExec(`DELETE FROM "artworks" WHERE id = \$1`).
		WithArgs(id1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Delete(context.Background(), id1)
	assert.ErrorIs(t, err, works.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_Success(t *testing.T) {
	s, mock := newStoreWithMock(t)

	mock.ExpectExec(`DELETE FROM "artworks" WHERE id = \$1`).
		WithArgs(id1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Delete(context.Background(), id1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFoundWhenNoRows(t *testing.T) {
	s, mock := newStoreWithMock(t)

	mock.ExpectExec(`UPDATE "artworks" SET .* WHERE id = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	title := "Novo"
	err := s.Update(context.Background(), id1, works.ArtworkPatch{Title: &title})
	assert.ErrorIs(t, err, works.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	s, mock := newStoreWithMock(t)

	mock.ExpectQuery(`SELECT \* FROM "artworks" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.Get(context.Background(), id1)
	assert.ErrorIs(t, err, works.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMalformedIDIsNotFound(t *testing.T) {
	s, mock := newStoreWithMock(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, works.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "not-a-uuid"), works.ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, "not-a-uuid", works.ArtworkPatch{}), works.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_NewestFirst(t *testing.T) {
	s, mock := newStoreWithMock(t)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "title", "price", "category", "status", "image", "created_at"}).
		AddRow("b", "B", 20.0, "Mesa", "disponivel", "img", now).
		AddRow("a", "A", 50.0, "Mesa", "vendido", "img", now.Add(-time.Hour))
	mock.ExpectQuery(`SELECT \* FROM "artworks" ORDER BY created_at DESC LIMIT`).
		WillReturnRows(rows)

	list, err := s.List(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, works.StatusSold, list[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCategories(t *testing.T) {
	s, mock := newStoreWithMock(t)

	mock.ExpectQuery(`SELECT \* FROM "settings" WHERE key = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "list", "updated_at"}).
			AddRow("categories", "{Mesa,Tapetes}", time.Now()))

	list, ok, err := s.GetCategories(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, works.CategoryList{"Mesa", "Tapetes"}, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCategories_Absent(t *testing.T) {
	s, mock := newStoreWithMock(t)

	mock.ExpectQuery(`SELECT \* FROM "settings" WHERE key = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "list", "updated_at"}))

	list, ok, err := s.GetCategories(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, list)
}

func TestTopicFor(t *testing.T) {
	topic, ok := TopicFor("artworks")
	assert.True(t, ok)
	assert.Equal(t, remote.TopicArtworks, topic)

	topic, ok = TopicFor("settings")
	assert.True(t, ok)
	assert.Equal(t, remote.TopicCategories, topic)

	_, ok = TopicFor("users")
	assert.False(t, ok)
}
