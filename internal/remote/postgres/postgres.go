// Package postgres stores the catalog with gorm and watches it with LISTEN/NOTIFY.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"catalog-app/internal/domain/works"
	"catalog-app/internal/remote"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	db  *gorm.DB
	dsn string
}

var _ remote.Backend = (*Store)(nil)

// New wraps db. dsn is used to open the dedicated listening connection of each Watch.
func New(db *gorm.DB, dsn string) *Store {
	return &Store{db: db, dsn: dsn}
}

func (s *Store) Add(ctx context.Context, a *works.Artwork) (string, error) {
	a.ID = ""
	if a.Status == "" {
		a.Status = works.StatusAvailable
	}
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return "", err
	}
	return a.ID, nil
}

// ids are uuids; anything else cannot name a row
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *Store) Update(ctx context.Context, id string, patch works.ArtworkPatch) error {
	if !validID(id) {
		return works.ErrNotFound
	}
	updates := patch.Columns()
	if len(updates) == 0 {
		_, err := s.Get(ctx, id)
		return err
	}

	res := s.db.WithContext(ctx).
		Model(&works.Artwork{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return works.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return works.ErrNotFound
	}
	res := s.db.WithContext(ctx).Delete(&works.Artwork{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return works.ErrNotFound
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*works.Artwork, error) {
	if !validID(id) {
		return nil, works.ErrNotFound
	}
	var a works.Artwork
	if err := s.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, works.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *Store) List(ctx context.Context, limit int) ([]works.Artwork, error) {
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var out []works.Artwork
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetCategories(ctx context.Context) (works.CategoryList, bool, error) {
	var row works.Setting
	err := s.db.WithContext(ctx).First(&row, "key = ?", works.SettingCategories).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return works.NewCategoryList(row.List), true, nil
}

// SetCategories replaces the whole list; concurrent writers resolve last-write-wins.
func (s *Store) SetCategories(ctx context.Context, list works.CategoryList) error {
	row := works.Setting{Key: works.SettingCategories, List: []string(list)}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"list", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert %s: %w", works.CategoriesPath, err)
	}
	return nil
}
