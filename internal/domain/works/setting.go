package works

import (
	"time"

	"github.com/lib/pq"
)

// SettingCategories is the key of the category-list row.
const SettingCategories = "categories"

// Setting is a singleton document addressed by key. Only the category list uses it.
type Setting struct {
	Key       string         `gorm:"primaryKey" json:"-"`
	List      pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"list"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Setting) TableName() string { return "settings" }
