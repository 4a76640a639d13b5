package works

import (
	"math"
	"strings"
	"time"
)

// Artwork is one catalog record. CreatedAt is assigned by the store on create and never updated.
type Artwork struct {
	ID string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Dimensions  string `json:"dimensions"`

	Price    float64 `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	Category string  `gorm:"index" json:"category"`
	Status   Status  `gorm:"type:text;not null;default:'disponivel'" json:"status"`

	// data URL produced by the imaging pipeline
	Image string `gorm:"type:text;not null" json:"image"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Artwork) TableName() string { return "artworks" }

// ArtworkInput carries the fields accepted by create.
type ArtworkInput struct {
	Title       string
	Description string
	Dimensions  string
	Price       float64
	Category    string
	Image       string
}

// Validate normalizes whitespace and checks the required fields.
func (in *ArtworkInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	in.Dimensions = strings.TrimSpace(in.Dimensions)

	if in.Title == "" {
		return invalid("title", "is required")
	}
	if err := checkPrice(in.Price); err != nil {
		return err
	}
	if in.Category == "" {
		return invalid("category", "is required")
	}
	if strings.TrimSpace(in.Image) == "" {
		return invalid("image", "is required")
	}
	return nil
}

// NewArtwork builds the record to hand to the store. ID and CreatedAt are left for the store.
func (in ArtworkInput) NewArtwork() *Artwork {
	return &Artwork{
		Title:       in.Title,
		Description: in.Description,
		Dimensions:  in.Dimensions,
		Price:       in.Price,
		Category:    in.Category,
		Status:      StatusAvailable,
		Image:       in.Image,
	}
}

// ArtworkPatch is a partial update; nil fields are left untouched.
// CreatedAt cannot be patched.
type ArtworkPatch struct {
	Title       *string
	Description *string
	Dimensions  *string
	Price       *float64
	Category    *string
	Status      *Status
	Image       *string
}

func (p ArtworkPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Dimensions == nil &&
		p.Price == nil && p.Category == nil && p.Status == nil && p.Image == nil
}

func (p *ArtworkPatch) Validate() error {
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		if t == "" {
			return invalid("title", "must not be blank")
		}
		p.Title = &t
	}
	if p.Price != nil {
		if err := checkPrice(*p.Price); err != nil {
			return err
		}
	}
	if p.Category != nil {
		c := strings.TrimSpace(*p.Category)
		if c == "" {
			return invalid("category", "must not be blank")
		}
		p.Category = &c
	}
	if p.Status != nil && !p.Status.Valid() {
		return invalid("status", "must be one of available, on-order, sold")
	}
	// an empty image means "keep the current one"
	if p.Image != nil && strings.TrimSpace(*p.Image) == "" {
		p.Image = nil
	}
	return nil
}

// Apply writes the set fields onto a.
func (p ArtworkPatch) Apply(a *Artwork) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Dimensions != nil {
		a.Dimensions = *p.Dimensions
	}
	if p.Price != nil {
		a.Price = *p.Price
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Image != nil {
		a.Image = *p.Image
	}
}

// Columns returns the column updates for the set fields.
func (p ArtworkPatch) Columns() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.Dimensions != nil {
		updates["dimensions"] = *p.Dimensions
	}
	if p.Price != nil {
		updates["price"] = *p.Price
	}
	if p.Category != nil {
		updates["category"] = *p.Category
	}
	if p.Status != nil {
		updates["status"] = string(*p.Status)
	}
	if p.Image != nil {
		updates["image"] = *p.Image
	}
	return updates
}

func checkPrice(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid("price", "must be a number")
	}
	if v < 0 {
		return invalid("price", "must not be negative")
	}
	return nil
}
