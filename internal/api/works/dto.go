package works

import (
	"time"

	"catalog-app/internal/domain/works"
)

// ---------- responses

type ArtworkDTO struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Dimensions  string       `json:"dimensions"`
	Price       float64      `json:"price"`
	PriceLabel  string       `json:"price_label"`
	Category    string       `json:"category"`
	Status      works.Status `json:"status"`
	StatusLabel string       `json:"status_label"`
	Image       string       `json:"image"`
	CreatedAt   time.Time    `json:"created_at"`
}

type PageDTO struct {
	Items      []ArtworkDTO `json:"items"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
	Total      int          `json:"total"`

	Search   string `json:"search"`
	Category string `json:"category"`
	Sort     string `json:"sort"`

	// false until the first snapshot arrived
	Loaded  bool   `json:"loaded"`
	Version uint64 `json:"version"`
}

type InquiryDTO struct {
	URL string `json:"url"`
}

// ---------- requests

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}
