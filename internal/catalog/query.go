package catalog

import (
	"cmp"
	"slices"
	"strings"

	"catalog-app/internal/domain/works"
)

type SortMode string

const (
	SortRecent    SortMode = "recent"
	SortPriceAsc  SortMode = "price-asc"
	SortPriceDesc SortMode = "price-desc"
)

// AllCategories is the category filter that keeps every record. It cannot be used as a category name.
const AllCategories = works.AllCategories

// DefaultPageSize matches the collection grid; 9 is the other size in use.
const DefaultPageSize = 12

// ParseSortMode falls back to SortRecent for unknown values.
func ParseSortMode(s string) SortMode {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	default:
		return SortRecent
	}
}

// View is the browse state of one visitor: filters, sort mode and 1-based page.
type View struct {
	Search   string
	Category string
	Sort     SortMode
	Page     int
}

func NewView() View {
	return View{Category: AllCategories, Sort: SortRecent, Page: 1}
}

// WithSearch changes the search term and returns to the first page.
// The term is used as typed; only "" matches every title.
func (v View) WithSearch(term string) View {
	v.Search = term
	v.Page = 1
	return v
}

// WithCategory changes the category filter and returns to the first page.
func (v View) WithCategory(category string) View {
	v.Category = normalizeCategory(category)
	v.Page = 1
	return v
}

// WithSort changes the sort mode and returns to the first page.
func (v View) WithSort(mode SortMode) View {
	v.Sort = ParseSortMode(string(mode))
	v.Page = 1
	return v
}

// WithPage moves to page n; Query clamps it to the available range.
func (v View) WithPage(n int) View {
	v.Page = n
	return v
}

// Page is one page of query results.
type Page struct {
	Items      []works.Artwork
	Page       int
	PageSize   int
	TotalPages int
	Total      int
}

// Query filters, sorts and paginates artworks. It does not modify its input.
func Query(artworks []works.Artwork, v View, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	filtered := Filter(artworks, v.Search, v.Category)
	Sort(filtered, v.Sort)

	total := len(filtered)
	totalPages := TotalPages(total, pageSize)
	page := min(max(v.Page, 1), totalPages)

	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)

	return Page{
		Items:      filtered[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Total:      total,
	}
}

// Filter keeps records whose title contains search (case-insensitive) and whose category matches.
// The result is a new slice in input order.
func Filter(artworks []works.Artwork, search, category string) []works.Artwork {
	term := strings.ToLower(search)
	category = normalizeCategory(category)

	out := make([]works.Artwork, 0, len(artworks))
	for _, a := range artworks {
		if term != "" && !strings.Contains(strings.ToLower(a.Title), term) {
			continue
		}
		if category != AllCategories && a.Category != category {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Sort orders artworks in place. The sort is stable: ties keep their current order.
func Sort(artworks []works.Artwork, mode SortMode) {
	switch ParseSortMode(string(mode)) {
	case SortPriceAsc:
		slices.SortStableFunc(artworks, func(a, b works.Artwork) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortPriceDesc:
		slices.SortStableFunc(artworks, func(a, b works.Artwork) int {
			return cmp.Compare(b.Price, a.Price)
		})
	default:
		slices.SortStableFunc(artworks, func(a, b works.Artwork) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
}

// TotalPages is ceil(count/pageSize), never less than 1.
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return max(1, (count+pageSize-1)/pageSize)
}

// an empty filter is the unfiltered view; anything else must match exactly
func normalizeCategory(c string) string {
	if c == "" {
		return AllCategories
	}
	return c
}
