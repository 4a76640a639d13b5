package works

import (
	"slices"
	"strings"
)

// CategoriesPath addresses the singleton document holding the category list.
const CategoriesPath = "settings/categories"

// CategoryList is an ordered set of unique, non-blank names. Compare is case-sensitive.
type CategoryList []string

// AllCategories is the filter value for "every category", so no category may carry it.
const AllCategories = "all"

// NewCategoryList validates a list read from storage: blanks are dropped, duplicates keep the first occurrence.
func NewCategoryList(names []string) CategoryList {
	out := make(CategoryList, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || slices.Contains(out, n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func (l CategoryList) Contains(name string) bool {
	return slices.Contains(l, name)
}

// Add returns a copy with name appended.
func (l CategoryList) Add(name string) (CategoryList, error) {
	clean := strings.TrimSpace(name)
	if clean == "" {
		return l, invalid("category", "must not be blank")
	}
	if clean == AllCategories {
		return l, invalid("category", "is reserved")
	}
	if l.Contains(clean) {
		return l, invalid("category", "already exists")
	}
	out := make(CategoryList, 0, len(l)+1)
	out = append(out, l...)
	return append(out, clean), nil
}

// Remove returns a copy without name and whether it was present.
func (l CategoryList) Remove(name string) (CategoryList, bool) {
	i := slices.Index(l, name)
	if i < 0 {
		return l, false
	}
	out := make(CategoryList, 0, len(l)-1)
	out = append(out, l[:i]...)
	return append(out, l[i+1:]...), true
}
