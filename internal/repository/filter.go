package repository

import (
	"strings"

	"github.com/disenos/catalogo/internal/models"
)

// matchesFilter reports whether a product satisfies every supplied filter
// clause. Clauses combine with AND; the colors and tags clauses match
// any-of their values against the record's multi-valued field.
func matchesFilter(p *models.Product, f *models.ProductFilter) bool {
	if f.Empty() {
		return true
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Style != "" && p.Style != f.Style {
		return false
	}
	if len(f.Colors) > 0 && !matchesAny(p.Colors, f.Colors) {
		return false
	}
	if len(f.Tags) > 0 && !matchesAny(p.Tags, f.Tags) {
		return false
	}
	if f.Search != "" && !matchesSearch(p, f.Search) {
		return false
	}
	return true
}

// matchesAny reports whether the record's values share at least one entry
// with the filter set.
func matchesAny(have models.StringList, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

// matchesSearch does a case-insensitive substring match against the
// product's name, description, and each of its tags.
func matchesSearch(p *models.Product, term string) bool {
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
