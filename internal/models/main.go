// Package models defines the core data structures for catalog products and users.
package models

import (
	"encoding/json"
	"strings"
)

// Product represents a catalog entry for a visual design.
type Product struct {
	// ID is the unique identifier for the product, assigned by the store.
	ID string `json:"id"`
	// Name is the display name of the design.
	Name string `json:"name"`
	// Description is free-form text describing the design. May be empty.
	Description string `json:"description"`
	// Category is one of the values accepted by ValidCategory.
	Category string `json:"category"`
	// Tags are free-form labels used for search and facet filtering.
	Tags StringList `json:"tags"`
	// Images holds image URLs; the first entry is the primary image.
	Images StringList `json:"images"`
	// Colors holds free-text color labels used for facet filtering.
	Colors StringList `json:"colors"`
	// Style is one of the values accepted by ValidStyle.
	Style string `json:"style"`
	// Views counts detail-page visits. Only IncrementViews mutates it.
	Views int `json:"views"`
	// Featured is the literal string "true" or "false". Existing clients
	// depend on the string form, so it is not a bool here.
	Featured string `json:"featured"`
}

// User represents an admin account with plaintext credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Username is the login name, unique across users.
	Username string `json:"username"`
	// Password is stored and compared as plain text.
	Password string `json:"password"`
}

// Categories a product may belong to.
const (
	CategoryAgenda    = "agenda"
	CategoryLibreta   = "libreta"
	CategoryEtiquetas = "etiquetas"
)

// Styles a product may be labeled with.
const (
	StyleMinimalista = "minimalista"
	StyleVintage     = "vintage"
	StyleModerno     = "moderno"
	StyleElegante    = "elegante"
	StyleProfesional = "profesional"
	StyleCreativo    = "creativo"
)

// ValidCategory reports whether c is a known product category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryAgenda, CategoryLibreta, CategoryEtiquetas:
		return true
	}
	return false
}

// ValidStyle reports whether s is a known product style.
func ValidStyle(s string) bool {
	switch s {
	case StyleMinimalista, StyleVintage, StyleModerno, StyleElegante, StyleProfesional, StyleCreativo:
		return true
	}
	return false
}

// StringList is a string slice that accepts two JSON shapes: a plain array
// of strings, or a single comma-delimited string which is split on commas,
// trimmed, and stripped of empty segments. Admin forms submit the latter.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = SplitList(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

// MarshalJSON implements json.Marshaler. A nil list encodes as [] so the
// wire shape matches the original schema's empty-array defaults.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// SplitList splits a comma-delimited string into trimmed segments,
// dropping empty ones. An empty or all-whitespace input yields nil.
func SplitList(s string) StringList {
	var out StringList
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// CreateProduct is the payload accepted for product creation. ID and Views
// are never client-supplied; the store assigns them.
type CreateProduct struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Tags        StringList `json:"tags"`
	Images      StringList `json:"images"`
	Colors      StringList `json:"colors"`
	Style       string     `json:"style"`
	Featured    string     `json:"featured"`
}

// UpdateProduct is the payload accepted for partial updates. Nil fields are
// left untouched by the merge; present fields fully replace prior values.
type UpdateProduct struct {
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	Category    *string     `json:"category"`
	Tags        *StringList `json:"tags"`
	Images      *StringList `json:"images"`
	Colors      *StringList `json:"colors"`
	Style       *string     `json:"style"`
	Featured    *string     `json:"featured"`
}

// ProductFilter selects a subset of the catalog. Zero-valued fields impose
// no constraint; supplied fields combine with logical AND. Colors and Tags
// match any-of. Search is a case-insensitive substring match against name,
// description, and tags.
type ProductFilter struct {
	Category string   `schema:"category"`
	Style    string   `schema:"style"`
	Colors   []string `schema:"colors"`
	Tags     []string `schema:"tags"`
	Search   string   `schema:"search"`
}

// Empty reports whether the filter imposes no constraint at all.
func (f *ProductFilter) Empty() bool {
	return f == nil || (f.Category == "" && f.Style == "" && len(f.Colors) == 0 && len(f.Tags) == 0 && f.Search == "")
}

// CreateUser is the payload accepted for user creation.
type CreateUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
