// Package validation checks untrusted product payloads before they reach
// the store, reporting every offending field rather than the first.
package validation

import (
	"fmt"
	"strings"

	"github.com/disenos/catalogo/internal/models"
)

// FieldError describes a single rejected field.
type FieldError struct {
	// Field is the JSON name of the offending field.
	Field string `json:"field"`
	// Message explains why the field was rejected.
	Message string `json:"message"`
}

// FieldErrors aggregates all rejected fields of one payload.
type FieldErrors []FieldError

// Error implements the error interface.
func (e FieldErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "invalid product data: " + strings.Join(parts, "; ")
}

func (e *FieldErrors) add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Create validates a product-creation payload. Name, category and style are
// required; category, style and featured must belong to their value sets.
// Description is accepted as any string, including empty. Returns a
// FieldErrors listing every violation, or nil.
func Create(p *models.CreateProduct) error {
	var errs FieldErrors
	if strings.TrimSpace(p.Name) == "" {
		errs.add("name", "is required")
	}
	if p.Category == "" {
		errs.add("category", "is required")
	} else if !models.ValidCategory(p.Category) {
		errs.add("category", fmt.Sprintf("unknown category %q", p.Category))
	}
	if p.Style == "" {
		errs.add("style", "is required")
	} else if !models.ValidStyle(p.Style) {
		errs.add("style", fmt.Sprintf("unknown style %q", p.Style))
	}
	if p.Featured != "" && p.Featured != "true" && p.Featured != "false" {
		errs.add("featured", `must be "true" or "false"`)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Update validates a partial-update payload. Every field is optional;
// a field that is present must satisfy the same rules as on creation.
func Update(p *models.UpdateProduct) error {
	var errs FieldErrors
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		errs.add("name", "must not be empty")
	}
	if p.Category != nil && !models.ValidCategory(*p.Category) {
		errs.add("category", fmt.Sprintf("unknown category %q", *p.Category))
	}
	if p.Style != nil && !models.ValidStyle(*p.Style) {
		errs.add("style", fmt.Sprintf("unknown style %q", *p.Style))
	}
	if p.Featured != nil && *p.Featured != "true" && *p.Featured != "false" {
		errs.add("featured", `must be "true" or "false"`)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
