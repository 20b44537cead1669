// Package repository provides the catalog storage contract and its
// in-memory and PostgreSQL implementations.
package repository

import (
	"context"
	"errors"

	"github.com/disenos/catalogo/internal/models"
)

var (
	// ErrNotFound is returned when an id or username matches no record.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a unique key is already taken.
	ErrConflict = errors.New("record already exists")
	// ErrUnavailable is returned when the backing store cannot be reached.
	ErrUnavailable = errors.New("storage unavailable")
)

// Storage is the single authority for catalog records: identifier
// assignment, filtering, ordering, and the views counter.
//
// Products returns the filtered catalog sorted by views descending,
// ties broken by creation order. IncrementViews adds exactly 1 to the
// views counter and is a silent no-op on an unknown id; per-record
// mutations are serialized so concurrent increments never lose updates.
type Storage interface {
	Products(ctx context.Context, filter *models.ProductFilter) ([]models.Product, error)
	Product(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.CreateProduct) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, p *models.UpdateProduct) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) (bool, error)
	IncrementViews(ctx context.Context, id string) error

	User(ctx context.Context, id string) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.CreateUser) (*models.User, error)
}

// newProduct materializes a creation payload into a stored record with the
// given id, zero views, and empty-slice defaults for absent lists.
func newProduct(id string, p *models.CreateProduct) models.Product {
	featured := p.Featured
	if featured == "" {
		featured = "false"
	}
	return models.Product{
		ID:          id,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Tags:        orEmpty(p.Tags),
		Images:      orEmpty(p.Images),
		Colors:      orEmpty(p.Colors),
		Style:       p.Style,
		Views:       0,
		Featured:    featured,
	}
}

// merge applies the present fields of an update payload onto prod.
// ID and Views are never touched.
func merge(prod *models.Product, p *models.UpdateProduct) {
	if p.Name != nil {
		prod.Name = *p.Name
	}
	if p.Description != nil {
		prod.Description = *p.Description
	}
	if p.Category != nil {
		prod.Category = *p.Category
	}
	if p.Tags != nil {
		prod.Tags = orEmpty(*p.Tags)
	}
	if p.Images != nil {
		prod.Images = orEmpty(*p.Images)
	}
	if p.Colors != nil {
		prod.Colors = orEmpty(*p.Colors)
	}
	if p.Style != nil {
		prod.Style = *p.Style
	}
	if p.Featured != nil {
		prod.Featured = *p.Featured
	}
}

func orEmpty(l models.StringList) models.StringList {
	if l == nil {
		return models.StringList{}
	}
	return l
}
