// Package service provides catalog business logic, delegating persistence
// to the storage contract.
package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/disenos/catalogo/internal/models"
	"github.com/disenos/catalogo/internal/repository"
	"github.com/disenos/catalogo/internal/validation"
)

// Catalog implements product operations over a Storage backend, applying
// validation before any mutation reaches the store.
type Catalog struct {
	store repository.Storage
}

// NewCatalog constructs a Catalog using the provided storage backend.
func NewCatalog(store repository.Storage) *Catalog {
	return &Catalog{store: store}
}

// Products lists the catalog, optionally filtered. Results are sorted by
// views descending.
func (c *Catalog) Products(ctx context.Context, filter *models.ProductFilter) ([]models.Product, error) {
	return c.store.Products(ctx, filter)
}

// Product fetches a single record without side effects.
func (c *Catalog) Product(ctx context.Context, id string) (*models.Product, error) {
	return c.store.Product(ctx, id)
}

// View fetches a record and counts the visit. The increment is a separate
// step after the fetch so a missing id never counts.
func (c *Catalog) View(ctx context.Context, id string) (*models.Product, error) {
	p, err := c.store.Product(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.store.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}

// Create validates the payload and stores a new product.
func (c *Catalog) Create(ctx context.Context, p *models.CreateProduct) (*models.Product, error) {
	if err := validation.Create(p); err != nil {
		return nil, err
	}
	return c.store.CreateProduct(ctx, p)
}

// Update validates the payload and merges its present fields into the
// existing record.
func (c *Catalog) Update(ctx context.Context, id string, p *models.UpdateProduct) (*models.Product, error) {
	if err := validation.Update(p); err != nil {
		return nil, err
	}
	return c.store.UpdateProduct(ctx, id, p)
}

// Delete removes a record, reporting whether it existed.
func (c *Catalog) Delete(ctx context.Context, id string) (bool, error) {
	return c.store.DeleteProduct(ctx, id)
}

// Duplicate stores a copy of an existing product under a fresh id. The
// copy's name carries a " (Copia)" suffix so the admin can tell the two
// apart, and it starts unfeatured with a reset views counter.
func (c *Catalog) Duplicate(ctx context.Context, id string) (*models.Product, error) {
	src, err := c.store.Product(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.store.CreateProduct(ctx, &models.CreateProduct{
		Name:        src.Name + " (Copia)",
		Description: src.Description,
		Category:    src.Category,
		Tags:        src.Tags,
		Images:      src.Images,
		Colors:      src.Colors,
		Style:       src.Style,
		Featured:    "false",
	})
}

// Categories lists the distinct categories present in the catalog.
func (c *Catalog) Categories(ctx context.Context) ([]string, error) {
	return c.distinct(ctx, func(p *models.Product) []string { return []string{p.Category} })
}

// Styles lists the distinct styles present in the catalog.
func (c *Catalog) Styles(ctx context.Context) ([]string, error) {
	return c.distinct(ctx, func(p *models.Product) []string { return []string{p.Style} })
}

// Colors lists the distinct color labels present across all products.
func (c *Catalog) Colors(ctx context.Context) ([]string, error) {
	return c.distinct(ctx, func(p *models.Product) []string { return p.Colors })
}

// distinct collects unique values over the live catalog, sorted for a
// stable response.
func (c *Catalog) distinct(ctx context.Context, pick func(*models.Product) []string) ([]string, error) {
	products, err := c.store.Products(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list for facets: %w", err)
	}
	seen := make(map[string]struct{})
	out := []string{}
	for i := range products {
		for _, v := range pick(&products[i]) {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				out = append(out, v)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}
