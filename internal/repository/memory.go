package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/disenos/catalogo/internal/models"
)

// MemoryStorage is an in-memory Storage backend. A single mutex serializes
// all mutations, which satisfies the per-record atomicity guarantee; reads
// copy records out so callers never alias stored slices.
type MemoryStorage struct {
	mu       sync.RWMutex
	products map[string]*memRecord
	users    map[string]*models.User
	seq      int64
}

// memRecord pairs a product with its creation sequence number, used as the
// tie-break when sorting equal view counts.
type memRecord struct {
	product models.Product
	seq     int64
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		products: make(map[string]*memRecord),
		users:    make(map[string]*models.User),
	}
}

// Products returns a snapshot of the catalog matching the filter, sorted by
// views descending with creation order as the tie-break. Records are copied
// while the lock is held so concurrent mutations cannot be observed
// mid-merge; the sort runs over the snapshot.
func (s *MemoryStorage) Products(_ context.Context, filter *models.ProductFilter) ([]models.Product, error) {
	s.mu.RLock()
	snapshot := make([]memRecord, 0, len(s.products))
	for _, rec := range s.products {
		if filter.Empty() || matchesFilter(&rec.product, filter) {
			snapshot = append(snapshot, memRecord{product: copyProduct(&rec.product), seq: rec.seq})
		}
	}
	s.mu.RUnlock()

	sort.Slice(snapshot, func(i, j int) bool {
		if snapshot[i].product.Views != snapshot[j].product.Views {
			return snapshot[i].product.Views > snapshot[j].product.Views
		}
		return snapshot[i].seq < snapshot[j].seq
	})

	out := make([]models.Product, len(snapshot))
	for i := range snapshot {
		out[i] = snapshot[i].product
	}
	return out, nil
}

// Product returns the record with the given id, or ErrNotFound.
func (s *MemoryStorage) Product(_ context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	p := copyProduct(&rec.product)
	return &p, nil
}

// CreateProduct assigns a fresh id, zeroes the views counter, and stores
// the record.
func (s *MemoryStorage) CreateProduct(_ context.Context, p *models.CreateProduct) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	prod := newProduct(uuid.NewString(), p)
	s.products[prod.ID] = &memRecord{product: prod, seq: s.seq}
	out := copyProduct(&prod)
	return &out, nil
}

// UpdateProduct merges the present fields of p into the stored record.
// The id and views counter are never altered; a missing id is ErrNotFound.
func (s *MemoryStorage) UpdateProduct(_ context.Context, id string, p *models.UpdateProduct) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	merge(&rec.product, p)
	out := copyProduct(&rec.product)
	return &out, nil
}

// DeleteProduct removes the record and reports whether it existed.
func (s *MemoryStorage) DeleteProduct(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return false, nil
	}
	delete(s.products, id)
	return true, nil
}

// IncrementViews adds 1 to the record's views counter. Unknown ids are a
// silent no-op.
func (s *MemoryStorage) IncrementViews(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.products[id]; ok {
		rec.product.Views++
	}
	return nil
}

// User returns the user with the given id, or ErrNotFound.
func (s *MemoryStorage) User(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	out := *u
	return &out, nil
}

// UserByUsername returns the user with the given username (case-sensitive
// exact match), or ErrNotFound.
func (s *MemoryStorage) UserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
}

// CreateUser stores a new user, or returns ErrConflict when the username
// is already taken. The existing record is left untouched on conflict.
func (s *MemoryStorage) CreateUser(_ context.Context, u *models.CreateUser) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return nil, fmt.Errorf("username %q: %w", u.Username, ErrConflict)
		}
	}
	user := &models.User{ID: uuid.NewString(), Username: u.Username, Password: u.Password}
	s.users[user.ID] = user
	out := *user
	return &out, nil
}

func copyProduct(p *models.Product) models.Product {
	out := *p
	out.Tags = append(models.StringList{}, p.Tags...)
	out.Images = append(models.StringList{}, p.Images...)
	out.Colors = append(models.StringList{}, p.Colors...)
	return out
}
