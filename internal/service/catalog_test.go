package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disenos/catalogo/internal/models"
	"github.com/disenos/catalogo/internal/repository"
	"github.com/disenos/catalogo/internal/service"
	"github.com/disenos/catalogo/internal/validation"
)

func seededCatalog(t *testing.T) (*service.Catalog, *repository.MemoryStorage) {
	t.Helper()
	store := repository.NewMemoryStorage()
	return service.NewCatalog(store), store
}

func TestCreateRejectsInvalidPayload(t *testing.T) {
	svc, store := seededCatalog(t)

	_, err := svc.Create(context.Background(), &models.CreateProduct{Name: "", Category: "bad", Style: "bad"})
	var fieldErrs validation.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 3)

	all, err := store.Products(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, all, "rejected payload must not reach the store")
}

func TestViewCountsVisit(t *testing.T) {
	ctx := context.Background()
	svc, _ := seededCatalog(t)
	prod, err := svc.Create(ctx, &models.CreateProduct{Name: "A", Category: models.CategoryAgenda, Style: models.StyleModerno})
	require.NoError(t, err)

	_, err = svc.View(ctx, prod.ID)
	require.NoError(t, err)

	got, err := svc.Product(ctx, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Views)
}

func TestViewMissingIDDoesNotCount(t *testing.T) {
	svc, _ := seededCatalog(t)
	_, err := svc.View(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProductFetchHasNoSideEffects(t *testing.T) {
	ctx := context.Background()
	svc, _ := seededCatalog(t)
	prod, err := svc.Create(ctx, &models.CreateProduct{Name: "A", Category: models.CategoryAgenda, Style: models.StyleModerno})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.Product(ctx, prod.ID)
		require.NoError(t, err)
	}
	got, err := svc.Product(ctx, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Views)
}

func TestDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, store := seededCatalog(t)
	src, err := svc.Create(ctx, &models.CreateProduct{
		Name:     "Agenda Floral",
		Category: models.CategoryAgenda,
		Style:    models.StyleElegante,
		Tags:     models.StringList{"floral"},
		Featured: "true",
	})
	require.NoError(t, err)
	require.NoError(t, store.IncrementViews(ctx, src.ID))

	dup, err := svc.Duplicate(ctx, src.ID)
	require.NoError(t, err)

	assert.NotEqual(t, src.ID, dup.ID)
	assert.Equal(t, "Agenda Floral (Copia)", dup.Name)
	assert.Equal(t, 0, dup.Views, "copy starts with a fresh counter")
	assert.Equal(t, src.Tags, dup.Tags)
	assert.Equal(t, "false", dup.Featured, "copy starts unfeatured even when the source is featured")
}

func TestDuplicateMissing(t *testing.T) {
	svc, _ := seededCatalog(t)
	_, err := svc.Duplicate(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFacets(t *testing.T) {
	ctx := context.Background()
	svc, _ := seededCatalog(t)
	for _, p := range []models.CreateProduct{
		{Name: "A", Category: models.CategoryAgenda, Style: models.StyleModerno, Colors: models.StringList{"lavanda", "violeta"}},
		{Name: "B", Category: models.CategoryAgenda, Style: models.StyleVintage, Colors: models.StringList{"violeta"}},
		{Name: "C", Category: models.CategoryLibreta, Style: models.StyleModerno},
	} {
		p := p
		_, err := svc.Create(ctx, &p)
		require.NoError(t, err)
	}

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"agenda", "libreta"}, categories)

	styles, err := svc.Styles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"moderno", "vintage"}, styles)

	colors, err := svc.Colors(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"lavanda", "violeta"}, colors)
}

func TestFacetsEmptyCatalog(t *testing.T) {
	svc, _ := seededCatalog(t)
	colors, err := svc.Colors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{}, colors)
}

// failingStore wraps the memory store to fail listing, exercising the
// facet error path.
type failingStore struct {
	repository.Storage
}

func (f *failingStore) Products(context.Context, *models.ProductFilter) ([]models.Product, error) {
	return nil, errors.New("boom")
}

func TestFacetsPropagateStorageErrors(t *testing.T) {
	svc := service.NewCatalog(&failingStore{Storage: repository.NewMemoryStorage()})
	_, err := svc.Categories(context.Background())
	assert.Error(t, err)
}
