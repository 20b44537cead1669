package main

import (
	"context"

	"go.uber.org/multierr"

	"github.com/disenos/catalogo/internal/models"
	"github.com/disenos/catalogo/internal/repository"
)

// demoCatalog is the sample inventory loaded into the in-memory backend so
// a fresh dev server has something to list.
var demoCatalog = []models.CreateProduct{
	{
		Name:        "Agenda Floral",
		Description: "Agenda semanal con portada floral en tonos lavanda",
		Category:    models.CategoryAgenda,
		Tags:        models.StringList{"floral", "semanal"},
		Colors:      models.StringList{"lavanda", "violeta"},
		Style:       models.StyleElegante,
		Featured:    "true",
	},
	{
		Name:        "Libreta Puntos",
		Description: "Libreta de hoja punteada, tapa dura",
		Category:    models.CategoryLibreta,
		Tags:        models.StringList{"punteada", "bullet"},
		Colors:      models.StringList{"azul-profundo"},
		Style:       models.StyleMinimalista,
	},
	{
		Name:        "Etiquetas Escolares",
		Description: "Set de etiquetas adhesivas para útiles",
		Category:    models.CategoryEtiquetas,
		Tags:        models.StringList{"escolar", "adhesivas"},
		Colors:      models.StringList{"ciruela", "índigo"},
		Style:       models.StyleCreativo,
	},
}

// seedDemoCatalog loads the sample products, collecting every failure so a
// single bad entry does not stop the rest.
func seedDemoCatalog(ctx context.Context, store repository.Storage) error {
	var errs error
	for i := range demoCatalog {
		_, err := store.CreateProduct(ctx, &demoCatalog[i])
		errs = multierr.Append(errs, err)
	}
	return errs
}
