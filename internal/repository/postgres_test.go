package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/disenos/catalogo/internal/models"
)

func setupMock(t *testing.T) (*PostgresStorage, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	storage := NewPostgresStorage(db)
	cleanup := func() {
		db.Close()
	}
	return storage, mock, cleanup
}

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "description", "category", "tags", "images", "colors", "style", "views", "featured"})
}

func TestProducts_Success(t *testing.T) {
	storage, mock, cleanup := setupMock(t)
	defer cleanup()

	rows := productRows().
		AddRow("p1", "Agenda Floral", "semanal", "agenda", `["floral"]`, `[]`, `["lavanda"]`, "elegante", 80, "true").
		AddRow("p2", "Libreta Puntos", "", "libreta", `[]`, `[]`, `[]`, "minimalista", 5, "false")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, description, category, tags, images, colors, style, views, featured FROM products ORDER BY views DESC, seq ASC`)).
		WillReturnRows(rows)

	products, err := storage.Products(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ID != "p1" || products[1].ID != "p2" {
		t.Errorf("unexpected products returned: %+v", products)
	}
	if len(products[0].Tags) != 1 || products[0].Tags[0] != "floral" {
		t.Errorf("tags column not decoded: %+v", products[0].Tags)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestProducts_CategoryAndStyleInQuery(t *testing.T) {
	storage, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, description, category, tags, images, colors, style, views, featured FROM products WHERE category = $1 AND style = $2 ORDER BY views DESC, seq ASC`)).
		WithArgs("agenda", "moderno").
		WillReturnRows(productRows())

	_, err := storage.Products(context.Background(), &models.ProductFilter{Category: "agenda", Style: "moderno"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestProducts_FacetFilterAppliedToRows(t *testing.T) {
	storage, mock, cleanup := setupMock(t)
	defer cleanup()

	rows := productRows().
		AddRow("p1", "P1", "", "agenda", `[]`, `[]`, `["red","blue"]`, "moderno", 0, "false").
		AddRow("p2", "P2", "", "agenda", `[]`, `[]`, `["green"]`, "moderno", 0, "false").
		AddRow("p3", "P3", "", "agenda", `[]`, `[]`, `["black"]`, "moderno", 0, "false")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, description, category, tags, images, colors, style, views, featured FROM products ORDER BY views DESC, seq ASC`)).
		WillReturnRows(rows)

	products, err := storage.Products(context.Background(), &models.ProductFilter{Colors: []string{"red", "green"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 || products[0].ID != "p1" || products[1].ID != "p2" {
		t.Errorf("colors filter not applied to rows: %+v", products)
	}
}

func TestProduct_NotFound(t *testing.T) {
	storage, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, description, category, tags, images, colors, style, views, featured FROM products WHERE id = $1`)).
		WithArgs("missing").
		WillReturnRows(productRows())

	_, err := storage.Product(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestProducts_ConnectionErrorIsUnavailable(t *testing.T) {
	storage, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT`).WillReturnError(&pq.Error{Code: "08006"})

	_, err := storage.Products(context.Background(), nil)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestCreateProduct_Success(t *testing.T) {
	storage, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO products (id, name, description, category, tags, images, colors, style, views, featured)`)).
		WithArgs(sqlmock.AnyArg(), "Agenda Floral", "semanal", "agenda", []byte(`["floral"]`), []byte(`[]`), []byte(`[]`), "elegante", 0, "false").
		WillReturnResult(sqlmock.NewResult(0, 1))

	prod, err := storage.CreateProduct(context.Background(), &models.CreateProduct{
		Name:        "Agenda Floral",
		Description: "semanal",
		Category:    "agenda",
		Tags:        models.StringList{"floral"},
		Style:       "elegante",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prod.ID == "" {
		t.Error("expected generated id")
	}
	if prod.Views != 0 || prod.Featured != "false" {
		t.Errorf("defaults not applied: %+v", prod)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUpdateProduct_MergesInsideTx(t *testing.T) {
	storage, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, description, category, tags, images, colors, style, views, featured FROM products WHERE id = $1 FOR UPDATE`)).
		WithArgs("p1").
		WillReturnRows(productRows().
			AddRow("p1", "Agenda", "semanal", "agenda", `["floral"]`, `[]`, `[]`, "moderno", 7, "false"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE products SET`)).
		WithArgs("p1", "Agenda", "semanal", "agenda", []byte(`["floral"]`), []byte(`[]`), []byte(`[]`), "vintage", "false").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	style := "vintage"
	prod, err := storage.UpdateProduct(context.Background(), "p1", &models.UpdateProduct{Style: &style})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prod.Style != "vintage" {
		t.Errorf("style not merged: %+v", prod)
	}
	if prod.Views != 7 {
		t.Errorf("views must be untouched by update, got %d", prod.Views)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	storage, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE`)).
		WithArgs("missing").
		WillReturnRows(productRows())
	mock.ExpectRollback()

	name := "X"
	_, err := storage.UpdateProduct(context.Background(), "missing", &models.UpdateProduct{Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteProduct_ReportsExistence(t *testing.T) {
	storage, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM products WHERE id = $1`)).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM products WHERE id = $1`)).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := storage.DeleteProduct(context.Background(), "p1")
	if err != nil || !deleted {
		t.Errorf("first delete = (%v, %v); want (true, nil)", deleted, err)
	}
	deleted, err = storage.DeleteProduct(context.Background(), "p1")
	if err != nil || deleted {
		t.Errorf("second delete = (%v, %v); want (false, nil)", deleted, err)
	}
}

func TestIncrementViews_SingleStatement(t *testing.T) {
	storage, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE products SET views = views + 1 WHERE id = $1`)).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := storage.IncrementViews(context.Background(), "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestIncrementViews_UnknownIDIsNoOp(t *testing.T) {
	storage, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE products SET views = views + 1 WHERE id = $1`)).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := storage.IncrementViews(context.Background(), "missing"); err != nil {
		t.Errorf("expected silent no-op, got %v", err)
	}
}

func TestCreateUser_Conflict(t *testing.T) {
	storage, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (id, username, password) VALUES ($1, $2, $3)`)).
		WithArgs(sqlmock.AnyArg(), "admin", "secret").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := storage.CreateUser(context.Background(), &models.CreateUser{Username: "admin", Password: "secret"})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestUserByUsername_Success(t *testing.T) {
	storage, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, password FROM users WHERE username = $1`)).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password"}).AddRow("u1", "admin", "secret"))

	user, err := storage.UserByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "u1" || user.Password != "secret" {
		t.Errorf("unexpected user: %+v", user)
	}
}
