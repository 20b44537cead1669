package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/disenos/catalogo/internal/models"
)

const productColumns = `id, name, description, category, tags, images, colors, style, views, featured`

// PostgresStorage implements Storage against a PostgreSQL database.
// The tags, images and colors columns hold JSON-encoded string arrays, so
// facet and search filtering happens in-application over the fetched rows;
// category and style equality is pushed into the query.
type PostgresStorage struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresStorage creates a PostgresStorage with the given database
// connection. db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{DB: db}
}

// Products fetches the catalog sorted by views descending (creation order
// breaks ties) and applies the facet and search clauses to the rows.
func (s *PostgresStorage) Products(ctx context.Context, filter *models.ProductFilter) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var args []any
	if filter != nil && filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" WHERE category = $%d", len(args))
	}
	if filter != nil && filter.Style != "" {
		args = append(args, filter.Style)
		if len(args) == 1 {
			query += fmt.Sprintf(" WHERE style = $%d", len(args))
		} else {
			query += fmt.Sprintf(" AND style = $%d", len(args))
		}
	}
	query += ` ORDER BY views DESC, seq ASC`

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("list products", err)
	}
	defer rows.Close()

	var out []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if filter.Empty() || matchesFilter(p, filter) {
			out = append(out, *p)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list products", err)
	}
	return out, nil
}

// Product fetches a single record by id.
func (s *PostgresStorage) Product(ctx context.Context, id string) (*models.Product, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, classify("get product", err)
	}
	return p, nil
}

// CreateProduct inserts a new record with a fresh id and zero views.
func (s *PostgresStorage) CreateProduct(ctx context.Context, p *models.CreateProduct) (*models.Product, error) {
	prod := newProduct(uuid.NewString(), p)
	tags, images, colors, err := encodeLists(&prod)
	if err != nil {
		return nil, err
	}
	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO products (id, name, description, category, tags, images, colors, style, views, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, prod.ID, prod.Name, prod.Description, prod.Category, tags, images, colors, prod.Style, prod.Views, prod.Featured)
	if err != nil {
		return nil, classify("create product", err)
	}
	return &prod, nil
}

// UpdateProduct merges the present fields of p into the stored record
// inside a transaction, locking the row so the merge cannot interleave
// with a concurrent increment. Id and views are never altered.
func (s *PostgresStorage) UpdateProduct(ctx context.Context, id string, p *models.UpdateProduct) (*models.Product, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, classify("begin tx", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
	prod, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, classify("get product for update", err)
	}

	merge(prod, p)
	tags, images, colors, err := encodeLists(prod)
	if err != nil {
		return nil, err
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE products SET name = $2, description = $3, category = $4, tags = $5, images = $6, colors = $7, style = $8, featured = $9
		WHERE id = $1
	`, prod.ID, prod.Name, prod.Description, prod.Category, tags, images, colors, prod.Style, prod.Featured)
	if err != nil {
		return nil, classify("update product", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, classify("commit", err)
	}
	return prod, nil
}

// DeleteProduct removes the record and reports whether a row was deleted.
// A second delete of the same id returns false with no error.
func (s *PostgresStorage) DeleteProduct(ctx context.Context, id string) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, classify("delete product", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return n > 0, nil
}

// IncrementViews adds 1 to the views counter in a single statement, so
// concurrent increments on the same row serialize inside the database.
// Unknown ids affect zero rows and are a silent no-op.
func (s *PostgresStorage) IncrementViews(ctx context.Context, id string) error {
	_, err := s.DB.ExecContext(ctx, `UPDATE products SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return classify("increment views", err)
	}
	return nil
}

// User fetches a user by id.
func (s *PostgresStorage) User(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.DB.QueryRowContext(ctx, `SELECT id, username, password FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Username, &u.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, classify("get user", err)
	}
	return &u, nil
}

// UserByUsername fetches a user by exact username.
func (s *PostgresStorage) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.DB.QueryRowContext(ctx, `SELECT id, username, password FROM users WHERE username = $1`, username).
		Scan(&u.ID, &u.Username, &u.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	if err != nil {
		return nil, classify("get user by username", err)
	}
	return &u, nil
}

// CreateUser inserts a new user; a duplicate username surfaces as
// ErrConflict via the unique constraint.
func (s *PostgresStorage) CreateUser(ctx context.Context, u *models.CreateUser) (*models.User, error) {
	user := models.User{ID: uuid.NewString(), Username: u.Username, Password: u.Password}
	_, err := s.DB.ExecContext(ctx, `INSERT INTO users (id, username, password) VALUES ($1, $2, $3)`,
		user.ID, user.Username, user.Password)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("username %q: %w", u.Username, ErrConflict)
		}
		return nil, classify("create user", err)
	}
	return &user, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (*models.Product, error) {
	var p models.Product
	var tags, images, colors []byte
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &tags, &images, &colors, &p.Style, &p.Views, &p.Featured); err != nil {
		return nil, err
	}
	for _, col := range []struct {
		raw  []byte
		dest *models.StringList
	}{{tags, &p.Tags}, {images, &p.Images}, {colors, &p.Colors}} {
		*col.dest = models.StringList{}
		if len(col.raw) > 0 {
			if err := json.Unmarshal(col.raw, col.dest); err != nil {
				return nil, fmt.Errorf("decode list column: %w", err)
			}
		}
	}
	return &p, nil
}

func encodeLists(p *models.Product) (tags, images, colors []byte, err error) {
	if tags, err = json.Marshal(p.Tags); err != nil {
		return nil, nil, nil, fmt.Errorf("encode tags: %w", err)
	}
	if images, err = json.Marshal(p.Images); err != nil {
		return nil, nil, nil, fmt.Errorf("encode images: %w", err)
	}
	if colors, err = json.Marshal(p.Colors); err != nil {
		return nil, nil, nil, fmt.Errorf("encode colors: %w", err)
	}
	return tags, images, colors, nil
}

// classify wraps a driver error, folding connection-level failures into
// ErrUnavailable so callers can answer with a retryable status.
func classify(op string, err error) error {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "08" {
		return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
