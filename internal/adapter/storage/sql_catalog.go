package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rl1809/shopping-cart/internal/core/domain"
	"github.com/rl1809/shopping-cart/internal/port"
)

// SQLCatalog serves product display data from any database/sql driver. The
// storefront runs it on embedded sqlite by default and on mysql for shared
// deployments; the statements stick to `?` placeholders, which both accept.
type SQLCatalog struct {
	db *sql.DB
}

func NewSQLCatalog(db *sql.DB) *SQLCatalog {
	return &SQLCatalog{db: db}
}

// OpenCatalog opens the catalog database with the given driver and DSN,
// verifies the connection, and ensures the schema exists. The driver must
// be registered by the caller (blank import).
func OpenCatalog(ctx context.Context, driver, dsn string) (*SQLCatalog, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping catalog db: %w", err)
	}

	catalog := NewSQLCatalog(db)
	if err := catalog.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return catalog, nil
}

// EnsureSchema creates the products table when it does not exist yet.
func (c *SQLCatalog) EnsureSchema(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id BIGINT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			price_cents BIGINT NOT NULL,
			image_url VARCHAR(1024) NOT NULL DEFAULT ''
		)`)
	if err != nil {
		return fmt.Errorf("create products table: %w", err)
	}
	return nil
}

// UpsertProduct inserts or replaces one product record. Delete-then-insert
// keeps the statement portable across sqlite and mysql.
func (c *SQLCatalog) UpsertProduct(ctx context.Context, product domain.Product) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, product.ID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO products (id, name, price_cents, image_url)
		VALUES (?, ?, ?, ?)`,
		product.ID, product.Name, product.PriceCents, product.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return tx.Commit()
}

func (c *SQLCatalog) Product(ctx context.Context, id int64) (domain.Product, error) {
	var product domain.Product
	err := c.db.QueryRowContext(ctx, `
		SELECT id, name, price_cents, image_url
		FROM products WHERE id = ?`, id,
	).Scan(&product.ID, &product.Name, &product.PriceCents, &product.ImageURL)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, port.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("query product: %w", err)
	}
	return product, nil
}

func (c *SQLCatalog) Products(ctx context.Context) ([]domain.Product, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, name, price_cents, image_url
		FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	// Non-nil even when empty so the catalog endpoint encodes a JSON array.
	products := make([]domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.Name, &product.PriceCents, &product.ImageURL); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (c *SQLCatalog) Close() error {
	return c.db.Close()
}
