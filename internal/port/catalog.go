package port

import (
	"context"
	"errors"

	"github.com/rl1809/shopping-cart/internal/core/domain"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// CatalogRepository looks up product display data. The cart state never
// depends on it; only presentation collaborators and the seeder do.
type CatalogRepository interface {
	// Product returns the product with the given id, or ErrNotFound.
	Product(ctx context.Context, id int64) (domain.Product, error)

	// Products lists the whole catalog.
	Products(ctx context.Context) ([]domain.Product, error)

	// UpsertProduct inserts or replaces one product record.
	UpsertProduct(ctx context.Context, product domain.Product) error

	// Close releases the underlying store.
	Close() error
}
