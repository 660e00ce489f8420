// Package store holds the persistence interfaces the controllers depend on
// and their MongoDB implementations. Controllers that need fakes in tests
// (checkout above all) talk to these interfaces instead of raw collections.
package store

import (
	"context"
	"errors"

	"clicafe-api/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("store: not found")

// CartStore manages per-user cart rows.
type CartStore interface {
	// RowsForUser returns every cart row owned by the user, each joined with
	// its product. A row whose product no longer exists comes back with a nil
	// Product rather than an error.
	RowsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.CartRow, error)
	// AddRow inserts a cart row, merging the quantity into an existing row
	// for the same product if one is already present.
	AddRow(ctx context.Context, item models.CartItem) error
	// DeleteRow removes a single cart row by its id.
	DeleteRow(ctx context.Context, rowID primitive.ObjectID) error
	// DeleteByProduct removes the user's row for the given product.
	DeleteByProduct(ctx context.Context, userID, productID primitive.ObjectID) error
}

// OrderStore persists checkout results.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) (primitive.ObjectID, error)
	ForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	// UpdateEstado sets the order's estado, returning ErrNotFound when the
	// order does not exist.
	UpdateEstado(ctx context.Context, id primitive.ObjectID, estado string) error
}

// UserStore resolves the users referenced by JWT claims and orders.
type UserStore interface {
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}
