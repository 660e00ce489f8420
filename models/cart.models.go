package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one cart row: a single product/quantity pair owned by a user.
// Each row is its own document so checkout can delete rows one by one.
type CartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// CartRow is a cart item joined with its product. Product is nil when the
// referenced product no longer exists; checkout drops such rows.
type CartRow struct {
	CartItem
	Product *Product `json:"product,omitempty"`
}
