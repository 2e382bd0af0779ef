// Package store provides an interface for product storage operations.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a store-native catalog record. The native id lives only here;
// the wire representation carries its hex string form instead.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description *string            `bson:"description,omitempty"`
	Price       float64            `bson:"price"`
	Category    string             `bson:"category"`
	InStock     bool               `bson:"in_stock"`
	Image       *string            `bson:"image,omitempty"`
	Rating      float64            `bson:"rating"`
	Notes       []string           `bson:"notes"`
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying document store, allowing for different
// implementations (e.g., in-memory, MongoDB).
//
// Every method returns ErrStoreUnavailable when the store connection
// was never established.
type ProductStore interface {
	// FindByID retrieves a single product by its native id.
	// Returns ErrProductNotFound if no product exists with the given id.
	FindByID(ctx context.Context, id primitive.ObjectID) (*Product, error)

	// Find returns up to limit products in the store's natural order.
	// A non-empty titleFilter restricts the result to titles matching it
	// case-insensitively as a substring.
	Find(ctx context.Context, titleFilter string, limit int64) ([]Product, error)

	// Insert adds a new product record and returns its newly assigned id.
	Insert(ctx context.Context, product Product) (primitive.ObjectID, error)

	// Count reports the number of product records.
	Count(ctx context.Context) (int64, error)

	// CollectionNames lists the collections of the backing database.
	// Used by the connectivity diagnostic.
	CollectionNames(ctx context.Context) ([]string, error)
}
