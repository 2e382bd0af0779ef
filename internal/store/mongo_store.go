package store

import (
	"context"
	"errors"
	"fmt"

	catalogerrors "github.com/scentworks/perfumeshop/internal/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collectionName is the single fixed collection holding catalog records.
const collectionName = "product"

// MongoStore implements ProductStore using MongoDB as the document store.
// The database handle may be nil when the connection was never established;
// every operation checks for that and fails with ErrStoreUnavailable.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore creates a new instance of ProductStore backed by the given
// MongoDB database handle. A nil handle is valid and yields a store whose
// operations report ErrStoreUnavailable.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

// FindByID retrieves a product by its native id.
// Returns ErrProductNotFound if no product exists with the given id.
func (s *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*Product, error) {
	if s.db == nil {
		return nil, catalogerrors.ErrStoreUnavailable
	}
	var product Product
	err := s.db.Collection(collectionName).FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalogerrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by id: %w", err)
	}
	return &product, nil
}

// Find retrieves up to limit products in natural order, optionally filtered
// by a case-insensitive title match. The filter text is passed to $regex
// unescaped; metacharacters act as regex syntax, matching the upstream
// behavior of the API.
func (s *MongoStore) Find(ctx context.Context, titleFilter string, limit int64) ([]Product, error) {
	if s.db == nil {
		return nil, catalogerrors.ErrStoreUnavailable
	}
	filter := bson.M{}
	if titleFilter != "" {
		filter = bson.M{"title": bson.M{"$regex": titleFilter, "$options": "i"}}
	}
	cursor, err := s.db.Collection(collectionName).Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	products := make([]Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// Insert adds a new product record and returns its newly assigned id.
func (s *MongoStore) Insert(ctx context.Context, product Product) (primitive.ObjectID, error) {
	if s.db == nil {
		return primitive.NilObjectID, catalogerrors.ErrStoreUnavailable
	}
	result, err := s.db.Collection(collectionName).InsertOne(ctx, product)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert product: %w", err)
	}
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return id, nil
}

// Count reports the number of product records.
func (s *MongoStore) Count(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, catalogerrors.ErrStoreUnavailable
	}
	count, err := s.db.Collection(collectionName).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// CollectionNames lists the collections of the backing database.
func (s *MongoStore) CollectionNames(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, catalogerrors.ErrStoreUnavailable
	}
	names, err := s.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return names, nil
}
