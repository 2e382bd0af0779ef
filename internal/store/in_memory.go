package store

import (
	"context"
	"strings"
	"sync"

	catalogerrors "github.com/scentworks/perfumeshop/internal/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// inMemory implements ProductStore using an in-memory slice, preserving
// insertion order the way a collection scan does.
type inMemory struct {
	mu       sync.RWMutex
	products []Product
}

// NewInMemoryStore creates a new instance of ProductStore
func NewInMemoryStore() ProductStore {
	return &inMemory{}
}

// FindByID retrieves a product by its native id.
func (s *inMemory) FindByID(_ context.Context, id primitive.ObjectID) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, catalogerrors.ErrProductNotFound
}

// Find retrieves up to limit products in insertion order, filtered by a
// case-insensitive substring match on title when titleFilter is non-empty.
func (s *inMemory) Find(_ context.Context, titleFilter string, limit int64) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0, len(s.products))
	needle := strings.ToLower(titleFilter)
	for _, p := range s.products {
		if int64(len(list)) >= limit {
			break
		}
		if needle == "" || strings.Contains(strings.ToLower(p.Title), needle) {
			list = append(list, p)
		}
	}
	return list, nil
}

// Insert adds a new product record and returns its newly assigned id.
func (s *inMemory) Insert(_ context.Context, product Product) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = primitive.NewObjectID()
	s.products = append(s.products, product)
	return product.ID, nil
}

// Count reports the number of product records.
func (s *inMemory) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.products)), nil
}

// CollectionNames lists the single product collection once it holds records.
func (s *inMemory) CollectionNames(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.products) == 0 {
		return []string{}, nil
	}
	return []string{collectionName}, nil
}
