// Package service provides the implementation of catalog business logic.
package service

import (
	"context"
	"fmt"

	"github.com/scentworks/perfumeshop/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Limits applied to list requests regardless of what the caller asks for.
const (
	minListLimit = 1
	maxListLimit = 100
)

// CatalogService defines the methods for managing catalog products.
// It abstracts the underlying business logic and data access.
type CatalogService interface {
	// FindByID retrieves a single product by its native id.
	// Returns ErrProductNotFound if no product exists with the given id.
	FindByID(ctx context.Context, id primitive.ObjectID) (*ProductDto, error)

	// List returns products in the store's natural order, optionally
	// filtered by a case-insensitive substring match on title. The limit
	// is clamped to [1, 100].
	List(ctx context.Context, titleFilter string, limit int64) ([]ProductDto, error)

	// Create applies catalog defaults to the validated input, inserts one
	// record, and returns the new id in its hex string form.
	Create(ctx context.Context, product ProductCreateDto) (string, error)

	// SeedIfEmpty inserts the sample products unless the collection
	// already holds at least one record.
	SeedIfEmpty(ctx context.Context) (*SeedResultDto, error)

	// Collections lists the backing database's collections for the
	// connectivity diagnostic.
	Collections(ctx context.Context) ([]string, error)
}

// Service implements CatalogService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
}

// NewService creates a new instance of CatalogService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	return &Service{
		repository: repo,
	}
}

// ProductCreateDto represents the data transfer object for creating a new product.
// Pointer fields distinguish "absent" from a zero value so defaults apply only
// when a field was not supplied.
type ProductCreateDto struct {
	Title       string   `json:"title"       validate:"required"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Category    string   `json:"category"`
	InStock     *bool    `json:"in_stock"`
	Image       *string  `json:"image"`
	Rating      *float64 `json:"rating"      validate:"omitempty,gte=0,lte=5"`
	Notes       []string `json:"notes"`
}

// ProductDto is the wire-safe representation of a product: the store's native
// id is replaced by its hex string form, and notes are never null.
type ProductDto struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	InStock     bool     `json:"in_stock"`
	Image       *string  `json:"image,omitempty"`
	Rating      float64  `json:"rating"`
	Notes       []string `json:"notes"`
}

// SeedResultDto reports the outcome of a seeding request.
type SeedResultDto struct {
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
	Inserted int    `json:"inserted"`
	Count    int64  `json:"count"`
}

// FindByID retrieves a product by its native id and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given id.
func (s *Service) FindByID(ctx context.Context, id primitive.ObjectID) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by id %s: %w", id.Hex(), err)
	}

	return toDto(product), nil
}

// List retrieves up to limit products as ProductDTOs, clamping the limit to
// [1, 100]. The filter text is handed to the store verbatim.
func (s *Service) List(ctx context.Context, titleFilter string, limit int64) ([]ProductDto, error) {
	products, err := s.repository.Find(ctx, titleFilter, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	productDTOs := make([]ProductDto, len(products))

	for i, item := range products {
		productDTOs[i] = *toDto(&item)
	}

	return productDTOs, nil
}

// Create applies defaults to the validated input, inserts the record, and
// returns the newly assigned id as a hex string.
func (s *Service) Create(ctx context.Context, product ProductCreateDto) (string, error) {
	id, err := s.repository.Insert(ctx, product.toRecord())
	if err != nil {
		return "", fmt.Errorf("failed to create product: %w", err)
	}

	return id.Hex(), nil
}

// SeedIfEmpty inserts the sample products when the collection is empty and
// reports the post-insert total; on a populated collection it inserts nothing
// and reports the existing count. The check-then-act is deliberately not
// atomic: concurrent seeds of a development database may both insert.
func (s *Service) SeedIfEmpty(ctx context.Context) (*SeedResultDto, error) {
	existing, err := s.repository.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if existing > 0 {
		return &SeedResultDto{
			Status:   "ok",
			Message:  "Products already exist",
			Inserted: 0,
			Count:    existing,
		}, nil
	}

	for _, sample := range sampleProducts {
		if _, err := s.repository.Insert(ctx, sample); err != nil {
			return nil, fmt.Errorf("failed to insert sample product %q: %w", sample.Title, err)
		}
	}
	count, err := s.repository.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products after seeding: %w", err)
	}
	return &SeedResultDto{
		Status:   "ok",
		Inserted: len(sampleProducts),
		Count:    count,
	}, nil
}

// Collections lists the backing database's collections.
func (s *Service) Collections(ctx context.Context) ([]string, error) {
	names, err := s.repository.CollectionNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return names, nil
}

// toRecord converts the validated input into a store record, applying the
// catalog defaults for fields that were not supplied.
func (d ProductCreateDto) toRecord() store.Product {
	record := store.Product{
		Title:       d.Title,
		Description: d.Description,
		Price:       *d.Price,
		Category:    "perfume",
		InStock:     true,
		Image:       d.Image,
		Rating:      4.5,
		Notes:       []string{},
	}
	if d.Category != "" {
		record.Category = d.Category
	}
	if d.InStock != nil {
		record.InStock = *d.InStock
	}
	if d.Rating != nil {
		record.Rating = *d.Rating
	}
	if d.Notes != nil {
		record.Notes = d.Notes
	}
	return record
}

// toDto converts a store.Product to its wire-safe form.
func toDto(product *store.Product) *ProductDto {
	notes := product.Notes
	if notes == nil {
		notes = []string{}
	}
	return &ProductDto{
		ID:          product.ID.Hex(),
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		InStock:     product.InStock,
		Image:       product.Image,
		Rating:      product.Rating,
		Notes:       notes,
	}
}

// clampLimit bounds a requested list size to [minListLimit, maxListLimit].
func clampLimit(limit int64) int64 {
	if limit < minListLimit {
		return minListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
