// Package rest provides HTTP handlers for the catalog service.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	catalogerrors "github.com/scentworks/perfumeshop/internal/errors"
	"github.com/scentworks/perfumeshop/internal/service"
	"github.com/scentworks/perfumeshop/pkg/web"
)

// defaultListLimit is applied when the limit query parameter is absent.
const defaultListLimit = 50

// DiagInfo carries the configuration facts the connectivity diagnostic reports.
type DiagInfo struct {
	DatabaseName   string
	DatabaseURLSet bool
}

type Handler struct {
	service  service.CatalogService
	validate *validator.Validate
	logger   *slog.Logger
	diag     DiagInfo
}

// NewHandler creates a new instance of the catalog API with the provided service.
func NewHandler(service service.CatalogService, logger *slog.Logger, diag DiagInfo) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
		diag:     diag,
	}
}

// RegisterRoutes registers the HTTP routes for the catalog service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/", h.Root)
	r.Get("/test", h.Diagnostics)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.FindByID)
	})

	r.Post("/seed", h.Seed)
}

// Root is the liveness marker.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	web.RespondJSON(w, h.loggerWithReqID(r), http.StatusOK, map[string]string{
		"message": "Perfume 3D Shop API is running",
	})
}

// Diagnostics reports store connectivity. It never fails the request: store
// failures are folded into the summary body instead.
func (h *Handler) Diagnostics(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	summary := map[string]any{
		"backend":           "running",
		"database":          "not available",
		"database_url":      "not set",
		"database_name":     "not set",
		"connection_status": "not connected",
		"collections":       []string{},
	}
	if h.diag.DatabaseURLSet {
		summary["database_url"] = "set"
	}
	if h.diag.DatabaseName != "" {
		summary["database_name"] = h.diag.DatabaseName
	}

	collections, err := h.service.Collections(r.Context())
	switch {
	case errors.Is(err, catalogerrors.ErrStoreUnavailable):
		// keep the "not available" defaults
	case err != nil:
		mLogger.WarnContext(r.Context(), "Diagnostics store call failed", "error", err)
		summary["database"] = "error: " + truncate(err.Error(), 80)
	default:
		if len(collections) > 10 {
			collections = collections[:10]
		}
		summary["database"] = "connected"
		summary["connection_status"] = "connected"
		summary["collections"] = collections
	}
	web.RespondJSON(w, mLogger, http.StatusOK, summary)
}

// List retrieves products, optionally filtered by a substring match on title.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	limit, ok := web.ParseOptionalInt(r, w, mLogger, "limit", defaultListLimit)
	if !ok {
		return
	}
	query := r.URL.Query().Get("q")

	mLogger.DebugContext(r.Context(), "Received request to list products", "limit", limit, "q", query)
	list, err := h.service.List(r.Context(), query, limit)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrStoreUnavailable) {
			mLogger.WarnContext(r.Context(), "Store unavailable for product list")
			web.RespondError(w, mLogger, http.StatusServiceUnavailable, "Database not available")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// Create handles the creation of a new product and responds with the new id.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var productCreateDto service.ProductCreateDto
	if err := json.NewDecoder(r.Body).Decode(&productCreateDto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to create product", "title", productCreateDto.Title)
	if err := h.validate.Struct(productCreateDto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			// If the error is a validation error, we can extract field-specific errors.
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				// fieldErr.Tag() returns "required", "gte", etc.
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, mLogger, http.StatusUnprocessableEntity, map[string]any{"validation_errors": errorResponse})
			return
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		// If it's not a validation error, we can return a generic error.
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	newID, err := h.service.Create(r.Context(), productCreateDto)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrStoreUnavailable) {
			mLogger.WarnContext(r.Context(), "Store unavailable for product create")
			web.RespondError(w, mLogger, http.StatusServiceUnavailable, "Database not available")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", "ID", newID, "Title", productCreateDto.Title)
	web.RespondJSON(w, mLogger, http.StatusCreated, newID)
}

// FindByID retrieves a product by its id.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseObjectID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id.Hex())
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, catalogerrors.ErrProductNotFound):
			mLogger.WarnContext(r.Context(), "Product not found", "ID", id.Hex())
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with id %s not found", id.Hex()))
		case errors.Is(err, catalogerrors.ErrStoreUnavailable):
			mLogger.WarnContext(r.Context(), "Store unavailable for product lookup", "ID", id.Hex())
			web.RespondError(w, mLogger, http.StatusServiceUnavailable, "Database not available")
		default:
			mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id.Hex(), "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product with id %s", id.Hex()))
		}
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Title", found.Title)
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// Seed populates the catalog with sample products when it is empty.
// Development-only endpoint.
func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received request to seed products")
	result, err := h.service.SeedIfEmpty(r.Context())
	if err != nil {
		if errors.Is(err, catalogerrors.ErrStoreUnavailable) {
			mLogger.WarnContext(r.Context(), "Store unavailable for seeding")
			web.RespondError(w, mLogger, http.StatusServiceUnavailable, "Database not available")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error seeding products", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to seed products")
		return
	}
	mLogger.InfoContext(r.Context(), "Seed completed", "inserted", result.Inserted, "count", result.Count)
	web.RespondJSON(w, mLogger, http.StatusOK, result)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}

// truncate shortens internal error text before it reaches a response body.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
