// Package app contains the application setup for the catalog service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/scentworks/perfumeshop/internal/config"
	"github.com/scentworks/perfumeshop/internal/service"
	"github.com/scentworks/perfumeshop/internal/store"
	"github.com/scentworks/perfumeshop/internal/transport/rest"
	"github.com/scentworks/perfumeshop/pkg/server"
	"go.mongodb.org/mongo-driver/mongo"
)

type Dependencies struct {
	CatalogService service.CatalogService
	Logger         *slog.Logger
	Diag           rest.DiagInfo
}

// SetupDependencies wires the catalog service onto the MongoDB handle.
// A nil database handle is valid: the service runs and reports the store
// as unavailable.
func SetupDependencies(db *mongo.Database, logger *slog.Logger, cfg *config.Config) *Dependencies {
	cService := service.NewService(store.NewMongoStore(db))

	return &Dependencies{
		CatalogService: cService,
		Logger:         logger,
		Diag: rest.DiagInfo{
			DatabaseName:   cfg.Database.Name,
			DatabaseURLSet: cfg.Database.URL != "",
		},
	}
}

// SetupHttpHandler initializes the HTTP routes for the catalog service.
// Used by tests to set up the handler with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the catalog service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	catalogHandler := rest.NewHandler(deps.CatalogService, deps.Logger, deps.Diag)
	catalogHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the catalog service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
