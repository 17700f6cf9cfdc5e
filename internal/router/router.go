package router

import (
	"net/http"
	"time"

	"gec-catalog/internal/handler"
	"gec-catalog/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
// Mutating catalogue and settings routes sit behind the admin key gate;
// storefront reads and order placement do not.
func New(
	productHandler *handler.ProductHandler,
	folderHandler *handler.FolderHandler,
	orderHandler *handler.OrderHandler,
	settingHandler *handler.SettingHandler,
	adminKey string,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-API-Key"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handler.Health)

		// Storefront reads and order placement.
		r.Get("/products", productHandler.List)
		r.Get("/folders", folderHandler.List)
		r.Get("/orders", orderHandler.List)
		r.Post("/orders", orderHandler.Create)
		r.Get("/site-settings/scrolling-message", settingHandler.GetScrollingMessage)

		// Administrative catalogue management.
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminKeyAuth(adminKey, logger))

			r.Post("/upload-product", productHandler.Upload)
			r.Post("/bulk-upload", productHandler.BulkUpload)
			r.Put("/product/{id}", productHandler.Update)
			r.Delete("/product/{id}", productHandler.Delete)
			r.Put("/products/{id}/folder", productHandler.SetFolder)

			r.Post("/folders", folderHandler.Create)
			r.Put("/folders/{id}", folderHandler.Rename)
			r.Delete("/folders/{id}", folderHandler.Delete)

			r.Put("/site-settings/scrolling-message", settingHandler.UpdateScrollingMessage)
		})
	})

	return r
}
