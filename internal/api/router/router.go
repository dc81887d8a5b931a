package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/raosiddharth510-rao/store/internal/api"
	m "github.com/raosiddharth510-rao/store/internal/api/middleware"
)

func SetupRouter(server *api.Server, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(m.RequestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.LoggerMiddleware(logger))
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", server.CatalogHandler.List)
			r.Post("/", server.CatalogHandler.Upsert)
			r.Post("/scan", server.CatalogHandler.Scan)
			r.Get("/{productID}", server.CatalogHandler.Get)
			r.Delete("/{productID}", server.CatalogHandler.Delete)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", server.CartHandler.View)
			r.Post("/items", server.CartHandler.AddItem)
			r.Put("/items/{productID}", server.CartHandler.SetQuantity)
			r.Delete("/items/{productID}", server.CartHandler.RemoveItem)
			r.Post("/checkout", server.CartHandler.Checkout)
		})

		r.Get("/orders", server.OrderHandler.List)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/sales", server.ReportHandler.Sales)
			r.Get("/products/{productID}", server.ReportHandler.ProductDetail)
		})
		r.Get("/alerts", server.ReportHandler.Alerts)

		r.Route("/feedback", func(r chi.Router) {
			r.Post("/", server.FeedbackHandler.Submit)
			r.Get("/", server.FeedbackHandler.List)
		})
	})

	return r
}
