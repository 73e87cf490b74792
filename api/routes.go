package api

import (
	"github.com/go-chi/chi/v5"
)

// setupPublicRoutes serves the rendered site and the read-only section API
func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/health", handlers.healthHandler.health())
		r.Get("/pages/{pageSlug}", handlers.pageHandler.renderPage(false))
		r.Get("/sections", handlers.sectionHandler.getSections(false))
		r.Get("/section/{sectionID}", handlers.sectionHandler.getSection(false))
		r.Get("/section/{sectionID}/stats", handlers.sectionHandler.getStats())
	})
}

// setupAdminRoutes sets up the editing routes behind admin authentication
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/admin/sections", handlers.sectionHandler.getSections(true))
		r.Get("/admin/section/{sectionID}", handlers.sectionHandler.getSection(true))
		r.Post("/section", handlers.sectionHandler.createSection())
		r.Post("/section/preview", handlers.pageHandler.previewDraft())
		r.Put("/section/{sectionID}", handlers.sectionHandler.updateSection())
		r.Delete("/section/{sectionID}", handlers.sectionHandler.deleteSection())
		r.Post("/section/{sectionID}/actions", handlers.editorHandler.applyAction())
		r.Post("/section/{sectionID}/image", handlers.editorHandler.selectImage())
		r.Get("/section/{sectionID}/export", handlers.sectionHandler.exportSection())
		r.Get("/section/{sectionID}/preview", handlers.pageHandler.previewSection())
		r.Get("/pages/{pageSlug}/preview", handlers.pageHandler.renderPage(true))

		r.Post("/uploads", handlers.uploadHandler.upload())
	})
}
