package api

import (
	"github.com/go-chi/chi/v5"
)

// setupFrontendRoutes mounts the public read routes and the authenticated write and AI routes
func setupFrontendRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(RequestLogger)

		r.Get("/health", handlers.healthHandler.health())

		// Public reads
		r.Get("/posts", handlers.postHandler.listPosts())
		r.Get("/posts/slug/{slug}", handlers.postHandler.getPostBySlug())
		r.Get("/posts/{postID}", handlers.postHandler.getPost())
		r.Post("/posts/slug", handlers.postHandler.generateSlug())
		r.Get("/categories", handlers.taxonomyHandler.listCategories())
		r.Get("/tags", handlers.taxonomyHandler.listTags())

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Post("/posts", handlers.postHandler.createPost())
			r.Put("/posts/{postID}", handlers.postHandler.updatePost())
			r.Post("/posts/{postID}/publish", handlers.postHandler.publishPost())
			r.Delete("/posts/{postID}", handlers.postHandler.deletePost())

			r.Post("/categories", handlers.taxonomyHandler.createCategory())
			r.Post("/tags", handlers.taxonomyHandler.createTag())

			r.Route("/ai", func(r chi.Router) {
				r.Post("/content", handlers.aiHandler.generateContent())
				r.Post("/titles", handlers.aiHandler.generateTitles())
				r.Post("/outline", handlers.aiHandler.generateOutline())
				r.Post("/excerpt", handlers.aiHandler.generateExcerpt())
				r.Post("/keywords", handlers.aiHandler.generateKeywords())
				r.Post("/improve", handlers.aiHandler.improveContent())
				r.Get("/generations", handlers.aiHandler.listGenerations())
			})
		})
	})
}
