package api

import "time"

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		postHandler:     newPostHandler(deps.Posts),
		aiHandler:       newAIHandler(deps.AI),
		taxonomyHandler: newTaxonomyHandler(deps.Taxonomy),
		healthHandler:   newHealthHandler(deps.Database, startupTime),
	}
}
