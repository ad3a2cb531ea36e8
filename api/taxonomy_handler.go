package api

import (
	"net/http"

	"github.com/priyanshu14077/NeuronPress/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type taxonomyHandler struct {
	responder Responder
	logger    zerolog.Logger
	taxonomy  taxonomyFlow
}

func newTaxonomyHandler(taxonomy taxonomyFlow) taxonomyHandler {
	logger := log.With().Str("handlerName", "taxonomyHandler").Logger()

	return taxonomyHandler{
		responder: NewResponder(logger),
		logger:    logger,
		taxonomy:  taxonomy,
	}
}

// @Router /categories [get]
func (h taxonomyHandler) listCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResult(h.responder, w, http.StatusOK, h.taxonomy.Categories(r.Context()))
	}
}

// @Router /tags [get]
func (h taxonomyHandler) listTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResult(h.responder, w, http.StatusOK, h.taxonomy.Tags(r.Context()))
	}
}

// @Router /categories [post]
func (h taxonomyHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in validation.TaxonomyInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		writeResult(h.responder, w, http.StatusCreated, h.taxonomy.CreateCategory(r.Context(), ctxGetPrincipal(r.Context()), &in))
	}
}

// @Router /tags [post]
func (h taxonomyHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in validation.TaxonomyInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		writeResult(h.responder, w, http.StatusCreated, h.taxonomy.CreateTag(r.Context(), ctxGetPrincipal(r.Context()), &in))
	}
}
