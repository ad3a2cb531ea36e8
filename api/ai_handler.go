package api

import (
	"context"
	"net/http"

	"github.com/priyanshu14077/NeuronPress/services"
	"github.com/priyanshu14077/NeuronPress/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type aiHandler struct {
	responder Responder
	logger    zerolog.Logger
	ai        aiFlow
}

func newAIHandler(ai aiFlow) aiHandler {
	logger := log.With().Str("handlerName", "aiHandler").Logger()

	return aiHandler{
		responder: NewResponder(logger),
		logger:    logger,
		ai:        ai,
	}
}

// generation decodes a body of type In and forwards it with the caller to run.
func generation[In any, Out any](h aiHandler, run func(context.Context, services.Principal, *In) services.Result[Out]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := new(In)
		if err := decodeJSON(w, r, in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		writeResult(h.responder, w, http.StatusOK, run(r.Context(), ctxGetPrincipal(r.Context()), in))
	}
}

// @Router /ai/content [post]
func (h aiHandler) generateContent() http.HandlerFunc {
	return generation[validation.AIGenerateInput](h, h.ai.GenerateContent)
}

// @Router /ai/titles [post]
func (h aiHandler) generateTitles() http.HandlerFunc {
	return generation[validation.AIGenerateTitleInput](h, h.ai.GenerateTitles)
}

// generateOutline answers 422 when the completion is not a usable outline.
// @Router /ai/outline [post]
func (h aiHandler) generateOutline() http.HandlerFunc {
	return generation[validation.AIGenerateOutlineInput](h, h.ai.GenerateOutline)
}

// @Router /ai/excerpt [post]
func (h aiHandler) generateExcerpt() http.HandlerFunc {
	return generation[validation.AIGenerateExcerptInput](h, h.ai.GenerateExcerpt)
}

// @Router /ai/keywords [post]
func (h aiHandler) generateKeywords() http.HandlerFunc {
	return generation[validation.AIGenerateKeywordsInput](h, h.ai.GenerateKeywords)
}

// @Router /ai/improve [post]
func (h aiHandler) improveContent() http.HandlerFunc {
	return generation[validation.AIImproveContentInput](h, h.ai.ImproveContent)
}

// listGenerations returns the caller's generation history, newest first
// @Param limit query int false "1 to 100, default 10"
// @Router /ai/generations [get]
func (h aiHandler) listGenerations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := parseHistoryQuery(r.URL.Query())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		writeResult(h.responder, w, http.StatusOK, h.ai.History(r.Context(), ctxGetPrincipal(r.Context()), in))
	}
}
