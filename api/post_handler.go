package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/priyanshu14077/NeuronPress/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type postHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     postFlow
}

func newPostHandler(posts postFlow) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder: NewResponder(logger),
		logger:    logger,
		posts:     posts,
	}
}

// listPosts pages through posts
// @Summary List posts
// @Tags Posts
// @Produce json
// @Param page query int false "Page, from 1"
// @Param limit query int false "Page size, 1 to 100"
// @Param search query string false "Case-insensitive substring of title, excerpt or content"
// @Router /posts [get]
func (h postHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := parsePostQuery(r.URL.Query())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		writeResult(h.responder, w, http.StatusOK, h.posts.List(r.Context(), in))
	}
}

// getPostBySlug returns a post with comments and counts, and counts a view
// @Summary Get post by slug
// @Tags Posts
// @Produce json
// @Param slug path string true "Post slug"
// @Router /posts/slug/{slug} [get]
func (h postHandler) getPostBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResult(h.responder, w, http.StatusOK, h.posts.GetBySlug(r.Context(), chi.URLParam(r, "slug")))
	}
}

// @Router /posts/{postID} [get]
func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := postIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		writeResult(h.responder, w, http.StatusOK, h.posts.GetByID(r.Context(), postID))
	}
}

// @Router /posts/slug [post]
func (h postHandler) generateSlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in validation.SlugInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		writeResult(h.responder, w, http.StatusOK, h.posts.GenerateSlug(r.Context(), &in))
	}
}

// createPost creates a post owned by the caller
// @Summary Create post
// @Tags Posts
// @Accept json
// @Produce json
// @Success 201 "Created post with author, categories and tags"
// @Router /posts [post]
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in validation.CreatePostInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		writeResult(h.responder, w, http.StatusCreated, h.posts.Create(r.Context(), ctxGetPrincipal(r.Context()), &in))
	}
}

// updatePost merges the supplied fields. The path id wins over any id in the body.
// @Router /posts/{postID} [put]
func (h postHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := postIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in validation.UpdatePostInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		in.ID = postID

		writeResult(h.responder, w, http.StatusOK, h.posts.Update(r.Context(), ctxGetPrincipal(r.Context()), &in))
	}
}

// publishPost accepts an optional {"publishedAt": ...} body.
// @Router /posts/{postID}/publish [post]
func (h postHandler) publishPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := postIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in validation.PublishPostInput
		if err := decodeOptionalJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		in.ID = postID

		writeResult(h.responder, w, http.StatusOK, h.posts.Publish(r.Context(), ctxGetPrincipal(r.Context()), &in))
	}
}

// @Router /posts/{postID} [delete]
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := postIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		writeResult(h.responder, w, http.StatusOK, h.posts.Delete(r.Context(), ctxGetPrincipal(r.Context()), postID))
	}
}
