package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/priyanshu14077/NeuronPress/errs"
	"github.com/priyanshu14077/NeuronPress/models"
	"github.com/priyanshu14077/NeuronPress/validation"
)

const maxRequestSize = 1 << 20 // 1MB

// decodeJSON reads the request body into dst. An empty body is an error.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.NewInvalidJSONError(err)
	}
	return nil
}

// decodeOptionalJSON is decodeJSON for bodies that may be omitted.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return errs.NewInvalidJSONError(err)
	}
	return nil
}

// postIDParam parses the {postID} path segment.
func postIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "postID")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError("id", "Invalid post ID")
	}
	return id, nil
}

// queryParser collects every malformed query parameter before reporting any.
type queryParser struct {
	values url.Values
	fields []errs.FieldError
}

func (p *queryParser) int(key string) int {
	raw := p.values.Get(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.fields = append(p.fields, errs.FieldError{Field: key, Message: key + " must be a number"})
		return 0
	}
	return n
}

func (p *queryParser) uuid(key string) *uuid.UUID {
	raw := p.values.Get(key)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		p.fields = append(p.fields, errs.FieldError{Field: key, Message: key + " must be a valid UUID"})
		return nil
	}
	return &id
}

func (p *queryParser) err() error {
	if len(p.fields) == 0 {
		return nil
	}
	return errs.NewValidationError(p.fields)
}

func parsePostQuery(values url.Values) (*validation.PostQueryInput, error) {
	p := &queryParser{values: values}
	in := &validation.PostQueryInput{
		Page:       p.int("page"),
		Limit:      p.int("limit"),
		Search:     values.Get("search"),
		Status:     models.PostStatus(values.Get("status")),
		AuthorID:   p.uuid("authorId"),
		CategoryID: p.uuid("categoryId"),
		TagID:      p.uuid("tagId"),
		SortBy:     values.Get("sortBy"),
		SortOrder:  values.Get("sortOrder"),
	}
	return in, p.err()
}

func parseHistoryQuery(values url.Values) (*validation.GenerationHistoryInput, error) {
	p := &queryParser{values: values}
	in := &validation.GenerationHistoryInput{Limit: p.int("limit")}
	return in, p.err()
}
