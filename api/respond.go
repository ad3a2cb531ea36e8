package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/priyanshu14077/NeuronPress/errs"
	"github.com/priyanshu14077/NeuronPress/services"
	"github.com/rs/zerolog"
)

const maxResponseSize = 10 * 1024 * 1024 // 10MB

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, status int, data any) {
	// Marshal the data first to check size and handle errors
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if len(jsonData) > maxResponseSize {
		r.logger.Error().
			Int("responseSize", len(jsonData)).
			Int("maxSize", maxResponseSize).
			Msg("response too large")
		r.WriteError(w, errs.NewApiErr(http.StatusRequestEntityTooLarge, "Response too large"))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError writes a failure envelope for errors raised outside the services,
// e.g. a missing token or an unreadable body.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Success: false, Error: "Internal server error"})
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Str("error", apiErr.GetFullError()).Msg("request failed")
	}
	r.WriteJSON(w, apiErr.StatusCode, ErrorResponse{
		Success: false,
		Error:   apiErr.Message(),
		Fields:  apiErr.Fields,
	})
}

// writeResult writes a service envelope with successStatus, or the status its error carries.
func writeResult[T any](r Responder, w http.ResponseWriter, successStatus int, res services.Result[T]) {
	status := successStatus
	if !res.Success {
		status = errs.StatusOf(res.Err())
	}
	r.WriteJSON(w, status, res)
}
