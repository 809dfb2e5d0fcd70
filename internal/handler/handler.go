package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"wacdo/internal/middleware"
	"wacdo/internal/model"
	"wacdo/internal/policy"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError maps a service error to its HTTP status and writes the
// standardised error payload. Untyped errors become an opaque 500.
func writeError(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, err error) {
	correlationID := middleware.CorrelationID(r.Context())

	de, ok := model.AsDomainError(err)
	if !ok {
		logger.Error().Err(err).Str("correlation_id", correlationID).Str("path", r.URL.Path).Msg("unhandled error")
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
			Error:         model.ErrCodeInternalError,
			Message:       "internal server error",
			CorrelationID: correlationID,
		})
		return
	}

	status := http.StatusInternalServerError
	switch de.Kind {
	case model.KindValidation:
		status = http.StatusBadRequest
		if de.Code == model.ErrCodeProtectedFields {
			status = http.StatusUnprocessableEntity
		}
	case model.KindNotFound:
		status = http.StatusNotFound
	case model.KindForbidden:
		status = http.StatusForbidden
	case model.KindConflict:
		status = http.StatusConflict
	case model.KindUnauthorized:
		status = http.StatusUnauthorized
	}

	logger.Warn().
		Str("correlation_id", correlationID).
		Str("code", de.Code).
		Int("status", status).
		Str("path", r.URL.Path).
		Msg(de.Message)

	writeJSON(w, status, model.ErrorResponse{
		Error:         de.Code,
		Message:       de.Message,
		CorrelationID: correlationID,
	})
}

// decodeJSON parses the request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewDomainError(model.KindValidation, model.ErrCodeInvalidJSON, "invalid JSON body")
	}
	return nil
}

// pathID parses the named path value as an entity id.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, model.ValidationError("invalid " + name)
	}
	return id, nil
}

// callerIdentity returns the authenticated caller set by the auth
// middleware.
func callerIdentity(r *http.Request) (policy.Identity, error) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		return policy.Identity{}, model.UnauthorizedError("authentication required")
	}
	return identity, nil
}
