package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"campaignsite/internal/blog"
)

// Response messages of the blog API.
const (
	msgCreated       = "Blog post created successfully"
	msgUpdated       = "Blog post updated successfully"
	msgDeleted       = "Blog post deleted successfully"
	msgNotFound      = "Blog post not found"
	msgConflict      = "A post with this slug already exists in this language"
	msgValidation    = "Validation failed"
	msgInvalidJSON   = "Invalid JSON body"
	msgBodyTooLarge  = "Request body too large"
	msgInternalError = "Internal server error"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// dataResponse is the success envelope.
type dataResponse struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// errorResponse is the failure envelope.
type errorResponse struct {
	Error   string            `json:"error"`
	Details []blog.FieldError `json:"details,omitempty"`
}

// writeJSON sends a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError maps the content service taxonomy to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *blog.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgValidation, Details: ve.Fields})
	case errors.Is(err, blog.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: msgNotFound})
	case errors.Is(err, blog.ErrConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: msgConflict})
	default:
		if !errors.Is(err, blog.ErrInternal) {
			slog.Error("unexpected blog service error", "error", err)
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgInternalError})
	}
}

// decodeJSON reads a single JSON object from the request body into dst.
// It writes the error response itself and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := dec.Decode(dst)
	if err == nil {
		// Trailing garbage after the object.
		if dec.Decode(&struct{}{}) != io.EOF {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgInvalidJSON})
			return false
		}
		return true
	}

	var typeErr *json.UnmarshalTypeError
	var sizeErr *http.MaxBytesError
	switch {
	case errors.As(err, &typeErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: msgValidation,
			Details: []blog.FieldError{{
				Field:   typeErr.Field,
				Message: "Must be a " + jsonKind(typeErr.Type.Kind().String()),
			}},
		})
	case errors.As(err, &sizeErr):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: msgBodyTooLarge})
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgInvalidJSON})
	}
	return false
}

// jsonKind names a Go kind the way a JSON client thinks of it.
func jsonKind(kind string) string {
	if kind == "bool" {
		return "boolean"
	}
	return kind
}
