// Package http serves the REST API of every module, attachment uploads,
// search, backup and the operational endpoints.
//
// This file holds the JSON response builder and the mapping from service
// errors to HTTP statuses.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	applog "berdoz/internal/log"
	"berdoz/internal/storage"
	"berdoz/internal/upload"
	"berdoz/internal/validate"
)

// JSONResponseBuilder provides a fluent API for JSON responses.
type JSONResponseBuilder struct {
	statusCode int
	headers    map[string]string
}

// NewJSONResponse creates a new response builder with default 200 status.
func NewJSONResponse() *JSONResponseBuilder {
	return &JSONResponseBuilder{
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

// Status sets the HTTP status code for the response.
func (b *JSONResponseBuilder) Status(code int) *JSONResponseBuilder {
	b.statusCode = code
	return b
}

// Header sets a custom header on the response.
func (b *JSONResponseBuilder) Header(key, value string) *JSONResponseBuilder {
	b.headers[key] = value
	return b
}

// Write encodes body as JSON with the configured status and headers.
func (b *JSONResponseBuilder) Write(w http.ResponseWriter, body any) {
	for k, v := range b.headers {
		w.Header().Set(k, v)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(b.statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type validationBody struct {
	Errors map[string]string `json:"errors"`
}

type messageBody struct {
	Message string `json:"message"`
}

// decodeError marks a request body that could not be read.
type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return "invalid request body: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

// writeError maps err to a status and a JSON body. Unexpected errors are
// logged with the request id and answered with a static message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *validate.Error
		derr *decodeError
	)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		NewJSONResponse().Status(http.StatusNotFound).Write(w, errorBody{Error: "record not found"})
	case errors.As(err, &verr):
		NewJSONResponse().Status(http.StatusBadRequest).Write(w, validationBody{Errors: verr.Fields})
	case errors.As(err, &derr):
		NewJSONResponse().Status(http.StatusBadRequest).Write(w, errorBody{Error: derr.Error()})
	default:
		if uerr, ok := upload.AsError(err); ok {
			if uerr.StatusCode >= http.StatusInternalServerError {
				applog.FromContext(r.Context()).ErrorContext(r.Context(), "Upload failed", applog.FieldError, err.Error())
			}
			NewJSONResponse().Status(uerr.StatusCode).Write(w, errorBody{Error: uerr.Message, Code: uerr.Code})
			return
		}
		applog.NewStructuredLogger(applog.FromContext(r.Context())).LogError(r.Context(), "Request failed", err,
			applog.ComponentHTTP, r.Method,
			applog.NewFields().WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery, "", ""))
		NewJSONResponse().Status(http.StatusInternalServerError).Write(w, errorBody{Error: "internal server error"})
	}
}
