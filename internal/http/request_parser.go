package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"berdoz/internal/favm"
)

const (
	// maxRecordBody caps the JSON body of a single record.
	maxRecordBody = 1 << 20
	// maxRestoreBody caps a backup document.
	maxRestoreBody = 64 << 20
	// maxUploadBody leaves room for multipart framing around the largest
	// accepted video.
	maxUploadBody = 51 << 20
)

// ParseViewState reads the view parameters of GET {endpoint}/view. Missing
// filters mean all periods.
func ParseViewState(query url.Values) favm.ViewState {
	state := favm.DefaultViewState()
	state.Query = strings.TrimSpace(query.Get("q"))
	if v := strings.TrimSpace(query.Get("year")); v != "" {
		state.Table.Year = v
	}
	if v := strings.TrimSpace(query.Get("month")); v != "" {
		state.Table.Month = v
	}
	if v := strings.TrimSpace(query.Get("summaryYear")); v != "" {
		state.Summary.Year = v
	}
	if v := strings.TrimSpace(query.Get("summaryMonth")); v != "" {
		state.Summary.Month = v
	}
	return state
}

// decodeJSON reads one JSON document of at most limit bytes into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return &decodeError{err: errors.New("empty body")}
		}
		return &decodeError{err: err}
	}
	return nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
