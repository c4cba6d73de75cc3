package google

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"berdoz/internal/sheets"
)

func TestFindRow(t *testing.T) {
	values := [][]any{{"ID"}, {"a"}, {}, {" b "}}
	tests := []struct {
		id   string
		want int
	}{
		{"a", 2},
		{"b", 4},
		{"ID", -1},
		{"c", -1},
		{"", -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, findRow(values, tt.id), tt.id)
	}
}

func TestColumn(t *testing.T) {
	tests := map[int]string{1: "A", 14: "N", 26: "Z", 27: "AA", 52: "AZ", 53: "BA"}
	for in, want := range tests {
		assert.Equal(t, want, column(in))
	}
	assert.Equal(t, "payroll!A3:C3", rowRange("payroll", 3, 3))
	assert.Equal(t, "payroll!5:5", wholeRow("payroll", 5))
}

func TestNew_MissingSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), " ", "{}", nil)
	require.Error(t, err)
	assert.Equal(t, "missing GOOGLE_SPREADSHEET_ID", err.Error())
}

// fakeSheets answers the three Values calls the client makes and records
// every range written or cleared.
type fakeSheets struct {
	mu     sync.Mutex
	ids    [][]any
	writes []string
	clears []string
	bodies [][][]any
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, rng, _ := strings.Cut(r.URL.Path, "/values/")
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet:
		_ = json.NewEncoder(w).Encode(map[string]any{"range": rng, "values": f.ids})
	case r.Method == http.MethodPut:
		var vr struct {
			Values [][]any `json:"values"`
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &vr)
		f.writes = append(f.writes, rng)
		f.bodies = append(f.bodies, vr.Values)
		_ = json.NewEncoder(w).Encode(map[string]any{"updatedRange": rng})
	case r.Method == http.MethodPost && strings.HasSuffix(rng, ":clear"):
		f.clears = append(f.clears, strings.TrimSuffix(rng, ":clear"))
		_ = json.NewEncoder(w).Encode(map[string]any{"clearedRange": rng})
	default:
		http.Error(w, "unexpected call", http.StatusBadRequest)
	}
}

func newTestClient(t *testing.T, fake *fakeSheets) *Client {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	svc, err := gsheet.NewService(context.Background(),
		goption.WithEndpoint(srv.URL+"/"),
		goption.WithHTTPClient(srv.Client()),
		goption.WithoutAuthentication())
	require.NoError(t, err)
	return NewWithService(svc, "sheet-1", nil)
}

func TestClient_UpsertEmptyTabWritesHeader(t *testing.T) {
	fake := &fakeSheets{}
	c := newTestClient(t, fake)

	ref, err := c.Upsert(context.Background(), sheets.Row{
		Tab: "payroll", Header: []string{"ID", "Employee"}, ID: "p1", Values: []any{"Aram"},
	})
	require.NoError(t, err)
	assert.Equal(t, "payroll!A2:B2", ref)
	assert.Equal(t, []string{"payroll!A1:B1", "payroll!A2:B2"}, fake.writes)
	assert.Equal(t, [][]any{{"p1", "Aram"}}, fake.bodies[1])
}

func TestClient_UpsertExistingRowInPlace(t *testing.T) {
	fake := &fakeSheets{ids: [][]any{{"ID"}, {"p0"}, {"p1"}, {"p2"}}}
	c := newTestClient(t, fake)

	ref, err := c.Upsert(context.Background(), sheets.Row{Tab: "payroll", ID: "p1", Values: []any{"Aram"}})
	require.NoError(t, err)
	assert.Equal(t, "payroll!A3:B3", ref)
	assert.Equal(t, []string{"payroll!A3:B3"}, fake.writes)
}

func TestClient_UpsertAppends(t *testing.T) {
	fake := &fakeSheets{ids: [][]any{{"ID"}, {"p0"}}}
	c := newTestClient(t, fake)

	ref, err := c.Upsert(context.Background(), sheets.Row{Tab: "payroll", ID: "p9", Values: []any{"x", "y"}})
	require.NoError(t, err)
	assert.Equal(t, "payroll!A3:C3", ref)
}

func TestClient_Delete(t *testing.T) {
	fake := &fakeSheets{ids: [][]any{{"ID"}, {"p0"}, {"p1"}}}
	c := newTestClient(t, fake)

	require.NoError(t, c.Delete(context.Background(), "payroll", "p1"))
	require.NoError(t, c.Delete(context.Background(), "payroll", "missing"))
	assert.Equal(t, []string{"payroll!3:3"}, fake.clears)
}
