package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"berdoz/internal/core"
	"berdoz/internal/favm"
)

const persisted = "3f1d7c2e-9a4b-4c1e-8f00-1b2c3d4e5f60"

func TestClient_List(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/payroll", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":"a","employeeName":"Ahmed","salary":"1200000","total":1200000},{"id":"b","salary":"abc"}]`)
	}))
	defer srv.Close()

	c := For[core.PayrollEntry](NewHTTP(srv.URL), "/api/payroll")
	got, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Salary.Equal(core.NewMoney(1200000)))
	assert.True(t, got[1].Salary.IsZero())
}

func TestClient_CreateStripsID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "id")
		assert.NotContains(t, body, "created_at")
		assert.NotContains(t, body, "updated_at")
		assert.Equal(t, "Lana", body["fullName"])

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"`+persisted+`","fullName":"Lana"}`)
	}))
	defer srv.Close()

	c := For[core.Installment](NewHTTP(srv.URL+"/"), "/api/installments/")
	got, err := c.Create(context.Background(), core.Installment{Meta: core.Meta{ID: "installment-3"}, FullName: "Lana"})
	require.NoError(t, err)
	assert.Equal(t, persisted, got.ID)
}

func TestClient_UpdateAndDeleteUseItemPath(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Method+" "+r.URL.Path)
		mu.Unlock()
		if r.Method == http.MethodDelete {
			_, _ = io.WriteString(w, `{"message":"deleted"}`)
			return
		}
		_, _ = io.Copy(w, r.Body)
	}))
	defer srv.Close()

	c := For[core.Teacher](NewHTTP(srv.URL), "/api/teachers")
	got, err := c.Update(context.Background(), core.Teacher{Meta: core.Meta{ID: persisted}, FullName: "Hana"})
	require.NoError(t, err)
	assert.Equal(t, "Hana", got.FullName)

	require.NoError(t, c.Delete(context.Background(), persisted))
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"PUT /api/teachers/" + persisted, "DELETE /api/teachers/" + persisted}, seen)
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"errors":{"employeeName":"employeeName is required"}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"record not found"}`)
		}
	}))
	defer srv.Close()

	c := For[core.PayrollEntry](NewHTTP(srv.URL), "/api/payroll")

	_, err := c.Create(context.Background(), core.PayrollEntry{})
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Equal(t, "employeeName is required", se.Fields["employeeName"])

	err = c.Delete(context.Background(), persisted)
	require.ErrorAs(t, err, &se)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "record not found")
}

func TestClient_View(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/payroll/view", r.URL.Path)
		assert.Equal(t, "ahmed", r.URL.Query().Get("q"))
		assert.Equal(t, "2025", r.URL.Query().Get("year"))
		assert.Equal(t, "2024", r.URL.Query().Get("summaryYear"))
		_, _ = io.WriteString(w, `{"records":[{"id":"a"}],"count":1,"totals":[{"name":"totalSalary","amount":10}],"summary":{"count":0,"totals":[{"name":"totalSalary","amount":0}]}}`)
	}))
	defer srv.Close()

	c := For[core.PayrollEntry](NewHTTP(srv.URL), "/api/payroll")
	v, err := c.View(context.Background(), favm.ViewState{
		Query:   "ahmed",
		Table:   favm.PeriodFilter{Year: "2025", Month: favm.AllMonths},
		Summary: favm.PeriodFilter{Year: "2024", Month: favm.AllMonths},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, v.Count)
	assert.True(t, v.Totals.Get("totalSalary").Equal(core.NewMoney(10)))
	assert.Equal(t, 0, v.Summary.Count)
}

func TestHTTP_Upload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "receipts", r.FormValue("folder"))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "receipt.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))

		_ = json.NewEncoder(w).Encode(core.Attachment{
			URL: "/upload/receipts/x.png", Filename: "x.png", OriginalName: hdr.Filename, Size: int64(len(data)), Type: "image/png",
		})
	}))
	defer srv.Close()

	att, err := NewHTTP(srv.URL).Upload(context.Background(), "receipts", "receipt.png", strings.NewReader("pngdata"))
	require.NoError(t, err)
	assert.Equal(t, "/upload/receipts/x.png", att.URL)
	assert.EqualValues(t, 7, att.Size)
}

// A view model over the REST client never calls the API for temporary ids.
func TestViewModelOverClient_TemporaryDelete(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	m := favm.Module[core.Installment]{Name: "installments", Endpoint: "/api/installments", TempPrefix: "installment-"}
	vm := favm.NewViewModel(m, favm.Backend[core.Installment](For[core.Installment](NewHTTP(srv.URL), m.Endpoint)))

	require.NoError(t, vm.Delete(context.Background(), "installment-17"))
	assert.Zero(t, calls.Load())
}
