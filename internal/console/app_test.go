package console

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"berdoz/internal/client"
	"berdoz/internal/core"
	apphttp "berdoz/internal/http"
	applog "berdoz/internal/log"
	"berdoz/internal/services"
	"berdoz/internal/session"
	"berdoz/internal/storage/memory"
	"berdoz/internal/upload"
	"berdoz/internal/validate"
)

type fixture struct {
	app     *App
	out     *bytes.Buffer
	catalog *services.Catalog
}

func newFixture(t *testing.T, input string, gates ...session.Gate) *fixture {
	t.Helper()
	store := memory.New()
	catalog := services.NewCatalog(store.Tables(), services.Deps{
		Outbox:    store,
		Validator: validate.New(),
		Now:       func() time.Time { return time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC) },
	})
	local := upload.NewLocalStorage(t.TempDir())
	logger := applog.FromEnv(io.Discard, "error", "text", "test")
	srv := apphttp.NewServer(apphttp.Config{RateLimitPerMinute: 1000, UploadDir: local.Dir()}, apphttp.Deps{
		Catalog: catalog,
		Uploads: upload.NewService(local, nil),
		Pinger:  store,
		Logger:  logger,
	})
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(func() {
		ts.Close()
		_ = srv.Shutdown(context.Background())
	})

	out := &bytes.Buffer{}
	app := NewApp(Config{
		API:       client.NewHTTP(ts.URL, client.WithLogger(logger.Logger)),
		Session:   session.New(gates),
		Validator: validate.New(),
		Logger:    logger.Logger,
		In:        strings.NewReader(input),
		Out:       out,
	})
	return &fixture{app: app, out: out, catalog: catalog}
}

func TestRun_CreateAndListPayroll(t *testing.T) {
	input := strings.Join([]string{
		"use payroll",
		"create",
		`{"employeeName":"Aram Kamal","salary":"1,200,000","absence":50000,"deduction":25000,"bonus":100000,"month":3,"year":"2025"}`,
		"",
		"list",
		"exit",
	}, "\n") + "\n"
	f := newFixture(t, input)

	require.NoError(t, f.app.Run(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "created ")
	assert.Contains(t, out, "Aram Kamal")
	assert.Contains(t, out, "2025/3")
	assert.Contains(t, out, "1 of 1 records")
	assert.Contains(t, out, "grandTotal")
	assert.Contains(t, out, "1,225,000")
	assert.Contains(t, out, "Bye!")

	entries, err := f.catalog.Payroll.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, core.IsPersistedID(entries[0].ID))
}

func TestExec_KitchenAndCalendarModules(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()
	_, err := f.catalog.KitchenExpenses.Create(ctx, core.KitchenExpense{Item: "Rice", Cost: core.NewMoney(60000), Date: core.NewDate(2025, 2, 11)})
	require.NoError(t, err)
	_, err = f.catalog.Calendar.Create(ctx, core.CalendarEntry{Year: "2025", Month: "4", Week1: core.WeekPlan{"PTM", "Trip"}})
	require.NoError(t, err)

	_, err = f.app.Exec(ctx, "use", []string{"kitchen-expenses"})
	require.NoError(t, err)
	f.out.Reset()
	_, err = f.app.Exec(ctx, "list", nil)
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "Rice")
	assert.Contains(t, f.out.String(), "2025/2")
	assert.Contains(t, f.out.String(), "60,000")

	_, err = f.app.Exec(ctx, "use", []string{"calendar"})
	require.NoError(t, err)
	f.out.Reset()
	_, err = f.app.Exec(ctx, "list", nil)
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "PTM Trip")
	assert.Contains(t, f.out.String(), "plannedDays")
}

func TestExec_FiltersAndSearch(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()
	for _, e := range []core.PayrollEntry{
		{EmployeeName: "Aram Kamal", Salary: core.NewMoney(1000), Year: "2025", Month: "3"},
		{EmployeeName: "Bana Omar", Salary: core.NewMoney(2000), Year: "2024", Month: "3"},
	} {
		_, err := f.catalog.Payroll.Create(ctx, e)
		require.NoError(t, err)
	}

	_, err := f.app.Exec(ctx, "use", []string{"payroll"})
	require.NoError(t, err)

	f.out.Reset()
	_, err = f.app.Exec(ctx, "year", []string{"2025"})
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "1 of 2 records")
	assert.Contains(t, f.out.String(), "Summary (2 records)")

	f.out.Reset()
	_, err = f.app.Exec(ctx, "summary", []string{"2024"})
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "Summary (1 records)")

	f.out.Reset()
	_, err = f.app.Exec(ctx, "reset", nil)
	require.NoError(t, err)
	_, err = f.app.Exec(ctx, "search", []string{"bana"})
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "Bana Omar")
	assert.NotContains(t, f.out.String(), "Aram Kamal")
}

func TestExec_Errors(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()

	_, err := f.app.Exec(ctx, "list", nil)
	assert.ErrorContains(t, err, "no module selected")

	_, err = f.app.Exec(ctx, "use", []string{"library"})
	assert.ErrorIs(t, err, ErrUnknownModule)

	_, err = f.app.Exec(ctx, "use", []string{"teachers"})
	require.NoError(t, err)
	_, err = f.app.Exec(ctx, "frobnicate", nil)
	assert.ErrorContains(t, err, "unknown command")
	_, err = f.app.Exec(ctx, "delete", nil)
	assert.ErrorContains(t, err, "usage")

	quit, err := f.app.Exec(ctx, "quit", nil)
	assert.NoError(t, err)
	assert.True(t, quit)
}

func TestExec_GatedModule(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }

	f := newFixture(t, "admin\n", session.Gate{Module: "teachers", User: "admin", Password: "s3cret"})
	ctx := context.Background()
	_, err := f.app.Exec(ctx, "use", []string{"teachers"})
	require.NoError(t, err)

	_, err = f.app.Exec(ctx, "delete", []string{"teacher-1"})
	assert.Error(t, err)

	_, err = f.app.Exec(ctx, "unlock", nil)
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "teachers unlocked")

	// temporary ids are dropped locally once the gate is open
	_, err = f.app.Exec(ctx, "delete", []string{"teacher-1"})
	assert.NoError(t, err)

	_, err = f.app.Exec(ctx, "lock", nil)
	require.NoError(t, err)
	assert.Equal(t, "teachers (locked)", f.app.promptName())
}

func TestExec_FindAndUpload(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()
	teacher, err := f.catalog.Teachers.Create(ctx, core.Teacher{FullName: "Rebwar Hama"})
	require.NoError(t, err)

	_, err = f.app.Exec(ctx, "find", []string{"rebwar"})
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "teachers: 1")
	assert.Contains(t, f.out.String(), teacher.ID)

	png := append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)
	path := filepath.Join(t.TempDir(), "receipt.png")
	require.NoError(t, os.WriteFile(path, png, 0o644))
	f.out.Reset()
	_, err = f.app.Exec(ctx, "upload", []string{path, "receipts"})
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "uploaded receipt.png")
}
