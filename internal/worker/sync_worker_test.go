package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"berdoz/internal/amqp"
	"berdoz/internal/core"
	"berdoz/internal/services"
	sheetsmem "berdoz/internal/sheets/memory"
	"berdoz/internal/storage"
	"berdoz/internal/storage/memory"
)

func setup(t *testing.T) (*services.Catalog, *memory.Store, *sheetsmem.Store, *SyncWorker) {
	t.Helper()
	store := memory.New()
	cat := services.NewCatalog(store.Tables(), services.Deps{Outbox: store})
	sheet := sheetsmem.New()
	return cat, store, sheet, NewSyncWorker(services.NewExporter(cat, sheet), store, nil)
}

func TestHandleRecordChange_UpsertThenDelete(t *testing.T) {
	ctx := context.Background()
	cat, store, sheet, w := setup(t)

	rec, err := cat.BuildingExpenses.Create(ctx, core.BuildingExpense{
		Item: "Paint", Cost: core.NewMoney(250000), Date: core.NewDate(2025, 4, 2),
	})
	require.NoError(t, err)

	require.NoError(t, w.HandleRecordChange(ctx, amqp.NewRecordChangeMessage("building-expenses", rec.ID, amqp.ActionUpsert)))

	rows := sheet.Rows("building-expenses")
	require.Len(t, rows, 1)
	assert.Equal(t, rec.ID, rows[0][0])
	assert.Equal(t, "Paint", rows[0][1])

	pending, err := store.Pending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	require.NoError(t, cat.BuildingExpenses.Delete(ctx, rec.ID))
	require.NoError(t, w.HandleRecordChange(ctx, &amqp.RecordChangeMessage{
		Module: "building-expenses", ID: rec.ID, Action: amqp.ActionDelete, Timestamp: time.Now(),
	}))
	assert.Empty(t, sheet.Rows("building-expenses"))
}

func TestHandleRecordChange_UnknownRecordIsCleared(t *testing.T) {
	ctx := context.Background()
	_, _, sheet, w := setup(t)

	err := w.HandleRecordChange(ctx, amqp.NewRecordChangeMessage("teachers", "ghost", amqp.ActionUpsert))
	require.NoError(t, err)
	assert.Empty(t, sheet.Rows("teachers"))
}

type brokenExporter struct{}

func (brokenExporter) Export(context.Context, string, string, string) error {
	return errors.New("quota exceeded")
}

func TestHandleRecordChange_FailureMarksOutbox(t *testing.T) {
	ctx := context.Background()
	cat, store, _, _ := setup(t)
	w := NewSyncWorker(brokenExporter{}, store, nil)

	rec, err := cat.Teachers.Create(ctx, core.Teacher{FullName: "Shilan"})
	require.NoError(t, err)

	err = w.HandleRecordChange(ctx, amqp.NewRecordChangeMessage("teachers", rec.ID, amqp.ActionUpsert))
	require.Error(t, err)

	pending, err := store.Pending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, storage.StatusError, pending[0].Status)
}

// racingExporter records a newer change of the record while exporting.
type racingExporter struct {
	store *memory.Store
}

func (r racingExporter) Export(ctx context.Context, module, id, _ string) error {
	return r.store.Enqueue(ctx, module, id, storage.ActionDelete)
}

func TestHandleRecordChange_ChangeDuringExportStaysPending(t *testing.T) {
	ctx := context.Background()
	cat, store, _, _ := setup(t)
	w := NewSyncWorker(racingExporter{store: store}, store, nil)

	rec, err := cat.Teachers.Create(ctx, core.Teacher{FullName: "Shilan"})
	require.NoError(t, err)

	require.NoError(t, w.HandleRecordChange(ctx, amqp.NewRecordChangeMessage("teachers", rec.ID, amqp.ActionUpsert)))

	pending, err := store.Pending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, storage.ActionDelete, pending[0].Action)
	assert.Equal(t, storage.StatusPending, pending[0].Status)
}

func TestHandleRecordChange_LatestOutboxActionWins(t *testing.T) {
	ctx := context.Background()
	cat, _, sheet, w := setup(t)

	rec, err := cat.Teachers.Create(ctx, core.Teacher{FullName: "Shilan"})
	require.NoError(t, err)
	require.NoError(t, w.HandleRecordChange(ctx, amqp.NewRecordChangeMessage("teachers", rec.ID, amqp.ActionUpsert)))
	require.Len(t, sheet.Rows("teachers"), 1)

	require.NoError(t, cat.Teachers.Delete(ctx, rec.ID))
	// a late upsert event arrives after the delete
	require.NoError(t, w.HandleRecordChange(ctx, amqp.NewRecordChangeMessage("teachers", rec.ID, amqp.ActionUpsert)))
	assert.Empty(t, sheet.Rows("teachers"))
}
