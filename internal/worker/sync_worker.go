// Package worker mirrors record changes into the spreadsheet. Change events
// from AMQP are handled as they arrive; the sync outbox is swept on a timer
// for anything an event missed.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"berdoz/internal/amqp"
	"berdoz/internal/services"
	"berdoz/internal/storage"
)

// SyncWorker handles change events for all modules.
type SyncWorker struct {
	exporter services.ChangeExporter
	outbox   storage.Outbox
	logger   *slog.Logger
}

func NewSyncWorker(exporter services.ChangeExporter, outbox storage.Outbox, logger *slog.Logger) *SyncWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncWorker{
		exporter: exporter,
		outbox:   outbox,
		logger:   logger.With("component", "worker"),
	}
}

// HandleRecordChange exports one change and clears its outbox entry. When
// the record has an outbox entry its latest action wins over the event's.
// The error makes the consumer requeue the delivery.
func (w *SyncWorker) HandleRecordChange(ctx context.Context, msg *amqp.RecordChangeMessage) error {
	w.logger.DebugContext(ctx, "Processing change event",
		"module", msg.Module,
		"record_id", msg.ID,
		"action", msg.Action)

	entry, tracked := w.entry(ctx, msg)
	action := msg.Action
	if tracked {
		action = entry.Action
	}

	if err := w.exporter.Export(ctx, msg.Module, msg.ID, action); err != nil {
		if tracked {
			w.mark(ctx, w.outbox.MarkError, entry)
		}
		return fmt.Errorf("export %s %s: %w", msg.Module, msg.ID, err)
	}
	if tracked {
		w.mark(ctx, w.outbox.MarkSynced, entry)
	}

	w.logger.InfoContext(ctx, "Exported record change",
		"module", msg.Module,
		"record_id", msg.ID,
		"action", action)
	return nil
}

func (w *SyncWorker) entry(ctx context.Context, msg *amqp.RecordChangeMessage) (storage.OutboxEntry, bool) {
	if w.outbox == nil {
		return storage.OutboxEntry{}, false
	}
	e, err := w.outbox.Entry(ctx, msg.Module, msg.ID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			w.logger.WarnContext(ctx, "Failed to read outbox entry", "record_id", msg.ID, "error", err)
		}
		return e, false
	}
	return e, true
}

func (w *SyncWorker) mark(ctx context.Context, fn func(context.Context, storage.OutboxEntry) error, e storage.OutboxEntry) {
	err := fn(ctx, e)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrOutboxChanged):
		w.logger.DebugContext(ctx, "Outbox entry changed during export, left pending", "record_id", e.RecordID)
	default:
		w.logger.WarnContext(ctx, "Failed to update outbox entry", "record_id", e.RecordID, "error", err)
	}
}
