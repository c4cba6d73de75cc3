package services

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"berdoz/internal/storage"
)

var ErrProcessorRunning = errors.New("sync processor is already running")

type SyncProcessorConfig struct {
	// PollInterval is the pause between outbox scans.
	PollInterval time.Duration
	// BatchSize caps the entries exported per scan.
	BatchSize int
	// MaxRetries is the number of failed exports after which an entry is
	// left alone until its record changes again.
	MaxRetries int
}

func DefaultSyncProcessorConfig() SyncProcessorConfig {
	return SyncProcessorConfig{
		PollInterval: 10 * time.Second,
		BatchSize:    10,
		MaxRetries:   3,
	}
}

// ChangeExporter applies one record change to the export sink.
type ChangeExporter interface {
	Export(ctx context.Context, module, id, action string) error
}

// SyncProcessor reconciles the sync outbox with the spreadsheet. It picks
// up changes whose event was lost or whose export failed.
type SyncProcessor struct {
	outbox   storage.Outbox
	exporter ChangeExporter
	config   SyncProcessorConfig
	logger   *slog.Logger
	running  atomic.Bool
}

func NewSyncProcessor(outbox storage.Outbox, exporter ChangeExporter, config SyncProcessorConfig, logger *slog.Logger) *SyncProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := DefaultSyncProcessorConfig()
	if config.PollInterval <= 0 {
		config.PollInterval = defaults.PollInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = defaults.MaxRetries
	}
	return &SyncProcessor{
		outbox:   outbox,
		exporter: exporter,
		config:   config,
		logger:   logger.With("component", "worker"),
	}
}

// Run scans the outbox once immediately and then every PollInterval until
// ctx is done. Only one Run may be active at a time.
func (p *SyncProcessor) Run(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		return ErrProcessorRunning
	}
	defer p.running.Store(false)

	p.logger.InfoContext(ctx, "Sync processor started",
		"poll_interval", p.config.PollInterval,
		"batch_size", p.config.BatchSize,
		"max_retries", p.config.MaxRetries)

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		p.ProcessBatch(ctx)
		select {
		case <-ctx.Done():
			p.logger.Info("Sync processor stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (p *SyncProcessor) IsRunning() bool {
	return p.running.Load()
}

// ProcessBatch exports one batch of outbox entries and returns how many
// were synced. Entries that used up their retries are skipped.
func (p *SyncProcessor) ProcessBatch(ctx context.Context) int {
	items, err := p.outbox.Pending(ctx, p.config.BatchSize)
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to read sync outbox", "error", err)
		return 0
	}

	synced := 0
	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		if item.Status == storage.StatusError && item.Attempts >= p.config.MaxRetries {
			continue
		}

		log := p.logger.With("module", item.Module, "record_id", item.RecordID, "action", item.Action)
		if err := p.exporter.Export(ctx, item.Module, item.RecordID, item.Action); err != nil {
			attempt := item.Attempts + 1
			log.WarnContext(ctx, "Sync export failed", "attempt", attempt, "error", err)
			if err := p.outbox.MarkError(ctx, item); errors.Is(err, storage.ErrOutboxChanged) {
				log.DebugContext(ctx, "Entry changed during export, left pending")
				continue
			} else if err != nil {
				log.ErrorContext(ctx, "Failed to mark entry failed", "error", err)
			}
			if attempt >= p.config.MaxRetries {
				log.ErrorContext(ctx, "Giving up on sync entry until it changes again", "attempts", attempt)
			}
			continue
		}
		if err := p.outbox.MarkSynced(ctx, item); errors.Is(err, storage.ErrOutboxChanged) {
			log.DebugContext(ctx, "Entry changed during export, left pending")
			continue
		} else if err != nil {
			log.ErrorContext(ctx, "Failed to mark entry synced", "error", err)
			continue
		}
		synced++
	}

	if synced > 0 {
		p.logger.DebugContext(ctx, "Sync batch processed", "synced", synced, "fetched", len(items))
	}
	return synced
}
