package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache defines a generic cache interface
type Cache[T any] interface {
	// Get retrieves a value from the cache
	Get(key string) (T, bool)

	// Set stores a value in the cache
	Set(key string, data T)

	// Delete removes a key from the cache
	Delete(key string)

	// Clear drops every entry
	Clear()

	// Size returns the current number of items in the cache
	Size() int
}

var entriesGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "berdoz_cache_entries",
	Help: "Number of live entries per cache.",
}, []string{"cache"})

// Sizer is implemented by caches the manager reports on.
type Sizer interface {
	Name() string
	Size() int
}

// Manager publishes the size of registered caches at a fixed interval.
// Expiry itself is handled by each cache.
type Manager struct {
	caches []Sizer
	logger *slog.Logger
}

// NewManager creates a new cache manager
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{logger: logger.With("component", "cache")}
}

// Register adds a cache to the manager
func (m *Manager) Register(c Sizer) {
	m.caches = append(m.caches, c)
}

// Run reports cache sizes until ctx is done. It always returns nil so it
// can sit in an errgroup next to the server.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.report()
		case <-ctx.Done():
			return nil
		}
	}
}

func (m *Manager) report() {
	total := 0
	for _, c := range m.caches {
		n := c.Size()
		entriesGauge.WithLabelValues(c.Name()).Set(float64(n))
		total += n
	}
	m.logger.Debug("Cache sizes reported", "caches", len(m.caches), "entries", total)
}
