package registry

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/pokerroom/internal/store"
	"github.com/lox/pokerroom/internal/table"
)

var (
	// ErrTableExists is returned when creating a table with a taken id
	ErrTableExists = errors.New("table already exists")
	// ErrTableNotFound is returned when a table id is unknown
	ErrTableNotFound = errors.New("table not found")
)

// SinkFactory builds the event sink to attach to a table, typically the
// transport's per-table fan-out.
type SinkFactory func(tableID string) table.Sink

// Registry owns every live table on this server: creation, lookup, periodic
// snapshot persistence and eviction of abandoned tables.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*table.Engine

	store   store.Store
	sinkFor SinkFactory

	flushInterval time.Duration
	idleGrace     time.Duration

	clock  quartz.Clock
	logger *log.Logger

	stop     chan struct{}
	flushReq chan struct{}
	wg       sync.WaitGroup
}

// Option configures a Registry
type Option func(*Registry)

// WithClock substitutes the clock used for tables and eviction, for tests
func WithClock(c quartz.Clock) Option {
	return func(r *Registry) { r.clock = c }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithSinkFactory attaches transport fan-out to each table
func WithSinkFactory(f SinkFactory) Option {
	return func(r *Registry) { r.sinkFor = f }
}

// WithFlushInterval overrides how often snapshots are persisted
func WithFlushInterval(d time.Duration) Option {
	return func(r *Registry) { r.flushInterval = d }
}

// WithIdleGrace overrides how long a table may sit idle before eviction
func WithIdleGrace(d time.Duration) Option {
	return func(r *Registry) { r.idleGrace = d }
}

// New creates a registry persisting to s
func New(s store.Store, opts ...Option) *Registry {
	r := &Registry{
		tables:        make(map[string]*table.Engine),
		store:         s,
		flushInterval: time.Minute,
		idleGrace:     30 * time.Minute,
		clock:         quartz.NewReal(),
		logger:        log.Default(),
		stop:          make(chan struct{}),
		flushReq:      make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithPrefix("registry")
	return r
}

func (r *Registry) engineOptions(tableID string) []table.Option {
	opts := []table.Option{
		table.WithClock(r.clock),
		table.WithLogger(r.logger),
	}
	if r.sinkFor != nil {
		opts = append(opts, table.WithSink(r.sinkFor(tableID)))
	}
	return opts
}

// Create registers a new table. An empty id gets a generated one.
func (r *Registry) Create(ctx context.Context, cfg table.Config) (*table.Engine, error) {
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}

	r.mu.Lock()
	if _, taken := r.tables[cfg.ID]; taken {
		r.mu.Unlock()
		return nil, ErrTableExists
	}
	e := table.NewEngine(cfg, r.engineOptions(cfg.ID)...)
	r.tables[cfg.ID] = e
	r.mu.Unlock()

	r.logger.Info("table created", "table", cfg.ID, "name", cfg.Name)
	if err := r.store.SaveSnapshot(ctx, e.Snapshot()); err != nil {
		r.logger.Error("initial snapshot failed", "table", cfg.ID, "error", err)
	}
	return e, nil
}

// RestoreAll loads every persisted table back into memory. Called once at
// startup, before the transport accepts connections.
func (r *Registry) RestoreAll(ctx context.Context) error {
	snaps, err := r.store.LoadAllSnapshots(ctx)
	if err != nil {
		return err
	}

	for _, snap := range snaps {
		e, err := table.RestoreEngine(snap, r.engineOptions(snap.ID)...)
		if err != nil {
			r.logger.Error("table restore failed", "table", snap.ID, "error", err)
			continue
		}
		r.mu.Lock()
		r.tables[snap.ID] = e
		r.mu.Unlock()
		r.logger.Info("table restored", "table", snap.ID, "handInProgress", snap.HandInProgress)
	}
	return nil
}

// Get returns the table with the given id
func (r *Registry) Get(tableID string) (*table.Engine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.tables[tableID]
	return e, ok
}

// List returns metadata for every live table
func (r *Registry) List() []table.Metadata {
	r.mu.RLock()
	engines := make([]*table.Engine, 0, len(r.tables))
	for _, e := range r.tables {
		engines = append(engines, e)
	}
	r.mu.RUnlock()

	out := make([]table.Metadata, 0, len(engines))
	for _, e := range engines {
		out = append(out, e.Metadata())
	}
	return out
}

// Remove deletes a table and its persisted snapshot
func (r *Registry) Remove(ctx context.Context, tableID string) error {
	r.mu.Lock()
	_, ok := r.tables[tableID]
	delete(r.tables, tableID)
	r.mu.Unlock()

	if !ok {
		return ErrTableNotFound
	}
	r.logger.Info("table removed", "table", tableID)
	return r.store.DeleteSnapshot(ctx, tableID)
}

// Run drives periodic snapshot flushes and idle-table eviction until ctx is
// done.
func (r *Registry) Run(ctx context.Context) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.flushInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.FlushAll(ctx)
				r.EvictIdle(ctx)
			case <-r.flushReq:
				r.FlushAll(ctx)
			case <-ctx.Done():
				r.FlushAll(context.WithoutCancel(ctx))
				return
			case <-r.stop:
				return
			}
		}
	}()
}

// RequestFlush asks the background loop for an immediate flush
func (r *Registry) RequestFlush() {
	select {
	case r.flushReq <- struct{}{}:
	default:
	}
}

// Close stops the background loop and waits for it
func (r *Registry) Close() {
	close(r.stop)
	r.wg.Wait()
}

// FlushAll snapshots every table and persists it. Snapshots are taken under
// each engine's own lock; writes happen outside any lock.
func (r *Registry) FlushAll(ctx context.Context) {
	r.mu.RLock()
	engines := make([]*table.Engine, 0, len(r.tables))
	for _, e := range r.tables {
		engines = append(engines, e)
	}
	r.mu.RUnlock()

	for _, e := range engines {
		snap := e.Snapshot()
		if err := r.store.SaveSnapshot(ctx, snap); err != nil {
			r.logger.Error("snapshot flush failed", "table", snap.ID, "error", err)
		}
	}
}

// EvictIdle drops tables that have seen no action for the grace period. A
// final snapshot is persisted for the books before the table is dropped.
func (r *Registry) EvictIdle(ctx context.Context) {
	r.mu.RLock()
	engines := make([]*table.Engine, 0, len(r.tables))
	for _, e := range r.tables {
		engines = append(engines, e)
	}
	r.mu.RUnlock()

	for _, e := range engines {
		if !e.Idle(r.idleGrace) {
			continue
		}

		snap := e.Snapshot()
		if err := r.store.SaveSnapshot(ctx, snap); err != nil {
			r.logger.Error("final snapshot failed", "table", snap.ID, "error", err)
			continue
		}

		r.mu.Lock()
		delete(r.tables, snap.ID)
		r.mu.Unlock()
		r.logger.Info("idle table evicted", "table", snap.ID)
	}
}
