package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"gatepass/internal/core/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Storage operations reported to the diagnostic hook
const (
	OpLoad = "load"
	OpSave = "save"
)

var snapshotErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gatepass_snapshot_errors_total",
		Help: "Snapshot storage failures by operation",
	},
	[]string{"op"},
)

// DiagnosticFunc receives storage failures that are absorbed instead of returned
type DiagnosticFunc func(op string, err error)

// LogDiagnostic is the default diagnostic hook
func LogDiagnostic(op string, err error) {
	switch op {
	case OpLoad:
		if errors.Is(err, ErrSnapshotMissing) {
			log.Printf("⚠️ No stored snapshot, using seed data")
			return
		}
		log.Printf("❌ Error reading database, using seed data: %v", err)
	default:
		log.Printf("❌ Error writing to database: %v", err)
	}
}

// Option configures a snapshot repository
type Option func(*snapshotRepository)

// WithSerializedWrites makes Update hold a lock across load, mutate and save
func WithSerializedWrites(enabled bool) Option {
	return func(r *snapshotRepository) {
		r.serialize = enabled
	}
}

// WithDiagnostic replaces the default diagnostic hook
func WithDiagnostic(fn DiagnosticFunc) Option {
	return func(r *snapshotRepository) {
		if fn != nil {
			r.diagnostic = fn
		}
	}
}

// snapshotRepository implements SnapshotRepository on top of a SnapshotStore
type snapshotRepository struct {
	store      SnapshotStore
	seed       func() *domain.Snapshot
	serialize  bool
	diagnostic DiagnosticFunc
	mu         sync.Mutex
}

// NewSnapshotRepository creates a snapshot repository. seed supplies the default snapshot.
func NewSnapshotRepository(store SnapshotStore, seed func() *domain.Snapshot, opts ...Option) SnapshotRepository {
	r := &snapshotRepository{
		store:      store,
		seed:       seed,
		serialize:  true,
		diagnostic: LogDiagnostic,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load reads and decodes the stored snapshot, falling back to seed data
func (r *snapshotRepository) Load(ctx context.Context) *domain.Snapshot {
	data, err := r.store.Read(ctx)
	if err != nil {
		return r.fallback(err)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return r.fallback(fmt.Errorf("decode snapshot: %w", err))
	}

	snapshot.Normalize()
	return &snapshot
}

// Save encodes the whole snapshot and replaces the stored blob
func (r *snapshotRepository) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	snapshot.Normalize()

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return r.report(OpSave, fmt.Errorf("encode snapshot: %w", err))
	}

	if err := r.store.Write(ctx, data); err != nil {
		return r.report(OpSave, err)
	}
	return nil
}

// Update performs load, fn, save. A failed save is reported to the diagnostic hook
// and not returned: the caller's mutation stands even though it was not persisted.
func (r *snapshotRepository) Update(ctx context.Context, fn func(snapshot *domain.Snapshot) error) error {
	if r.serialize {
		r.mu.Lock()
		defer r.mu.Unlock()
	}

	snapshot := r.Load(ctx)
	if err := fn(snapshot); err != nil {
		return err
	}

	_ = r.Save(ctx, snapshot)
	return nil
}

// Ping checks the underlying store
func (r *snapshotRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

func (r *snapshotRepository) fallback(err error) *domain.Snapshot {
	r.report(OpLoad, err)
	snapshot := r.seed()
	snapshot.Normalize()
	return snapshot
}

func (r *snapshotRepository) report(op string, err error) error {
	if !(op == OpLoad && errors.Is(err, ErrSnapshotMissing)) {
		snapshotErrorsTotal.WithLabelValues(op).Inc()
	}
	r.diagnostic(op, err)
	return err
}
