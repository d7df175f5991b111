package dispatch

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"mapgen/internal/config"
	"mapgen/internal/mapgen"
	"mapgen/internal/meshing"
	"mapgen/internal/noise"
	"mapgen/internal/profiling"
	"mapgen/internal/terrain"

	"github.com/google/uuid"
)

var (
	// ErrGenerationFailure wraps any error or panic raised while a worker
	// builds a result. It reaches the caller through Result.Err.
	ErrGenerationFailure = errors.New("dispatch: generation failed")
	ErrNilCallback       = errors.New("dispatch: nil callback")
	ErrNilHeightField    = errors.New("dispatch: nil height field")
)

// Backpressure decides what a request does when the pool queue is full.
type Backpressure int

const (
	// Block makes the requesting goroutine wait for queue space.
	Block Backpressure = iota
	// Reject returns ErrSaturated immediately.
	Reject
)

// ParseBackpressure maps a config string to a policy.
func ParseBackpressure(s string) (Backpressure, error) {
	switch strings.ToLower(s) {
	case "", config.BackpressureBlock:
		return Block, nil
	case config.BackpressureReject:
		return Reject, nil
	}
	return Block, fmt.Errorf("unknown backpressure policy %q", s)
}

// Result is delivered to request callbacks. Exactly one of Value and Err is
// meaningful: Err is non-nil (and wraps ErrGenerationFailure) on failure.
type Result[T any] struct {
	RequestID uuid.UUID
	Value     T
	Err       error
}

type (
	MapResult  = Result[mapgen.MapData]
	MeshResult = Result[*meshing.MeshData]
)

// Options configures a Dispatcher.
type Options struct {
	Workers      int
	QueueSize    int
	Backpressure Backpressure
}

// Dispatcher runs map and mesh generation off the caller's goroutine and
// hands results back through per-kind queues that the owner drains once per
// tick.
type Dispatcher struct {
	settings *config.Settings
	sampler  noise.Sampler
	builder  meshing.Builder
	pool     *WorkerPool
	policy   Backpressure
	log      *slog.Logger

	mapResults  ResultQueue[MapResult]
	meshResults ResultQueue[MeshResult]

	inFlight atomic.Int64
}

// New creates a dispatcher and starts its worker pool.
func New(settings *config.Settings, sampler noise.Sampler, builder meshing.Builder, opts Options, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		settings: settings,
		sampler:  sampler,
		builder:  builder,
		pool:     NewWorkerPool(opts.Workers, opts.QueueSize),
		policy:   opts.Backpressure,
		log:      log,
	}
}

// Settings returns the live parameters the dispatcher snapshots from.
func (d *Dispatcher) Settings() *config.Settings { return d.settings }

// RequestMapData schedules generation of one chunk with the parameters as
// they are right now. cb runs on the goroutine that calls DrainMapResults.
func (d *Dispatcher) RequestMapData(cb func(MapResult)) error {
	if cb == nil {
		return ErrNilCallback
	}
	params := d.settings.Snapshot()
	id := uuid.New()

	return d.submit(func() {
		res := MapResult{RequestID: id}
		res.Value, res.Err = d.generateMap(params)
		if res.Err != nil {
			d.log.Warn("map generation failed", "request", id, "seed", params.Seed, "error", res.Err)
		}
		d.mapResults.Push(PendingResult[MapResult]{Callback: cb, Value: res})
	})
}

// RequestMeshData schedules meshing of height using the current height
// multiplier, curve and simplification level. height must not be modified
// afterwards.
func (d *Dispatcher) RequestMeshData(height *terrain.HeightField, cb func(MeshResult)) error {
	if cb == nil {
		return ErrNilCallback
	}
	if height == nil {
		return ErrNilHeightField
	}
	params := d.settings.Snapshot()
	id := uuid.New()

	return d.submit(func() {
		res := MeshResult{RequestID: id}
		res.Value, res.Err = d.buildMesh(height, params)
		if res.Err != nil {
			d.log.Warn("mesh generation failed", "request", id, "lod", params.SimplificationLevel, "error", res.Err)
		}
		d.meshResults.Push(PendingResult[MeshResult]{Callback: cb, Value: res})
	})
}

func (d *Dispatcher) submit(job Job) error {
	d.inFlight.Add(1)
	wrapped := func() {
		defer d.inFlight.Add(-1)
		job()
	}

	var err error
	switch d.policy {
	case Reject:
		err = d.pool.SubmitJob(wrapped)
	default:
		err = d.pool.SubmitJobBlocking(wrapped)
	}
	if err != nil {
		d.inFlight.Add(-1)
	}
	return err
}

// GenerateSync builds map data on the calling goroutine. It shares the
// generator with the async path and returns failures directly.
func (d *Dispatcher) GenerateSync(p config.Parameters) (mapgen.MapData, error) {
	return d.generateMap(p)
}

func (d *Dispatcher) generateMap(p config.Parameters) (data mapgen.MapData, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = mapgen.MapData{}, fmt.Errorf("%w: panic: %v", ErrGenerationFailure, r)
		}
	}()
	data, err = mapgen.Generate(d.sampler, p)
	if err != nil {
		return mapgen.MapData{}, fmt.Errorf("%w: %w", ErrGenerationFailure, err)
	}
	return data, nil
}

func (d *Dispatcher) buildMesh(h *terrain.HeightField, p config.Parameters) (m *meshing.MeshData, err error) {
	defer func() {
		if r := recover(); r != nil {
			m, err = nil, fmt.Errorf("%w: panic: %v", ErrGenerationFailure, r)
		}
	}()
	m, err = d.builder.Build(h, p.MeshHeightMultiplier, p.HeightCurve, p.SimplificationLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailure, err)
	}
	return m, nil
}

// DrainMapResults delivers every map result queued before the call, in
// FIFO order, and returns how many callbacks ran. Must be called from the
// consumer goroutine only.
func (d *Dispatcher) DrainMapResults() int {
	defer profiling.Track("dispatch.DrainMapResults")()
	return deliver(&d.mapResults, d.log, "map")
}

// DrainMeshResults is DrainMapResults for mesh results.
func (d *Dispatcher) DrainMeshResults() int {
	defer profiling.Track("dispatch.DrainMeshResults")()
	return deliver(&d.meshResults, d.log, "mesh")
}

// Drain runs both drains.
func (d *Dispatcher) Drain() (maps, meshes int) {
	return d.DrainMapResults(), d.DrainMeshResults()
}

// deliver invokes the detached results. Anything a callback causes to be
// pushed lands in the queue, not in the detached batch, so it is seen no
// earlier than the next drain.
func deliver[T any](q *ResultQueue[T], log *slog.Logger, kind string) int {
	batch := q.Drain()
	for i := range batch {
		invoke(batch[i], log, kind)
	}
	return len(batch)
}

func invoke[T any](r PendingResult[T], log *slog.Logger, kind string) {
	defer func() {
		if p := recover(); p != nil {
			log.Error("result callback panicked", "kind", kind, "panic", p)
		}
	}()
	r.Callback(r.Value)
}

// PendingMapResults returns the number of map results waiting for a drain.
func (d *Dispatcher) PendingMapResults() int { return d.mapResults.Len() }

// PendingMeshResults returns the number of mesh results waiting for a drain.
func (d *Dispatcher) PendingMeshResults() int { return d.meshResults.Len() }

// InFlight returns the number of accepted requests whose job has not
// finished.
func (d *Dispatcher) InFlight() int { return int(d.inFlight.Load()) }

// Idle reports whether nothing is running and nothing waits to be drained.
func (d *Dispatcher) Idle() bool {
	return d.InFlight() == 0 && d.PendingMapResults() == 0 && d.PendingMeshResults() == 0
}

// Close stops accepting requests and waits for accepted ones to finish.
// Their results stay queued until drained.
func (d *Dispatcher) Close() {
	d.pool.Close()
	d.log.Info("dispatcher closed",
		"pendingMaps", d.PendingMapResults(),
		"pendingMeshes", d.PendingMeshResults(),
	)
}
