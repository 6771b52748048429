// Package engine bridges local group state to the remote shared
// document. Mutations apply locally first (optimistic), then dispatch to
// the remote store without blocking the caller; inbound remote snapshots
// are merged field by field. All state access is serialized through a
// single goroutine, so UI events and snapshot arrivals interleave
// cooperatively and never race.
package engine

import (
	"context"
	"log"
	"time"

	"famboard/internal/docstore"
	"famboard/internal/identity"
	"famboard/internal/ledger"
)

// Status is the engine's connection state. Offline is terminal for the
// session: no automatic re-bootstrap is attempted.
type Status string

const (
	StatusBootstrapping Status = "bootstrapping"
	StatusLive          Status = "live"
	StatusOffline       Status = "offline"
)

const writeTimeout = 10 * time.Second

// Identity resolves the authenticated session during bootstrap.
// Satisfied by identity.Bootstrapper.
type Identity interface {
	Bootstrap(ctx context.Context) (identity.Session, error)
}

// Archiver receives history entries evicted by the client-side cap.
// Satisfied by archive.Sink; a nil sink drops entries silently.
type Archiver interface {
	RecordEvicted(ctx context.Context, groupID string, entries []ledger.HistoryEntry) error
}

// Options configures an Engine. A nil Store or Identity means there is
// no remote backend and the engine runs local-only from the start.
type Options struct {
	GroupID  string
	Store    *docstore.Store
	Identity Identity
	Archive  Archiver
	// Seed overrides the default seed document. Used for tests.
	Seed *ledger.SharedState
}

type write struct {
	name string
	fn   func(ctx context.Context) error
}

// Engine owns the local copy of the shared document.
type Engine struct {
	opts    Options
	ctx     context.Context
	cancel  context.CancelFunc
	cmds    chan func()
	writes  chan write
	updates chan struct{}
	done    chan struct{}

	// Owned by the run goroutine after Start. state is the proposed
	// layer (optimistic mutations land here immediately); confirmed is
	// the last remote-authoritative view, advanced only by inbound
	// snapshots.
	state     ledger.SharedState
	confirmed ledger.SharedState
	status    Status
	session   identity.Session
	sub       *docstore.Subscription
}

func New(opts Options) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	seed := ledger.DefaultState()
	if opts.Seed != nil {
		seed = opts.Seed.Clone()
	}
	return &Engine{
		opts:      opts,
		ctx:       ctx,
		cancel:    cancel,
		cmds:      make(chan func()),
		writes:    make(chan write, 64),
		updates:   make(chan struct{}, 1),
		done:      make(chan struct{}),
		state:     seed,
		confirmed: seed.Clone(),
		status:    StatusBootstrapping,
	}
}

// Start bootstraps the remote session and begins serving. It must be
// called once, before any other method. Bootstrap failure is never
// fatal: the engine falls back to local-only mode.
func (e *Engine) Start(ctx context.Context) {
	e.bootstrap(ctx)
	go e.writer()
	go e.run()
}

func (e *Engine) bootstrap(ctx context.Context) {
	if e.opts.Store == nil || e.opts.Identity == nil {
		e.status = StatusOffline
		log.Printf("engine: no remote backend configured, running local-only")
		return
	}

	sess, err := e.opts.Identity.Bootstrap(ctx)
	if err != nil {
		e.status = StatusOffline
		log.Printf("engine: bootstrap failed, running local-only: %v", err)
		return
	}
	e.session = sess

	created, err := e.opts.Store.SeedIfAbsent(ctx, e.opts.GroupID, e.state.Clone())
	if err != nil {
		e.status = StatusOffline
		log.Printf("engine: seed check failed, running local-only: %v", err)
		return
	}
	if !created {
		snap, err := e.opts.Store.Load(ctx, e.opts.GroupID)
		if err != nil {
			e.status = StatusOffline
			log.Printf("engine: initial fetch failed, running local-only: %v", err)
			return
		}
		e.state.Merge(snap)
		e.confirmed.Merge(snap)
	}

	sub, err := e.opts.Store.Subscribe(e.ctx, e.opts.GroupID)
	if err != nil {
		e.status = StatusOffline
		log.Printf("engine: subscribe failed, running local-only: %v", err)
		return
	}
	e.sub = sub
	e.status = StatusLive
}

// run serializes every state access: UI-triggered commands and inbound
// remote snapshots are applied one at a time, in arrival order.
func (e *Engine) run() {
	defer close(e.done)
	var snapshots <-chan ledger.Snapshot
	if e.sub != nil {
		snapshots = e.sub.Snapshots()
	}
	for {
		select {
		case fn := <-e.cmds:
			fn()
		case snap, ok := <-snapshots:
			if !ok {
				snapshots = nil
				continue
			}
			e.confirmed.Merge(snap)
			e.state.Merge(snap)
			e.notifyUpdate()
		case <-e.ctx.Done():
			return
		}
	}
}

// do runs fn on the engine goroutine and waits for it, so optimistic
// mutations land in the exact order their triggering events were
// dispatched and are visible to the caller immediately on return.
func (e *Engine) do(fn func()) {
	ran := make(chan struct{})
	select {
	case e.cmds <- func() { fn(); close(ran) }:
	case <-e.ctx.Done():
		return
	}
	select {
	case <-ran:
	case <-e.ctx.Done():
	}
}

// enqueue schedules a fire-and-forget remote write. No-op unless Live.
// Only called from the run goroutine.
func (e *Engine) enqueue(name string, fn func(ctx context.Context) error) {
	if e.status != StatusLive {
		return
	}
	select {
	case e.writes <- write{name: name, fn: fn}:
	default:
		log.Printf("engine: write queue saturated, dropping %s", name)
	}
}

// writer dispatches remote writes in order. Failures are logged, not
// retried and not rolled back; the next inbound snapshot reconciles
// local state. After teardown, outcomes of in-flight writes are
// disregarded.
func (e *Engine) writer() {
	for {
		select {
		case w := <-e.writes:
			ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			err := w.fn(ctx)
			cancel()
			if err != nil {
				if e.ctx.Err() != nil {
					return
				}
				log.Printf("engine: %s: %v", w.name, err)
			}
		case <-e.ctx.Done():
			return
		}
	}
}

func (e *Engine) notifyUpdate() {
	select {
	case e.updates <- struct{}{}:
	default:
	}
}

// Close tears the engine down: the subscription ends so stale snapshot
// callbacks cannot mutate freed state, and queued writes are abandoned.
func (e *Engine) Close() {
	e.cancel()
	if e.sub != nil {
		_ = e.sub.Close()
	}
	<-e.done
}
