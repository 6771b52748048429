package engine

import (
	"context"
	"time"

	"famboard/internal/icons"
	"famboard/internal/identity"
	"famboard/internal/ledger"
	"famboard/internal/level"
)

// ApplyTransaction records one transaction. The local state reflects it
// immediately and unconditionally; the remote write (balance replace +
// additive history append) is dispatched fire-and-forget. The engine is
// confirmation-agnostic: severe-transaction confirmation is the
// caller's gate (see the intent package), and spends are not blocked
// from driving the balance negative.
func (e *Engine) ApplyTransaction(def ledger.ActionDefinition, kind ledger.Kind) ledger.HistoryEntry {
	var entry ledger.HistoryEntry
	e.do(func() {
		var evicted []ledger.HistoryEntry
		entry, evicted = e.state.Apply(def, kind, time.Now())
		balance := e.state.Balance

		e.enqueue("append transaction", func(ctx context.Context) error {
			return e.opts.Store.AppendTransaction(ctx, e.opts.GroupID, balance, entry)
		})
		if len(evicted) > 0 && e.opts.Archive != nil {
			e.enqueue("archive evicted history", func(ctx context.Context) error {
				return e.opts.Archive.RecordEvicted(ctx, e.opts.GroupID, evicted)
			})
		}
		e.notifyUpdate()
	})
	return entry
}

// UpsertDefinition creates or replaces a catalog entry and writes the
// full updated list back (replace-the-list, last-writer-wins).
func (e *Engine) UpsertDefinition(kind ledger.CatalogKind, def ledger.ActionDefinition) {
	e.do(func() {
		e.state.Upsert(kind, def)
		e.writeCatalog(kind)
		e.notifyUpdate()
	})
}

// RemoveDefinition deletes a catalog entry. Removing an absent id is a
// no-op, but the list is still written back.
func (e *Engine) RemoveDefinition(kind ledger.CatalogKind, id string) {
	e.do(func() {
		e.state.Remove(kind, id)
		e.writeCatalog(kind)
		e.notifyUpdate()
	})
}

func (e *Engine) writeCatalog(kind ledger.CatalogKind) {
	defs := append([]ledger.ActionDefinition(nil), e.state.Catalog(kind)...)
	e.enqueue("set catalog", func(ctx context.Context) error {
		return e.opts.Store.SetCatalog(ctx, e.opts.GroupID, kind, defs)
	})
}

// UpdateProfile renames the group and changes its icon. Unknown icon
// keys degrade to the default.
func (e *Engine) UpdateProfile(label, iconRef string) {
	iconRef = icons.Resolve(iconRef)
	e.do(func() {
		e.state.GroupLabel = label
		e.state.GroupIconRef = iconRef
		e.enqueue("set profile", func(ctx context.Context) error {
			return e.opts.Store.SetProfile(ctx, e.opts.GroupID, label, iconRef)
		})
		e.notifyUpdate()
	})
}

// Reset restores the default seed locally and, when Live, destructively
// overwrites the entire remote document with it.
func (e *Engine) Reset() {
	e.do(func() {
		seed := ledger.DefaultState()
		if e.opts.Seed != nil {
			seed = e.opts.Seed.Clone()
		}
		e.state = seed
		remote := seed.Clone()
		e.enqueue("reset document", func(ctx context.Context) error {
			return e.opts.Store.Replace(ctx, e.opts.GroupID, remote)
		})
		e.notifyUpdate()
	})
}

// State returns a copy of the current local (proposed) state.
func (e *Engine) State() ledger.SharedState {
	var out ledger.SharedState
	e.do(func() { out = e.state.Clone() })
	return out
}

// Confirmed returns a copy of the last remote-authoritative state. It
// lags State while optimistic mutations are still in flight.
func (e *Engine) Confirmed() ledger.SharedState {
	var out ledger.SharedState
	e.do(func() { out = e.confirmed.Clone() })
	return out
}

// Status reports the connection state, for the "not saving" indicator.
func (e *Engine) Status() Status {
	var s Status
	e.do(func() { s = e.status })
	return s
}

// Level classifies the current balance for presentation.
func (e *Engine) Level() level.Level {
	var lvl level.Level
	e.do(func() { lvl = level.Classify(e.state.Balance) })
	return lvl
}

// CanAfford reports whether a spend is currently eligible. Purely the
// UI affordance; ApplyTransaction does not enforce it.
func (e *Engine) CanAfford(def ledger.ActionDefinition) bool {
	var ok bool
	e.do(func() { ok = e.state.CanAfford(def) })
	return ok
}

// Session returns the bootstrap session; zero when Offline.
func (e *Engine) Session() identity.Session {
	var sess identity.Session
	e.do(func() { sess = e.session })
	return sess
}

// Updates signals that local state changed (optimistic mutation or
// inbound remote snapshot). Signals coalesce; consumers re-read State.
func (e *Engine) Updates() <-chan struct{} {
	return e.updates
}
