// Package famboard is a shared family reward ledger: a running point
// balance, a bounded activity history, and user-editable action
// catalogs, kept consistent across a small group of devices through a
// remote shared document. Open wires the whole core together; the
// embedding UI drives the returned engine.
package famboard

import (
	"context"
	"log"

	"famboard/internal/archive"
	"famboard/internal/config"
	"famboard/internal/docstore"
	"famboard/internal/engine"
	"famboard/internal/identity"
	"famboard/internal/intent"
	"famboard/internal/session"
)

// App is one running instance of the core, bound to a single group.
type App struct {
	Engine  *engine.Engine
	Policy  intent.SeverePolicy
	GroupID string

	store *docstore.Store
	sink  *archive.Sink
}

// Open resolves the group from the share URL, bootstraps the remote
// session, and starts the sync engine. It never fails: when the remote
// backend is unreachable the engine runs local-only and reports
// StatusOffline.
func Open(ctx context.Context, cfg config.Config, shareURL string) *App {
	groupID := session.Resolve(shareURL)

	var store *docstore.Store
	if cfg.RedisURL != "" {
		s, err := docstore.New(cfg.RedisURL, cfg.Namespace)
		if err != nil {
			log.Printf("famboard: remote store unavailable: %v", err)
		} else {
			store = s
		}
	}

	var sink *archive.Sink
	if cfg.ArchiveDatabaseURL != "" {
		s, err := archive.Open(ctx, cfg.ArchiveDatabaseURL)
		if err != nil {
			log.Printf("famboard: eviction archive unavailable: %v", err)
		} else {
			sink = s
		}
	}

	opts := engine.Options{GroupID: groupID}
	if store != nil {
		opts.Store = store
		opts.Identity = identity.NewBootstrapper(cfg.SessionSecret, store, cfg.SessionTTL)
	}
	if sink != nil {
		opts.Archive = sink
	}

	eng := engine.New(opts)
	eng.Start(ctx)

	return &App{
		Engine:  eng,
		Policy:  intent.SeverePolicy{Threshold: cfg.SevereThreshold, Marker: cfg.SevereMarker},
		GroupID: groupID,
		store:   store,
		sink:    sink,
	}
}

// ShareLink builds the invite URL other devices open to join the group.
func (a *App) ShareLink(base string) (string, error) {
	return session.ShareLink(base, a.GroupID)
}

// Close tears down the engine and releases backend connections.
func (a *App) Close() {
	a.Engine.Close()
	if a.store != nil {
		_ = a.store.Close()
	}
	if a.sink != nil {
		_ = a.sink.Close()
	}
}
