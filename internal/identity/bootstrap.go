package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"famboard/internal/util"
)

// Pinger is the reachability probe on the remote store. Satisfied by
// docstore.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Session is the opaque authenticated session handed to the sync engine.
type Session struct {
	ClientID  string
	Token     string
	ExpiresAt time.Time
}

// Bootstrapper mints anonymous sessions against a reachable store.
type Bootstrapper struct {
	secret []byte
	store  Pinger
	ttl    time.Duration
}

var ErrNoStore = errors.New("no remote store configured")

func NewBootstrapper(secret string, store Pinger, ttl time.Duration) *Bootstrapper {
	return &Bootstrapper{secret: []byte(secret), store: store, ttl: ttl}
}

// Bootstrap verifies the store is reachable and issues an anonymous
// session token for a fresh client id.
func (b *Bootstrapper) Bootstrap(ctx context.Context) (Session, error) {
	if b.store == nil {
		return Session{}, ErrNoStore
	}
	if err := b.store.Ping(ctx); err != nil {
		return Session{}, fmt.Errorf("store unreachable: %w", err)
	}

	clientID := util.NewID("anon")
	expiresAt := time.Now().Add(b.ttl)
	token, err := IssueToken(b.secret, Claims{
		Sub: clientID,
		JTI: util.NewID("sess"),
		Exp: expiresAt.Unix(),
	})
	if err != nil {
		return Session{}, fmt.Errorf("issue session token: %w", err)
	}

	return Session{ClientID: clientID, Token: token, ExpiresAt: expiresAt}, nil
}
