package identity

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

var secret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	claims := Claims{Sub: "anon_1", JTI: "sess_1", Exp: time.Now().Add(time.Hour).Unix()}
	token, err := IssueToken(secret, claims)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	parsed, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if parsed != claims {
		t.Errorf("expected %+v, got %+v", claims, parsed)
	}
}

func TestParseExpiredToken(t *testing.T) {
	token, err := IssueToken(secret, Claims{Sub: "anon_1", JTI: "sess_1", Exp: time.Now().Add(-time.Minute).Unix()})
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if _, err := ParseToken(secret, token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestParseTamperedToken(t *testing.T) {
	token, err := IssueToken(secret, Claims{Sub: "anon_1", JTI: "sess_1", Exp: time.Now().Add(time.Hour).Unix()})
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	parts := strings.Split(token, ".")
	forged, err := IssueToken([]byte("other-secret"), Claims{Sub: "anon_2", JTI: "sess_2", Exp: time.Now().Add(time.Hour).Unix()})
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	forgedPayload := strings.Split(forged, ".")[0]

	if _, err := ParseToken(secret, forgedPayload+"."+parts[1]); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := ParseToken(secret, "garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func TestBootstrapIssuesSession(t *testing.T) {
	b := NewBootstrapper("test-secret", fakePinger{}, time.Hour)
	sess, err := b.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	if !strings.HasPrefix(sess.ClientID, "anon_") {
		t.Errorf("unexpected client id %s", sess.ClientID)
	}
	claims, err := ParseToken(secret, sess.Token)
	if err != nil {
		t.Fatalf("issued token should parse: %v", err)
	}
	if claims.Sub != sess.ClientID {
		t.Errorf("token subject %s != client id %s", claims.Sub, sess.ClientID)
	}
}

func TestBootstrapUnreachableStore(t *testing.T) {
	b := NewBootstrapper("test-secret", fakePinger{err: errors.New("connection refused")}, time.Hour)
	if _, err := b.Bootstrap(context.Background()); err == nil {
		t.Error("expected error when store is unreachable")
	}
}

func TestBootstrapNoStore(t *testing.T) {
	b := NewBootstrapper("test-secret", nil, time.Hour)
	if _, err := b.Bootstrap(context.Background()); !errors.Is(err, ErrNoStore) {
		t.Errorf("expected ErrNoStore, got %v", err)
	}
}
