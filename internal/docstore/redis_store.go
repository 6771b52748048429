// Package docstore backs the shared group document with Redis. Scalar
// and catalog fields live in one hash per group, so partial updates are
// per-field last-writer-wins. History is a Redis list: LPUSH gives the
// additive append that unions entries written concurrently by other
// clients instead of clobbering them. Every write publishes a change
// notification on the group's channel.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"famboard/internal/ledger"
	"github.com/redis/go-redis/v9"
)

const (
	fieldGroupLabel   = "groupLabel"
	fieldGroupIconRef = "groupIconRef"
	fieldBalance      = "balance"
)

// serverHistoryBound caps the stored list on every append. It is looser
// than the client-side display cap so entries from concurrent writers
// survive until each client trims its own view.
const serverHistoryBound = 200

// Store is a Redis-backed shared document store.
type Store struct {
	client    *redis.Client
	namespace string
}

// New connects to Redis and verifies the connection.
func New(redisURL, namespace string) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &Store{client: client, namespace: namespace}, nil
}

// NewWithClient creates a store from an existing Redis client.
func NewWithClient(client *redis.Client, namespace string) *Store {
	return &Store{client: client, namespace: namespace}
}

func (s *Store) docKey(groupID string) string {
	return s.namespace + ":" + groupID + ":doc"
}

func (s *Store) historyKey(groupID string) string {
	return s.namespace + ":" + groupID + ":history"
}

func (s *Store) seedKey(groupID string) string {
	return s.namespace + ":" + groupID + ":seeded"
}

func (s *Store) channel(groupID string) string {
	return s.namespace + ":" + groupID + ":changes"
}

func catalogField(kind ledger.CatalogKind) string {
	switch kind {
	case ledger.CatalogGain:
		return "gainCatalog"
	case ledger.CatalogPenalty:
		return "penaltyCatalog"
	case ledger.CatalogReward:
		return "rewardCatalog"
	default:
		panic(fmt.Sprintf("docstore: invalid catalog kind %q", kind))
	}
}

// SeedIfAbsent writes the seed document unless a client already did.
// Exactly one first client wins the SETNX and performs the write;
// everyone else reads the seeded document. Returns whether this call
// created the document.
func (s *Store) SeedIfAbsent(ctx context.Context, groupID string, seed ledger.SharedState) (bool, error) {
	won, err := s.client.SetNX(ctx, s.seedKey(groupID), "1", 0).Result()
	if err != nil {
		return false, fmt.Errorf("seed marker: %w", err)
	}
	if !won {
		return false, nil
	}
	if err := s.Replace(ctx, groupID, seed); err != nil {
		return false, fmt.Errorf("write seed: %w", err)
	}
	return true, nil
}

// Load fetches the full document as a snapshot. Fields absent from the
// stored hash stay nil in the snapshot so merges leave them untouched.
// When the document exists, history is always considered present, even
// when empty.
func (s *Store) Load(ctx context.Context, groupID string) (ledger.Snapshot, error) {
	fields, err := s.client.HGetAll(ctx, s.docKey(groupID)).Result()
	if err != nil {
		return ledger.Snapshot{}, fmt.Errorf("load document: %w", err)
	}
	if len(fields) == 0 {
		return ledger.Snapshot{}, nil
	}

	var snap ledger.Snapshot
	if v, ok := fields[fieldGroupLabel]; ok {
		snap.GroupLabel = &v
	}
	if v, ok := fields[fieldGroupIconRef]; ok {
		snap.GroupIconRef = &v
	}
	if v, ok := fields[fieldBalance]; ok {
		balance, err := strconv.Atoi(v)
		if err != nil {
			return ledger.Snapshot{}, fmt.Errorf("parse balance %q: %w", v, err)
		}
		snap.Balance = &balance
	}

	for _, kind := range []ledger.CatalogKind{ledger.CatalogGain, ledger.CatalogPenalty, ledger.CatalogReward} {
		raw, ok := fields[catalogField(kind)]
		if !ok {
			continue
		}
		var defs []ledger.ActionDefinition
		if err := json.Unmarshal([]byte(raw), &defs); err != nil {
			return ledger.Snapshot{}, fmt.Errorf("decode %s: %w", catalogField(kind), err)
		}
		for i := range defs {
			defs[i].Normalize()
		}
		switch kind {
		case ledger.CatalogGain:
			snap.GainCatalog = defs
		case ledger.CatalogPenalty:
			snap.PenaltyCatalog = defs
		case ledger.CatalogReward:
			snap.RewardCatalog = defs
		}
	}

	items, err := s.client.LRange(ctx, s.historyKey(groupID), 0, -1).Result()
	if err != nil {
		return ledger.Snapshot{}, fmt.Errorf("load history: %w", err)
	}
	history := make([]ledger.HistoryEntry, 0, len(items))
	for _, item := range items {
		var entry ledger.HistoryEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return ledger.Snapshot{}, fmt.Errorf("decode history entry: %w", err)
		}
		history = append(history, entry)
	}
	snap.History = history

	return snap, nil
}

// AppendTransaction replaces the balance field and appends the history
// entry atomically from the perspective of other writers: the balance is
// last-writer-wins, the history append is additive.
func (s *Store) AppendTransaction(ctx context.Context, groupID string, balance int, entry ledger.HistoryEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}

	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.docKey(groupID), fieldBalance, strconv.Itoa(balance))
		pipe.LPush(ctx, s.historyKey(groupID), payload)
		pipe.LTrim(ctx, s.historyKey(groupID), 0, serverHistoryBound-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}
	return s.notify(ctx, groupID)
}

// SetCatalog writes the full catalog list back (replace-the-list
// semantics; concurrent edits are last-writer-wins).
func (s *Store) SetCatalog(ctx context.Context, groupID string, kind ledger.CatalogKind, defs []ledger.ActionDefinition) error {
	payload, err := json.Marshal(defs)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	if err := s.client.HSet(ctx, s.docKey(groupID), catalogField(kind), payload).Err(); err != nil {
		return fmt.Errorf("set catalog: %w", err)
	}
	return s.notify(ctx, groupID)
}

// SetProfile replaces the group label and icon fields.
func (s *Store) SetProfile(ctx context.Context, groupID, label, iconRef string) error {
	err := s.client.HSet(ctx, s.docKey(groupID),
		fieldGroupLabel, label,
		fieldGroupIconRef, iconRef,
	).Err()
	if err != nil {
		return fmt.Errorf("set profile: %w", err)
	}
	return s.notify(ctx, groupID)
}

// Replace destructively overwrites the whole document with state. Used
// for seeding and for the full-reset operation.
func (s *Store) Replace(ctx context.Context, groupID string, state ledger.SharedState) error {
	gains, err := json.Marshal(state.GainCatalog)
	if err != nil {
		return fmt.Errorf("marshal gain catalog: %w", err)
	}
	penalties, err := json.Marshal(state.PenaltyCatalog)
	if err != nil {
		return fmt.Errorf("marshal penalty catalog: %w", err)
	}
	rewards, err := json.Marshal(state.RewardCatalog)
	if err != nil {
		return fmt.Errorf("marshal reward catalog: %w", err)
	}
	entries := make([]interface{}, 0, len(state.History))
	for _, e := range state.History {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshal history entry: %w", err)
		}
		entries = append(entries, payload)
	}

	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.historyKey(groupID))
		pipe.HSet(ctx, s.docKey(groupID),
			fieldGroupLabel, state.GroupLabel,
			fieldGroupIconRef, state.GroupIconRef,
			fieldBalance, strconv.Itoa(state.Balance),
			catalogField(ledger.CatalogGain), gains,
			catalogField(ledger.CatalogPenalty), penalties,
			catalogField(ledger.CatalogReward), rewards,
		)
		if len(entries) > 0 {
			// state.History is newest-first; RPUSH in order keeps the
			// newest entry at the head of the list.
			pipe.RPush(ctx, s.historyKey(groupID), entries...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace document: %w", err)
	}
	return s.notify(ctx, groupID)
}

func (s *Store) notify(ctx context.Context, groupID string) error {
	if err := s.client.Publish(ctx, s.channel(groupID), "changed").Err(); err != nil {
		return fmt.Errorf("publish change: %w", err)
	}
	return nil
}

// Ping checks if Redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}
