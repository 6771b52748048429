package docstore

import (
	"context"
	"fmt"
	"log"

	"famboard/internal/ledger"
	"github.com/redis/go-redis/v9"
)

// Subscription streams full-document snapshots on every remote change,
// including the subscriber's own writes once round-tripped. Close tears
// the stream down; the snapshot channel is closed afterwards so stale
// callbacks cannot fire.
type Subscription struct {
	snapshots chan ledger.Snapshot
	pubsub    *redis.PubSub
}

// Subscribe opens a change subscription for groupID. Every change
// notification triggers a full re-read; the resulting snapshot is
// delivered on Snapshots(). A lagging consumer may miss intermediate
// snapshots, which is safe because every snapshot carries full state.
func (s *Store) Subscribe(ctx context.Context, groupID string) (*Subscription, error) {
	pubsub := s.client.Subscribe(ctx, s.channel(groupID))
	// Wait for the subscription to be confirmed before reporting success.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	sub := &Subscription{
		snapshots: make(chan ledger.Snapshot, 8),
		pubsub:    pubsub,
	}

	go func() {
		defer close(sub.snapshots)
		for range pubsub.Channel() {
			snap, err := s.Load(ctx, groupID)
			if err != nil {
				log.Printf("docstore: reload after change failed: %v", err)
				continue
			}
			select {
			case sub.snapshots <- snap:
			default:
				// Consumer is lagging; drop this snapshot, the next
				// change delivers full state again.
			}
		}
	}()

	return sub, nil
}

// Snapshots is the stream of authoritative snapshots. Closed on Close.
func (sub *Subscription) Snapshots() <-chan ledger.Snapshot {
	return sub.snapshots
}

// Close unsubscribes and ends the snapshot stream.
func (sub *Subscription) Close() error {
	return sub.pubsub.Close()
}
