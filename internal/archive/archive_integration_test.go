package archive

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"famboard/internal/ledger"
)

// Requires a reachable Postgres; set FAMBOARD_TEST_DATABASE_URL to run.
func testSink(t *testing.T) *Sink {
	t.Helper()
	dsn := strings.TrimSpace(os.Getenv("FAMBOARD_TEST_DATABASE_URL"))
	if dsn == "" {
		t.Skip("FAMBOARD_TEST_DATABASE_URL is not set")
	}
	sink, err := Open(context.Background(), dsn)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	t.Cleanup(func() { sink.Close() })
	return sink
}

func TestRecordEvictedRoundTrip(t *testing.T) {
	sink := testSink(t)
	ctx := context.Background()

	groupID := "test-" + time.Now().Format("20060102150405.000")
	entries := []ledger.HistoryEntry{
		{ID: "t1", Label: "Morning Ready", PointDelta: 5, OccurredAt: time.Now().UTC(), Kind: ledger.KindGain},
		{ID: "t2", Label: "Mess Left Out", PointDelta: -5, OccurredAt: time.Now().UTC(), Kind: ledger.KindLoss},
	}
	if err := sink.RecordEvicted(ctx, groupID, entries); err != nil {
		t.Fatalf("RecordEvicted failed: %v", err)
	}
	// Replays must be idempotent.
	if err := sink.RecordEvicted(ctx, groupID, entries); err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	var count int
	err := sink.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM evicted_history WHERE group_id = $1", groupID,
	).Scan(&count)
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 archived entries, got %d", count)
	}
}

func TestRecordEvictedNilSink(t *testing.T) {
	var sink *Sink
	if err := sink.RecordEvicted(context.Background(), "fam1", []ledger.HistoryEntry{{ID: "x"}}); err != nil {
		t.Errorf("nil sink should drop silently, got %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Errorf("nil sink Close should be a no-op, got %v", err)
	}
}
