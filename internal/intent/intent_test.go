package intent

import (
	"testing"

	"famboard/internal/ledger"
)

var policy = SeverePolicy{Threshold: -50, Marker: "lie"}

func TestSevereByThreshold(t *testing.T) {
	cases := []struct {
		delta int
		want  bool
	}{
		{-50, true},
		{-80, true},
		{-49, false},
		{-2, false},
		{5, false},
	}
	for _, tc := range cases {
		def := ledger.ActionDefinition{Label: "Mess Left Out", PointDelta: tc.delta}
		if got := policy.Severe(def); got != tc.want {
			t.Errorf("Severe(delta=%d) = %v, want %v", tc.delta, got, tc.want)
		}
	}
}

func TestSevereByMarker(t *testing.T) {
	for _, label := range []string{"LIE", "lie", "Told a Lie", "BELIED trust"} {
		def := ledger.ActionDefinition{Label: label, PointDelta: -2}
		if !policy.Severe(def) {
			t.Errorf("label %q should match the severe marker", label)
		}
	}
	if policy.Severe(ledger.ActionDefinition{Label: "Rude Reply", PointDelta: -2}) {
		t.Error("non-matching small penalty should not be severe")
	}
}

func TestSevereEmptyMarker(t *testing.T) {
	p := SeverePolicy{Threshold: -50}
	if p.Severe(ledger.ActionDefinition{Label: "Lie", PointDelta: -2}) {
		t.Error("empty marker should never match")
	}
}

func TestForTransaction(t *testing.T) {
	mild := ledger.ActionDefinition{Label: "Morning Ready", PointDelta: 5}
	if got := ForTransaction(mild, ledger.KindGain, policy); got != nil {
		t.Errorf("mild transaction should not need confirmation, got %T", got)
	}

	harsh := ledger.ActionDefinition{Label: "LIE", PointDelta: -50}
	got := ForTransaction(harsh, ledger.KindLoss, policy)
	confirm, ok := got.(ConfirmTransaction)
	if !ok {
		t.Fatalf("expected ConfirmTransaction, got %T", got)
	}
	if confirm.Kind != ledger.KindLoss || confirm.Definition.ID != harsh.ID {
		t.Errorf("confirmation should carry the pending transaction: %+v", confirm)
	}
	if confirm.Message == "" {
		t.Error("confirmation should carry a user-facing message")
	}
}
