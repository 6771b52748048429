// Package intent models pending user intents as tagged variants,
// decoupled from the engine's transaction and catalog APIs. The severe
// transaction confirmation gate lives here: the engine itself is
// confirmation-agnostic.
package intent

import (
	"fmt"
	"strings"

	"famboard/internal/ledger"
)

// Intent is one pending user intent awaiting UI resolution.
type Intent interface {
	isIntent()
}

// ConfirmTransaction asks the user to confirm a severe transaction
// before it is applied.
type ConfirmTransaction struct {
	Definition ledger.ActionDefinition
	Kind       ledger.Kind
	Message    string
}

// EditDefinition opens an existing catalog entry for editing.
type EditDefinition struct {
	CatalogKind ledger.CatalogKind
	Definition  ledger.ActionDefinition
}

// CreateDefinition opens a blank editor for a new catalog entry.
type CreateDefinition struct {
	CatalogKind ledger.CatalogKind
}

// EditProfile opens the group name and icon editor.
type EditProfile struct {
	Label   string
	IconRef string
}

// ConfirmReset asks the user to confirm a destructive full reset.
type ConfirmReset struct{}

func (ConfirmTransaction) isIntent() {}
func (EditDefinition) isIntent()     {}
func (CreateDefinition) isIntent()   {}
func (EditProfile) isIntent()        {}
func (ConfirmReset) isIntent()       {}

// SeverePolicy decides which transactions need explicit confirmation.
type SeverePolicy struct {
	// Threshold marks deltas at or below it as severe (typically -50).
	Threshold int
	// Marker is matched case-insensitively as a label substring.
	Marker string
}

func (p SeverePolicy) Severe(def ledger.ActionDefinition) bool {
	if def.PointDelta <= p.Threshold {
		return true
	}
	if p.Marker == "" {
		return false
	}
	return strings.Contains(strings.ToLower(def.Label), strings.ToLower(p.Marker))
}

// ForTransaction returns a ConfirmTransaction intent when the policy
// flags def as severe, nil when the transaction can proceed directly.
func ForTransaction(def ledger.ActionDefinition, kind ledger.Kind, policy SeverePolicy) Intent {
	if !policy.Severe(def) {
		return nil
	}
	return ConfirmTransaction{
		Definition: def,
		Kind:       kind,
		Message:    fmt.Sprintf("You are about to record %q for %d points. Are you sure?", def.Label, def.PointDelta),
	}
}
