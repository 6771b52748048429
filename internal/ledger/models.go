// Package ledger holds the shared group document and the pure state
// transitions applied to it: point transactions, the bounded history,
// and the three user-editable action catalogs.
package ledger

import (
	"time"

	"famboard/internal/icons"
)

// HistoryCap is the client-side bound on retained history entries.
// Eviction trims the log, never the balance.
const HistoryCap = 50

// Kind tags a balance-affecting transaction.
type Kind string

const (
	KindGain  Kind = "gain"
	KindLoss  Kind = "loss"
	KindSpend Kind = "spend"
)

// CatalogKind selects one of the three action catalogs.
type CatalogKind string

const (
	CatalogGain    CatalogKind = "gain"
	CatalogPenalty CatalogKind = "penalty"
	CatalogReward  CatalogKind = "reward"
)

// Variant is the visual treatment of an action button.
type Variant string

const (
	VariantNeutral Variant = "neutral"
	VariantSuccess Variant = "success"
	VariantDanger  Variant = "danger"
	VariantWarning Variant = "warning"
	VariantSpecial Variant = "special"
)

// Size is the layout size of an action button.
type Size string

const (
	SizeNormal Size = "normal"
	SizeLarge  Size = "large"
)

// ActionDefinition is one user-configurable reward, penalty, or
// purchase. ID is immutable once created. Penalties and rewards carry
// pre-signed negative deltas.
type ActionDefinition struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	PointDelta int     `json:"pointDelta"`
	IconRef    string  `json:"iconRef"`
	Variant    Variant `json:"variant"`
	Size       Size    `json:"size"`
}

// Normalize degrades unknown presentation references to safe defaults.
// Called on every definition decoded from the remote document.
func (d *ActionDefinition) Normalize() {
	d.IconRef = icons.Resolve(d.IconRef)
	switch d.Variant {
	case VariantNeutral, VariantSuccess, VariantDanger, VariantWarning, VariantSpecial:
	default:
		d.Variant = VariantNeutral
	}
	switch d.Size {
	case SizeNormal, SizeLarge:
	default:
		d.Size = SizeNormal
	}
}

// HistoryEntry records one past transaction. Entries are immutable:
// appended, eventually evicted by the cap, never edited.
type HistoryEntry struct {
	ID         string    `json:"id"`
	Label      string    `json:"label"`
	PointDelta int       `json:"pointDelta"`
	OccurredAt time.Time `json:"occurredAt"`
	Kind       Kind      `json:"kind"`
}

// SharedState is the single document of record for a group.
type SharedState struct {
	GroupLabel     string             `json:"groupLabel"`
	GroupIconRef   string             `json:"groupIconRef"`
	Balance        int                `json:"balance"`
	History        []HistoryEntry     `json:"history"`
	GainCatalog    []ActionDefinition `json:"gainCatalog"`
	PenaltyCatalog []ActionDefinition `json:"penaltyCatalog"`
	RewardCatalog  []ActionDefinition `json:"rewardCatalog"`
}

// DefaultState is the seed written by the first client of a group.
func DefaultState() SharedState {
	return SharedState{
		GroupLabel:   "Our Family",
		GroupIconRef: "home",
		Balance:      0,
		History:      []HistoryEntry{},
		GainCatalog: []ActionDefinition{
			{ID: "g1", Label: "Morning Ready", PointDelta: 5, IconRef: "sun", Variant: VariantSuccess, Size: SizeLarge},
			{ID: "g2", Label: "Evening Ready", PointDelta: 5, IconRef: "moon", Variant: VariantSuccess, Size: SizeLarge},
			{ID: "g3", Label: "Quick Shower", PointDelta: 3, IconRef: "shower-head", Variant: VariantNeutral, Size: SizeNormal},
			{ID: "g4", Label: "Grade 8", PointDelta: 3, IconRef: "star", Variant: VariantNeutral, Size: SizeNormal},
			{ID: "g5", Label: "Grade 9", PointDelta: 5, IconRef: "star", Variant: VariantSpecial, Size: SizeNormal},
			{ID: "g6", Label: "Grade 10", PointDelta: 8, IconRef: "trophy", Variant: VariantSpecial, Size: SizeNormal},
		},
		PenaltyCatalog: []ActionDefinition{
			{ID: "l1", Label: "Had to Repeat", PointDelta: -2, IconRef: "rotate-ccw", Variant: VariantDanger, Size: SizeNormal},
			{ID: "l2", Label: "Rude Reply", PointDelta: -2, IconRef: "frown", Variant: VariantDanger, Size: SizeNormal},
			{ID: "l3", Label: "Mess Left Out", PointDelta: -5, IconRef: "trash", Variant: VariantDanger, Size: SizeNormal},
			{ID: "l4", Label: "LIE", PointDelta: -50, IconRef: "skull", Variant: VariantDanger, Size: SizeNormal},
		},
		RewardCatalog: []ActionDefinition{
			{ID: "s1", Label: "20 min Screen Time", PointDelta: -20, IconRef: "gamepad", Variant: VariantNeutral, Size: SizeNormal},
			{ID: "s2", Label: "Skip One Chore", PointDelta: -15, IconRef: "sparkles", Variant: VariantNeutral, Size: SizeNormal},
			{ID: "s3", Label: "Roblox 25 min", PointDelta: -25, IconRef: "gamepad", Variant: VariantNeutral, Size: SizeNormal},
			{ID: "s4", Label: "Saturday Dinner Out", PointDelta: -50, IconRef: "utensils", Variant: VariantSpecial, Size: SizeNormal},
		},
	}
}
