package ledger

import (
	"fmt"
	"sort"
	"time"

	"famboard/internal/util"
)

// Apply records one transaction: builds a fresh history entry, moves the
// balance, prepends the entry, and trims history to HistoryCap. It
// returns the new entry and any entries evicted by the trim. Apply never
// blocks a spend that would drive the balance negative; eligibility is
// the caller's affordance (see CanAfford).
func (s *SharedState) Apply(def ActionDefinition, kind Kind, now time.Time) (HistoryEntry, []HistoryEntry) {
	entry := HistoryEntry{
		ID:         util.NewID("txn"),
		Label:      def.Label,
		PointDelta: def.PointDelta,
		OccurredAt: now,
		Kind:       kind,
	}
	s.Balance += def.PointDelta
	s.History = append([]HistoryEntry{entry}, s.History...)

	var evicted []HistoryEntry
	if len(s.History) > HistoryCap {
		evicted = append(evicted, s.History[HistoryCap:]...)
		s.History = s.History[:HistoryCap:HistoryCap]
	}
	return entry, evicted
}

// CanAfford reports whether a spend of def would keep the balance at or
// above zero.
func (s *SharedState) CanAfford(def ActionDefinition) bool {
	cost := def.PointDelta
	if cost < 0 {
		cost = -cost
	}
	return s.Balance >= cost
}

// Catalog returns the catalog selected by kind. An invalid kind is a
// defect in the calling layer, not a runtime condition.
func (s *SharedState) Catalog(kind CatalogKind) []ActionDefinition {
	return *s.catalog(kind)
}

func (s *SharedState) catalog(kind CatalogKind) *[]ActionDefinition {
	switch kind {
	case CatalogGain:
		return &s.GainCatalog
	case CatalogPenalty:
		return &s.PenaltyCatalog
	case CatalogReward:
		return &s.RewardCatalog
	default:
		panic(fmt.Sprintf("ledger: invalid catalog kind %q", kind))
	}
}

// Upsert replaces the definition with a matching id in place, preserving
// its position, or appends it when the id is new.
func (s *SharedState) Upsert(kind CatalogKind, def ActionDefinition) {
	def.Normalize()
	list := s.catalog(kind)
	for i, existing := range *list {
		if existing.ID == def.ID {
			(*list)[i] = def
			return
		}
	}
	*list = append(*list, def)
}

// Remove filters id out of the selected catalog. Removing an absent id
// is a no-op.
func (s *SharedState) Remove(kind CatalogKind, id string) {
	list := s.catalog(kind)
	kept := (*list)[:0]
	for _, def := range *list {
		if def.ID != id {
			kept = append(kept, def)
		}
	}
	*list = kept
}

// SortHistory orders history newest-first. The sort is stable so ties on
// OccurredAt keep a deterministic order.
func (s *SharedState) SortHistory() {
	sort.SliceStable(s.History, func(i, j int) bool {
		return s.History[i].OccurredAt.After(s.History[j].OccurredAt)
	})
}

// Clone returns a deep copy safe to hand outside the owning goroutine.
func (s *SharedState) Clone() SharedState {
	out := *s
	out.History = append([]HistoryEntry(nil), s.History...)
	out.GainCatalog = append([]ActionDefinition(nil), s.GainCatalog...)
	out.PenaltyCatalog = append([]ActionDefinition(nil), s.PenaltyCatalog...)
	out.RewardCatalog = append([]ActionDefinition(nil), s.RewardCatalog...)
	return out
}
