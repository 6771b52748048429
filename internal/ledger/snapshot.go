package ledger

// Snapshot is one authoritative read of the remote document. Scalar
// fields are pointers so a field absent from the remote document stays
// distinguishable from a zero value; slices use nil for absence. Merge
// honors that presence: only fields carried by the snapshot overwrite.
type Snapshot struct {
	GroupLabel     *string
	GroupIconRef   *string
	Balance        *int
	History        []HistoryEntry
	GainCatalog    []ActionDefinition
	PenaltyCatalog []ActionDefinition
	RewardCatalog  []ActionDefinition
}

// Merge applies an inbound remote snapshot field by field. Present
// fields overwrite local state (the remote document is authoritative);
// absent fields are left untouched. History replaces wholesale when
// present and is re-sorted newest-first, then trimmed to HistoryCap.
func (s *SharedState) Merge(snap Snapshot) {
	if snap.GroupLabel != nil {
		s.GroupLabel = *snap.GroupLabel
	}
	if snap.GroupIconRef != nil {
		s.GroupIconRef = *snap.GroupIconRef
	}
	if snap.Balance != nil {
		s.Balance = *snap.Balance
	}
	if snap.History != nil {
		s.History = append([]HistoryEntry(nil), snap.History...)
		s.SortHistory()
		if len(s.History) > HistoryCap {
			s.History = s.History[:HistoryCap:HistoryCap]
		}
	}
	if snap.GainCatalog != nil {
		s.GainCatalog = normalizeAll(snap.GainCatalog)
	}
	if snap.PenaltyCatalog != nil {
		s.PenaltyCatalog = normalizeAll(snap.PenaltyCatalog)
	}
	if snap.RewardCatalog != nil {
		s.RewardCatalog = normalizeAll(snap.RewardCatalog)
	}
}

func normalizeAll(defs []ActionDefinition) []ActionDefinition {
	out := append([]ActionDefinition(nil), defs...)
	for i := range out {
		out[i].Normalize()
	}
	return out
}
