package holdem

// HasAction reports whether the legal-action list permits the given kind.
// Kinds are compared after boundary normalization, so entries sourced from
// either SDK enum generation match the same query.
func HasAction(legal []LegalAction, kind ActionKind) bool {
	_, ok := GetAction(legal, kind)
	return ok
}

// GetAction returns the first legal-action entry of the given kind in list
// order. Duplicates are not expected, but first-occurrence wins keeps the
// lookup deterministic when they appear.
func GetAction(legal []LegalAction, kind ActionKind) (LegalAction, bool) {
	if kind == KindUnknown {
		return LegalAction{}, false
	}
	for _, la := range legal {
		if la.Kind == kind {
			return la, true
		}
	}
	return LegalAction{}, false
}

// TurnIndex returns the action-turn index shared by the legal-action list.
// All entries for one player-turn carry the same index; a mismatch is a
// data-integrity warning for the caller to log, not a fatal error, so the
// first entry's index is returned either way.
func TurnIndex(legal []LegalAction) (index int, consistent bool) {
	if len(legal) == 0 {
		return 0, true
	}
	index = legal[0].Index
	for _, la := range legal[1:] {
		if la.Index != index {
			return index, false
		}
	}
	return index, true
}

// Availability is the capability-flag bundle the action surfaces consume.
// Every flag mirrors one server-declared legal action; nothing here is
// derived from game state beyond the list itself.
type Availability struct {
	CanFold       bool
	CanCheck      bool
	CanCall       bool
	CanBet        bool
	CanRaise      bool
	CanPostSmall  bool
	CanPostBig    bool
	CanAllIn      bool
	CanMuck       bool
	CanShow       bool
	CanSitOut     bool
	CanSitIn      bool
	CanDeal       bool
	CanJoin       bool
	CanLeave      bool
	TurnIndex     int
	IndexMismatch bool
}

// AvailabilityFrom maps a legal-action list to capability flags.
func AvailabilityFrom(legal []LegalAction) Availability {
	idx, consistent := TurnIndex(legal)
	return Availability{
		CanFold:       HasAction(legal, KindFold),
		CanCheck:      HasAction(legal, KindCheck),
		CanCall:       HasAction(legal, KindCall),
		CanBet:        HasAction(legal, KindBet),
		CanRaise:      HasAction(legal, KindRaise),
		CanPostSmall:  HasAction(legal, KindSmallBlind),
		CanPostBig:    HasAction(legal, KindBigBlind),
		CanAllIn:      HasAction(legal, KindAllIn),
		CanMuck:       HasAction(legal, KindMuck),
		CanShow:       HasAction(legal, KindShow),
		CanSitOut:     HasAction(legal, KindSitOut),
		CanSitIn:      HasAction(legal, KindSitIn),
		CanDeal:       HasAction(legal, KindDeal),
		CanJoin:       HasAction(legal, KindJoin),
		CanLeave:      HasAction(legal, KindLeave),
		TurnIndex:     idx,
		IndexMismatch: !consistent,
	}
}

// Allows reports whether the availability permits the given kind.
func (av Availability) Allows(kind ActionKind) bool {
	switch kind {
	case KindFold:
		return av.CanFold
	case KindCheck:
		return av.CanCheck
	case KindCall:
		return av.CanCall
	case KindBet:
		return av.CanBet
	case KindRaise:
		return av.CanRaise
	case KindSmallBlind:
		return av.CanPostSmall
	case KindBigBlind:
		return av.CanPostBig
	case KindAllIn:
		return av.CanAllIn
	case KindMuck:
		return av.CanMuck
	case KindShow:
		return av.CanShow
	case KindSitOut:
		return av.CanSitOut
	case KindSitIn:
		return av.CanSitIn
	case KindDeal:
		return av.CanDeal
	case KindJoin:
		return av.CanJoin
	case KindLeave:
		return av.CanLeave
	default:
		return false
	}
}
