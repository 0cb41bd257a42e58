package scoring

// bowlerCreditedDismissals are the dismissal kinds added to the bowler's
// wicket tally.
var bowlerCreditedDismissals = map[DismissalType]bool{
	DismissalBowled:    true,
	DismissalCaught:    true,
	DismissalLBW:       true,
	DismissalStumped:   true,
	DismissalHitWicket: true,
}

// extraCompatibleDismissals maps each dismissal kind to the extra types it
// may coincide with. Kinds absent from the map require a clean delivery.
// Run-outs and the batsman-conduct dismissals can happen on anything.
var extraCompatibleDismissals = map[DismissalType]map[ExtraType]bool{
	DismissalRunOut:      {ExtraWide: true, ExtraNoBall: true, ExtraBye: true, ExtraLegBye: true, ExtraPenalty: true},
	DismissalObstructing: {ExtraWide: true, ExtraNoBall: true, ExtraBye: true, ExtraLegBye: true, ExtraPenalty: true},
	DismissalRetiredOut:  {ExtraWide: true, ExtraNoBall: true, ExtraBye: true, ExtraLegBye: true, ExtraPenalty: true},
	DismissalTimedOut:    {ExtraWide: true, ExtraNoBall: true, ExtraBye: true, ExtraLegBye: true, ExtraPenalty: true},
	DismissalStumped:     {ExtraWide: true},
	DismissalHitWicket:   {ExtraWide: true},
}

// wicketAllowedWithExtra reports whether a dismissal kind can coincide with
// the given extra (nil extra means a clean delivery, always allowed).
func wicketAllowedWithExtra(kind DismissalType, extra *Extra) bool {
	if extra == nil {
		return true
	}
	allowed, ok := extraCompatibleDismissals[kind]
	if !ok {
		return false
	}
	return allowed[extra.Type]
}

// applyWicket marks the dismissed batsman out, records the wicket on their
// batting line and appends it to the fall-of-wickets sequence. The wicket's
// TeamScore must already carry the score per the scoring convention (runs
// off the dismissal ball are excluded except completed run-out runs).
func (inn *Innings) applyWicket(w Wicket) {
	bs := inn.batsman(w.PlayerOutID)
	bs.Status = BatsmanOut
	wc := w
	bs.Wicket = &wc
	inn.FallOfWickets = append(inn.FallOfWickets, w)
	inn.Wickets++
}
