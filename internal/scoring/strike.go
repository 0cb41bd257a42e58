package scoring

// rotationRuns returns the run count that drives strike rotation for a
// delivery: runs off the bat, or byes/leg-byes which the batsmen physically
// ran. Wide and no-ball penalty runs do not move the batsmen.
func rotationRuns(runs int, extra *Extra) int {
	if extra != nil {
		switch extra.Type {
		case ExtraBye, ExtraLegBye:
			return extra.Runs
		case ExtraWide, ExtraPenalty:
			return 0
		}
	}
	return runs
}

// rotateStrike updates the striker/non-striker pair after a delivery has
// been applied and any incoming batsman has taken the vacated position.
// The odd-run swap and the end-of-over swap stack: an odd single off the
// last ball of an over leaves the same batsman on strike.
func (m *Match) rotateStrike(runs int, extra *Extra, overComplete bool) {
	if rotationRuns(runs, extra)%2 == 1 {
		m.StrikerID, m.NonStrikerID = m.NonStrikerID, m.StrikerID
	}
	if overComplete {
		m.StrikerID, m.NonStrikerID = m.NonStrikerID, m.StrikerID
	}
}
