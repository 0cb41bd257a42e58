package scoring

import "time"

// BallEvent is one ball-entry request. Runs are off the bat only; extra
// runs ride on Extra. NextBatsmanID names the incoming batsman when the
// event carries a wicket that leaves the innings alive.
type BallEvent struct {
	BatsmanID     string       `json:"batsman_id"`
	BowlerID      string       `json:"bowler_id"`
	Runs          int          `json:"runs"`
	Extra         *Extra       `json:"extra,omitempty"`
	Wicket        *WicketEvent `json:"wicket,omitempty"`
	NextBatsmanID string       `json:"next_batsman_id,omitempty"`
	Timestamp     time.Time    `json:"timestamp,omitempty"`
}

// WicketEvent is the dismissal part of a ball-entry request. The over/ball
// coordinates and team score are derived at apply time, never supplied.
type WicketEvent struct {
	PlayerOutID string        `json:"player_out_id"`
	Type        DismissalType `json:"type"`
	FielderID   string        `json:"fielder_id,omitempty"`
}

// validateBall rejects a rule-violating event before any state is touched,
// so an accepted event always applies cleanly (all-or-nothing).
func (m *Match) validateBall(ev BallEvent) error {
	switch m.Status {
	case StatusCompleted, StatusAbandoned:
		return ErrMatchClosed
	case StatusUpcoming:
		return inningsStatef("match has not started")
	}

	inn := m.currentInnings()
	if inn == nil {
		return inningsStatef("no innings in progress")
	}
	batting, bowling := m.teamsFor(inn)
	if inn.IsComplete(m.OversLimit, len(batting.Players), m.targetFor(inn)) {
		return invalidBallf("innings is already over")
	}
	if inn.Wickets >= maxWicketsFor(len(batting.Players)) {
		return invalidBallf("innings has no wickets remaining")
	}

	if ev.BatsmanID != m.StrikerID && ev.BatsmanID != m.NonStrikerID {
		return invalidBallf("batsman %s is not at the crease", ev.BatsmanID)
	}
	if bowling.Player(ev.BowlerID) == nil {
		return rosterf("bowler %s is not in the bowling side", ev.BowlerID)
	}
	if ev.Runs < 0 {
		return invalidBallf("negative runs")
	}

	if ev.Extra != nil {
		switch ev.Extra.Type {
		case ExtraWide, ExtraNoBall, ExtraBye, ExtraLegBye, ExtraPenalty:
		default:
			return invalidBallf("unknown extra type %q", ev.Extra.Type)
		}
		if ev.Extra.Runs < 1 {
			return invalidBallf("extra must carry at least one run")
		}
		// Only a no-ball can also have runs off the bat.
		if ev.Extra.Type != ExtraNoBall && ev.Runs != 0 {
			return invalidBallf("%s cannot include runs off the bat", ev.Extra.Type)
		}
	}

	// A fresh over may not be bowled by the previous over's bowler.
	if inn.currentOver() == nil {
		if n := len(inn.OversHistory); n > 0 && inn.OversHistory[n-1].BowlerID == ev.BowlerID {
			return invalidBallf("bowler %s cannot bowl consecutive overs", ev.BowlerID)
		}
	}

	if ev.Wicket != nil {
		w := ev.Wicket
		if w.PlayerOutID != m.StrikerID && w.PlayerOutID != m.NonStrikerID {
			return invalidBallf("dismissed player %s is not at the crease", w.PlayerOutID)
		}
		if !wicketAllowedWithExtra(w.Type, ev.Extra) {
			return invalidBallf("%s cannot coincide with a %s", w.Type, ev.Extra.Type)
		}
		if bowlerCreditedDismissals[w.Type] && ev.Runs != 0 {
			return invalidBallf("%s cannot include runs off the bat", w.Type)
		}
		if w.FielderID != "" && bowling.Player(w.FielderID) == nil {
			return rosterf("fielder %s is not in the bowling side", w.FielderID)
		}
		lastWicket := inn.Wickets+1 >= maxWicketsFor(len(batting.Players))
		if lastWicket {
			if ev.NextBatsmanID != "" {
				return invalidBallf("no batsman can replace the last wicket")
			}
		} else {
			if ev.NextBatsmanID == "" {
				return invalidBallf("wicket requires an incoming batsman")
			}
			if batting.Player(ev.NextBatsmanID) == nil {
				return rosterf("incoming batsman %s is not in the batting side", ev.NextBatsmanID)
			}
			if inn.batsman(ev.NextBatsmanID) != nil {
				return invalidBallf("batsman %s has already batted", ev.NextBatsmanID)
			}
		}
	} else if ev.NextBatsmanID != "" {
		return invalidBallf("incoming batsman given without a wicket")
	}

	return nil
}

// applyBall appends the delivery to the log and folds it into every
// dependent aggregate. Callers must have validated the event.
func (m *Match) applyBall(ev BallEvent) {
	inn := m.currentInnings()

	over := inn.currentOver()
	if over == nil {
		inn.OversHistory = append(inn.OversHistory, Over{
			Number:   len(inn.OversHistory) + 1,
			BowlerID: ev.BowlerID,
		})
		over = &inn.OversHistory[len(inn.OversHistory)-1]
		if inn.bowler(ev.BowlerID) == nil {
			inn.Bowlers = append(inn.Bowlers, BowlerScore{PlayerID: ev.BowlerID})
		}
	}

	extraRuns := 0
	if ev.Extra != nil {
		extraRuns = ev.Extra.Runs
	}
	total := ev.Runs + extraRuns
	legal := ev.Extra == nil || (ev.Extra.Type != ExtraWide && ev.Extra.Type != ExtraNoBall)

	ball := Ball{
		Number:        over.LegalBalls() + 1,
		BowlerID:      ev.BowlerID,
		BatsmanID:     ev.BatsmanID,
		Runs:          ev.Runs,
		Extra:         ev.Extra,
		NextBatsmanID: ev.NextBatsmanID,
		Timestamp:     ev.Timestamp,
	}
	if ball.Timestamp.IsZero() {
		ball.Timestamp = time.Now().UTC()
	}

	// Fall-of-wicket score is captured before the ball's runs are credited,
	// except a run-out where the runs completed beforehand count.
	if ev.Wicket != nil {
		fowScore := inn.Score
		if ev.Wicket.Type == DismissalRunOut {
			fowScore += total
		}
		ball.Wicket = &Wicket{
			PlayerOutID: ev.Wicket.PlayerOutID,
			Type:        ev.Wicket.Type,
			FielderID:   ev.Wicket.FielderID,
			BowlerID:    ev.BowlerID,
			Over:        over.Number,
			Ball:        ball.Number,
			TeamScore:   fowScore,
		}
	}

	inn.Score += total
	if ev.Extra != nil {
		inn.Extras.Total += extraRuns
		switch ev.Extra.Type {
		case ExtraWide:
			inn.Extras.Wides += extraRuns
		case ExtraNoBall:
			inn.Extras.NoBalls += extraRuns
		case ExtraBye:
			inn.Extras.Byes += extraRuns
		case ExtraLegBye:
			inn.Extras.LegByes += extraRuns
		case ExtraPenalty:
			inn.Extras.Penalties += extraRuns
		}
	}

	bat := inn.batsman(ev.BatsmanID)
	bat.Runs += ev.Runs
	if ev.Extra == nil || ev.Extra.Type != ExtraWide {
		bat.Balls++ // a no-ball still counts as a ball faced, a wide does not
	}
	switch ev.Runs {
	case 4:
		bat.Fours++
	case 6:
		bat.Sixes++
	}

	bwl := inn.bowler(ev.BowlerID)
	if legal {
		bwl.LegalBalls++
	}
	bwl.RunsConceded += bowlerConceded(ev.Runs, ev.Extra)

	if ball.Wicket != nil {
		inn.applyWicket(*ball.Wicket)
		if bowlerCreditedDismissals[ball.Wicket.Type] {
			bwl.Wickets++
		}
	}

	over.Balls = append(over.Balls, ball)
	over.Runs += total
	overComplete := over.IsComplete()
	if overComplete && maidenOver(over) {
		bwl.Maidens++
	}

	// Partnership for the pair at the crease when the ball was bowled.
	p := &inn.Partnerships[len(inn.Partnerships)-1]
	p.Runs += total
	if legal {
		p.Balls++
	}

	if ball.Wicket != nil {
		survivor := m.StrikerID
		if ball.Wicket.PlayerOutID == m.StrikerID {
			survivor = m.NonStrikerID
		}
		if ev.NextBatsmanID != "" {
			inn.Batsmen = append(inn.Batsmen, BatsmanScore{
				PlayerID: ev.NextBatsmanID,
				Status:   BatsmanNotOut,
			})
			if ball.Wicket.PlayerOutID == m.StrikerID {
				m.StrikerID = ev.NextBatsmanID
			} else {
				m.NonStrikerID = ev.NextBatsmanID
			}
			inn.Partnerships = append(inn.Partnerships, Partnership{
				Batsman1ID: survivor,
				Batsman2ID: ev.NextBatsmanID,
			})
		} else {
			// All out: the dismissed batsman's end stays vacant.
			if ball.Wicket.PlayerOutID == m.StrikerID {
				m.StrikerID = ""
			} else {
				m.NonStrikerID = ""
			}
		}
	}

	m.rotateStrike(ev.Runs, ev.Extra, overComplete)
	m.CurrentBowlerID = ev.BowlerID
}

// bowlerConceded is the portion of a delivery's runs charged to the bowler:
// runs off the bat plus wides and no-balls. Byes, leg-byes and penalties
// are not the bowler's.
func bowlerConceded(runs int, extra *Extra) int {
	if extra != nil && (extra.Type == ExtraWide || extra.Type == ExtraNoBall) {
		return runs + extra.Runs
	}
	return runs
}

// maidenOver reports whether a completed over conceded nothing off the
// bowler. Byes and leg-byes do not break a maiden.
func maidenOver(o *Over) bool {
	for i := range o.Balls {
		if bowlerConceded(o.Balls[i].Runs, o.Balls[i].Extra) > 0 {
			return false
		}
	}
	return true
}
