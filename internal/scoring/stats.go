package scoring

// Pure derivations over counters. Nothing here is stored by the core;
// aggregates are recomputed from the counters whenever needed.

// StrikeRate is runs per hundred balls faced, 0 when no ball was faced.
func StrikeRate(runs, ballsFaced int) float64 {
	if ballsFaced == 0 {
		return 0
	}
	return float64(runs) / float64(ballsFaced) * 100
}

// BattingAverage is runs per dismissal. The second return is false when the
// player was never dismissed, in which case the average is undefined.
func BattingAverage(runs, dismissals int) (float64, bool) {
	if dismissals == 0 {
		return 0, false
	}
	return float64(runs) / float64(dismissals), true
}

// Economy is runs conceded per over, with overs as legal balls over six.
func Economy(runsConceded, legalBalls int) float64 {
	if legalBalls == 0 {
		return 0
	}
	return float64(runsConceded) / (float64(legalBalls) / float64(ballsPerOver))
}

// BetterBowling reports whether figures (w1, r1) beat (w2, r2):
// more wickets first, fewer runs conceded as the tiebreak.
func BetterBowling(w1, r1, w2, r2 int) bool {
	if w1 != w2 {
		return w1 > w2
	}
	return r1 < r2
}

// dismissedInInnings reports whether the batting line counts as a dismissal
// for averaging. Retired hurt and carrying the bat through do not.
func dismissedInInnings(bs *BatsmanScore) bool {
	return bs.Status == BatsmanOut
}

// AggregateBatting folds a player's batting lines across the given
// completed matches into a career record. It is a full recomputation, run
// by the post-match aggregation step rather than mutated ball-by-ball.
func AggregateBatting(playerID string, matches []*Match) BattingStats {
	var stats BattingStats
	for _, m := range matches {
		if m.Status != StatusCompleted {
			continue
		}
		played := false
		for _, inn := range []*Innings{m.Innings1, m.Innings2} {
			if inn == nil {
				continue
			}
			bs := inn.batsman(playerID)
			if bs == nil {
				continue
			}
			played = true
			stats.Innings++
			stats.Runs += bs.Runs
			stats.BallsFaced += bs.Balls
			stats.Fours += bs.Fours
			stats.Sixes += bs.Sixes
			if dismissedInInnings(bs) {
				stats.Dismissals++
			}
			if bs.Runs >= 100 {
				stats.Hundreds++
			} else if bs.Runs >= 50 {
				stats.Fifties++
			}
			if bs.Runs > stats.HighestScore {
				stats.HighestScore = bs.Runs
			}
		}
		if played || playedInMatch(playerID, m) {
			stats.Matches++
		}
	}
	stats.Average, stats.HasAverage = BattingAverage(stats.Runs, stats.Dismissals)
	stats.StrikeRate = StrikeRate(stats.Runs, stats.BallsFaced)
	return stats
}

// AggregateBowling folds a player's bowling lines across the given
// completed matches into a career record.
func AggregateBowling(playerID string, matches []*Match) BowlingStats {
	var stats BowlingStats
	for _, m := range matches {
		if m.Status != StatusCompleted {
			continue
		}
		bowled := false
		for _, inn := range []*Innings{m.Innings1, m.Innings2} {
			if inn == nil {
				continue
			}
			bw := inn.bowler(playerID)
			if bw == nil || (bw.LegalBalls == 0 && bw.RunsConceded == 0) {
				continue
			}
			bowled = true
			stats.Innings++
			stats.BallsBowled += bw.LegalBalls
			stats.RunsConceded += bw.RunsConceded
			stats.Wickets += bw.Wickets
			if stats.Innings == 1 || BetterBowling(bw.Wickets, bw.RunsConceded, stats.BestWickets, stats.BestRuns) {
				stats.BestWickets = bw.Wickets
				stats.BestRuns = bw.RunsConceded
			}
		}
		if bowled || playedInMatch(playerID, m) {
			stats.Matches++
		}
	}
	stats.Economy = Economy(stats.RunsConceded, stats.BallsBowled)
	return stats
}

// playedInMatch reports whether the player appears on either roster of a
// match, which counts toward the matches-played tally even without a
// batting or bowling line.
func playedInMatch(playerID string, m *Match) bool {
	return m.TeamA.Player(playerID) != nil || m.TeamB.Player(playerID) != nil
}
