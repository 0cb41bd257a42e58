package tournament

import (
	"fmt"
	"sort"

	"github.com/dhruvp-08/willow/internal/scoring"
)

// PointsConfig holds the per-result point values for a tournament stage.
// Competitions differ, so these are configurable rather than hard-coded.
type PointsConfig struct {
	Win      int `json:"win"`
	Loss     int `json:"loss"`
	Tie      int `json:"tie"`
	NoResult int `json:"no_result"`
}

// DefaultPointsConfig is the common 2/0/1/1 scheme.
func DefaultPointsConfig() PointsConfig {
	return PointsConfig{Win: 2, Loss: 0, Tie: 1, NoResult: 1}
}

// PointsTableEntry is one team's standing line within a group.
type PointsTableEntry struct {
	TeamID        string  `json:"team_id"`
	MatchesPlayed int     `json:"matches_played"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	NoResults     int     `json:"no_results"`
	Points        int     `json:"points"`
	NetRunRate    float64 `json:"net_run_rate"`
}

// Aggregator folds finished matches into group standings.
type Aggregator struct {
	Points PointsConfig
}

// NewAggregator builds an aggregator with the given point values.
func NewAggregator(cfg PointsConfig) Aggregator {
	return Aggregator{Points: cfg}
}

// ApplyResult folds one finished match into the table. Net run rate is a
// whole-stage quantity, so the prior finished matches of the group are
// required to recompute it rather than patch it incrementally.
func (a Aggregator) ApplyResult(teamIDs []string, match *scoring.Match, prior []*scoring.Match) ([]PointsTableEntry, error) {
	if match.Status != scoring.StatusCompleted && match.Status != scoring.StatusAbandoned {
		return nil, fmt.Errorf("%w: match %s is %s, not finished", scoring.ErrAggregation, match.ID, match.Status)
	}
	for _, m := range prior {
		if m.Status != scoring.StatusCompleted && m.Status != scoring.StatusAbandoned {
			return nil, fmt.Errorf("%w: prior match %s is %s, not finished", scoring.ErrAggregation, m.ID, m.Status)
		}
	}
	return a.Recompute(teamIDs, append(append([]*scoring.Match{}, prior...), match)), nil
}

// Recompute rebuilds the whole table from the group's finished matches.
func (a Aggregator) Recompute(teamIDs []string, matches []*scoring.Match) []PointsTableEntry {
	entries := make([]PointsTableEntry, len(teamIDs))
	for i, id := range teamIDs {
		entries[i] = PointsTableEntry{TeamID: id}
	}
	byTeam := make(map[string]*PointsTableEntry, len(entries))
	for i := range entries {
		byTeam[entries[i].TeamID] = &entries[i]
	}

	for _, m := range matches {
		a.creditMatch(byTeam, m)
	}
	for id, e := range byTeam {
		e.NetRunRate = netRunRate(id, matches)
	}
	return entries
}

func (a Aggregator) creditMatch(byTeam map[string]*PointsTableEntry, m *scoring.Match) {
	ea, eb := byTeam[m.TeamA.ID], byTeam[m.TeamB.ID]
	if ea == nil || eb == nil {
		return // not a fixture of this group
	}
	ea.MatchesPlayed++
	eb.MatchesPlayed++
	switch {
	case m.Status == scoring.StatusAbandoned:
		ea.NoResults++
		eb.NoResults++
		ea.Points += a.Points.NoResult
		eb.Points += a.Points.NoResult
	case m.WinnerTeamID == "":
		ea.Ties++
		eb.Ties++
		ea.Points += a.Points.Tie
		eb.Points += a.Points.Tie
	case m.WinnerTeamID == m.TeamA.ID:
		ea.Wins++
		eb.Losses++
		ea.Points += a.Points.Win
		eb.Points += a.Points.Loss
	default:
		eb.Wins++
		ea.Losses++
		eb.Points += a.Points.Win
		ea.Points += a.Points.Loss
	}
}

// netRunRate accumulates a team's run rate for and against across every
// completed match it played in the stage. An all-out innings counts the
// full allotted overs, not the overs actually faced. Abandoned matches do
// not touch NRR.
func netRunRate(teamID string, matches []*scoring.Match) float64 {
	var runsFor, runsAgainst int
	var oversFor, oversAgainst float64
	for _, m := range matches {
		if m.Status != scoring.StatusCompleted {
			continue
		}
		if m.TeamA.ID != teamID && m.TeamB.ID != teamID {
			continue
		}
		for _, inn := range []*scoring.Innings{m.Innings1, m.Innings2} {
			if inn == nil {
				continue
			}
			batting := m.TeamA
			if m.TeamB.ID == inn.BattingTeamID {
				batting = m.TeamB
			}
			overs := inn.OversBowled()
			if inn.AllOut(len(batting.Players)) {
				overs = float64(m.OversLimit)
			}
			if inn.BattingTeamID == teamID {
				runsFor += inn.Score
				oversFor += overs
			} else {
				runsAgainst += inn.Score
				oversAgainst += overs
			}
		}
	}
	var nrr float64
	if oversFor > 0 {
		nrr = float64(runsFor) / oversFor
	}
	if oversAgainst > 0 {
		nrr -= float64(runsAgainst) / oversAgainst
	}
	return nrr
}

// Rank orders the table by points then net run rate, breaking residual
// ties by head-to-head result when one exists. Unresolvable ties keep
// their relative order (equal rank).
func Rank(entries []PointsTableEntry, matches []*scoring.Match) []PointsTableEntry {
	ranked := append([]PointsTableEntry{}, entries...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.NetRunRate != b.NetRunRate {
			return a.NetRunRate > b.NetRunRate
		}
		return headToHead(a.TeamID, b.TeamID, matches) > 0
	})
	return ranked
}

// headToHead returns >0 when a beat b more often than b beat a across their
// completed meetings, <0 for the reverse, 0 when undefined.
func headToHead(a, b string, matches []*scoring.Match) int {
	score := 0
	for _, m := range matches {
		if m.Status != scoring.StatusCompleted {
			continue
		}
		if (m.TeamA.ID != a || m.TeamB.ID != b) && (m.TeamA.ID != b || m.TeamB.ID != a) {
			continue
		}
		switch m.WinnerTeamID {
		case a:
			score++
		case b:
			score--
		}
	}
	return score
}
