package tournament

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvp-08/willow/internal/scoring"
)

func groupTeam(id string, n int) scoring.Team {
	team := scoring.Team{ID: id, Name: id}
	for i := 1; i <= n; i++ {
		team.Players = append(team.Players, scoring.Player{ID: fmt.Sprintf("%s-p%d", id, i)})
	}
	return team
}

// fullOvers fabricates n completed overs plus ballsInLast legal deliveries
// of a final partial over.
func fullOvers(n, ballsInLast int) []scoring.Over {
	overs := make([]scoring.Over, 0, n+1)
	for i := 0; i < n; i++ {
		o := scoring.Over{Number: i + 1}
		for b := 0; b < 6; b++ {
			o.Balls = append(o.Balls, scoring.Ball{Number: b + 1})
		}
		overs = append(overs, o)
	}
	if ballsInLast > 0 {
		o := scoring.Over{Number: n + 1}
		for b := 0; b < ballsInLast; b++ {
			o.Balls = append(o.Balls, scoring.Ball{Number: b + 1})
		}
		overs = append(overs, o)
	}
	return overs
}

type inningsLine struct {
	teamID  string
	score   int
	wickets int
	overs   int
	balls   int
}

// fixture builds a finished group match from two innings lines.
func fixture(id string, oversLimit int, first, second inningsLine, winner string) *scoring.Match {
	other := func(teamID string) string {
		if teamID == first.teamID {
			return second.teamID
		}
		return first.teamID
	}
	m := &scoring.Match{
		ID:         id,
		TeamA:      groupTeam(first.teamID, 11),
		TeamB:      groupTeam(second.teamID, 11),
		OversLimit: oversLimit,
		Status:     scoring.StatusCompleted,
		Innings1: &scoring.Innings{
			BattingTeamID: first.teamID,
			BowlingTeamID: other(first.teamID),
			Score:         first.score,
			Wickets:       first.wickets,
			OversHistory:  fullOvers(first.overs, first.balls),
		},
		Innings2: &scoring.Innings{
			BattingTeamID: second.teamID,
			BowlingTeamID: other(second.teamID),
			Score:         second.score,
			Wickets:       second.wickets,
			OversHistory:  fullOvers(second.overs, second.balls),
		},
		WinnerTeamID: winner,
	}
	return m
}

func entryFor(t *testing.T, entries []PointsTableEntry, teamID string) PointsTableEntry {
	t.Helper()
	for _, e := range entries {
		if e.TeamID == teamID {
			return e
		}
	}
	t.Fatalf("no entry for team %s", teamID)
	return PointsTableEntry{}
}

func TestPointsCredit(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(DefaultPointsConfig())
	teams := []string{"alpha", "bravo", "charlie"}

	win := fixture("m1", 20,
		inningsLine{"alpha", 180, 4, 20, 0},
		inningsLine{"bravo", 160, 7, 20, 0},
		"alpha")
	tie := fixture("m2", 20,
		inningsLine{"alpha", 150, 6, 20, 0},
		inningsLine{"charlie", 150, 9, 20, 0},
		"")

	table := agg.Recompute(teams, []*scoring.Match{win, tie})

	alpha := entryFor(t, table, "alpha")
	assert.Equal(t, 2, alpha.MatchesPlayed)
	assert.Equal(t, 1, alpha.Wins)
	assert.Equal(t, 1, alpha.Ties)
	assert.Equal(t, 3, alpha.Points)

	bravo := entryFor(t, table, "bravo")
	assert.Equal(t, 1, bravo.Losses)
	assert.Equal(t, 0, bravo.Points)

	charlie := entryFor(t, table, "charlie")
	assert.Equal(t, 1, charlie.Ties)
	assert.Equal(t, 1, charlie.Points)
}

func TestCustomPointsConfig(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(PointsConfig{Win: 3, Loss: 0, Tie: 1, NoResult: 1})

	win := fixture("m1", 20,
		inningsLine{"alpha", 180, 4, 20, 0},
		inningsLine{"bravo", 160, 7, 20, 0},
		"alpha")
	table := agg.Recompute([]string{"alpha", "bravo"}, []*scoring.Match{win})
	assert.Equal(t, 3, entryFor(t, table, "alpha").Points)
}

func TestAbandonedMatchIsNoResult(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(DefaultPointsConfig())

	washout := fixture("m1", 20,
		inningsLine{"alpha", 90, 2, 11, 3},
		inningsLine{"bravo", 0, 0, 0, 0},
		"")
	washout.Status = scoring.StatusAbandoned

	table := agg.Recompute([]string{"alpha", "bravo"}, []*scoring.Match{washout})
	alpha := entryFor(t, table, "alpha")
	assert.Equal(t, 1, alpha.NoResults)
	assert.Equal(t, 1, alpha.Points)
	// Abandoned matches never move net run rate.
	assert.Zero(t, alpha.NetRunRate)
}

func TestNetRunRate(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(DefaultPointsConfig())

	// alpha 180/20 overs, bravo 160/20 overs: NRR 1.0 and -1.0.
	m := fixture("m1", 20,
		inningsLine{"alpha", 180, 4, 20, 0},
		inningsLine{"bravo", 160, 7, 20, 0},
		"alpha")
	table := agg.Recompute([]string{"alpha", "bravo"}, []*scoring.Match{m})

	assert.InDelta(t, 1.0, entryFor(t, table, "alpha").NetRunRate, 0.001)
	assert.InDelta(t, -1.0, entryFor(t, table, "bravo").NetRunRate, 0.001)
}

func TestNetRunRateAllOutUsesFullOvers(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(DefaultPointsConfig())

	// bravo all out for 100 in 15 of 20 overs: the NRR denominator is the
	// full 20 overs, not 15.
	m := fixture("m1", 20,
		inningsLine{"alpha", 180, 4, 20, 0},
		inningsLine{"bravo", 100, 10, 15, 0},
		"alpha")
	table := agg.Recompute([]string{"alpha", "bravo"}, []*scoring.Match{m})

	// alpha: 180/20 - 100/20 = 4.0
	assert.InDelta(t, 4.0, entryFor(t, table, "alpha").NetRunRate, 0.001)
	assert.InDelta(t, -4.0, entryFor(t, table, "bravo").NetRunRate, 0.001)
}

func TestNetRunRatePartialOvers(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(DefaultPointsConfig())

	// Successful chase in 18.3 overs: denominator 18.5 in decimal overs.
	m := fixture("m1", 20,
		inningsLine{"alpha", 160, 5, 20, 0},
		inningsLine{"bravo", 161, 4, 18, 3},
		"bravo")
	table := agg.Recompute([]string{"alpha", "bravo"}, []*scoring.Match{m})

	want := 161.0/18.5 - 160.0/20.0
	assert.InDelta(t, want, entryFor(t, table, "bravo").NetRunRate, 0.001)
}

func TestApplyResultRejectsUnfinishedMatches(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(DefaultPointsConfig())

	live := fixture("m1", 20,
		inningsLine{"alpha", 90, 2, 11, 3},
		inningsLine{"bravo", 0, 0, 0, 0},
		"")
	live.Status = scoring.StatusLive

	_, err := agg.ApplyResult([]string{"alpha", "bravo"}, live, nil)
	assert.ErrorIs(t, err, scoring.ErrAggregation)

	done := fixture("m2", 20,
		inningsLine{"alpha", 180, 4, 20, 0},
		inningsLine{"bravo", 160, 7, 20, 0},
		"alpha")
	_, err = agg.ApplyResult([]string{"alpha", "bravo"}, done, []*scoring.Match{live})
	assert.ErrorIs(t, err, scoring.ErrAggregation)
}

func TestRankOrdering(t *testing.T) {
	t.Parallel()
	entries := []PointsTableEntry{
		{TeamID: "alpha", Points: 4, NetRunRate: 0.5},
		{TeamID: "bravo", Points: 6, NetRunRate: -0.2},
		{TeamID: "charlie", Points: 4, NetRunRate: 1.1},
	}
	ranked := Rank(entries, nil)
	require.Len(t, ranked, 3)
	assert.Equal(t, "bravo", ranked[0].TeamID)
	assert.Equal(t, "charlie", ranked[1].TeamID, "net run rate breaks the points tie")
	assert.Equal(t, "alpha", ranked[2].TeamID)
}

func TestRankHeadToHeadTiebreak(t *testing.T) {
	t.Parallel()
	entries := []PointsTableEntry{
		{TeamID: "alpha", Points: 4, NetRunRate: 0.8},
		{TeamID: "bravo", Points: 4, NetRunRate: 0.8},
	}
	meeting := fixture("m1", 20,
		inningsLine{"bravo", 150, 5, 20, 0},
		inningsLine{"alpha", 140, 8, 20, 0},
		"bravo")

	ranked := Rank(entries, []*scoring.Match{meeting})
	assert.Equal(t, "bravo", ranked[0].TeamID)
	assert.Equal(t, "alpha", ranked[1].TeamID)
}
