package match

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvp-08/willow/internal/scoring"
)

func rosterOf(id, name, prefix string, n int) scoring.Team {
	team := scoring.Team{ID: id, Name: name}
	for i := 1; i <= n; i++ {
		team.Players = append(team.Players, scoring.Player{
			ID:   fmt.Sprintf("%s%d", prefix, i),
			Name: fmt.Sprintf("%s %d", name, i),
		})
	}
	return team
}

func TestBuildScorecard(t *testing.T) {
	t.Parallel()
	m, err := scoring.NewMatch("match-1",
		rosterOf("team-a", "Avengers", "a", 11),
		rosterOf("team-b", "Blasters", "b", 11),
		20, "team-a", scoring.DecisionBat)
	require.NoError(t, err)
	require.NoError(t, m.StartInnings("a1", "a2", "b1"))

	ball := func(ev scoring.BallEvent) {
		require.NoError(t, m.RecordBall(ev))
	}
	ball(scoring.BallEvent{BatsmanID: "a1", BowlerID: "b1", Runs: 4})
	ball(scoring.BallEvent{BatsmanID: "a1", BowlerID: "b1",
		Wicket:        &scoring.WicketEvent{PlayerOutID: "a1", Type: scoring.DismissalCaught, FielderID: "b3"},
		NextBatsmanID: "a3"})
	ball(scoring.BallEvent{BatsmanID: "a3", BowlerID: "b1", Runs: 1})

	card := buildScorecard(m)
	assert.Equal(t, "match-1", card.MatchID)
	assert.Equal(t, "live", card.Status)
	require.Len(t, card.Innings, 1)

	inn := card.Innings[0]
	assert.Equal(t, 5, inn.Summary.Score)
	assert.Equal(t, 1, inn.Summary.Wickets)

	require.Len(t, inn.Batting, 3)
	a1 := inn.Batting[0]
	assert.Equal(t, "Avengers 1", a1.Name)
	assert.Equal(t, 4, a1.Runs)
	assert.Equal(t, 2, a1.Balls)
	assert.InDelta(t, 200.0, a1.StrikeRate, 0.001)
	assert.Equal(t, "c Blasters 3 b Blasters 1", a1.Dismissal)

	require.Len(t, inn.Bowling, 1)
	b1 := inn.Bowling[0]
	assert.Equal(t, 5, b1.Runs)
	assert.Equal(t, 1, b1.Wickets)
	assert.InDelta(t, 0.5, b1.Overs, 0.001)
	assert.InDelta(t, 10.0, b1.Economy, 0.001)

	require.Len(t, inn.FallOfWickets, 1)
	assert.Equal(t, 1, inn.FallOfWickets[0].Wicket)
	assert.Equal(t, 4, inn.FallOfWickets[0].Score)
}
