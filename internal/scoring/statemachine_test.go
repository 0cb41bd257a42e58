package scoring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(t *testing.T, m *Match) string {
	t.Helper()
	b, err := json.Marshal(m)
	require.NoError(t, err)
	return string(b)
}

// bowlOver records the given per-ball runs off the current striker.
func bowlOver(t *testing.T, m *Match, bowlerID string, runs ...int) {
	t.Helper()
	for _, r := range runs {
		mustBall(t, m, bat(m.StrikerID, bowlerID, r))
	}
}

func TestNewMatchValidation(t *testing.T) {
	t.Parallel()
	teamA := sideTeam("team-a", "Avengers", "a", 11)
	teamB := sideTeam("team-b", "Blasters", "b", 11)

	_, err := NewMatch("m", teamA, teamA, 20, "team-a", DecisionBat)
	assert.Error(t, err)

	_, err = NewMatch("m", teamA, teamB, 0, "team-a", DecisionBat)
	assert.Error(t, err)

	_, err = NewMatch("m", teamA, teamB, 20, "team-c", DecisionBat)
	assert.ErrorIs(t, err, ErrRoster)

	_, err = NewMatch("m", teamA, teamB, 20, "team-a", TossDecision("field"))
	assert.Error(t, err)

	m, err := NewMatch("m", teamA, teamB, 20, "team-a", DecisionBowl)
	require.NoError(t, err)
	assert.Equal(t, StatusUpcoming, m.Status)
	assert.Nil(t, m.Innings1)
}

func TestTossDecidesBattingOrder(t *testing.T) {
	t.Parallel()
	teamA := sideTeam("team-a", "Avengers", "a", 11)
	teamB := sideTeam("team-b", "Blasters", "b", 11)

	m, err := NewMatch("m", teamA, teamB, 20, "team-b", DecisionBowl)
	require.NoError(t, err)
	require.NoError(t, m.StartInnings("a1", "a2", "b1"))
	assert.Equal(t, "team-a", m.Innings1.BattingTeamID)
	assert.Equal(t, "team-b", m.Innings1.BowlingTeamID)
}

func TestRecordingBeforeStartRejected(t *testing.T) {
	t.Parallel()
	m, err := NewMatch("m",
		sideTeam("team-a", "Avengers", "a", 11),
		sideTeam("team-b", "Blasters", "b", 11),
		20, "team-a", DecisionBat)
	require.NoError(t, err)

	err = m.RecordBall(bat("a1", "b1", 1))
	assert.ErrorIs(t, err, ErrInningsState)
}

func TestStartInningsValidation(t *testing.T) {
	t.Parallel()
	m, err := NewMatch("m",
		sideTeam("team-a", "Avengers", "a", 11),
		sideTeam("team-b", "Blasters", "b", 11),
		20, "team-a", DecisionBat)
	require.NoError(t, err)

	assert.ErrorIs(t, m.StartInnings("a1", "a1", "b1"), ErrInningsState)
	assert.ErrorIs(t, m.StartInnings("b1", "a2", "b1"), ErrRoster)
	assert.ErrorIs(t, m.StartInnings("a1", "a2", "a3"), ErrRoster)

	require.NoError(t, m.StartInnings("a1", "a2", "b1"))
	assert.Equal(t, StatusLive, m.Status)
	assert.Equal(t, 1, m.CurrentInnings)

	// Second innings cannot open while the first is in progress.
	err = m.StartInnings("b1", "b2", "a1")
	assert.ErrorIs(t, err, ErrInningsState)
}

func TestTargetIsFirstInningsScorePlusOne(t *testing.T) {
	t.Parallel()
	m := newLiveMatch(t, 1, 3)
	bowlOver(t, m, "b1", 2, 2, 2, 2, 0, 2) // 10

	assert.Equal(t, 1, m.CurrentInnings)
	assert.Empty(t, m.StrikerID)

	require.NoError(t, m.StartInnings("b1", "b2", "a1"))
	assert.Equal(t, 2, m.CurrentInnings)
	assert.Equal(t, 11, m.Target)
}

func TestChaseWinByWickets(t *testing.T) {
	t.Parallel()
	m := newLiveMatch(t, 1, 3)
	bowlOver(t, m, "b1", 2, 2, 2, 2, 0, 2) // 10, target 11
	require.NoError(t, m.StartInnings("b1", "b2", "a1"))

	bowlOver(t, m, "a1", 6, 6) // 12 >= 11 mid-over
	assert.Equal(t, StatusCompleted, m.Status)
	assert.Equal(t, "team-b", m.WinnerTeamID)
	assert.Equal(t, "Blasters won by 2 wickets", m.Result)
	assert.Empty(t, m.StrikerID)
}

func TestTiedMatch(t *testing.T) {
	t.Parallel()
	m := newLiveMatch(t, 1, 3)
	bowlOver(t, m, "b1", 2, 2, 2, 2, 0, 2) // 10
	require.NoError(t, m.StartInnings("b1", "b2", "a1"))

	bowlOver(t, m, "a1", 2, 2, 2, 2, 2, 0) // exactly 10 as overs run out
	assert.Equal(t, StatusCompleted, m.Status)
	assert.Equal(t, "Match tied", m.Result)
	assert.Empty(t, m.WinnerTeamID)
}

func TestDefendedTotalWinByRuns(t *testing.T) {
	t.Parallel()
	m := newLiveMatch(t, 1, 3)
	bowlOver(t, m, "b1", 2, 2, 2, 2, 0, 2) // 10
	require.NoError(t, m.StartInnings("b1", "b2", "a1"))

	bowlOver(t, m, "a1", 2, 0, 0, 0, 0, 1) // 3
	assert.Equal(t, StatusCompleted, m.Status)
	assert.Equal(t, "team-a", m.WinnerTeamID)
	assert.Equal(t, "Avengers won by 7 runs", m.Result)
}

func TestCompletedMatchIsTerminal(t *testing.T) {
	t.Parallel()
	m := newLiveMatch(t, 1, 3)
	bowlOver(t, m, "b1", 2, 2, 2, 2, 0, 2)
	require.NoError(t, m.StartInnings("b1", "b2", "a1"))
	bowlOver(t, m, "a1", 6, 6)
	require.Equal(t, StatusCompleted, m.Status)

	assert.ErrorIs(t, m.RecordBall(bat("b1", "a1", 1)), ErrMatchClosed)
	assert.ErrorIs(t, m.StartInnings("b1", "b2", "a1"), ErrMatchClosed)
	assert.ErrorIs(t, m.UndoLastBall(), ErrMatchClosed)
	assert.ErrorIs(t, m.Abandon("rain"), ErrMatchClosed)
	assert.ErrorIs(t, m.RetireHurt("b1", "b3"), ErrMatchClosed)
}

func TestAbandon(t *testing.T) {
	t.Parallel()
	m := newLiveMatch(t, 20, 11)
	mustBall(t, m, bat("a1", "b1", 4))

	require.NoError(t, m.Abandon("rain"))
	assert.Equal(t, StatusAbandoned, m.Status)
	assert.Equal(t, "No result: rain", m.Result)
	assert.Empty(t, m.WinnerTeamID)

	assert.ErrorIs(t, m.Abandon(""), ErrMatchClosed)
	assert.ErrorIs(t, m.RecordBall(bat("a1", "b1", 1)), ErrMatchClosed)
}

func TestAbandonUpcomingMatch(t *testing.T) {
	t.Parallel()
	m, err := NewMatch("m",
		sideTeam("team-a", "Avengers", "a", 11),
		sideTeam("team-b", "Blasters", "b", 11),
		20, "team-a", DecisionBat)
	require.NoError(t, err)

	require.NoError(t, m.Abandon(""))
	assert.Equal(t, "No result", m.Result)
}

func TestUndoRestoresExactState(t *testing.T) {
	t.Parallel()
	m := newLiveMatch(t, 20, 11)
	mustBall(t, m, bat("a1", "b1", 1))
	mustBall(t, m, bat("a2", "b1", 4))
	before := snapshot(t, m)

	mustBall(t, m, withWicket(bat("a2", "b1", 0), "a2", DismissalCaught, "a3"))
	require.NoError(t, m.UndoLastBall())

	assert.JSONEq(t, before, snapshot(t, m))
	assert.Equal(t, BatsmanNotOut, m.Innings1.batsman("a2").Status)
	assert.Equal(t, 0, m.Innings1.Wickets)
}

func TestUndoAcrossOverBoundary(t *testing.T) {
	t.Parallel()
	m := newLiveMatch(t, 20, 11)
	bowlOver(t, m, "b1", 0, 0, 0, 0, 0, 0)
	before := snapshot(t, m)

	mustBall(t, m, bat(m.StrikerID, "b2", 2))
	require.NoError(t, m.UndoLastBall())

	assert.JSONEq(t, before, snapshot(t, m))
	require.Len(t, m.Innings1.OversHistory, 1)
}

func TestUndoSequenceOfExtras(t *testing.T) {
	t.Parallel()
	m := newLiveMatch(t, 20, 11)
	mustBall(t, m, withExtra(bat("a1", "b1", 0), ExtraWide, 1))
	before := snapshot(t, m)

	mustBall(t, m, withExtra(bat("a1", "b1", 2), ExtraNoBall, 1))
	require.NoError(t, m.UndoLastBall())
	assert.JSONEq(t, before, snapshot(t, m))
	assert.Equal(t, 1, m.Innings1.Score)
}

func TestUndoWithNothingRecorded(t *testing.T) {
	t.Parallel()
	m := newLiveMatch(t, 20, 11)
	assert.ErrorIs(t, m.UndoLastBall(), ErrInvalidBall)
}

func TestUndoSecondInningsKeepsFirst(t *testing.T) {
	t.Parallel()
	m := newLiveMatch(t, 1, 3)
	bowlOver(t, m, "b1", 2, 2, 2, 2, 0, 2)
	first := snapshotInnings(t, m.Innings1)
	require.NoError(t, m.StartInnings("b1", "b2", "a1"))

	mustBall(t, m, bat("b1", "a1", 4))
	mustBall(t, m, bat("b1", "a1", 2))
	require.NoError(t, m.UndoLastBall())

	assert.Equal(t, 4, m.Innings2.Score)
	assert.JSONEq(t, first, snapshotInnings(t, m.Innings1))
	assert.Equal(t, 11, m.Target)
}

func snapshotInnings(t *testing.T, inn *Innings) string {
	t.Helper()
	b, err := json.Marshal(inn)
	require.NoError(t, err)
	return string(b)
}

func TestRetireHurt(t *testing.T) {
	t.Parallel()
	m := newLiveMatch(t, 20, 11)
	mustBall(t, m, bat("a1", "b1", 2))

	require.NoError(t, m.RetireHurt("a1", "a3"))
	inn := m.Innings1

	assert.Equal(t, "a3", m.StrikerID)
	assert.Equal(t, BatsmanRetiredHurt, inn.batsman("a1").Status)
	// Not a wicket.
	assert.Equal(t, 0, inn.Wickets)
	assert.Empty(t, inn.FallOfWickets)

	// The retired batsman keeps their runs.
	assert.Equal(t, 2, inn.batsman("a1").Runs)
}

func TestRetireHurtValidation(t *testing.T) {
	t.Parallel()
	m := newLiveMatch(t, 20, 11)

	assert.ErrorIs(t, m.RetireHurt("a5", "a3"), ErrInvalidBall)
	assert.ErrorIs(t, m.RetireHurt("", "a3"), ErrInvalidBall)
	assert.ErrorIs(t, m.RetireHurt("a1", "b3"), ErrRoster)
	assert.ErrorIs(t, m.RetireHurt("a1", "a2"), ErrInvalidBall)
}

func TestRetireHurtBetweenInnings(t *testing.T) {
	t.Parallel()
	m := newLiveMatch(t, 1, 3)
	bowlOver(t, m, "b1", 2, 2, 2, 2, 0, 2)
	require.Empty(t, m.StrikerID)

	// First innings over, second not yet opened: nobody is at the crease
	// and no substitution may be recorded, including for an empty id.
	assert.ErrorIs(t, m.RetireHurt("", "a3"), ErrInningsState)
	assert.ErrorIs(t, m.RetireHurt("a1", "a3"), ErrInningsState)
}

func TestUndoReplaysThroughRetirement(t *testing.T) {
	t.Parallel()
	m := newLiveMatch(t, 20, 11)
	mustBall(t, m, bat("a1", "b1", 1)) // a2 takes strike
	require.NoError(t, m.RetireHurt("a2", "a3"))
	mustBall(t, m, bat("a3", "b1", 0))
	before := snapshot(t, m)

	mustBall(t, m, bat(m.StrikerID, "b1", 4))
	require.NoError(t, m.UndoLastBall())

	assert.JSONEq(t, before, snapshot(t, m))
	assert.Equal(t, BatsmanRetiredHurt, m.Innings1.batsman("a2").Status)
}
