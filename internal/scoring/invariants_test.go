package scoring

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkAccounting asserts the structural identities that must hold after
// every accepted delivery: the score equals the fold of the ball log, the
// wicket count matches the fall-of-wickets sequence, balls faced match
// non-wide deliveries, and per-over totals and completion agree with the
// over's own log.
func checkAccounting(t *testing.T, m *Match) {
	t.Helper()
	inn := m.currentInnings()
	require.NotNil(t, inn)

	score := 0
	nonWide := 0
	for i := range inn.OversHistory {
		o := &inn.OversHistory[i]
		overRuns := 0
		for b := range o.Balls {
			ball := &o.Balls[b]
			overRuns += ball.TotalRuns()
			if ball.Extra == nil || ball.Extra.Type != ExtraWide {
				nonWide++
			}
		}
		assert.Equal(t, overRuns, o.Runs)
		assert.LessOrEqual(t, o.LegalBalls(), ballsPerOver)
		assert.Equal(t, o.LegalBalls() == ballsPerOver, o.IsComplete())
		score += overRuns
	}
	assert.Equal(t, score, inn.Score)

	assert.Equal(t, inn.Wickets, len(inn.FallOfWickets))
	assert.LessOrEqual(t, inn.Wickets, maxWickets)

	faced := 0
	for i := range inn.Batsmen {
		faced += inn.Batsmen[i].Balls
	}
	assert.Equal(t, nonWide, faced)

	batting, _ := m.teamsFor(inn)
	if !inn.IsComplete(m.OversLimit, len(batting.Players), m.targetFor(inn)) {
		assert.NotEmpty(t, m.StrikerID)
		assert.NotEmpty(t, m.NonStrikerID)
		assert.NotEqual(t, m.StrikerID, m.NonStrikerID)
	}
}

// randomDelivery builds a valid next delivery for the first innings:
// random runs, extras and clean bowled wickets, with the bowler chosen to
// respect the consecutive-over rule.
func randomDelivery(rng *rand.Rand, m *Match, nextIn *int) BallEvent {
	inn := m.Innings1

	bowler := ""
	if o := inn.currentOver(); o != nil {
		bowler = o.BowlerID
	} else {
		prev := ""
		if n := len(inn.OversHistory); n > 0 {
			prev = inn.OversHistory[n-1].BowlerID
		}
		for {
			bowler = fmt.Sprintf("b%d", rng.Intn(5)+1)
			if bowler != prev {
				break
			}
		}
	}

	ev := BallEvent{BatsmanID: m.StrikerID, BowlerID: bowler, Timestamp: fixedTime}
	switch rng.Intn(10) {
	case 0:
		ev.Extra = &Extra{Type: ExtraWide, Runs: 1 + rng.Intn(2)}
	case 1:
		ev.Extra = &Extra{Type: ExtraNoBall, Runs: 1}
		ev.Runs = rng.Intn(5)
	case 2:
		ev.Extra = &Extra{Type: ExtraBye, Runs: 1 + rng.Intn(4)}
	case 3:
		ev.Extra = &Extra{Type: ExtraLegBye, Runs: 1 + rng.Intn(2)}
	case 4:
		ev.Wicket = &WicketEvent{PlayerOutID: m.StrikerID, Type: DismissalBowled}
		if inn.Wickets+1 < maxWicketsFor(len(m.team(inn.BattingTeamID).Players)) {
			ev.NextBatsmanID = fmt.Sprintf("a%d", *nextIn)
			*nextIn++
		}
	default:
		ev.Runs = rng.Intn(7)
	}
	return ev
}

func TestAccountingHoldsAfterEveryDelivery(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 25; trial++ {
		m := newLiveMatch(t, 5, 11)
		nextIn := 3

		for i := 0; i < 500; i++ {
			if m.Innings1.IsComplete(m.OversLimit, 11, 0) {
				break
			}
			require.NoError(t, m.RecordBall(randomDelivery(rng, m, &nextIn)))
			checkAccounting(t, m)
			assert.Nil(t, m.Innings2)
		}
		require.True(t, m.Innings1.IsComplete(m.OversLimit, 11, 0))
	}
}
