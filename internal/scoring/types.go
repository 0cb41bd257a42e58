package scoring

import "time"

// MatchStatus is the match lifecycle state.
type MatchStatus string

const (
	StatusUpcoming  MatchStatus = "upcoming"
	StatusLive      MatchStatus = "live"
	StatusCompleted MatchStatus = "completed"
	StatusAbandoned MatchStatus = "abandoned"
)

// TossDecision is what the toss winner elected to do.
type TossDecision string

const (
	DecisionBat  TossDecision = "bat"
	DecisionBowl TossDecision = "bowl"
)

// PlayerRole tags a player's primary discipline.
type PlayerRole string

const (
	RoleBatsman      PlayerRole = "batsman"
	RoleBowler       PlayerRole = "bowler"
	RoleAllRounder   PlayerRole = "all_rounder"
	RoleWicketKeeper PlayerRole = "wicket_keeper"
)

// ExtraType for runs not scored off the bat
type ExtraType string

const (
	ExtraWide    ExtraType = "wide"
	ExtraNoBall  ExtraType = "no_ball"
	ExtraBye     ExtraType = "bye"
	ExtraLegBye  ExtraType = "leg_bye"
	ExtraPenalty ExtraType = "penalty"
)

// DismissalType for cricket wickets
type DismissalType string

const (
	DismissalBowled      DismissalType = "bowled"
	DismissalCaught      DismissalType = "caught"
	DismissalLBW         DismissalType = "lbw"
	DismissalRunOut      DismissalType = "run_out"
	DismissalStumped     DismissalType = "stumped"
	DismissalHitWicket   DismissalType = "hit_wicket"
	DismissalRetiredOut  DismissalType = "retired_out"
	DismissalTimedOut    DismissalType = "timed_out"
	DismissalObstructing DismissalType = "obstructing_the_field"
)

// BatsmanStatus is a batsman's state within one innings.
type BatsmanStatus string

const (
	BatsmanNotOut      BatsmanStatus = "not_out"
	BatsmanOut         BatsmanStatus = "out"
	BatsmanDidNotBat   BatsmanStatus = "did_not_bat"
	BatsmanRetiredHurt BatsmanStatus = "retired_hurt"
)

// BattingStats is a player's cumulative career batting record. It is only
// rewritten by post-match aggregation, never mutated ball-by-ball.
type BattingStats struct {
	Matches      int     `json:"matches"`
	Innings      int     `json:"innings"`
	Runs         int     `json:"runs"`
	BallsFaced   int     `json:"balls_faced"`
	Dismissals   int     `json:"dismissals"`
	Average      float64 `json:"average"`
	HasAverage   bool    `json:"has_average"` // false while the player is undismissed across the career
	StrikeRate   float64 `json:"strike_rate"`
	Fours        int     `json:"fours"`
	Sixes        int     `json:"sixes"`
	Fifties      int     `json:"fifties"`
	Hundreds     int     `json:"hundreds"`
	HighestScore int     `json:"highest_score"`
}

// BowlingStats is a player's cumulative career bowling record.
type BowlingStats struct {
	Matches      int     `json:"matches"`
	Innings      int     `json:"innings"`
	BallsBowled  int     `json:"balls_bowled"` // legal deliveries only
	RunsConceded int     `json:"runs_conceded"`
	Wickets      int     `json:"wickets"`
	Economy      float64 `json:"economy"`
	BestWickets  int     `json:"best_wickets"`
	BestRuns     int     `json:"best_runs"`
}

// Player belongs to a team roster. Career stats are denormalized here and
// refreshed by the aggregation step after each completed match.
type Player struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Role    PlayerRole   `json:"role"`
	Batting BattingStats `json:"batting_stats"`
	Bowling BowlingStats `json:"bowling_stats"`
}

// Team is immutable for the duration of a match.
type Team struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	ShortName string   `json:"short_name"`
	Players   []Player `json:"players"`
}

// Player returns the roster entry for id, or nil.
func (t *Team) Player(id string) *Player {
	for i := range t.Players {
		if t.Players[i].ID == id {
			return &t.Players[i]
		}
	}
	return nil
}

// Extra is the non-bat component of a delivery.
type Extra struct {
	Type ExtraType `json:"type"`
	Runs int       `json:"runs"`
}

// Wicket records a dismissal with the team score and delivery coordinates
// at the moment it fell.
type Wicket struct {
	PlayerOutID string        `json:"player_out_id"`
	Type        DismissalType `json:"type"`
	FielderID   string        `json:"fielder_id,omitempty"`
	BowlerID    string        `json:"bowler_id"`
	Over        int           `json:"over"` // 1-indexed
	Ball        int           `json:"ball"` // legal ball within the over
	TeamScore   int           `json:"team_score"`
}

// Ball is one immutable entry of the append-only delivery log. NextBatsmanID
// is carried so the log replays deterministically across wickets.
type Ball struct {
	Number        int       `json:"number"` // legal-ball count within the over after this delivery
	BowlerID      string    `json:"bowler_id"`
	BatsmanID     string    `json:"batsman_id"`
	Runs          int       `json:"runs"` // off the bat
	Extra         *Extra    `json:"extra,omitempty"`
	Wicket        *Wicket   `json:"wicket,omitempty"`
	NextBatsmanID string    `json:"next_batsman_id,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// IsLegal reports whether the delivery counts toward the over's six balls.
func (b *Ball) IsLegal() bool {
	return b.Extra == nil || (b.Extra.Type != ExtraWide && b.Extra.Type != ExtraNoBall)
}

// TotalRuns is off-bat runs plus extras.
func (b *Ball) TotalRuns() int {
	if b.Extra != nil {
		return b.Runs + b.Extra.Runs
	}
	return b.Runs
}

// Over is an ordered sequence of deliveries by one bowler. It is complete
// at six legal deliveries; wides and no-balls extend it.
type Over struct {
	Number   int    `json:"number"` // 1-indexed
	BowlerID string `json:"bowler_id"`
	Balls    []Ball `json:"balls"`
	Runs     int    `json:"runs"`
}

// LegalBalls counts deliveries that advance the over.
func (o *Over) LegalBalls() int {
	n := 0
	for i := range o.Balls {
		if o.Balls[i].IsLegal() {
			n++
		}
	}
	return n
}

// IsComplete reports whether six legal deliveries have been bowled.
func (o *Over) IsComplete() bool {
	return o.LegalBalls() >= ballsPerOver
}

// BatsmanScore is a per-innings batting line, reconstructable by replaying
// the innings' ball log.
type BatsmanScore struct {
	PlayerID string        `json:"player_id"`
	Runs     int           `json:"runs"`
	Balls    int           `json:"balls"`
	Fours    int           `json:"fours"`
	Sixes    int           `json:"sixes"`
	Status   BatsmanStatus `json:"status"`
	Wicket   *Wicket       `json:"wicket,omitempty"`
}

// BowlerScore is a per-innings bowling line.
type BowlerScore struct {
	PlayerID     string `json:"player_id"`
	LegalBalls   int    `json:"legal_balls"`
	Maidens      int    `json:"maidens"`
	RunsConceded int    `json:"runs_conceded"`
	Wickets      int    `json:"wickets"`
}

// OversBowled is the fractional over count (legal balls / 6).
func (b *BowlerScore) OversBowled() float64 {
	return float64(b.LegalBalls) / float64(ballsPerOver)
}

// ExtrasBreakdown itemizes runs not credited to any batsman.
type ExtrasBreakdown struct {
	Total     int `json:"total"`
	Wides     int `json:"wides"`
	NoBalls   int `json:"no_balls"`
	Byes      int `json:"byes"`
	LegByes   int `json:"leg_byes"`
	Penalties int `json:"penalties"`
}

// Partnership is the runs and legal balls accumulated while two batsmen
// were at the crease together.
type Partnership struct {
	Batsman1ID string `json:"batsman1_id"`
	Batsman2ID string `json:"batsman2_id"`
	Runs       int    `json:"runs"`
	Balls      int    `json:"balls"`
}

// Retirement is a retired-hurt substitution. It is not a wicket but must be
// part of the replayable record, anchored to its position in the ball log.
type Retirement struct {
	PlayerID      string `json:"player_id"`
	ReplacementID string `json:"replacement_id"`
	AfterBall     int    `json:"after_ball"` // deliveries bowled in the innings when it happened
}
