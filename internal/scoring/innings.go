package scoring

const (
	ballsPerOver = 6
	maxWickets   = 10
)

// Innings owns one batting side's aggregate state. Every derived field is
// reconstructable by replaying the over history from the opening setup.
type Innings struct {
	BattingTeamID string `json:"batting_team_id"`
	BowlingTeamID string `json:"bowling_team_id"`

	Score   int `json:"score"`
	Wickets int `json:"wickets"`

	Batsmen       []BatsmanScore  `json:"batsmen"`
	Bowlers       []BowlerScore   `json:"bowlers"`
	FallOfWickets []Wicket        `json:"fall_of_wickets"`
	OversHistory  []Over          `json:"overs_history"`
	Extras        ExtrasBreakdown `json:"extras"`
	Partnerships  []Partnership   `json:"partnerships"`
	Retirements   []Retirement    `json:"retirements,omitempty"`

	OpeningStrikerID    string `json:"opening_striker_id"`
	OpeningNonStrikerID string `json:"opening_non_striker_id"`
	OpeningBowlerID     string `json:"opening_bowler_id"`
}

func newInnings(battingTeamID, bowlingTeamID, striker, nonStriker, bowler string) *Innings {
	return &Innings{
		BattingTeamID: battingTeamID,
		BowlingTeamID: bowlingTeamID,
		Batsmen: []BatsmanScore{
			{PlayerID: striker, Status: BatsmanNotOut},
			{PlayerID: nonStriker, Status: BatsmanNotOut},
		},
		Bowlers:             []BowlerScore{{PlayerID: bowler}},
		Partnerships:        []Partnership{{Batsman1ID: striker, Batsman2ID: nonStriker}},
		OpeningStrikerID:    striker,
		OpeningNonStrikerID: nonStriker,
		OpeningBowlerID:     bowler,
	}
}

// LegalBalls counts legal deliveries bowled in the innings so far.
func (inn *Innings) LegalBalls() int {
	n := 0
	for i := range inn.OversHistory {
		n += inn.OversHistory[i].LegalBalls()
	}
	return n
}

// BallsBowled counts every delivery in the log, legal or not.
func (inn *Innings) BallsBowled() int {
	n := 0
	for i := range inn.OversHistory {
		n += len(inn.OversHistory[i].Balls)
	}
	return n
}

// OversBowled is the fractional over count: completed overs plus legal
// balls of the in-progress over divided by six.
func (inn *Innings) OversBowled() float64 {
	completed := 0
	partial := 0
	for i := range inn.OversHistory {
		if inn.OversHistory[i].IsComplete() {
			completed++
		} else {
			partial += inn.OversHistory[i].LegalBalls()
		}
	}
	return float64(completed) + float64(partial)/float64(ballsPerOver)
}

// CompletedOvers counts overs with all six legal deliveries bowled.
func (inn *Innings) CompletedOvers() int {
	n := 0
	for i := range inn.OversHistory {
		if inn.OversHistory[i].IsComplete() {
			n++
		}
	}
	return n
}

// currentOver returns the in-progress over, or nil when a new over is due.
func (inn *Innings) currentOver() *Over {
	if len(inn.OversHistory) == 0 {
		return nil
	}
	o := &inn.OversHistory[len(inn.OversHistory)-1]
	if o.IsComplete() {
		return nil
	}
	return o
}

func (inn *Innings) batsman(id string) *BatsmanScore {
	for i := range inn.Batsmen {
		if inn.Batsmen[i].PlayerID == id {
			return &inn.Batsmen[i]
		}
	}
	return nil
}

func (inn *Innings) bowler(id string) *BowlerScore {
	for i := range inn.Bowlers {
		if inn.Bowlers[i].PlayerID == id {
			return &inn.Bowlers[i]
		}
	}
	return nil
}

// maxWicketsFor is ten or roster size minus one, whichever is lower.
func maxWicketsFor(rosterSize int) int {
	if rosterSize-1 < maxWickets {
		return rosterSize - 1
	}
	return maxWickets
}

// AllOut reports whether the batting side has no wickets left.
func (inn *Innings) AllOut(rosterSize int) bool {
	return inn.Wickets >= maxWicketsFor(rosterSize)
}

// IsComplete evaluates the innings-end conditions: all out, overs
// exhausted, or (second innings) target reached. target <= 0 means no
// target applies.
func (inn *Innings) IsComplete(oversLimit, rosterSize, target int) bool {
	if inn.Wickets >= maxWicketsFor(rosterSize) {
		return true
	}
	if inn.CompletedOvers() >= oversLimit {
		return true
	}
	if target > 0 && inn.Score >= target {
		return true
	}
	return false
}

// events flattens the over history back into the ordered delivery log.
func (inn *Innings) events() []Ball {
	var log []Ball
	for i := range inn.OversHistory {
		log = append(log, inn.OversHistory[i].Balls...)
	}
	return log
}

// InningsSummary is the derived line produced when an innings closes.
type InningsSummary struct {
	BattingTeamID string  `json:"batting_team_id"`
	Score         int     `json:"score"`
	Wickets       int     `json:"wickets"`
	Overs         float64 `json:"overs"`
	RunRate       float64 `json:"run_rate"`
	Extras        int     `json:"extras"`
	TopScorerID   string  `json:"top_scorer_id,omitempty"`
	TopScore      int     `json:"top_score"`
}

// Summary derives the closing line for the innings.
func (inn *Innings) Summary() InningsSummary {
	s := InningsSummary{
		BattingTeamID: inn.BattingTeamID,
		Score:         inn.Score,
		Wickets:       inn.Wickets,
		Overs:         inn.OversBowled(),
		Extras:        inn.Extras.Total,
	}
	if s.Overs > 0 {
		s.RunRate = float64(inn.Score) / s.Overs
	}
	for i := range inn.Batsmen {
		if inn.Batsmen[i].Runs > s.TopScore || s.TopScorerID == "" {
			s.TopScore = inn.Batsmen[i].Runs
			s.TopScorerID = inn.Batsmen[i].PlayerID
		}
	}
	return s
}
