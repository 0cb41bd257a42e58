package match

import (
	"fmt"

	"github.com/dhruvp-08/willow/internal/scoring"
)

// Scorecard is the read model served by the scorecard endpoint: both
// innings expanded with per-player derived rates, plus the headline state.
type Scorecard struct {
	MatchID      string            `json:"match_id"`
	Status       string            `json:"status"`
	Result       string            `json:"result,omitempty"`
	WinnerTeamID string            `json:"winner_team_id,omitempty"`
	Target       int               `json:"target,omitempty"`
	Innings      []InningsCard     `json:"innings"`
	Teams        map[string]string `json:"teams"` // team id -> name
}

// InningsCard is one innings of the scorecard.
type InningsCard struct {
	Summary       scoring.InningsSummary  `json:"summary"`
	Batting       []BattingLine           `json:"batting"`
	Bowling       []BowlingLine           `json:"bowling"`
	Extras        scoring.ExtrasBreakdown `json:"extras"`
	FallOfWickets []FallOfWicketLine      `json:"fall_of_wickets"`
	Partnerships  []scoring.Partnership   `json:"partnerships"`
}

// BattingLine is a batsman's row with the derived strike rate.
type BattingLine struct {
	PlayerID   string  `json:"player_id"`
	Name       string  `json:"name"`
	Runs       int     `json:"runs"`
	Balls      int     `json:"balls"`
	Fours      int     `json:"fours"`
	Sixes      int     `json:"sixes"`
	StrikeRate float64 `json:"strike_rate"`
	Status     string  `json:"status"`
	Dismissal  string  `json:"dismissal,omitempty"`
}

// BowlingLine is a bowler's row with the derived economy.
type BowlingLine struct {
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name"`
	Overs    float64 `json:"overs"`
	Maidens  int     `json:"maidens"`
	Runs     int     `json:"runs"`
	Wickets  int     `json:"wickets"`
	Economy  float64 `json:"economy"`
}

// FallOfWicketLine renders a fall-of-wickets entry.
type FallOfWicketLine struct {
	Wicket   int    `json:"wicket"`
	Score    int    `json:"score"`
	PlayerID string `json:"player_id"`
	Over     int    `json:"over"`
	Ball     int    `json:"ball"`
}

func buildScorecard(m *scoring.Match) Scorecard {
	card := Scorecard{
		MatchID:      m.ID,
		Status:       string(m.Status),
		Result:       m.Result,
		WinnerTeamID: m.WinnerTeamID,
		Target:       m.Target,
		Teams: map[string]string{
			m.TeamA.ID: m.TeamA.Name,
			m.TeamB.ID: m.TeamB.Name,
		},
	}
	for _, inn := range []*scoring.Innings{m.Innings1, m.Innings2} {
		if inn == nil {
			continue
		}
		card.Innings = append(card.Innings, buildInningsCard(m, inn))
	}
	return card
}

func buildInningsCard(m *scoring.Match, inn *scoring.Innings) InningsCard {
	card := InningsCard{
		Summary:      inn.Summary(),
		Extras:       inn.Extras,
		Partnerships: inn.Partnerships,
	}
	for i := range inn.Batsmen {
		bs := &inn.Batsmen[i]
		line := BattingLine{
			PlayerID:   bs.PlayerID,
			Name:       playerName(m, bs.PlayerID),
			Runs:       bs.Runs,
			Balls:      bs.Balls,
			Fours:      bs.Fours,
			Sixes:      bs.Sixes,
			StrikeRate: scoring.StrikeRate(bs.Runs, bs.Balls),
			Status:     string(bs.Status),
		}
		if bs.Wicket != nil {
			line.Dismissal = describeDismissal(m, bs.Wicket)
		}
		card.Batting = append(card.Batting, line)
	}
	for i := range inn.Bowlers {
		bw := &inn.Bowlers[i]
		card.Bowling = append(card.Bowling, BowlingLine{
			PlayerID: bw.PlayerID,
			Name:     playerName(m, bw.PlayerID),
			Overs:    bw.OversBowled(),
			Maidens:  bw.Maidens,
			Runs:     bw.RunsConceded,
			Wickets:  bw.Wickets,
			Economy:  scoring.Economy(bw.RunsConceded, bw.LegalBalls),
		})
	}
	for i, w := range inn.FallOfWickets {
		card.FallOfWickets = append(card.FallOfWickets, FallOfWicketLine{
			Wicket:   i + 1,
			Score:    w.TeamScore,
			PlayerID: w.PlayerOutID,
			Over:     w.Over,
			Ball:     w.Ball,
		})
	}
	return card
}

func playerName(m *scoring.Match, id string) string {
	if p := m.TeamA.Player(id); p != nil {
		return p.Name
	}
	if p := m.TeamB.Player(id); p != nil {
		return p.Name
	}
	return id
}

// describeDismissal renders the conventional scorecard phrasing for a
// dismissal, e.g. "c Smith b Khan" or "run out (Jadeja)".
func describeDismissal(m *scoring.Match, w *scoring.Wicket) string {
	bowler := playerName(m, w.BowlerID)
	fielder := ""
	if w.FielderID != "" {
		fielder = playerName(m, w.FielderID)
	}
	switch w.Type {
	case scoring.DismissalBowled:
		return fmt.Sprintf("b %s", bowler)
	case scoring.DismissalCaught:
		if fielder != "" {
			return fmt.Sprintf("c %s b %s", fielder, bowler)
		}
		return fmt.Sprintf("c & b %s", bowler)
	case scoring.DismissalLBW:
		return fmt.Sprintf("lbw b %s", bowler)
	case scoring.DismissalStumped:
		return fmt.Sprintf("st %s b %s", fielder, bowler)
	case scoring.DismissalHitWicket:
		return fmt.Sprintf("hit wicket b %s", bowler)
	case scoring.DismissalRunOut:
		if fielder != "" {
			return fmt.Sprintf("run out (%s)", fielder)
		}
		return "run out"
	case scoring.DismissalRetiredOut:
		return "retired out"
	case scoring.DismissalTimedOut:
		return "timed out"
	case scoring.DismissalObstructing:
		return "obstructing the field"
	default:
		return string(w.Type)
	}
}
