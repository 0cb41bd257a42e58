package scoring

import (
	"errors"
	"fmt"
)

// Match is the top-level state value. One logical writer per match: none of
// these methods are safe for concurrent use on the same Match.
type Match struct {
	ID         string       `json:"id"`
	TeamA      Team         `json:"team_a"`
	TeamB      Team         `json:"team_b"`
	OversLimit int          `json:"overs_limit"`
	TossWinner string       `json:"toss_winner_id"`
	Decision   TossDecision `json:"decision"`

	Status         MatchStatus `json:"status"`
	Innings1       *Innings    `json:"innings1,omitempty"`
	Innings2       *Innings    `json:"innings2,omitempty"`
	CurrentInnings int         `json:"current_innings"` // 0 before play, then 1 or 2

	StrikerID       string `json:"striker_id,omitempty"`
	NonStrikerID    string `json:"non_striker_id,omitempty"`
	CurrentBowlerID string `json:"current_bowler_id,omitempty"`

	Target       int    `json:"target,omitempty"` // second innings only
	Result       string `json:"result,omitempty"`
	WinnerTeamID string `json:"winner_team_id,omitempty"`

	TournamentID string `json:"tournament_id,omitempty"`
	GroupID      string `json:"group_id,omitempty"`
}

// NewMatch creates an upcoming match. The toss decision fixes which team
// bats first; play begins once opening players are recorded.
func NewMatch(id string, teamA, teamB Team, oversLimit int, tossWinnerID string, decision TossDecision) (*Match, error) {
	if teamA.ID == teamB.ID {
		return nil, errors.New("a team cannot play itself")
	}
	if oversLimit < 1 {
		return nil, errors.New("overs limit must be at least one")
	}
	if len(teamA.Players) < 2 || len(teamB.Players) < 2 {
		return nil, errors.New("both teams need at least two players")
	}
	if tossWinnerID != teamA.ID && tossWinnerID != teamB.ID {
		return nil, rosterf("toss winner %s is not playing this match", tossWinnerID)
	}
	if decision != DecisionBat && decision != DecisionBowl {
		return nil, fmt.Errorf("unknown toss decision %q", decision)
	}
	return &Match{
		ID:         id,
		TeamA:      teamA,
		TeamB:      teamB,
		OversLimit: oversLimit,
		TossWinner: tossWinnerID,
		Decision:   decision,
		Status:     StatusUpcoming,
	}, nil
}

// battingFirst resolves the toss into the side batting the first innings.
func (m *Match) battingFirst() (batting, bowling *Team) {
	winner, loser := &m.TeamA, &m.TeamB
	if m.TossWinner == m.TeamB.ID {
		winner, loser = &m.TeamB, &m.TeamA
	}
	if m.Decision == DecisionBat {
		return winner, loser
	}
	return loser, winner
}

func (m *Match) currentInnings() *Innings {
	switch m.CurrentInnings {
	case 1:
		return m.Innings1
	case 2:
		return m.Innings2
	}
	return nil
}

func (m *Match) team(id string) *Team {
	if m.TeamA.ID == id {
		return &m.TeamA
	}
	if m.TeamB.ID == id {
		return &m.TeamB
	}
	return nil
}

func (m *Match) teamsFor(inn *Innings) (batting, bowling *Team) {
	return m.team(inn.BattingTeamID), m.team(inn.BowlingTeamID)
}

// targetFor returns the chase target applying to the given innings, or 0.
func (m *Match) targetFor(inn *Innings) int {
	if inn == m.Innings2 {
		return m.Target
	}
	return 0
}

// StartInnings records the opening striker, non-striker and bowler. From
// Upcoming it opens the first innings and the match goes live; once the
// first innings has ended it opens the chase and fixes the target.
func (m *Match) StartInnings(strikerID, nonStrikerID, bowlerID string) error {
	switch m.Status {
	case StatusCompleted, StatusAbandoned:
		return ErrMatchClosed
	case StatusUpcoming:
		batting, bowling := m.battingFirst()
		if err := validateOpening(batting, bowling, strikerID, nonStrikerID, bowlerID); err != nil {
			return err
		}
		m.Innings1 = newInnings(batting.ID, bowling.ID, strikerID, nonStrikerID, bowlerID)
		m.CurrentInnings = 1
		m.Status = StatusLive
	case StatusLive:
		if m.Innings2 != nil {
			return inningsStatef("second innings already started")
		}
		batting := m.team(m.Innings1.BattingTeamID)
		if !m.Innings1.IsComplete(m.OversLimit, len(batting.Players), 0) {
			return inningsStatef("first innings is still in progress")
		}
		chasing, defending := m.team(m.Innings1.BowlingTeamID), batting
		if err := validateOpening(chasing, defending, strikerID, nonStrikerID, bowlerID); err != nil {
			return err
		}
		m.Innings2 = newInnings(chasing.ID, defending.ID, strikerID, nonStrikerID, bowlerID)
		m.CurrentInnings = 2
		m.Target = m.Innings1.Score + 1
	}
	m.StrikerID = strikerID
	m.NonStrikerID = nonStrikerID
	m.CurrentBowlerID = bowlerID
	return nil
}

func validateOpening(batting, bowling *Team, strikerID, nonStrikerID, bowlerID string) error {
	if strikerID == nonStrikerID {
		return inningsStatef("opening batsmen must be two different players")
	}
	if batting.Player(strikerID) == nil {
		return rosterf("striker %s is not in the batting side", strikerID)
	}
	if batting.Player(nonStrikerID) == nil {
		return rosterf("non-striker %s is not in the batting side", nonStrikerID)
	}
	if bowling.Player(bowlerID) == nil {
		return rosterf("bowler %s is not in the bowling side", bowlerID)
	}
	return nil
}

// RecordBall validates and applies one delivery, then checks the innings
// and match end conditions. State is untouched when an error is returned.
func (m *Match) RecordBall(ev BallEvent) error {
	if err := m.validateBall(ev); err != nil {
		return err
	}
	m.applyBall(ev)

	inn := m.currentInnings()
	batting, _ := m.teamsFor(inn)
	if !inn.IsComplete(m.OversLimit, len(batting.Players), m.targetFor(inn)) {
		return nil
	}
	if m.CurrentInnings == 1 {
		// Awaiting the second innings' opening players.
		m.StrikerID = ""
		m.NonStrikerID = ""
		m.CurrentBowlerID = ""
		return nil
	}
	m.complete()
	return nil
}

// complete derives the result and seals the match. Terminal: a completed
// match rejects every further mutation.
func (m *Match) complete() {
	chasing := m.team(m.Innings2.BattingTeamID)
	defending := m.team(m.Innings1.BattingTeamID)
	switch {
	case m.Innings2.Score >= m.Target:
		wicketsInHand := maxWicketsFor(len(chasing.Players)) - m.Innings2.Wickets
		m.Result = fmt.Sprintf("%s won by %d wickets", chasing.Name, wicketsInHand)
		m.WinnerTeamID = chasing.ID
	case m.Innings2.Score == m.Innings1.Score:
		m.Result = "Match tied"
	default:
		m.Result = fmt.Sprintf("%s won by %d runs", defending.Name, m.Innings1.Score-m.Innings2.Score)
		m.WinnerTeamID = defending.ID
	}
	m.Status = StatusCompleted
	m.StrikerID = ""
	m.NonStrikerID = ""
	m.CurrentBowlerID = ""
}

// Abandon transitions a match that cannot be finished to the abandoned
// status with no-result semantics. It is an explicit transition, distinct
// from completion, and is itself terminal.
func (m *Match) Abandon(reason string) error {
	switch m.Status {
	case StatusCompleted, StatusAbandoned:
		return ErrMatchClosed
	}
	m.Status = StatusAbandoned
	m.Result = "No result"
	if reason != "" {
		m.Result = "No result: " + reason
	}
	m.StrikerID = ""
	m.NonStrikerID = ""
	m.CurrentBowlerID = ""
	return nil
}

// RetireHurt substitutes a batsman who cannot continue. It is not a wicket:
// no ball is recorded and the wicket count is unchanged, but the
// substitution joins the replayable record.
func (m *Match) RetireHurt(playerID, replacementID string) error {
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
	batting, _ := m.teamsFor(inn)
	if inn.IsComplete(m.OversLimit, len(batting.Players), m.targetFor(inn)) {
		return inningsStatef("innings is already over")
	}
	if playerID == "" || (playerID != m.StrikerID && playerID != m.NonStrikerID) {
		return invalidBallf("batsman %s is not at the crease", playerID)
	}
	if batting.Player(replacementID) == nil {
		return rosterf("replacement %s is not in the batting side", replacementID)
	}
	if inn.batsman(replacementID) != nil {
		return invalidBallf("batsman %s has already batted", replacementID)
	}

	inn.batsman(playerID).Status = BatsmanRetiredHurt
	inn.Batsmen = append(inn.Batsmen, BatsmanScore{PlayerID: replacementID, Status: BatsmanNotOut})
	inn.Retirements = append(inn.Retirements, Retirement{
		PlayerID:      playerID,
		ReplacementID: replacementID,
		AfterBall:     inn.BallsBowled(),
	})

	survivor := m.NonStrikerID
	if playerID == m.StrikerID {
		m.StrikerID = replacementID
	} else {
		survivor = m.StrikerID
		m.NonStrikerID = replacementID
	}
	inn.Partnerships = append(inn.Partnerships, Partnership{
		Batsman1ID: survivor,
		Batsman2ID: replacementID,
	})
	return nil
}

// UndoLastBall removes the most recent delivery of the current innings and
// rebuilds the innings by replaying the remaining log from the opening
// setup, so there is no drift between the log and the derived state.
func (m *Match) UndoLastBall() error {
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
	log := inn.events()
	if len(log) == 0 {
		return invalidBallf("no deliveries to undo")
	}

	rebuilt, strikerID, nonStrikerID, bowlerID, err := m.replayInnings(inn, log[:len(log)-1])
	if err != nil {
		return err
	}
	if m.CurrentInnings == 1 {
		m.Innings1 = rebuilt
	} else {
		m.Innings2 = rebuilt
	}
	m.StrikerID = strikerID
	m.NonStrikerID = nonStrikerID
	m.CurrentBowlerID = bowlerID
	return nil
}

// replayInnings reconstructs an innings from its opening setup by
// re-applying the given delivery log, interleaving recorded retired-hurt
// substitutions at their original positions.
func (m *Match) replayInnings(inn *Innings, log []Ball) (*Innings, string, string, string, error) {
	shadow := &Match{
		ID:         m.ID,
		TeamA:      m.TeamA,
		TeamB:      m.TeamB,
		OversLimit: m.OversLimit,
		TossWinner: m.TossWinner,
		Decision:   m.Decision,
		Status:     StatusLive,
		Target:     m.targetFor(inn),
	}
	fresh := newInnings(inn.BattingTeamID, inn.BowlingTeamID,
		inn.OpeningStrikerID, inn.OpeningNonStrikerID, inn.OpeningBowlerID)
	if m.targetFor(inn) > 0 {
		shadow.Innings1 = m.Innings1
		shadow.Innings2 = fresh
		shadow.CurrentInnings = 2
	} else {
		shadow.Innings1 = fresh
		shadow.CurrentInnings = 1
	}
	shadow.StrikerID = inn.OpeningStrikerID
	shadow.NonStrikerID = inn.OpeningNonStrikerID
	shadow.CurrentBowlerID = inn.OpeningBowlerID

	replayRetirements := func(afterBall int) error {
		for _, r := range inn.Retirements {
			if r.AfterBall == afterBall {
				if err := shadow.RetireHurt(r.PlayerID, r.ReplacementID); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for i, b := range log {
		if err := replayRetirements(i); err != nil {
			return nil, "", "", "", err
		}
		ev := BallEvent{
			BatsmanID:     b.BatsmanID,
			BowlerID:      b.BowlerID,
			Runs:          b.Runs,
			Extra:         b.Extra,
			NextBatsmanID: b.NextBatsmanID,
			Timestamp:     b.Timestamp,
		}
		if b.Wicket != nil {
			ev.Wicket = &WicketEvent{
				PlayerOutID: b.Wicket.PlayerOutID,
				Type:        b.Wicket.Type,
				FielderID:   b.Wicket.FielderID,
			}
		}
		if err := shadow.RecordBall(ev); err != nil {
			return nil, "", "", "", fmt.Errorf("replay diverged at delivery %d: %w", i+1, err)
		}
	}
	if err := replayRetirements(len(log)); err != nil {
		return nil, "", "", "", err
	}
	return fresh, shadow.StrikerID, shadow.NonStrikerID, shadow.CurrentBowlerID, nil
}
