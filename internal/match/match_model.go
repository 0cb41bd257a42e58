package match

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/dhruvp-08/willow/internal/scoring"
)

// MatchRecord persists one match as the lossless JSON serialization of the
// core state value, plus denormalized columns for querying. The state
// column is sufficient to replay the ball log and rebuild every derived
// figure; the columns are mirrors, never the source of truth.
type MatchRecord struct {
	gorm.Model
	MatchID      string     `json:"match_id" gorm:"uniqueIndex;not null"`
	TeamAID      string     `json:"team_a_id" gorm:"index;not null"`
	TeamBID      string     `json:"team_b_id" gorm:"index;not null"`
	Status       string     `json:"status" gorm:"index;default:'upcoming'"`
	Result       string     `json:"result,omitempty"`
	TournamentID string     `json:"tournament_id,omitempty" gorm:"index"`
	GroupID      string     `json:"group_id,omitempty" gorm:"index"`
	State        MatchState `json:"state" gorm:"type:json"`
}

// MatchState is the JSONB column wrapping the core Match.
type MatchState scoring.Match

func (s MatchState) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan unmarshals a JSONB column into the struct.
func (s *MatchState) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("MatchState: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, s)
}

// newRecord builds a record for a core match, mirroring the query columns.
func newRecord(m *scoring.Match) *MatchRecord {
	return &MatchRecord{
		MatchID:      m.ID,
		TeamAID:      m.TeamA.ID,
		TeamBID:      m.TeamB.ID,
		Status:       string(m.Status),
		Result:       m.Result,
		TournamentID: m.TournamentID,
		GroupID:      m.GroupID,
		State:        MatchState(*m),
	}
}

// Match unwraps the stored state into a core match value.
func (r *MatchRecord) Match() *scoring.Match {
	m := scoring.Match(r.State)
	return &m
}

// syncColumns refreshes the denormalized columns from the state.
func (r *MatchRecord) syncColumns() {
	r.Status = string(r.State.Status)
	r.Result = r.State.Result
}
