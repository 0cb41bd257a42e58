package tournament

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/dhruvp-08/willow/internal/models"
)

// TournamentStatus mirrors the match lifecycle at tournament level.
type TournamentStatus string

const (
	TournamentUpcoming  TournamentStatus = "upcoming"
	TournamentLive      TournamentStatus = "live"
	TournamentCompleted TournamentStatus = "completed"
)

// Tournament partitions teams into groups. Point values are stored per
// tournament because competitions disagree on them; the defaults mirror
// the common 2/0/1/1 scheme.
type Tournament struct {
	gorm.Model
	TournamentID   string           `json:"tournament_id" gorm:"uniqueIndex;not null"`
	Name           string           `json:"name" gorm:"not null"`
	Status         TournamentStatus `json:"status" gorm:"index;default:'upcoming'"`
	PointsWin      int              `json:"points_win" gorm:"default:2"`
	PointsLoss     int              `json:"points_loss" gorm:"default:0"`
	PointsTie      int              `json:"points_tie" gorm:"default:1"`
	PointsNoResult int              `json:"points_no_result" gorm:"default:1"`

	Groups []TournamentGroup `json:"groups,omitempty" gorm:"foreignKey:TournamentID;references:TournamentID"`
}

// PointsConfig reads the tournament's point values.
func (t *Tournament) PointsConfig() PointsConfig {
	return PointsConfig{
		Win:      t.PointsWin,
		Loss:     t.PointsLoss,
		Tie:      t.PointsTie,
		NoResult: t.PointsNoResult,
	}
}

// TournamentGroup is one stage group with its member teams and standings.
// Entries are created at setup time and only rewritten by the aggregator
// when a linked match finishes.
type TournamentGroup struct {
	gorm.Model
	GroupID      string             `json:"group_id" gorm:"uniqueIndex;not null"`
	TournamentID string             `json:"tournament_id" gorm:"index;not null"`
	Name         string             `json:"name" gorm:"not null"`
	TeamIDs      models.StringSlice `json:"team_ids" gorm:"type:json"`
	PointsTable  EntryList          `json:"points_table" gorm:"type:json"`
}

// EntryList is the JSONB standings column.
type EntryList []PointsTableEntry

func (e EntryList) Value() (driver.Value, error) {
	return json.Marshal(e)
}

// Scan unmarshals a JSONB column into the slice.
func (e *EntryList) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("EntryList: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, e)
}
