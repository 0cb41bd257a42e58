// team/model.go
package team

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/dhruvp-08/willow/internal/scoring"
)

// Team is the persisted roster record. TeamID is the externally visible
// identity used throughout the scoring core; the roster JSON column is the
// source of truth for players and their career stats.
type Team struct {
	gorm.Model
	TeamID    string     `json:"team_id" gorm:"uniqueIndex;not null"`
	Name      string     `json:"name" gorm:"not null"`
	ShortName string     `json:"short_name"`
	Players   PlayerList `json:"players" gorm:"type:json"`
	IsDeleted bool       `json:"is_deleted" gorm:"default:false"`
}

// PlayerList is the JSONB roster column.
type PlayerList []scoring.Player

func (p PlayerList) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan unmarshals a JSONB column into the slice.
func (p *PlayerList) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("PlayerList: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, p)
}

// Roster converts the record into the core's immutable team value.
func (t *Team) Roster() scoring.Team {
	return scoring.Team{
		ID:        t.TeamID,
		Name:      t.Name,
		ShortName: t.ShortName,
		Players:   append([]scoring.Player{}, t.Players...),
	}
}
