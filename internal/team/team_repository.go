package team

import (
	"errors"

	"gorm.io/gorm"
)

// TeamRepository defines the interface for team data operations
type TeamRepository interface {
	CreateTeam(team *Team) error
	GetTeamByID(teamID string) (*Team, error)
	GetTeamByName(name string) (*Team, error)
	GetAllTeams(page, limit int) ([]Team, int64, error)
	UpdateTeam(team *Team) error
	DeleteTeam(teamID string, hardDelete bool) error
	UpdateRoster(teamID string, players PlayerList) error
	WithTransaction(txFunc func(TeamRepository) error) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) CreateTeam(team *Team) error {
	return r.db.Create(team).Error
}

func (r *teamRepository) GetTeamByID(teamID string) (*Team, error) {
	var team Team
	if err := r.db.Where("team_id = ? AND is_deleted = ?", teamID, false).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetTeamByName(name string) (*Team, error) {
	var team Team
	if err := r.db.Where("name = ? AND is_deleted = ?", name, false).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetAllTeams(page, limit int) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.Model(&Team{}).Where("is_deleted = ?", false)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("name asc").Offset(offset).Limit(limit).Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (r *teamRepository) UpdateTeam(team *Team) error {
	return r.db.Save(team).Error
}

func (r *teamRepository) DeleteTeam(teamID string, hardDelete bool) error {
	if hardDelete {
		return r.db.Unscoped().Where("team_id = ?", teamID).Delete(&Team{}).Error
	}
	return r.db.Model(&Team{}).Where("team_id = ?", teamID).Update("is_deleted", true).Error
}

// UpdateRoster rewrites the roster column, used by the post-match career
// stats aggregation.
func (r *teamRepository) UpdateRoster(teamID string, players PlayerList) error {
	return r.db.Model(&Team{}).Where("team_id = ?", teamID).Update("players", players).Error
}

func (r *teamRepository) WithTransaction(txFunc func(TeamRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(NewTeamRepository(tx))
	})
}
