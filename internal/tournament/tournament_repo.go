package tournament

import (
	"errors"

	"gorm.io/gorm"
)

// TournamentRepository defines the interface for tournament data operations
type TournamentRepository interface {
	CreateTournament(t *Tournament) error
	GetTournamentByID(tournamentID string) (*Tournament, error)
	GetTournaments(page, pageSize int) ([]Tournament, int64, error)
	UpdateTournament(t *Tournament) error
	DeleteTournament(tournamentID string) error

	CreateGroup(g *TournamentGroup) error
	GetGroupByID(groupID string) (*TournamentGroup, error)
	GetGroupsByTournament(tournamentID string) ([]TournamentGroup, error)
	UpdatePointsTable(groupID string, entries EntryList) error
	WithTransaction(txFunc func(TournamentRepository) error) error
}

type tournamentRepository struct {
	db *gorm.DB
}

// NewTournamentRepository creates a new instance of TournamentRepository
func NewTournamentRepository(db *gorm.DB) TournamentRepository {
	return &tournamentRepository{db: db}
}

func (r *tournamentRepository) CreateTournament(t *Tournament) error {
	return r.db.Create(t).Error
}

func (r *tournamentRepository) GetTournamentByID(tournamentID string) (*Tournament, error) {
	var t Tournament
	err := r.db.Preload("Groups").Where("tournament_id = ?", tournamentID).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *tournamentRepository) GetTournaments(page, pageSize int) ([]Tournament, int64, error) {
	var tournaments []Tournament
	var total int64

	query := r.db.Model(&Tournament{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * pageSize
	if err := query.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&tournaments).Error; err != nil {
		return nil, 0, err
	}
	return tournaments, total, nil
}

func (r *tournamentRepository) UpdateTournament(t *Tournament) error {
	return r.db.Save(t).Error
}

func (r *tournamentRepository) DeleteTournament(tournamentID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tournament_id = ?", tournamentID).Delete(&TournamentGroup{}).Error; err != nil {
			return err
		}
		return tx.Where("tournament_id = ?", tournamentID).Delete(&Tournament{}).Error
	})
}

func (r *tournamentRepository) CreateGroup(g *TournamentGroup) error {
	return r.db.Create(g).Error
}

func (r *tournamentRepository) GetGroupByID(groupID string) (*TournamentGroup, error) {
	var g TournamentGroup
	err := r.db.Where("group_id = ?", groupID).First(&g).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *tournamentRepository) GetGroupsByTournament(tournamentID string) ([]TournamentGroup, error) {
	var groups []TournamentGroup
	if err := r.db.Where("tournament_id = ?", tournamentID).Order("name asc").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *tournamentRepository) UpdatePointsTable(groupID string, entries EntryList) error {
	return r.db.Model(&TournamentGroup{}).Where("group_id = ?", groupID).Update("points_table", entries).Error
}

func (r *tournamentRepository) WithTransaction(txFunc func(TournamentRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(NewTournamentRepository(tx))
	})
}
