package match

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dhruvp-08/willow/internal/scoring"
)

// MatchRepository is the Match Store boundary: the core only meets it at
// match creation, after each accepted mutation, and at completion. In-memory
// correctness never depends on it.
type MatchRepository interface {
	SaveMatch(m *scoring.Match) error
	GetMatchByID(matchID string) (*scoring.Match, error)
	GetMatches(filters map[string]interface{}, page, pageSize int) ([]MatchRecord, int64, error)
	LoadMatchHistory(teamID string, page, pageSize int) ([]MatchRecord, int64, error)
	GetFinishedMatchesByTeam(teamID string) ([]*scoring.Match, error)
	GetFinishedMatchesByGroup(tournamentID, groupID string) ([]*scoring.Match, error)
	DeleteMatch(matchID string) error
	WithTransaction(txFunc func(MatchRepository) error) error
}

type gormMatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a GORM-backed match store.
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &gormMatchRepository{db: db}
}

// SaveMatch upserts the match state by its external id.
func (r *gormMatchRepository) SaveMatch(m *scoring.Match) error {
	var existing MatchRecord
	err := r.db.Where("match_id = ?", m.ID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(newRecord(m)).Error
	}
	if err != nil {
		return err
	}
	existing.State = MatchState(*m)
	existing.syncColumns()
	return r.db.Save(&existing).Error
}

func (r *gormMatchRepository) GetMatchByID(matchID string) (*scoring.Match, error) {
	var rec MatchRecord
	if err := r.db.Where("match_id = ?", matchID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec.Match(), nil
}

func (r *gormMatchRepository) GetMatches(filters map[string]interface{}, page, pageSize int) ([]MatchRecord, int64, error) {
	var records []MatchRecord
	var total int64

	query := r.db.Model(&MatchRecord{})
	if status, ok := filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if teamID, ok := filters["team_id"]; ok {
		query = query.Where("team_a_id = ? OR team_b_id = ?", teamID, teamID)
	}
	if tournamentID, ok := filters["tournament_id"]; ok {
		query = query.Where("tournament_id = ?", tournamentID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * pageSize
	if err := query.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// LoadMatchHistory lists finished matches, newest first, optionally
// narrowed to one team.
func (r *gormMatchRepository) LoadMatchHistory(teamID string, page, pageSize int) ([]MatchRecord, int64, error) {
	var records []MatchRecord
	var total int64

	query := r.db.Model(&MatchRecord{}).
		Where("status IN ?", []string{string(scoring.StatusCompleted), string(scoring.StatusAbandoned)})
	if teamID != "" {
		query = query.Where("team_a_id = ? OR team_b_id = ?", teamID, teamID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * pageSize
	if err := query.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *gormMatchRepository) GetFinishedMatchesByTeam(teamID string) ([]*scoring.Match, error) {
	var records []MatchRecord
	err := r.db.
		Where("status = ?", string(scoring.StatusCompleted)).
		Where("team_a_id = ? OR team_b_id = ?", teamID, teamID).
		Order("created_at asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return unwrap(records), nil
}

func (r *gormMatchRepository) GetFinishedMatchesByGroup(tournamentID, groupID string) ([]*scoring.Match, error) {
	var records []MatchRecord
	err := r.db.
		Where("status IN ?", []string{string(scoring.StatusCompleted), string(scoring.StatusAbandoned)}).
		Where("tournament_id = ? AND group_id = ?", tournamentID, groupID).
		Order("created_at asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return unwrap(records), nil
}

func (r *gormMatchRepository) DeleteMatch(matchID string) error {
	return r.db.Where("match_id = ?", matchID).Delete(&MatchRecord{}).Error
}

func (r *gormMatchRepository) WithTransaction(txFunc func(MatchRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(NewMatchRepository(tx))
	})
}

func unwrap(records []MatchRecord) []*scoring.Match {
	matches := make([]*scoring.Match, 0, len(records))
	for i := range records {
		matches = append(matches, records[i].Match())
	}
	return matches
}
