package tournament

import (
	"fmt"
	"sync"

	"github.com/dhruvp-08/willow/internal/scoring"
)

// FixtureSource supplies a group's finished matches. The match store
// implements it; the interface keeps this package free of a dependency on
// the store's record types.
type FixtureSource interface {
	GetFinishedMatchesByGroup(tournamentID, groupID string) ([]*scoring.Match, error)
}

// Service applies finished fixtures to group standings. Aggregation across
// different matches may run in parallel, so the points-table write is
// serialized per group.
type Service struct {
	repo TournamentRepository

	mu     sync.Mutex
	groups map[string]*sync.Mutex
}

// NewService creates a tournament aggregation service.
func NewService(repo TournamentRepository) *Service {
	return &Service{repo: repo, groups: make(map[string]*sync.Mutex)}
}

func (s *Service) groupLock(groupID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.groups[groupID]
	if !ok {
		l = &sync.Mutex{}
		s.groups[groupID] = l
	}
	return l
}

// ApplyMatchResult folds one finished fixture into its group's points
// table. groupMatches are the group's finished matches including m itself
// (it has already been persisted by the caller).
func (s *Service) ApplyMatchResult(m *scoring.Match, groupMatches []*scoring.Match) error {
	if m.TournamentID == "" || m.GroupID == "" {
		return nil // friendly, not a fixture
	}

	lock := s.groupLock(m.GroupID)
	lock.Lock()
	defer lock.Unlock()

	t, err := s.repo.GetTournamentByID(m.TournamentID)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("%w: tournament %s not found", scoring.ErrAggregation, m.TournamentID)
	}
	g, err := s.repo.GetGroupByID(m.GroupID)
	if err != nil {
		return err
	}
	if g == nil {
		return fmt.Errorf("%w: group %s not found", scoring.ErrAggregation, m.GroupID)
	}

	prior := make([]*scoring.Match, 0, len(groupMatches))
	for _, gm := range groupMatches {
		if gm.ID != m.ID {
			prior = append(prior, gm)
		}
	}
	entries, err := NewAggregator(t.PointsConfig()).ApplyResult(g.TeamIDs, m, prior)
	if err != nil {
		return err
	}
	return s.repo.UpdatePointsTable(g.GroupID, entries)
}
