package match

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dhruvp-08/willow/internal/scoring"
	"github.com/dhruvp-08/willow/internal/team"
	"github.com/dhruvp-08/willow/internal/tournament"
	"github.com/dhruvp-08/willow/pkg/responses"
)

// MatchController handles match-related HTTP requests. Each handler is a
// load → apply → save round trip over the core state machine; one scoring
// session per match is assumed (concurrent writers on the same match are
// not supported).
type MatchController struct {
	repo       MatchRepository
	teamRepo   team.TeamRepository
	tournament *tournament.Service
}

// NewMatchController creates a new match controller
func NewMatchController(repo MatchRepository, teamRepo team.TeamRepository, tournamentSvc *tournament.Service) *MatchController {
	return &MatchController{repo: repo, teamRepo: teamRepo, tournament: tournamentSvc}
}

// --- DTOs for requests ---

// CreateMatchRequest defines the request payload for creating a match
type CreateMatchRequest struct {
	TeamAID      string `json:"team_a_id" binding:"required"`
	TeamBID      string `json:"team_b_id" binding:"required"`
	Overs        int    `json:"overs" binding:"required,min=1,max=50"`
	TossWinnerID string `json:"toss_winner_id" binding:"required"`
	Decision     string `json:"decision" binding:"required,oneof=bat bowl"`
	TournamentID string `json:"tournament_id,omitempty"`
	GroupID      string `json:"group_id,omitempty"`
}

// StartInningsRequest defines the opening players for an innings
type StartInningsRequest struct {
	StrikerID    string `json:"striker_id" binding:"required"`
	NonStrikerID string `json:"non_striker_id" binding:"required"`
	BowlerID     string `json:"bowler_id" binding:"required"`
}

// ExtraRequest is the extra part of a ball payload
type ExtraRequest struct {
	Type string `json:"type" binding:"required,oneof=wide no_ball bye leg_bye penalty"`
	Runs int    `json:"runs" binding:"required,min=1"`
}

// WicketRequest is the dismissal part of a ball payload
type WicketRequest struct {
	PlayerOutID string `json:"player_out_id" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=bowled caught lbw run_out stumped hit_wicket retired_out timed_out obstructing_the_field"`
	FielderID   string `json:"fielder_id,omitempty"`
}

// RecordBallRequest defines the request payload for one delivery
type RecordBallRequest struct {
	BatsmanID     string         `json:"batsman_id" binding:"required"`
	BowlerID      string         `json:"bowler_id" binding:"required"`
	Runs          int            `json:"runs" binding:"min=0"`
	Extra         *ExtraRequest  `json:"extra,omitempty"`
	Wicket        *WicketRequest `json:"wicket,omitempty"`
	NextBatsmanID string         `json:"next_batsman_id,omitempty"`
}

// RetireBatsmanRequest substitutes a batsman who cannot continue
type RetireBatsmanRequest struct {
	PlayerID      string `json:"player_id" binding:"required"`
	ReplacementID string `json:"replacement_id" binding:"required"`
}

// AbandonMatchRequest defines the abandonment payload
type AbandonMatchRequest struct {
	Reason string `json:"reason,omitempty" binding:"max=200"`
}

// coreErrorResponse maps the core's error kinds onto HTTP statuses.
func coreErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, scoring.ErrMatchClosed):
		responses.Conflict(c, "Match is closed and cannot be modified")
	case errors.Is(err, scoring.ErrInningsState):
		responses.Conflict(c, err.Error())
	case errors.Is(err, scoring.ErrInvalidBall), errors.Is(err, scoring.ErrRoster):
		responses.BadRequest(c, err.Error())
	default:
		responses.InternalServerError(c, "")
	}
}

// loadMatch fetches the match or writes the error response.
func (mc *MatchController) loadMatch(c *gin.Context) *scoring.Match {
	m, err := mc.repo.GetMatchByID(c.Param("id"))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch match")
		return nil
	}
	if m == nil {
		responses.NotFound(c, "Match")
		return nil
	}
	return m
}

// CreateMatch creates an upcoming match between two stored teams
func (mc *MatchController) CreateMatch(c *gin.Context) {
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	if (req.TournamentID == "") != (req.GroupID == "") {
		responses.BadRequest(c, "Tournament fixtures need both tournament_id and group_id")
		return
	}

	teamA, err := mc.teamRepo.GetTeamByID(req.TeamAID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return
	}
	teamB, err := mc.teamRepo.GetTeamByID(req.TeamBID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return
	}
	if teamA == nil || teamB == nil {
		responses.NotFound(c, "Team")
		return
	}

	m, err := scoring.NewMatch(uuid.NewString(), teamA.Roster(), teamB.Roster(),
		req.Overs, req.TossWinnerID, scoring.TossDecision(req.Decision))
	if err != nil {
		coreErrorResponse(c, err)
		return
	}
	m.TournamentID = req.TournamentID
	m.GroupID = req.GroupID

	if err := mc.repo.SaveMatch(m); err != nil {
		responses.InternalServerError(c, "Failed to save match")
		return
	}
	responses.SuccessResponse(c, http.StatusCreated, "Match created", m)
}

// GetMatches lists matches with status/team/tournament filters
func (mc *MatchController) GetMatches(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filters := map[string]interface{}{}
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}
	if teamID := c.Query("team_id"); teamID != "" {
		filters["team_id"] = teamID
	}
	if tournamentID := c.Query("tournament_id"); tournamentID != "" {
		filters["tournament_id"] = tournamentID
	}

	records, total, err := mc.repo.GetMatches(filters, page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch matches")
		return
	}
	responses.PaginatedResponse(c, http.StatusOK, records, page, limit, total)
}

// GetMatchHistory lists finished matches, optionally for one team
func (mc *MatchController) GetMatchHistory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	records, total, err := mc.repo.LoadMatchHistory(c.Query("team_id"), page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch match history")
		return
	}
	responses.PaginatedResponse(c, http.StatusOK, records, page, limit, total)
}

// GetMatchByID fetches the full match state
func (mc *MatchController) GetMatchByID(c *gin.Context) {
	m := mc.loadMatch(c)
	if m == nil {
		return
	}
	responses.SuccessResponse(c, http.StatusOK, "", m)
}

// StartInnings records opening players: from upcoming it opens the match,
// after the first innings it opens the chase
func (mc *MatchController) StartInnings(c *gin.Context) {
	m := mc.loadMatch(c)
	if m == nil {
		return
	}

	var req StartInningsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	if err := m.StartInnings(req.StrikerID, req.NonStrikerID, req.BowlerID); err != nil {
		coreErrorResponse(c, err)
		return
	}
	if err := mc.repo.SaveMatch(m); err != nil {
		responses.InternalServerError(c, "Failed to save match")
		return
	}
	responses.SuccessResponse(c, http.StatusOK, "Innings started", m)
}

// RecordBall applies one delivery. When the delivery finishes the match it
// also triggers the post-match steps: career aggregation and, for
// tournament fixtures, the points-table update.
func (mc *MatchController) RecordBall(c *gin.Context) {
	m := mc.loadMatch(c)
	if m == nil {
		return
	}

	var req RecordBallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	ev := scoring.BallEvent{
		BatsmanID:     req.BatsmanID,
		BowlerID:      req.BowlerID,
		Runs:          req.Runs,
		NextBatsmanID: req.NextBatsmanID,
	}
	if req.Extra != nil {
		ev.Extra = &scoring.Extra{Type: scoring.ExtraType(req.Extra.Type), Runs: req.Extra.Runs}
	}
	if req.Wicket != nil {
		ev.Wicket = &scoring.WicketEvent{
			PlayerOutID: req.Wicket.PlayerOutID,
			Type:        scoring.DismissalType(req.Wicket.Type),
			FielderID:   req.Wicket.FielderID,
		}
	}

	if err := m.RecordBall(ev); err != nil {
		coreErrorResponse(c, err)
		return
	}
	if err := mc.repo.SaveMatch(m); err != nil {
		responses.InternalServerError(c, "Failed to save match")
		return
	}
	if m.Status == scoring.StatusCompleted {
		mc.finalize(m)
	}
	responses.SuccessResponse(c, http.StatusOK, "", m)
}

// UndoLastBall removes the most recent delivery by replaying the log
func (mc *MatchController) UndoLastBall(c *gin.Context) {
	m := mc.loadMatch(c)
	if m == nil {
		return
	}
	if err := m.UndoLastBall(); err != nil {
		coreErrorResponse(c, err)
		return
	}
	if err := mc.repo.SaveMatch(m); err != nil {
		responses.InternalServerError(c, "Failed to save match")
		return
	}
	responses.SuccessResponse(c, http.StatusOK, "Last delivery removed", m)
}

// RetireBatsman substitutes a retired-hurt batsman
func (mc *MatchController) RetireBatsman(c *gin.Context) {
	m := mc.loadMatch(c)
	if m == nil {
		return
	}

	var req RetireBatsmanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	if err := m.RetireHurt(req.PlayerID, req.ReplacementID); err != nil {
		coreErrorResponse(c, err)
		return
	}
	if err := mc.repo.SaveMatch(m); err != nil {
		responses.InternalServerError(c, "Failed to save match")
		return
	}
	responses.SuccessResponse(c, http.StatusOK, "Batsman retired hurt", m)
}

// AbandonMatch transitions the match to abandoned with no-result semantics
func (mc *MatchController) AbandonMatch(c *gin.Context) {
	m := mc.loadMatch(c)
	if m == nil {
		return
	}

	var req AbandonMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		responses.ValidationErrorResponse(c, err)
		return
	}
	if err := m.Abandon(req.Reason); err != nil {
		coreErrorResponse(c, err)
		return
	}
	if err := mc.repo.SaveMatch(m); err != nil {
		responses.InternalServerError(c, "Failed to save match")
		return
	}
	mc.finalize(m)
	responses.SuccessResponse(c, http.StatusOK, "Match abandoned", m)
}

// GetScorecard returns the derived full scorecard for both innings
func (mc *MatchController) GetScorecard(c *gin.Context) {
	m := mc.loadMatch(c)
	if m == nil {
		return
	}
	responses.SuccessResponse(c, http.StatusOK, "", buildScorecard(m))
}

// finalize runs the post-match steps. These are best-effort against
// external state: the match itself is already durably saved, and a failed
// step only logs (a recompute can be retried via the points-table read).
func (mc *MatchController) finalize(m *scoring.Match) {
	if err := mc.updateCareerStats(m); err != nil {
		log.Printf("match %s: career stats update failed: %v", m.ID, err)
	}
	if m.TournamentID != "" && m.GroupID != "" {
		groupMatches, err := mc.repo.GetFinishedMatchesByGroup(m.TournamentID, m.GroupID)
		if err == nil {
			err = mc.tournament.ApplyMatchResult(m, groupMatches)
		}
		if err != nil {
			log.Printf("match %s: points table update failed: %v", m.ID, err)
		}
	}
}

// updateCareerStats refolds both rosters' career records over their
// completed-match history.
func (mc *MatchController) updateCareerStats(m *scoring.Match) error {
	for _, teamID := range []string{m.TeamA.ID, m.TeamB.ID} {
		rec, err := mc.teamRepo.GetTeamByID(teamID)
		if err != nil {
			return err
		}
		if rec == nil {
			continue
		}
		history, err := mc.repo.GetFinishedMatchesByTeam(teamID)
		if err != nil {
			return err
		}
		for i := range rec.Players {
			rec.Players[i].Batting = scoring.AggregateBatting(rec.Players[i].ID, history)
			rec.Players[i].Bowling = scoring.AggregateBowling(rec.Players[i].ID, history)
		}
		if err := mc.teamRepo.UpdateRoster(teamID, rec.Players); err != nil {
			return err
		}
	}
	return nil
}
