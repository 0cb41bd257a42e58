package tournament

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dhruvp-08/willow/pkg/responses"
)

// TournamentController handles tournament-related HTTP requests
type TournamentController struct {
	repo     TournamentRepository
	fixtures FixtureSource
}

// NewTournamentController creates a new tournament controller
func NewTournamentController(repo TournamentRepository, fixtures FixtureSource) *TournamentController {
	return &TournamentController{repo: repo, fixtures: fixtures}
}

// --- DTOs for requests ---

// CreateTournamentRequest defines the request payload for creating a tournament
type CreateTournamentRequest struct {
	Name           string `json:"name" binding:"required,min=3,max=200"`
	PointsWin      *int   `json:"points_win,omitempty" binding:"omitempty,min=0"`
	PointsLoss     *int   `json:"points_loss,omitempty" binding:"omitempty,min=0"`
	PointsTie      *int   `json:"points_tie,omitempty" binding:"omitempty,min=0"`
	PointsNoResult *int   `json:"points_no_result,omitempty" binding:"omitempty,min=0"`
}

// UpdateTournamentRequest defines the request payload for updating a tournament
type UpdateTournamentRequest struct {
	Name   *string `json:"name,omitempty" binding:"omitempty,min=3,max=200"`
	Status *string `json:"status,omitempty" binding:"omitempty,oneof=upcoming live completed"`
}

// CreateGroupRequest defines the request payload for adding a group
type CreateGroupRequest struct {
	Name    string   `json:"name" binding:"required,min=1,max=100"`
	TeamIDs []string `json:"team_ids" binding:"required,min=2,dive,required"`
}

// CreateTournament handles the creation of a new tournament
func (tc *TournamentController) CreateTournament(c *gin.Context) {
	var req CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	defaults := DefaultPointsConfig()
	t := &Tournament{
		TournamentID:   uuid.NewString(),
		Name:           req.Name,
		Status:         TournamentUpcoming,
		PointsWin:      defaults.Win,
		PointsLoss:     defaults.Loss,
		PointsTie:      defaults.Tie,
		PointsNoResult: defaults.NoResult,
	}
	if req.PointsWin != nil {
		t.PointsWin = *req.PointsWin
	}
	if req.PointsLoss != nil {
		t.PointsLoss = *req.PointsLoss
	}
	if req.PointsTie != nil {
		t.PointsTie = *req.PointsTie
	}
	if req.PointsNoResult != nil {
		t.PointsNoResult = *req.PointsNoResult
	}

	if err := tc.repo.CreateTournament(t); err != nil {
		responses.InternalServerError(c, "Failed to create tournament")
		return
	}
	responses.SuccessResponse(c, http.StatusCreated, "Tournament created", t)
}

// GetTournaments lists tournaments with pagination
func (tc *TournamentController) GetTournaments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	tournaments, total, err := tc.repo.GetTournaments(page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch tournaments")
		return
	}
	responses.PaginatedResponse(c, http.StatusOK, tournaments, page, limit, total)
}

// GetTournamentByID fetches one tournament with its groups
func (tc *TournamentController) GetTournamentByID(c *gin.Context) {
	t, err := tc.repo.GetTournamentByID(c.Param("id"))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch tournament")
		return
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return
	}
	responses.SuccessResponse(c, http.StatusOK, "", t)
}

// UpdateTournament updates name or lifecycle status
func (tc *TournamentController) UpdateTournament(c *gin.Context) {
	t, err := tc.repo.GetTournamentByID(c.Param("id"))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch tournament")
		return
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return
	}

	var req UpdateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Status != nil {
		t.Status = TournamentStatus(*req.Status)
	}
	if err := tc.repo.UpdateTournament(t); err != nil {
		responses.InternalServerError(c, "Failed to update tournament")
		return
	}
	responses.SuccessResponse(c, http.StatusOK, "Tournament updated", t)
}

// DeleteTournament removes a tournament and its groups
func (tc *TournamentController) DeleteTournament(c *gin.Context) {
	t, err := tc.repo.GetTournamentByID(c.Param("id"))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch tournament")
		return
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return
	}
	if err := tc.repo.DeleteTournament(t.TournamentID); err != nil {
		responses.InternalServerError(c, "Failed to delete tournament")
		return
	}
	responses.SuccessResponse(c, http.StatusOK, "Tournament deleted", nil)
}

// CreateGroup adds a group with zeroed points-table entries for its teams
func (tc *TournamentController) CreateGroup(c *gin.Context) {
	t, err := tc.repo.GetTournamentByID(c.Param("id"))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch tournament")
		return
	}
	if t == nil {
		responses.NotFound(c, "Tournament")
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	entries := make(EntryList, 0, len(req.TeamIDs))
	for _, id := range req.TeamIDs {
		entries = append(entries, PointsTableEntry{TeamID: id})
	}
	g := &TournamentGroup{
		GroupID:      uuid.NewString(),
		TournamentID: t.TournamentID,
		Name:         req.Name,
		TeamIDs:      req.TeamIDs,
		PointsTable:  entries,
	}
	if err := tc.repo.CreateGroup(g); err != nil {
		responses.InternalServerError(c, "Failed to create group")
		return
	}
	responses.SuccessResponse(c, http.StatusCreated, "Group created", g)
}

// GetPointsTable returns a group's standings ranked by points, net run
// rate, then head-to-head
func (tc *TournamentController) GetPointsTable(c *gin.Context) {
	g, err := tc.repo.GetGroupByID(c.Param("groupId"))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch group")
		return
	}
	if g == nil || g.TournamentID != c.Param("id") {
		responses.NotFound(c, "Group")
		return
	}

	matches, err := tc.fixtures.GetFinishedMatchesByGroup(g.TournamentID, g.GroupID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch group fixtures")
		return
	}
	ranked := Rank(g.PointsTable, matches)
	responses.SuccessResponse(c, http.StatusOK, "", gin.H{
		"group_id": g.GroupID,
		"entries":  ranked,
	})
}
