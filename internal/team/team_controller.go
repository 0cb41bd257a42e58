package team

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dhruvp-08/willow/internal/scoring"
	"github.com/dhruvp-08/willow/pkg/responses"
)

// TeamController handles team and roster HTTP requests
type TeamController struct {
	repo TeamRepository
}

// NewTeamController creates a new team controller
func NewTeamController(repo TeamRepository) *TeamController {
	return &TeamController{repo: repo}
}

// --- DTOs for requests ---

// PlayerRequest is one roster entry in a create/update payload.
type PlayerRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Role string `json:"role" binding:"required,oneof=batsman bowler all_rounder wicket_keeper"`
}

// CreateTeamRequest defines the request payload for creating a team
type CreateTeamRequest struct {
	Name      string          `json:"name" binding:"required,min=2,max=100"`
	ShortName string          `json:"short_name" binding:"omitempty,max=10"`
	Players   []PlayerRequest `json:"players" binding:"required,min=2,dive"`
}

// UpdateTeamRequest defines the request payload for updating a team
type UpdateTeamRequest struct {
	Name      *string          `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	ShortName *string          `json:"short_name,omitempty" binding:"omitempty,max=10"`
	Players   *[]PlayerRequest `json:"players,omitempty" binding:"omitempty,min=2,dive"`
}

func buildRoster(reqs []PlayerRequest) PlayerList {
	players := make(PlayerList, 0, len(reqs))
	for _, p := range reqs {
		players = append(players, scoring.Player{
			ID:   uuid.NewString(),
			Name: p.Name,
			Role: scoring.PlayerRole(p.Role),
		})
	}
	return players
}

// CreateTeam handles the creation of a new team with its roster
func (tc *TeamController) CreateTeam(c *gin.Context) {
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	existing, err := tc.repo.GetTeamByName(req.Name)
	if err != nil {
		responses.InternalServerError(c, "Failed to check team name")
		return
	}
	if existing != nil {
		responses.Conflict(c, "A team with this name already exists")
		return
	}

	team := &Team{
		TeamID:    uuid.NewString(),
		Name:      req.Name,
		ShortName: req.ShortName,
		Players:   buildRoster(req.Players),
	}
	if err := tc.repo.CreateTeam(team); err != nil {
		responses.InternalServerError(c, "Failed to create team")
		return
	}
	responses.SuccessResponse(c, http.StatusCreated, "Team created", team)
}

// GetTeams lists teams with pagination
func (tc *TeamController) GetTeams(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	teams, total, err := tc.repo.GetAllTeams(page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch teams")
		return
	}
	responses.PaginatedResponse(c, http.StatusOK, teams, page, limit, total)
}

// GetTeamByID fetches a single team with its roster
func (tc *TeamController) GetTeamByID(c *gin.Context) {
	team, err := tc.repo.GetTeamByID(c.Param("id"))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return
	}
	if team == nil {
		responses.NotFound(c, "Team")
		return
	}
	responses.SuccessResponse(c, http.StatusOK, "", team)
}

// UpdateTeam updates team details and, optionally, replaces the roster.
// Roster edits are rejected by the match layer while the team is in a live
// match; here a replacement resets the affected players' careers.
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	team, err := tc.repo.GetTeamByID(c.Param("id"))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return
	}
	if team == nil {
		responses.NotFound(c, "Team")
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.ShortName != nil {
		team.ShortName = *req.ShortName
	}
	if req.Players != nil {
		team.Players = buildRoster(*req.Players)
	}
	if err := tc.repo.UpdateTeam(team); err != nil {
		responses.InternalServerError(c, "Failed to update team")
		return
	}
	responses.SuccessResponse(c, http.StatusOK, "Team updated", team)
}

// DeleteTeam soft-deletes a team
func (tc *TeamController) DeleteTeam(c *gin.Context) {
	teamID := c.Param("id")
	team, err := tc.repo.GetTeamByID(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return
	}
	if team == nil {
		responses.NotFound(c, "Team")
		return
	}
	if err := tc.repo.DeleteTeam(teamID, false); err != nil {
		responses.InternalServerError(c, "Failed to delete team")
		return
	}
	responses.SuccessResponse(c, http.StatusOK, "Team deleted", nil)
}

// GetPlayerStats returns one player's career batting and bowling records.
func (tc *TeamController) GetPlayerStats(c *gin.Context) {
	team, err := tc.repo.GetTeamByID(c.Param("id"))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return
	}
	if team == nil {
		responses.NotFound(c, "Team")
		return
	}
	roster := team.Roster()
	player := roster.Player(c.Param("playerId"))
	if player == nil {
		responses.NotFound(c, "Player")
		return
	}
	responses.SuccessResponse(c, http.StatusOK, "", player)
}
