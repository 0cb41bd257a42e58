package match

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dhruvp-08/willow/internal/team"
	"github.com/dhruvp-08/willow/internal/tournament"
)

// MatchRoutes registers the match endpoints.
func MatchRoutes(router *gin.RouterGroup, db *gorm.DB) {
	matchRepo := NewMatchRepository(db)
	teamRepo := team.NewTeamRepository(db)
	tournamentSvc := tournament.NewService(tournament.NewTournamentRepository(db))
	matchController := NewMatchController(matchRepo, teamRepo, tournamentSvc)

	router.POST("/matches", matchController.CreateMatch)
	router.GET("/matches", matchController.GetMatches)
	// Not nested under /matches/:id, gin cannot mix static and param
	// segments at the same position.
	router.GET("/match-history", matchController.GetMatchHistory)
	router.GET("/matches/:id", matchController.GetMatchByID)
	router.GET("/matches/:id/scorecard", matchController.GetScorecard)
	router.POST("/matches/:id/start", matchController.StartInnings)
	router.POST("/matches/:id/balls", matchController.RecordBall)
	router.DELETE("/matches/:id/balls/last", matchController.UndoLastBall)
	router.POST("/matches/:id/retire", matchController.RetireBatsman)
	router.POST("/matches/:id/abandon", matchController.AbandonMatch)
}
