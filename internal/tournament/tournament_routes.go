package tournament

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TournamentRoutes sets up all tournament-related routes
func TournamentRoutes(router *gin.RouterGroup, db *gorm.DB, fixtures FixtureSource) {
	repo := NewTournamentRepository(db)
	controller := NewTournamentController(repo, fixtures)

	router.POST("/tournaments", controller.CreateTournament)
	router.GET("/tournaments", controller.GetTournaments)
	router.GET("/tournaments/:id", controller.GetTournamentByID)
	router.PUT("/tournaments/:id", controller.UpdateTournament)
	router.DELETE("/tournaments/:id", controller.DeleteTournament)
	router.POST("/tournaments/:id/groups", controller.CreateGroup)
	router.GET("/tournaments/:id/groups/:groupId/points-table", controller.GetPointsTable)
}
