package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/dhruvp-08/willow/internal/match"
	"github.com/dhruvp-08/willow/internal/team"
	"github.com/dhruvp-08/willow/internal/tournament"
)

func SetupRoutes(db *gorm.DB) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "willow",
			"message": "cricket scoring API",
			"docs":    "/swagger/index.html",
		})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	team.TeamRoutes(api, db)
	match.MatchRoutes(api, db)
	tournament.TournamentRoutes(api, db, match.NewMatchRepository(db))

	return r
}
