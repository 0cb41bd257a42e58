package main

import (
	"log"

	"github.com/dhruvp-08/willow/config"
	"github.com/dhruvp-08/willow/internal/match"
	"github.com/dhruvp-08/willow/internal/team"
	"github.com/dhruvp-08/willow/internal/tournament"
	"github.com/dhruvp-08/willow/routes"
)

// @title Willow Cricket Scoring API
// @version 1.0
// @description Ball-by-ball cricket scoring with tournament standings.
// @host localhost:8088
// @BasePath /api
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&team.Team{},
		&match.MatchRecord{},
		&tournament.Tournament{},
		&tournament.TournamentGroup{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	r := routes.SetupRoutes(config.DB)

	// Use port from loaded configuration
	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
