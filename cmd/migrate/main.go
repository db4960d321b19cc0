package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/trendlinehq/builder-api/internal/models"
	"github.com/trendlinehq/builder-api/pkg/config"
	"github.com/trendlinehq/builder-api/pkg/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|seed]")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "up":
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Info("Tables dropped successfully")

	case "seed":
		if err := seedData(db); err != nil {
			logrus.Fatalf("Failed to seed data: %v", err)
		}
		logrus.Info("Data seeded successfully")

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func runMigrations(db *database.DB) error {
	// Enable UUID extension for PostgreSQL
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	// Auto migrate all models
	if err := db.AutoMigrate(
		&models.SavedQuery{},
		&models.Referee{},
		&models.Player{},
	); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	// Create indexes
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_saved_queries_user_updated ON saved_queries(user_id, updated_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_saved_queries_public ON saved_queries(is_public) WHERE is_public = true",
		"CREATE INDEX IF NOT EXISTS idx_players_name_lower ON players(LOWER(name))",
		"CREATE INDEX IF NOT EXISTS idx_players_position_active ON players(position, active)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func dropTables(db *database.DB) error {
	// Drop tables in reverse order to handle foreign key constraints
	tables := []string{
		"saved_queries",
		"players",
		"referees",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	return nil
}

func seedData(db *database.DB) error {
	// Referee list with career game counts; kept current by the background
	// refresher once the service runs.
	referees := []models.Referee{
		{Name: "Carl Cheffers", GameCount: 44},
		{Name: "Clete Blakeman", GameCount: 42},
		{Name: "Brad Allen", GameCount: 41},
		{Name: "Shawn Hochuli", GameCount: 43},
		{Name: "Brad Rogers", GameCount: 38},
		{Name: "Ron Torbert", GameCount: 40},
		{Name: "Bill Vinovich", GameCount: 44},
		{Name: "Craig Wrolstad", GameCount: 42},
		{Name: "Scott Novak", GameCount: 36},
		{Name: "Adrian Hill", GameCount: 37},
		{Name: "Alex Kemp", GameCount: 35},
		{Name: "John Hussey", GameCount: 41},
		{Name: "Land Clark", GameCount: 34},
		{Name: "Tra Blake", GameCount: 28},
		{Name: "Alan Eck", GameCount: 24},
		{Name: "Shawn Smith", GameCount: 39},
		{Name: "Clay Martin", GameCount: 36},
	}

	if err := db.Create(&referees).Error; err != nil {
		logrus.Warnf("Failed to seed referees (may already exist): %v", err)
	}

	// A handful of players so prop search works before the first sync.
	players := []models.Player{
		{ESPNPlayerID: 3918298, Name: "Josh Allen", Position: "QB", Team: "BUF", Sport: "nfl", Active: true},
		{ESPNPlayerID: 3139477, Name: "Patrick Mahomes", Position: "QB", Team: "KC", Sport: "nfl", Active: true},
		{ESPNPlayerID: 4262921, Name: "Justin Jefferson", Position: "WR", Team: "MIN", Sport: "nfl", Active: true},
		{ESPNPlayerID: 4241389, Name: "CeeDee Lamb", Position: "WR", Team: "DAL", Sport: "nfl", Active: true},
		{ESPNPlayerID: 4360438, Name: "Ja'Marr Chase", Position: "WR", Team: "CIN", Sport: "nfl", Active: true},
		{ESPNPlayerID: 4429795, Name: "Bijan Robinson", Position: "RB", Team: "ATL", Sport: "nfl", Active: true},
		{ESPNPlayerID: 4241457, Name: "Christian McCaffrey", Position: "RB", Team: "SF", Sport: "nfl", Active: true},
		{ESPNPlayerID: 4430027, Name: "Sam LaPorta", Position: "TE", Team: "DET", Sport: "nfl", Active: true},
		{ESPNPlayerID: 3116365, Name: "Travis Kelce", Position: "TE", Team: "KC", Sport: "nfl", Active: true},
		{ESPNPlayerID: 3975763, Name: "Justin Tucker", Position: "K", Team: "BAL", Sport: "nfl", Active: true},
	}

	if err := db.Create(&players).Error; err != nil {
		logrus.Warnf("Failed to seed players (may already exist): %v", err)
	}

	logrus.Infof("Seeded %d referees and %d players", len(referees), len(players))

	return nil
}
