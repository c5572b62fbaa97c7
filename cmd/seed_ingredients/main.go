// Loads the ingredient reference data from a JSON file of
// {"name": ..., "measurement_unit": ...} objects. Existing names are
// skipped so the seeder is safe to re-run.
package main

import (
	"encoding/json"
	"flag"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/database"
	"github.com/foodgram/backend/internal/models"
)

func main() {
	file := flag.String("file", "data/ingredients.json", "path to the ingredients JSON file")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal("failed to read ingredients file", zap.String("file", *file), zap.Error(err))
	}

	var ingredients []models.Ingredient
	if err := json.Unmarshal(data, &ingredients); err != nil {
		log.Fatal("failed to parse ingredients file", zap.Error(err))
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&ingredients)
	if result.Error != nil {
		log.Fatal("failed to insert ingredients", zap.Error(result.Error))
	}

	log.Info("ingredients seeded",
		zap.Int("total", len(ingredients)),
		zap.Int64("inserted", result.RowsAffected))
}
