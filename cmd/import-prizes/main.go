// Command import-prizes loads the prize catalog from a CSV file with the columns
// id,name,weight,stock[,imageRef]. Existing prizes with the same id are overwritten.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/ArowuTest/sansol-promo-backend/internal/config"
	mongorepo "github.com/ArowuTest/sansol-promo-backend/internal/repositories/mongodb"
	"github.com/ArowuTest/sansol-promo-backend/pkg/logger"
	"github.com/ArowuTest/sansol-promo-backend/pkg/mongodb"
	"github.com/joho/godotenv"
)

func main() {
	log := logger.New("import-prizes", logger.Options{Level: "info", Format: "text"})

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WithError(err).Warn(".env file could not be loaded, using environment variables")
	}

	if len(os.Args) < 2 {
		log.Fatal("CSV file path is required as a command line argument")
	}
	csvFilePath := os.Args[1]

	cfg, err := config.Load(".")
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	file, err := os.Open(csvFilePath)
	if err != nil {
		log.WithError(err).Fatal("failed to open CSV file")
	}
	defer file.Close()

	prizes, skipped, err := parsePrizes(file, time.Now())
	if err != nil {
		log.WithError(err).Fatal("failed to parse CSV file")
	}
	for _, s := range skipped {
		log.WithField("line", s.Line).WithError(s.Err).Warn("skipping row")
	}
	if len(prizes) > cfg.Promo.MaxPrizes {
		log.Fatalf("CSV holds %d prizes, the catalog allows %d", len(prizes), cfg.Promo.MaxPrizes)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := mongodb.NewClient(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	repo := mongorepo.NewPrizeRepository(client.Database(cfg.MongoDB.Database))
	for _, p := range prizes {
		if err := repo.Upsert(ctx, p); err != nil {
			log.WithError(err).WithField("prize_id", p.ID).Fatal("failed to import prize")
		}
	}

	log.WithField("imported", len(prizes)).Info("prizes imported successfully")
}
