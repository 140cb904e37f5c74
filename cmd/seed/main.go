// Command seed populates an empty EduSync database with the demo dataset.
// It assumes the schema already exists; it never migrates. The whole run
// is one transaction, so a failure leaves the database untouched.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/edusync-app/school-service/internal/config"
	"github.com/edusync-app/school-service/internal/repositories/postgres"
	"github.com/edusync-app/school-service/internal/seeder"
	"github.com/edusync-app/school-service/internal/utils"
	"github.com/edusync-app/school-service/pkg"
)

func main() {
	var rngSeed int64
	flag.Int64Var(&rngSeed, "seed", 0, "random seed; 0 derives one from the clock")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})

	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	logger.Info("seeding demo data", "db", cfg.DBName, "rng_seed", rngSeed)

	s := seeder.New(db, repo, rand.New(rand.NewSource(rngSeed)), logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	summary, err := s.Run(ctx)
	if err != nil {
		// The transaction already rolled back; nothing partial remains.
		logger.Error("seeding failed, all changes rolled back", "error", err)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(summary, "", "  ")
	logger.Info("seeding complete")
	os.Stdout.Write(append(out, '\n'))

	if err := repo.Close(); err != nil {
		logger.Warn("close repository failed", "error", err)
	}
}
