package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/edunexa/educenter-backend/internal/db"
	"github.com/edunexa/educenter-backend/internal/logger"
	"github.com/edunexa/educenter-backend/internal/seeds"
)

func main() {
	fixturePath := flag.String("fixture", "seeds/dev.yaml", "path to the YAML fixture to apply")
	flag.Parse()

	log, err := logger.New("development")
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}

	fixture, err := seeds.LoadFixture(*fixturePath)
	if err != nil {
		log.Error("Fixture load failed", "error", err)
		os.Exit(1)
	}

	seeder := seeds.NewSeeder(postgresService.DB(), log)
	if err := seeder.Apply(context.Background(), fixture); err != nil {
		log.Error("Fixture apply failed", "error", err)
		os.Exit(1)
	}
	log.Info("Seeding complete", "fixture", *fixturePath)
}
