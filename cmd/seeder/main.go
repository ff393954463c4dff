//cmd/seeder/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lunchly/lunchly-backend/internal/config"
	"github.com/lunchly/lunchly-backend/internal/db"
	"github.com/lunchly/lunchly-backend/internal/logger"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()

	database, err := db.Open(ctx, cfg.Postgres, log)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer database.Close()

	seedFiles := []string{
		"seed/schema.sql",
		"seed/customers.sql",
		"seed/reservations.sql",
	}

	for _, file := range seedFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			log.Fatalw("failed to read seed file", "file", file, "error", err)
		}

		if _, err := database.ExecContext(ctx, string(content)); err != nil {
			log.Fatalw("failed to execute seed file", "file", file, "error", err)
		}
		fmt.Printf("Seeded: %s\n", file)
	}

	fmt.Println("Database seeding completed successfully!")
}
