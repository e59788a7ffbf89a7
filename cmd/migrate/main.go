package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	dl "authflow/internal/core/domain/logging"
	"authflow/internal/db"
	"authflow/internal/implementations/logging"

	"github.com/caarlos0/env/v6"
)

type migrateConfig struct {
	PostgresqlURL  string `env:"POSTGRESQL_URL,required"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
}

func main() {
	down := flag.Bool("down", false, "roll back the latest migration instead of applying pending ones")
	flag.Parse()

	cfg := migrateConfig{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	log := logging.NewZapLogger(cfg.LogLevel)
	defer log.Sync()

	direction := db.MigrationUp
	if *down {
		direction = db.MigrationDown
	}

	ctx := context.Background()
	log.Info(ctx, "Running migrations.", dl.Entry("direction", direction), dl.Entry("path", cfg.MigrationsPath))
	if err := db.Migrate(cfg.MigrationsPath, cfg.PostgresqlURL, direction); err != nil {
		log.Error(ctx, "Migration failed.", dl.Entry("err", err))
		os.Exit(1)
	}
	log.Info(ctx, "Migrations applied.")
}
