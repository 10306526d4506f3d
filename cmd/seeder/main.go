//cmd/seeder/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/unclebandit/campaign-scheduler/internal/config"
	"github.com/unclebandit/campaign-scheduler/internal/db"
	"github.com/unclebandit/campaign-scheduler/internal/logx"
	"github.com/unclebandit/campaign-scheduler/internal/repository"
	"github.com/unclebandit/campaign-scheduler/internal/seed"
)

func main() {
	reset := flag.Bool("reset", false, "delete every catalog row before seeding")
	flag.Parse()

	if err := run(*reset); err != nil {
		logx.L().Errorw("seed_failed", "err", err)
		logx.Sync()
		os.Exit(1)
	}
	logx.Sync()
}

func run(reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logx.Init(cfg.LogLevel)

	if cfg.DB.Driver == "memory" {
		return fmt.Errorf("seeder needs DB_DRIVER=postgres or sqlite")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, dialect, err := db.Open(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.Migrate(ctx, conn, dialect); err != nil {
		return err
	}
	store := repository.NewSQLStore(conn, dialect)

	if reset {
		if err := store.Wipe(ctx); err != nil {
			return err
		}
		logx.L().Infow("catalog_wiped")
	}

	wrote, err := seed.Seed(ctx, store, time.Now())
	if err != nil {
		return err
	}
	if !wrote {
		fmt.Println("Catalog already has data, nothing seeded (use -reset to start over)")
		return nil
	}
	fmt.Println("Database seeding completed successfully!")
	return nil
}
