package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/offineeds/oms/internal/migrate"
	"github.com/offineeds/oms/internal/obs"
)

func main() {
	var (
		dsn        = flag.String("dsn", os.Getenv("OMS_DATABASE_DSN"), "PostgreSQL DSN")
		migrations = flag.String("migrations", "ops/migrations/sql", "directory with *.up.sql / *.down.sql files")
		seeds      = flag.String("seeds", "ops/migrations/seeds", "directory with seed SQL files")
		timeout    = flag.Duration("timeout", 30*time.Second, "overall deadline")
	)
	flag.Parse()

	obs.ConfigureLogger(os.Stderr, "info", true)
	log := obs.Logger()

	cmd := flag.Arg(0)
	if cmd == "" {
		log.Fatal().Msg("usage: migrate [up|down|seed|status]")
	}
	if *dsn == "" {
		log.Fatal().Msg("missing DSN: provide -dsn or OMS_DATABASE_DSN")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	mgr := migrate.NewManager(db, *migrations, *seeds)

	if err := run(ctx, mgr, cmd); err != nil {
		log.Fatal().Err(err).Str("command", cmd).Msg("migrate failed")
	}
}

func run(ctx context.Context, mgr *migrate.Manager, cmd string) error {
	switch cmd {
	case "up":
		return mgr.Up(ctx)
	case "down":
		return mgr.Down(ctx)
	case "seed":
		return mgr.Seed(ctx)
	case "status":
		history, err := mgr.Status(ctx)
		if err != nil {
			return err
		}
		for _, item := range history {
			fmt.Println(item)
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
