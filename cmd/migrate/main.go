package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/lumela/schoolsync-backend/internal/config"
)

const usage = `usage: migrate [-path dir] <command>

commands:
  up [n]       apply all (or the next n) pending migrations
  down [n]     roll back all (or the last n) applied migrations
  version      print the current schema version
  force <v>    mark the schema as version v without running anything`

func main() {
	dir := flag.String("path", "migrations", "directory holding the SQL migration files")
	flag.Parse()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	m, err := migrate.New("file://"+*dir, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open migrations: %v", err)
	}

	if err := run(m, flag.Args()); err != nil {
		log.Fatal(err)
	}
}

func run(m *migrate.Migrate, args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	switch cmd := args[0]; cmd {
	case "up", "down":
		return apply(m, cmd, args[1:])
	case "version":
		v, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("schema version: none")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Printf("schema version: %d (dirty: %t)\n", v, dirty)
		return nil
	case "force":
		if len(args) < 2 {
			return errors.New("force needs a version argument")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("parse version %q: %w", args[1], err)
		}
		if err := m.Force(v); err != nil {
			return fmt.Errorf("force version %d: %w", v, err)
		}
		fmt.Printf("schema version forced to %d\n", v)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
}

func apply(m *migrate.Migrate, dir string, rest []string) error {
	var err error
	switch {
	case len(rest) > 0:
		n, convErr := strconv.Atoi(rest[0])
		if convErr != nil {
			return fmt.Errorf("parse step count %q: %w", rest[0], convErr)
		}
		if dir == "down" {
			n = -n
		}
		err = m.Steps(n)
	case dir == "up":
		err = m.Up()
	default:
		err = m.Down()
	}

	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println("schema already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", dir, err)
	}
	fmt.Printf("migrated %s\n", dir)
	return nil
}
