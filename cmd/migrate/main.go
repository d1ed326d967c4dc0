// Command migrate applies the SQL migrations in db/migrations against the
// database configured through the MAKTAB_DB_* environment variables.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"maktab/internal/config"
)

const usage = "usage: migrate <up|down|steps N|version>"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("migrate: loading config: %v", err)
	}

	source := os.Getenv("MAKTAB_MIGRATIONS_PATH")
	if source == "" {
		source = "file://db/migrations"
	}

	m, err := migrate.New(source, cfg.DB.DSN())
	if err != nil {
		log.Fatalf("migrate: opening %s: %v", source, err)
	}
	defer m.Close()

	switch os.Args[1] {
	case "up":
		report(m.Up(), "schema is up to date")

	case "down":
		report(m.Down(), "schema rolled back")

	case "steps":
		if len(os.Args) < 3 {
			log.Fatal("migrate: steps requires a count, e.g. steps -1")
		}
		n, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatalf("migrate: bad step count %q: %v", os.Args[2], err)
		}
		report(m.Steps(n), fmt.Sprintf("moved %d step(s)", n))

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("migrate: reading version: %v", err)
		}
		fmt.Printf("schema version %d (dirty=%v)\n", version, dirty)

	default:
		fmt.Fprintf(os.Stderr, "migrate: unknown command %q\n%s\n", os.Args[1], usage)
		os.Exit(2)
	}
}

func report(err error, done string) {
	switch {
	case err == nil:
		log.Println("migrate:", done)
	case errors.Is(err, migrate.ErrNoChange):
		log.Println("migrate: no pending changes")
	default:
		log.Fatalf("migrate: %v", err)
	}
}
