// Command migrator applies the relational schema. The admin service itself
// never migrates: deployments on the JSON-file store have no database, so
// schema management stays a separate step.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/pflag"
)

const (
	dsnFlag        = "dsn"
	migrationsFlag = "migrations-path"

	defaultMigrationsPath = "migrations"
)

func main() {
	dsn := pflag.StringP(dsnFlag, "d", "", "postgresql connection string")
	path := pflag.StringP(migrationsFlag, "m", defaultMigrationsPath, "migrations directory")
	down := pflag.Bool("down", false, "roll the last migration back")
	pflag.Parse()

	if *dsn == "" {
		slog.Error(fmt.Sprintf("--%s flag: required", dsnFlag))
		fallDown()
	}

	m, err := migrate.New(
		fmt.Sprintf("file://%s", *path),
		fmt.Sprintf("pgx5://%s", *dsn),
	)
	if err != nil {
		slog.Error("failed to init migrator", "err", err)
		fallDown()
	}
	m.Log = migrationLogger{slog.Default()}

	run := m.Up
	if *down {
		run = func() error { return m.Steps(-1) }
	}

	if err := run(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.Log.Printf("no migrations to apply")
			return
		}
		slog.Error("failed to migrate", "err", err)
		fallDown()
	}
	m.Log.Printf("migration applied")
}

type migrationLogger struct {
	logger *slog.Logger
}

func (ml migrationLogger) Printf(format string, v ...any) {
	ml.logger.Info(fmt.Sprintf(format, v...))
}

func (ml migrationLogger) Verbose() bool { return true }

func fallDown() {
	os.Exit(2)
}
