// Command passwd resets an admin account password against either backend.
// Point it at the database with --dsn, or at the JSON-file data directory
// with --data-dir.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/babisha/storefront-admin/internal/adapter/filestore"
	"github.com/babisha/storefront-admin/internal/adapter/storage"
	"github.com/babisha/storefront-admin/internal/core/port"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
)

const opTimeout = 10 * time.Second

func main() {
	dsn := pflag.String("dsn", "", "postgresql connection string")
	dataDir := pflag.String("data-dir", "", "json file store directory")
	email := pflag.StringP("email", "e", "", "admin account email")
	password := pflag.StringP("password", "p", "", "new password")
	pflag.Parse()

	if *email == "" || *password == "" {
		slog.Error("--email and --password flags: required")
		fallDown()
	}
	if (*dsn == "") == (*dataDir == "") {
		slog.Error("exactly one of --dsn or --data-dir: required")
		fallDown()
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	store := openStore(ctx, *dsn, *dataDir)

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash password", "err", err)
		fallDown()
	}

	if err := store.SetAdminPassword(ctx, *email, string(hash)); err != nil {
		slog.Error("failed to set password", "email", *email, "err", err)
		fallDown()
	}
	slog.Info("password updated", "email", *email)
}

func openStore(ctx context.Context, dsn, dataDir string) port.Store {
	if dsn != "" {
		sqldb, err := storage.NewSQLDB(ctx, dsn)
		if err != nil {
			slog.Error("failed to connect to database", "err", err)
			fallDown()
		}
		return storage.New(sqldb)
	}

	fs, err := filestore.New(dataDir)
	if err != nil {
		slog.Error("failed to open file store", "err", err)
		fallDown()
	}
	return fs
}

func fallDown() {
	os.Exit(2)
}
