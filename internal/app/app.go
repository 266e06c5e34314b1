// Package app wires the adapters to the core and owns the startup
// degradation policy: an unreachable database selects the JSON-file store
// and an unreachable object store selects local disk, with warnings rather
// than a failed boot.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/babisha/storefront-admin/config"
	"github.com/babisha/storefront-admin/internal/adapter/filestore"
	"github.com/babisha/storefront-admin/internal/adapter/httphandler"
	"github.com/babisha/storefront-admin/internal/adapter/objectstore"
	"github.com/babisha/storefront-admin/internal/adapter/storage"
	"github.com/babisha/storefront-admin/internal/adapter/token"
	"github.com/babisha/storefront-admin/internal/core/domain"
	"github.com/babisha/storefront-admin/internal/core/port"
	"github.com/babisha/storefront-admin/internal/core/service"
	"github.com/babisha/storefront-admin/pkg/retry"
	"golang.org/x/crypto/bcrypt"
)

const (
	bootstrapAdminEmail    = "admin@babisha.com"
	bootstrapAdminPassword = "admin123"
	bootstrapAdminName     = "Admin User"

	dbProbeAttempts = 3
	dbProbeTimeout  = 5 * time.Second
)

type App struct {
	ctx        context.Context
	cfg        config.Config
	sqldb      *storage.SQLDB
	store      port.Store
	images     port.ObjectStorage
	local      *objectstore.LocalStorage
	tokens     *token.Authority
	service    *service.Service
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStore()
	app.initObjectStorage()
	app.initCoreService()
	app.bootstrapAdmin()
	app.initHTTPServer()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

// initStore probes the relational database and falls back to the JSON-file
// store when it stays unreachable.
func (app *App) initStore() {
	const op = "App.initStore"
	log := slog.With("op", op)

	if app.cfg.PostgresDSN != "" {
		var sqldb storage.SQLDB
		err := retry.Do(app.ctx, retry.Config{MaxAttempts: dbProbeAttempts}, func() error {
			ctx, cancel := context.WithTimeout(app.ctx, dbProbeTimeout)
			defer cancel()

			var err error
			sqldb, err = storage.NewSQLDB(ctx, app.cfg.PostgresDSN)
			return err
		})
		if err == nil {
			app.sqldb = &sqldb
			app.store = storage.New(sqldb)
			log.Info("using postgresql store")
			return
		}
		log.Warn("database unreachable, falling back to file store", "err", err)
	} else {
		log.Warn("no database configured, using file store")
	}

	fs, err := filestore.New(app.cfg.DataDir)
	if err != nil {
		app.fallDown(op, err)
	}
	app.store = fs
	log.Info("using json file store", "dir", app.cfg.DataDir)
}

// initObjectStorage always prepares the local-disk backend; the managed
// store is preferred when configured and reachable.
func (app *App) initObjectStorage() {
	const op = "App.initObjectStorage"
	log := slog.With("op", op)

	local, err := objectstore.NewLocalStorage(app.cfg.UploadsDir, app.cfg.PublicBaseURL)
	if err != nil {
		app.fallDown(op, err)
	}
	app.local = local
	app.images = local

	if !app.cfg.ManagedStoreConfigured() {
		log.Info("using local image storage", "dir", app.cfg.UploadsDir)
		return
	}

	managed, err := objectstore.NewS3Storage(app.ctx, objectstore.S3Config{
		Endpoint:  app.cfg.ObjectStore.Endpoint,
		AccessKey: app.cfg.ObjectStore.AccessKey,
		SecretKey: app.cfg.ObjectStore.SecretKey,
		UseSSL:    app.cfg.ObjectStore.UseSSL,
		Buckets: map[string]string{
			domain.CategoryProducts: app.cfg.ObjectStore.ProductBucket,
			domain.CategoryBlogs:    app.cfg.ObjectStore.BlogBucket,
		},
	})
	if err != nil {
		log.Warn("managed object store unavailable, using local storage", "err", err)
		return
	}
	app.images = managed
	log.Info("using managed object storage", "endpoint", app.cfg.ObjectStore.Endpoint)
}

func (app *App) initCoreService() {
	app.tokens = token.NewAuthority(app.cfg.Auth.JWTSecret, app.cfg.Auth.TokenTTL)
	app.service = service.New(app.store, app.images, app.local, app.tokens)
}

// bootstrapAdmin seeds the default account so a fresh deployment is
// reachable. Failure is logged, not fatal: the account may already exist.
func (app *App) bootstrapAdmin() {
	const op = "App.bootstrapAdmin"
	log := slog.With("op", op)

	hash, err := bcrypt.GenerateFromPassword([]byte(bootstrapAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		app.fallDown(op, err)
	}

	err = app.store.BootstrapAdmin(app.ctx, domain.AdminUser{
		Email:        bootstrapAdminEmail,
		PasswordHash: string(hash),
		Name:         bootstrapAdminName,
		Role:         domain.DefaultAdminRole,
	})
	if err != nil {
		log.Warn("admin bootstrap failed", "err", err)
		return
	}
	log.Info("admin account ready", "email", bootstrapAdminEmail)
}

func (app *App) initHTTPServer() {
	gate := httphandler.Authenticate(app.tokens)

	mux := http.NewServeMux()
	httphandler.RegisterAuth(mux, app.service, app.service, gate)
	httphandler.RegisterProducts(mux, app.service, gate)
	httphandler.RegisterBlogs(mux, app.service, gate)
	httphandler.RegisterPublic(mux, app.service, app.service)
	httphandler.RegisterUploads(mux, app.local.Dir())

	handler := httphandler.AllowContent(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.sqldb != nil {
		app.sqldb.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
