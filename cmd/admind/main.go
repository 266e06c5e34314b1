package main

import (
	"context"
	"time"

	"github.com/babisha/storefront-admin/config"
	"github.com/babisha/storefront-admin/internal/app"
	"github.com/babisha/storefront-admin/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	adminService := app.New(sigCtx, cfg)

	adminService.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	adminService.Close(ctx)
}
