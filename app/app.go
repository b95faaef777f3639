package app

import (
	"context"

	"log/slog"

	"github.com/vhoanghac/sellerdash/config"
	"github.com/vhoanghac/sellerdash/internal/analytics"
	httpapi "github.com/vhoanghac/sellerdash/internal/api/http"
	"github.com/vhoanghac/sellerdash/internal/apisrv/admin"
	"github.com/vhoanghac/sellerdash/internal/apisrv/seller"
	"github.com/vhoanghac/sellerdash/internal/auth"
	"github.com/vhoanghac/sellerdash/internal/dependency"
	"github.com/vhoanghac/sellerdash/internal/report"
	"github.com/vhoanghac/sellerdash/internal/store"
)

// App is the main application
type App struct {
	hs   *httpapi.Server
	db   dependency.Repository
	c    *config.Config
	done chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting sellerdash")

	a.db, err = store.New(ctx, a.c.DB)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to mysql",
			slog.String("err", err.Error()),
		)
		return err
	}

	authS, err := auth.New(a.c.Auth)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to create auth",
			slog.String("err", err.Error()),
		)
		return err
	}

	analyticsS := analytics.New(a.db, a.c.Analytics)
	reportS := report.New(a.db, a.c.Report)

	sellerS := seller.New(analyticsS, reportS)
	adminS := admin.New(analyticsS)

	a.hs = httpapi.New(&a.c.HTTP)
	if err = a.hs.Start(ctx, authS, sellerS, adminS, a.db); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()),
		)
		return err
	}

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		if err := a.hs.Stop(ctx); err != nil {
			slog.Default().ErrorContext(ctx, "http server shutdown",
				slog.String("err", err.Error()),
			)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
	close(a.done)
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}
