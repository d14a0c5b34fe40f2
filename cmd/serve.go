package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/desertthunder/festa/internal/panels"
	"github.com/desertthunder/festa/internal/repositories"
	"github.com/desertthunder/festa/internal/server"
	"github.com/desertthunder/festa/internal/shared"
	"github.com/desertthunder/festa/internal/web"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 5 * time.Second

// serve runs handler on addr until ctx is done, then shuts down gracefully.
// ready is called with the bound address once the listener is up.
func (r *Runner) serve(ctx context.Context, name, addr string, handler http.Handler, ready func(addr string)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting %s at %v", name, ln.Addr())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	if ready != nil {
		ready(ln.Addr().String())
	}

	select {
	case err, ok := <-serverErrors:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	r.logger.Infof("shutting down %s", name)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}
	return nil
}

// Web serves the browser front end over the configured collection service.
func (r *Runner) Web(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}

	addr := cmd.String("addr")
	if addr == "" {
		addr = r.config.Server.Addr()
	}

	dash := panels.NewDashboard(r.service, panels.Options{Logger: r.logger})
	handler := web.NewServer(dash, r.logger)

	return r.serve(ctx, "web UI", addr, handler, func(bound string) {
		url := "http://" + bound
		r.writePlain("→ festa is running at %s\n", url)
		if !cmd.Bool("open") {
			return
		}
		if err := shared.OpenBrowser(url); err != nil {
			r.logger.Warnf("failed to open browser automatically %v", err)
			r.writePlainln("⚠ Could not open browser automatically.")
		}
	})
}

// openStore opens the fixture store for backend, running migrations for sqlite.
func (r *Runner) openStore(backend string) (repositories.Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", "sqlite":
		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to create database: %w", err)
		}
		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		r.logger.Info("using sqlite store", "path", r.config.Database.Path)
		return repositories.NewSQLStore(db), nil
	case "bolt", "bbolt":
		store, err := repositories.OpenBoltStore(r.config.Fixture.Path)
		if err != nil {
			return nil, err
		}
		r.logger.Info("using bolt store", "path", r.config.Fixture.Path)
		return store, nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q (use sqlite or bolt)", shared.ErrInvalidArgument, backend)
	}
}

// Fixture serves the collection service contract from a local store.
func (r *Runner) Fixture(ctx context.Context, cmd *cli.Command) error {
	backend := cmd.String("backend")
	if backend == "" {
		backend = r.config.Fixture.Backend
	}
	addr := cmd.String("addr")
	if addr == "" {
		addr = r.config.Fixture.Addr()
	}

	store, err := r.openStore(backend)
	if err != nil {
		return err
	}
	defer store.Close()

	return r.serve(ctx, "fixture service", addr, server.NewFixtureRouter(store, r.logger), func(bound string) {
		r.writePlain("→ collection service listening on http://%s\n", bound)
	})
}
