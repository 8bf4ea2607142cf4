package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/dig"

	dig_container "github.com/adspirelabs/punotes/apps/api/di/dig"
	echoapi "github.com/adspirelabs/punotes/apps/api/echo"
	"github.com/adspirelabs/punotes/core"
	watchsvc "github.com/adspirelabs/punotes/services/watcher"
)

const shutdownTimeout = 10 * time.Second

type appParams struct {
	dig.In

	Conf    *core.Config
	Logger  core.Logger
	Server  *echoapi.Server
	Watcher *watchsvc.Watcher `optional:"true"`
	PgDB    *sqlx.DB          `optional:"true"`
}

func main() {
	c := dig_container.New()
	must(c.Invoke(func(conf *core.Config) {
		if conf.Database.UsesPostgres() {
			dig_container.ProvidePostgres(c)
		}
	}))
	must(c.Invoke(run))
}

func run(p appParams) {
	logger := p.Logger

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q : %s", p.Conf.Build, p.Conf))
	defer logger.Info("Application stopped")

	if p.PgDB != nil {
		defer func() {
			if err := p.PgDB.Close(); err != nil {
				logger.Error("failed to close database", err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// =========================================================================
	// Start Catalog Watcher

	if p.Watcher != nil {
		go func() {
			if err := p.Watcher.Run(ctx); err != nil {
				logger.Error(fmt.Sprintf("catalog watcher stopped: %v", err), err)
			}
		}()
	}

	// =========================================================================
	// Start API Service

	go p.Server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err := <-p.Server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-p.Server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer scancel()

		// asking listener to shut down and shed load
		if err := p.Server.Shutdown(sctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = p.Server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
