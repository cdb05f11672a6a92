// Command guarddemo serves a small site protected by the fingerprint guard.
// It exists to exercise the session backends end to end.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/sessionguard/pkg/clientip"
	"github.com/dmitrymomot/sessionguard/pkg/config"
	"github.com/dmitrymomot/sessionguard/pkg/cookie"
	"github.com/dmitrymomot/sessionguard/pkg/fingerprint"
	"github.com/dmitrymomot/sessionguard/pkg/httpserver"
	"github.com/dmitrymomot/sessionguard/pkg/logger"
	"github.com/dmitrymomot/sessionguard/pkg/requestid"
	"github.com/dmitrymomot/sessionguard/pkg/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadEnv(); err != nil {
		slog.Error("failed to load .env", logger.Error(err))
		os.Exit(1)
	}

	var logCfg logger.Config
	config.MustLoad(&logCfg)

	log := logger.NewFromConfig(logCfg,
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	if err := run(ctx, log); err != nil {
		log.Error("guarddemo stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	var (
		srvCfg     httpserver.Config
		sessCfg    session.Config
		cookieCfg  cookie.Config
		guardCfg   fingerprint.Config
		backendCfg backendConfig
	)
	for _, load := range []func() error{
		func() error { return config.Load(&srvCfg) },
		func() error { return config.Load(&sessCfg) },
		func() error { return config.Load(&cookieCfg) },
		func() error { return config.Load(&guardCfg) },
		func() error { return config.Load(&backendCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	cookieMgr, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		return err
	}

	backend, err := openBackend(ctx, backendCfg.Backend, sessCfg, log)
	if err != nil {
		return err
	}
	defer backend.close()

	mgr := session.NewFromConfig(sessCfg,
		session.WithCookieManager(cookieMgr),
		session.WithStore(backend.store),
	)
	defer func() { _ = mgr.Close() }()

	log.InfoContext(ctx, "starting guarddemo",
		logger.Component("guarddemo"),
		slog.String("backend", backendCfg.Backend),
		slog.String("addr", srvCfg.Addr),
		slog.String("algorithm", guardCfg.Algorithm),
	)

	srv := httpserver.NewFromConfig(srvCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, newRouter(log, mgr, guardCfg, backend.checks))
}
