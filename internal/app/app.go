package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/modabridge/storefront/config"
	"github.com/modabridge/storefront/internal/adapter"
	"github.com/modabridge/storefront/internal/adapter/httphandler"
	"github.com/modabridge/storefront/internal/adapter/kafka"
	"github.com/modabridge/storefront/internal/adapter/localstore"
	"github.com/modabridge/storefront/internal/adapter/media"
	"github.com/modabridge/storefront/internal/adapter/remote"
	"github.com/modabridge/storefront/internal/core/port"
	"github.com/modabridge/storefront/internal/core/service"
)

type App struct {
	ctx context.Context
	cfg config.Config

	local    *localstore.Storage
	gateway  *remote.Gateway
	store    *service.Store
	auth     *service.Auth
	checkout *service.Checkout
	tracker  *service.Tracker
	status   *service.StatusTracker
	producer port.TrafficProducer
	uploader *media.Uploader

	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initOutboundAdapters()
	app.initCoreServices()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	local, err := localstore.Open(app.cfg.LocalStorePath)
	if err != nil {
		app.fallDown(op, err)
	}
	app.local = local

	app.gateway = remote.New(app.ctx, app.cfg.SQLDB)

	app.uploader = media.NewUploader(
		app.cfg.Media.CloudinaryURL,
		app.cfg.Media.FallbackDir,
		app.cfg.Media.PublicBaseURL,
	)

	app.initTrafficProducer()
}

// initTrafficProducer is best-effort: no broker config or an
// unreachable broker leaves tracking local-only.
func (app *App) initTrafficProducer() {
	const op = "App.initTrafficProducer"

	if !app.cfg.BrokerConfigured() {
		slog.Info("broker is not configured, traffic events stay local", "op", op)
		return
	}

	producer, err := kafka.NewTrafficProducer(
		app.ctx,
		app.cfg.Broker.SeedBrokers,
		app.cfg.Broker.TrafficTopic,
		app.brokerTLS(),
	)
	if err != nil {
		slog.Warn("broker unavailable, traffic events stay local",
			"op", op, "err", err)
		return
	}
	app.producer = producer
}

func (app *App) brokerTLS() *tls.Config {
	if !app.cfg.BrokerTLSConfigured() {
		return nil
	}
	t := app.cfg.Broker.TLS
	return adapter.MakeTLSConfig(t.CA, t.Cert, t.Key)
}

func (app *App) initCoreServices() {
	app.store = service.NewStore(app.local, app.gateway)
	app.store.LoadLocal()
	app.store.RefreshAll(app.ctx)
	app.store.SeedDefaults(app.ctx)

	// Remote mode follows the gateway, not the raw config value: a
	// malformed DSN leaves the gateway local-only and sessions must
	// degrade with it.
	app.auth = service.NewAuth(
		app.store, app.local, app.cfg.Auth.Secret, app.gateway.Configured(),
	)
	if err := app.auth.EnsureOwner(
		app.ctx, app.cfg.Auth.OwnerEmail, app.cfg.Auth.OwnerPassword,
	); err != nil {
		slog.Warn("owner account not persisted remotely", "err", err)
	}

	app.checkout = service.NewCheckout(app.store)
	app.tracker = service.NewTracker(app.store, app.local, app.producer)
	app.status = service.NewStatusTracker(0)
}

func (app *App) initInboundAdapters() {
	mux := http.NewServeMux()
	httphandler.RegisterPublic(mux, app.store, app.tracker)
	httphandler.RegisterAuth(mux, app.auth)
	httphandler.RegisterClient(mux, app.store, app.checkout, app.auth, app.local)
	httphandler.RegisterAdmin(mux, app.store, app.auth, app.status, app.uploader)

	if dir := app.uploader.Dir(); dir != "" {
		mux.Handle("GET /media/",
			http.StripPrefix("/media/", http.FileServer(http.Dir(dir))))
	}

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.producer != nil {
		app.producer.Close()
	}
	app.gateway.Close()
	app.local.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
