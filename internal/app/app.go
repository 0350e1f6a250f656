package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/voyago/storefront/config"
	"github.com/voyago/storefront/internal/adapter/badge"
	"github.com/voyago/storefront/internal/adapter/catalogjson"
	"github.com/voyago/storefront/internal/adapter/eventlog"
	"github.com/voyago/storefront/internal/adapter/httphandler"
	"github.com/voyago/storefront/internal/adapter/kvstore"
	"github.com/voyago/storefront/internal/core/domain"
	"github.com/voyago/storefront/internal/core/service"
)

type adapters struct {
	products    catalogjson.Source
	cartStorage *kvstore.CartStorage
	events      *eventlog.Recorder
	badge       *badge.Counter
}

type services struct {
	catalog *service.CatalogService
	cart    *service.CartService
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	adapters   adapters
	services   services
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initOutboundAdapters()
	app.initServices()
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

	cartStorage, err := kvstore.NewCartStorage(
		app.cfg.Cart.StoragePath, app.cfg.Cart.StorageKey,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.adapters.products = catalogjson.NewSource(app.cfg.Catalog.ProductsSource)
	app.adapters.cartStorage = cartStorage
	app.adapters.events = eventlog.NewRecorder(app.cfg.EventsFile)
	app.adapters.badge = badge.NewCounter()
}

func (app *App) initServices() {
	pricing := domain.Pricing{
		ShippingCost:      app.cfg.Pricing.ShippingCost,
		DiscountThreshold: app.cfg.Pricing.DiscountThreshold,
		DiscountRate:      app.cfg.Pricing.DiscountRate,
	}

	app.services.catalog = service.NewCatalogService(
		app.ctx, app.adapters.products, app.cfg.Catalog.PageSize,
	)
	app.services.cart = service.NewCartService(
		app.ctx,
		app.adapters.cartStorage,
		app.adapters.events,
		app.adapters.badge,
		pricing,
	)
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(
		mux,
		app.services.catalog,
		app.services.catalog,
		app.services.catalog,
		app.services.catalog,
		app.adapters.events,
	)
	httphandler.RegisterCart(
		mux, app.services.cart, app.services.catalog, app.adapters.badge,
	)
	httphandler.RegisterForms(mux)

	handler := httphandler.LogRequests(httphandler.AllowJSON(mux))
	app.httpServer = httphandler.NewHTTPServer(addr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.adapters.cartStorage.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
