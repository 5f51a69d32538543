package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/localstore"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type serdes struct {
	order       schema.Serde
	productView schema.Serde
}

type producers struct {
	orders kafka.OrdersProducer
	views  kafka.ProductViewsProducer
}

type storages struct {
	sqlDB      storage.SQLDB
	localStore localstore.LocalStore
	products   storage.ProductsRepository
	orders     storage.OrdersRepository
	carts      localstore.CartsRepository
	profiles   localstore.ProfilesRepository
}

type coreServices struct {
	cart    service.CartService
	catalog service.CatalogService
	profile service.ProfileService
	orders  service.OrdersService
}

type consumers struct {
	orders kafka.OrdersConsumer
}

type processors struct {
	views     *kafka.ProductViewsProcessor
	viewsView kafka.ProductViewsView
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	wg         sync.WaitGroup
	serdes     serdes
	producers  producers
	storages   storages
	services   coreServices
	consumers  consumers
	processors processors
	httpServer httphandler.HTTPServer
}

func New(context context.Context, config config.Config) *App {
	app := &App{ctx: context, cfg: config}

	app.initLogger()
	app.initSerdes()
	app.initStorages()
	app.initOutboundAdapters()
	app.initProcessors()
	app.initCoreServices()
	app.initConsumers()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"
	urls := app.cfg.Broker.SchemaRegistryURLs
	ctx := app.ctx

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	orderSS := app.cfg.Broker.Topics.OrderPlacedStream + "-value"
	orderSerde, err := schema.NewSerdeOrderV1(
		ctx,
		schema.SubjectOpt(orderSS),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	productViewSS := app.cfg.Broker.Topics.ProductViewsStream + "-value"
	productViewSerde, err := schema.NewSerdeProductViewV1(
		ctx,
		schema.SubjectOpt(productViewSS),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.serdes.order = orderSerde
	app.serdes.productView = productViewSerde
}

func (app *App) initStorages() {
	const op = "App.initStorages"

	sqlDB, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}

	localStore, err := localstore.New(app.cfg.LocalStorePath)
	if err != nil {
		app.fallDown(op, err)
	}

	app.storages.sqlDB = sqlDB
	app.storages.localStore = localStore
	app.storages.products = storage.NewProductsRepository(sqlDB)
	app.storages.orders = storage.NewOrdersRepository(sqlDB)
	app.storages.carts = localstore.NewCartsRepository(localStore)
	app.storages.profiles = localstore.NewProfilesRepository(localStore)
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	ctx := app.ctx
	seedBrokers := app.cfg.Broker.SeedBrokers
	orderPlacedTopic := app.cfg.Broker.Topics.OrderPlacedStream
	productViewsTopic := app.cfg.Broker.Topics.ProductViewsStream

	ordersProducer, err := kafka.NewOrdersProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, orderPlacedTopic),
		kafka.ProducerEncoderOpt(app.serdes.order),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	viewsProducer, err := kafka.NewProductViewsProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, productViewsTopic),
		kafka.ProducerEncoderOpt(app.serdes.productView),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.producers.orders = ordersProducer
	app.producers.views = viewsProducer
}

func (app *App) initProcessors() {
	const op = "App.initProcessors"

	seedBrokers := app.cfg.Broker.SeedBrokers
	viewsStream := app.cfg.Broker.Topics.ProductViewsStream
	viewsTable := app.cfg.Broker.Topics.ProductViewsTable

	viewsProc, err := kafka.NewProductViewsProc(
		seedBrokers, viewsStream, viewsTable, app.serdes.productView,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	viewsView, err := kafka.NewProductViewsView(kafka.ProductViewsViewConfig{
		SeedBrokers: seedBrokers,
		GroupTable:  viewsTable,
	})
	if err != nil {
		app.fallDown(op, err)
	}

	app.processors.views = viewsProc
	app.processors.viewsView = viewsView
}

func (app *App) initCoreServices() {
	app.services.cart = service.NewCartService(
		app.storages.carts,
		app.storages.products,
		app.producers.orders,
		app.cfg.Cart.CheckoutDelay,
	)
	app.services.catalog = service.NewCatalogService(
		app.storages.products,
		app.producers.views,
		app.processors.viewsView,
		app.cfg.Catalog.SearchDebounce,
	)
	app.services.profile = service.NewProfileService(app.storages.profiles)
	app.services.orders = service.NewOrdersService(app.storages.orders)
}

func (app *App) initConsumers() {
	const op = "App.initConsumers"

	ordersConsumer, err := kafka.NewOrdersConsumer(
		kafka.ConsumerClientOpt(
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.Topics.OrderPlacedStream,
			app.cfg.Broker.Consumers.OrderSaverGroup,
		),
		kafka.ConsumerDecoderOpt(app.serdes.order),
		kafka.OrdersConsumerSaverOpt(app.services.orders),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.consumers.orders = ordersConsumer
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	mux := http.NewServeMux()
	httphandler.RegisterCart(mux, app.services.cart)
	httphandler.RegisterCatalog(
		mux,
		app.services.catalog,
		app.services.catalog,
		app.services.catalog,
		app.services.catalog,
	)
	httphandler.RegisterProfile(mux, app.services.profile, app.services.profile)

	handler := httphandler.AllowJSON(mux)
	httpServer := httphandler.NewHTTPServer(addr, handler)
	app.httpServer = httpServer
}

func (app *App) Run(stopFn context.CancelFunc) {
	app.wg.Add(1)
	go app.processors.views.Run(app.ctx, stopFn, &app.wg)
	app.wg.Wait()

	go app.processors.viewsView.Run(app.ctx)
	go app.consumers.orders.Run(app.ctx)
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.consumers.orders.Close()
	app.producers.orders.Close()
	app.producers.views.Close()
	app.processors.views.Close()
	app.storages.localStore.Close()
	app.storages.sqlDB.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
