// Package app wires configuration, storage, services and HTTP handlers into a
// runnable fiber application.
package app

import (
	"context"
	"errors"
	"os"
	"strings"

	"inventory/internal/config"
	"inventory/internal/database"
	"inventory/internal/handlers"
	"inventory/internal/middleware"
	"inventory/internal/repositories"
	"inventory/internal/services"
	"inventory/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// App is the assembled inventory service.
type App struct {
	Fiber *fiber.App
	DB    *gorm.DB

	cfg      *config.Config
	mqClient *rabbitmq.Client

	Products   *services.ProductService
	Categories *services.CategoryService
	Suppliers  *services.SupplierService
	Dashboard  *services.DashboardService
}

// New opens the database, migrates the schema and builds the HTTP app.
// Event publishing is enabled only when RABBITMQ_URL is set; a broker that
// cannot be reached at startup disables it with a warning.
func New(cfg *config.Config) (*App, error) {
	setupLogger(cfg.Log)
	decimal.MarshalJSONWithoutQuotes = true

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}

	a := &App{DB: db, cfg: cfg}

	var publisher services.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Exchange: cfg.RabbitMQ.Exchange})
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ unavailable, inventory events disabled")
		} else {
			a.mqClient = client
			publisher = client
		}
	}

	store := repositories.NewGORMStore(db)
	a.Products = services.NewProductService(store, publisher)
	a.Categories = services.NewCategoryService(store, publisher)
	a.Suppliers = services.NewSupplierService(store, publisher)
	a.Dashboard = services.NewDashboardService(a.Products, a.Categories, a.Suppliers)

	if cfg.App.SeedDemoData {
		if err := a.seedDemoData(); err != nil {
			log.Warn().Err(err).Msg("failed to seed demo data")
		}
	}

	a.Fiber = a.newFiber()
	return a, nil
}

func (a *App) newFiber() *fiber.App {
	f := fiber.New(fiber.Config{
		AppName:               "inventory",
		UnescapePath:          true,
		DisableStartupMessage: a.cfg.App.IsProduction(),
		ErrorHandler:          errorHandler,
	})

	f.Use(recover.New())
	f.Use(requestid.New())
	f.Use(middleware.RequestLogger())
	f.Use(cors.New(cors.Config{
		AllowOrigins: a.cfg.App.CORSAllowOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	api := f.Group("/api")
	handlers.NewProductHandler(a.Products).RegisterRoutes(api)
	handlers.NewCategoryHandler(a.Categories).RegisterRoutes(api)
	handlers.NewSupplierHandler(a.Suppliers).RegisterRoutes(api)
	dashboard := handlers.NewDashboardHandler(a.Dashboard, func() error { return database.Ping(a.DB) })
	dashboard.RegisterRoutes(api)

	f.Get("/health", dashboard.HandleHealth)

	if dir := a.cfg.App.StaticDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			f.Static("/", dir)
		} else {
			log.Debug().Str("dir", dir).Msg("static directory not found, frontend not served")
		}
	}
	return f
}

// errorHandler renders errors that escaped the handlers, such as unknown routes.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	return c.Status(code).JSON(fiber.Map{
		"message": message,
		"error":   strings.ToLower(message),
	})
}

// Listen serves HTTP on the configured port until Shutdown is called.
func (a *App) Listen() error {
	log.Info().Str("port", a.cfg.App.Port).Msg("starting server")
	return a.Fiber.Listen(a.cfg.App.Port)
}

// Shutdown stops the HTTP server, then closes the broker and database connections.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.Fiber != nil {
		if err := a.Fiber.ShutdownWithContext(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.mqClient != nil {
		if err := a.mqClient.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := database.Close(a.DB); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func setupLogger(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.JSON {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
}
