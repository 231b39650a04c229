package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	_ "github.com/jhoicas/solarsync-api/docs"
	appanalytics "github.com/jhoicas/solarsync-api/internal/application/analytics"
	"github.com/jhoicas/solarsync-api/internal/application/auth"
	"github.com/jhoicas/solarsync-api/internal/application/identity"
	"github.com/jhoicas/solarsync-api/internal/application/leads"
	"github.com/jhoicas/solarsync-api/internal/application/subscription"
	"github.com/jhoicas/solarsync-api/internal/application/usecase"
	"github.com/jhoicas/solarsync-api/internal/infrastructure/notify"
	"github.com/jhoicas/solarsync-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/solarsync-api/internal/interfaces/http"
	"github.com/jhoicas/solarsync-api/pkg/config"
	"github.com/jhoicas/solarsync-api/pkg/logger"
	"github.com/jhoicas/solarsync-api/pkg/password"
	"github.com/jhoicas/solarsync-api/pkg/sanitize"
)

// @title                       SolarSync API
// @version                     1.0
// @description                 Marketplace B2B entre instaladores y proveedores solares.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Sentry solo si hay DSN: reporta los 500 y los panics.
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.App.Env,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
		}); err != nil {
			log.Error().Err(err).Msg("inicializar sentry")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	leadRepo := postgres.NewLeadRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	subRepo := postgres.NewSubscriptionRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	viewRepo := postgres.NewProfileViewRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Avisos a proveedores: cola acotada con workers propios.
	dispatcher := notify.NewDispatcher(cfg.Notify.Workers, cfg.Notify.QueueSize, log)
	dispatcher.Start()
	leadNotifier := notify.NewLeadNotifier(dispatcher, notify.NewLogSink(log))

	sanitizer := sanitize.New()
	companyUC := usecase.NewCompanyUseCase(companyRepo, productRepo, viewRepo, log)
	authUC := auth.NewAuthUseCase(txRunner, userRepo, companyRepo, password.NewBcryptHasher(0), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	if cfg.Sentry.DSN != "" {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SolarSync API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		Resolver:       identity.NewResolver(userRepo),
		LeadUC:         leads.NewLeadUseCase(leadRepo, companyUC, leadNotifier, sanitizer, log),
		SubscriptionUC: subscription.NewSubscriptionUseCase(txRunner, subRepo, planRepo, companyRepo, log),
		PlanUC:         subscription.NewPlanUseCase(planRepo, log),
		CompanyUC:      companyUC,
		ProductUC:      usecase.NewProductUseCase(productRepo),
		ReviewUC:       usecase.NewReviewUseCase(reviewRepo, productRepo, sanitizer),
		DashboardUC:    appanalytics.NewDashboardUseCase(viewRepo, leadRepo),
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Orden: dejar de aceptar peticiones, vaciar la cola de avisos y después cerrar el pool.
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("cola de notificaciones sin vaciar")
	}

	log.Info().Msg("aplicación detenida")
}
