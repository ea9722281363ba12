package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	fibermemory "github.com/gofiber/storage/memory/v2"
	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/npochettino/sales-management-api/docs"
	"github.com/npochettino/sales-management-api/internal/application/analytics"
	"github.com/npochettino/sales-management-api/internal/application/auth"
	"github.com/npochettino/sales-management-api/internal/application/pricehistory"
	"github.com/npochettino/sales-management-api/internal/application/sales"
	"github.com/npochettino/sales-management-api/internal/application/usecase"
	infrapdf "github.com/npochettino/sales-management-api/internal/infrastructure/pdf"
	httpRouter "github.com/npochettino/sales-management-api/internal/interfaces/http"
	"github.com/npochettino/sales-management-api/pkg/config"
	"github.com/npochettino/sales-management-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.close()

	recorder := pricehistory.NewRecorder(store.repos.PriceHistory, store.repos.Products)
	createSaleUC := sales.NewCreateSaleUseCase(store.uow, log.Named("sales"))
	saleUC := sales.NewSaleUseCase(store.uow, store.repos, log.Named("sales"))
	receiptUC := sales.NewReceiptUseCase(store.repos.Sales, store.repos.Clients, infrapdf.NewMarotoPDFGenerator(language.Spanish))
	productUC := usecase.NewProductUseCase(store.uow, store.repos.Products, recorder)
	clientUC := usecase.NewClientUseCase(store.uow, store.repos.Clients)
	categoryUC := usecase.NewCategoryUseCase(store.uow, store.repos.Categories)
	dashboardUC := analytics.NewDashboardUseCase(store.dash, store.repos.Sales)
	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	if cfg.Seed.AdminEmail != "" {
		created, err := authUC.EnsureAdmin(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("alta del admin inicial")
		}
		if created {
			log.Info().Str("email", cfg.Seed.AdminEmail).Msg("admin inicial creado")
		}
	}

	// Storages separados: vaciar el caché de categorías no debe reiniciar los contadores del limitador.
	categoryCache := fibermemory.New(fibermemory.Config{GCInterval: cfg.Cache.Cleanup})
	defer categoryCache.Close()
	limiterStore := fibermemory.New(fibermemory.Config{GCInterval: cfg.Cache.Cleanup})
	defer limiterStore.Close()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.App.IsDevelopment()}))
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(httpRouter.AccessLog(log.Named("http")))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI: http://localhost:<port>/docs
	if specPath, err := docs.WriteFile(os.TempDir()); err != nil {
		log.Warn().Err(err).Msg("swagger deshabilitado")
	} else {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: specPath,
			Path:     "docs",
			Title:    cfg.App.Name,
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		CreateSale:       createSaleUC,
		SaleUC:           saleUC,
		ReceiptUC:        receiptUC,
		ProductUC:        productUC,
		PriceHistory:     recorder,
		ClientUC:         clientUC,
		CategoryUC:       categoryUC,
		AuthUC:           authUC,
		DashboardUC:      dashboardUC,
		Health:           store.pinger,
		ServiceName:      cfg.App.Name,
		StorageDriver:    cfg.Storage.Driver,
		JWTSecret:        cfg.JWT.Secret,
		JWTIssuer:        cfg.JWT.Issuer,
		CategoryCache:    categoryCache,
		CacheTTL:         cfg.Cache.TTL,
		RateLimitMax:     cfg.RateLimit.Max,
		RateLimitWindow:  cfg.RateLimit.Window,
		RateLimitStorage: limiterStore,
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
