package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/npochettino/sales-management-api/internal/application/analytics"
	"github.com/npochettino/sales-management-api/internal/application/auth"
	"github.com/npochettino/sales-management-api/internal/application/dto"
	"github.com/npochettino/sales-management-api/internal/application/pricehistory"
	"github.com/npochettino/sales-management-api/internal/application/sales"
	"github.com/npochettino/sales-management-api/internal/application/usecase"
	"github.com/npochettino/sales-management-api/internal/domain"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CreateSale   *sales.CreateSaleUseCase
	SaleUC       *sales.SaleUseCase
	ReceiptUC    *sales.ReceiptUseCase
	ProductUC    *usecase.ProductUseCase
	PriceHistory *pricehistory.Recorder
	ClientUC     *usecase.ClientUseCase
	CategoryUC   *usecase.CategoryUseCase
	AuthUC       *auth.AuthUseCase
	DashboardUC  *analytics.DashboardUseCase

	Health        Pinger
	ServiceName   string
	StorageDriver string

	JWTSecret string
	JWTIssuer string

	// CategoryCache respalda el middleware de caché de GET /api/categories. nil lo desactiva.
	CategoryCache fiber.Storage
	CacheTTL      time.Duration

	// RateLimitMax <= 0 desactiva el limitador.
	RateLimitMax     int
	RateLimitWindow  time.Duration
	RateLimitStorage fiber.Storage
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	health := NewHealthHandler(deps.Health, deps.ServiceName, deps.StorageDriver)
	app.Get("/health", health.Check)

	api := app.Group("/api")
	if deps.RateLimitMax > 0 {
		api.Use(limiter.New(limiter.Config{
			Max:        deps.RateLimitMax,
			Expiration: deps.RateLimitWindow,
			Storage:    deps.RateLimitStorage,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiadas peticiones"})
			},
		}))
	}

	authMW := AuthMiddleware(deps.JWTSecret, deps.JWTIssuer)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", registrationGuard(deps.AuthUC, deps.JWTSecret, deps.JWTIssuer), authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authMW, authHandler.Me)

	// Sales (protegido)
	salesGroup := api.Group("/sales", authMW)
	saleHandler := NewSaleHandler(deps.CreateSale, deps.SaleUC, deps.ReceiptUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)
	salesGroup.Put("/:id", saleHandler.UpdateStatus)
	salesGroup.Delete("/:id", saleHandler.Delete)

	// Products (protegido)
	products := api.Group("/products", authMW)
	productHandler := NewProductHandler(deps.ProductUC, deps.PriceHistory)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/price-history", productHandler.PriceHistory)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Clients (protegido)
	clients := api.Group("/clients", authMW)
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Categories (protegido, lecturas cacheadas)
	categories := api.Group("/categories", authMW)
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.CategoryCache)
	listCategories := []fiber.Handler{categoryHandler.List}
	if deps.CategoryCache != nil {
		listCategories = append([]fiber.Handler{cache.New(cache.Config{
			Expiration: deps.CacheTTL,
			Storage:    deps.CategoryCache,
		})}, listCategories...)
	}
	categories.Get("/", listCategories...)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", authMW, dashboardHandler.Summary)

	api.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: domain.CodeNotFound, Message: "ruta no encontrada"})
	})
}
