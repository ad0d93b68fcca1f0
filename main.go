package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/images"
	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"
)

// Dependencies are the collaborators NewApp wires into the services.
// Cache and Events may be nil.
type Dependencies struct {
	Users    repositories.UserRepository
	Products repositories.ProductRepository
	Reviews  repositories.ReviewRepository
	Cache    services.Cache
	Events   services.EventPublisher
}

// NewApp builds the fiber application with every route registered.
func NewApp(cfg *config.Config, deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "storefront",
		BodyLimit:    cfg.BodyLimitMB << 20,
		ErrorHandler: handlers.ErrorHandler,
		// Parsed bodies, params and queries end up in stored records, so they
		// must not alias fasthttp's reused request buffers.
		Immutable: true,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	app.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	// --- Services ---
	pipeline := images.New()
	authService := services.NewAuthService(deps.Users)
	productService := services.NewProductService(deps.Products, pipeline)
	reviewService := services.NewReviewService(deps.Reviews, pipeline)
	if deps.Cache != nil {
		productService.WithCache(deps.Cache, cfg.CacheTTL)
	}
	if deps.Events != nil {
		productService.WithEvents(deps.Events)
		reviewService.WithEvents(deps.Events)
	}

	// --- Routes ---
	maxImageBytes := int64(cfg.MaxImageMB) << 20
	handlers.NewAuthHandler(authService).RegisterRoutes(app)
	handlers.NewProductHandler(productService, maxImageBytes).RegisterRoutes(app)
	handlers.NewReviewHandler(reviewService, maxImageBytes).RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"store":  cfg.DBDriver,
			"cache":  deps.Cache != nil,
			"events": deps.Events != nil,
		})
	})

	return app
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// --- Store ---
	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.DBDriver, err)
	}
	log.Printf("Using %s store", cfg.DBDriver)

	deps := Dependencies{
		Users:    st.users,
		Products: st.products,
		Reviews:  st.reviews,
	}

	// --- Cache ---
	var redisCache *cache.Client
	if cfg.RedisAddr != "" {
		redisCache = cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Printf("Warning: Redis at %s is not answering, product reads go to the store: %v", cfg.RedisAddr, err)
		}
		deps.Cache = redisCache
	}

	// --- RabbitMQ ---
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: catalog events disabled: %v", err)
		} else {
			deps.Events = mqClient
			log.Println("Starting RabbitMQ consumer for catalog events...")
			if err := mqClient.ConsumeCatalogEvents(rabbitmq.LogCatalogEvent); err != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", err)
			}
		}
	}

	app := NewApp(cfg, deps)

	// --- Start HTTP Server ---
	log.Printf("Starting server on %s", cfg.Addr())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.Addr()); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.ShutdownWithTimeout(cfg.RequestTimeout); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	if mqClient != nil {
		if err := mqClient.Close(); err != nil {
			log.Printf("Error closing RabbitMQ client: %v", err)
		}
	}
	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			log.Printf("Error closing Redis client: %v", err)
		}
	}
	if err := st.close(); err != nil {
		log.Printf("Error closing %s store: %v", cfg.DBDriver, err)
	}
	log.Println("Server gracefully stopped")
}
