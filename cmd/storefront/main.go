package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/JackHouche/cbdproject/internal/cart"
	cartcache "github.com/JackHouche/cbdproject/internal/cart/cache"
	cartrepo "github.com/JackHouche/cbdproject/internal/cart/repository"
	"github.com/JackHouche/cbdproject/internal/catalog"
	"github.com/JackHouche/cbdproject/internal/checkout"
	h "github.com/JackHouche/cbdproject/internal/http"
	"github.com/JackHouche/cbdproject/internal/orders"
	"github.com/JackHouche/cbdproject/internal/payment"
)

type Config struct {
	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	CartBackend string
	MongoURI    string
	MongoDBName string

	RedisAddr     string
	RedisPassword string

	CatalogDBPath        string
	CatalogMigrationsDir string

	OrdersDB orders.Credentials

	PaymentApproveAll bool
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,

		CartBackend: getEnv("CART_BACKEND", "mongo"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName: getEnv("MONGO_DB_NAME", "storefront"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		CatalogDBPath:        getEnv("CATALOG_DB_PATH", "catalog.db"),
		CatalogMigrationsDir: getEnv("CATALOG_MIGRATIONS_DIR", "migrations/catalog"),

		OrdersDB: orders.Credentials{
			Host:              getEnv("ORDERS_DB_HOST", "localhost"),
			Port:              getIntEnv("ORDERS_DB_PORT", 5432),
			User:              getEnv("ORDERS_DB_USER", "postgres"),
			Password:          getEnv("ORDERS_DB_PASSWORD", "postgres"),
			DBName:            getEnv("ORDERS_DB_NAME", "storefront"),
			MigrationsDirPath: getEnv("ORDERS_MIGRATIONS_DIR", "migrations/orders"),
		},

		PaymentApproveAll: getEnv("PAYMENT_APPROVE_ALL", "") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return n
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	// Cart storage
	var repo cartrepo.CartRepository
	switch cfg.CartBackend {
	case "memory":
		repo = cartrepo.NewMemoryRepository()
		log.Printf("Using in-memory cart storage")
	default:
		mongoDB, err := cartrepo.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer mongoDB.Client().Disconnect(ctx)

		mongoRepo := cartrepo.NewMongoRepository(mongoDB)
		if err := mongoRepo.CreateIndexes(ctx); err != nil {
			log.Fatalf("Failed to create cart indexes: %v", err)
		}
		repo = mongoRepo
		log.Printf("Connected to MongoDB at %s", cfg.MongoURI)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	cartService := cart.NewService(repo, cartcache.NewRedisCache(redisClient))

	// Catalog
	catalogRepo, err := catalog.NewRepository(cfg.CatalogDBPath)
	if err != nil {
		log.Fatalf("Failed to open catalog database: %v", err)
	}
	defer catalogRepo.Close()
	if err := catalogRepo.RunMigrations(cfg.CatalogMigrationsDir); err != nil {
		log.Fatalf("Failed to run catalog migrations: %v", err)
	}
	log.Printf("Catalog database ready at %s", cfg.CatalogDBPath)

	// Orders
	orderRepo, err := orders.NewRepository(&cfg.OrdersDB)
	if err != nil {
		log.Fatalf("Failed to connect to orders database: %v", err)
	}
	defer orderRepo.Close()
	if err := orderRepo.RunMigrations(&cfg.OrdersDB); err != nil {
		log.Fatalf("Failed to run orders migrations: %v", err)
	}
	log.Printf("Orders database ready at %s:%d", cfg.OrdersDB.Host, cfg.OrdersDB.Port)

	// Payment
	var outcome payment.OutcomeSource = payment.RandomOutcome{}
	if cfg.PaymentApproveAll {
		outcome = payment.AlwaysApprove{}
	}
	provider := payment.NewBreakerProvider(payment.NewGateway(outcome))

	checkoutService := checkout.NewService(cartService, catalogRepo, orderRepo, provider)

	cartHandler := h.NewCartHandler(cartService, catalogRepo, cfg.RequestTimeout)
	catalogHandler := h.NewCatalogHandler(catalogRepo, cfg.RequestTimeout)
	ordersHandler := h.NewOrdersHandler(orderRepo, provider, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(checkoutService, cfg.RequestTimeout)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogHandler.ListProducts)
			r.Get("/stats", catalogHandler.Stats)
			r.Get("/categories", catalogHandler.ListCategories)
			r.Get("/{id}", catalogHandler.GetProduct)
			r.Get("/slug/{slug}", catalogHandler.GetProductBySlug)
			r.Post("/", catalogHandler.CreateProduct)
			r.Put("/{id}", catalogHandler.UpdateProduct)
			r.Patch("/{id}/stock", catalogHandler.UpdateStock)
			r.Delete("/{id}", catalogHandler.DeleteProduct)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
			r.Delete("/", cartHandler.ClearCart)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.Submit)
			r.Get("/shipping-options", checkoutHandler.ShippingOptions)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordersHandler.ListCustomerOrders)
			r.Get("/{id}", ordersHandler.GetOrder)
		})

		r.Route("/admin/orders", func(r chi.Router) {
			r.Get("/", ordersHandler.ListOrders)
			r.Get("/stats", ordersHandler.Stats)
			r.Post("/{id}/status", ordersHandler.UpdateStatus)
			r.Post("/{id}/tracking", ordersHandler.AddTracking)
			r.Post("/{id}/refund", ordersHandler.Refund)
			r.Delete("/{id}", ordersHandler.DeleteOrder)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
