//	@title			Shoply API
//	@version		1.0
//	@description	Backend for Shoply, a storefront and retail back office.
//
//	@host		localhost:8080
//	@BasePath	/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Bearer token. Format: **Bearer {token}**

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/shoply/service/internal/auth"
	"github.com/shoply/service/internal/category"
	"github.com/shoply/service/internal/config"
	"github.com/shoply/service/internal/customer"
	"github.com/shoply/service/internal/db"
	"github.com/shoply/service/internal/media"
	appMiddleware "github.com/shoply/service/internal/middleware"
	"github.com/shoply/service/internal/order"
	"github.com/shoply/service/internal/page"
	"github.com/shoply/service/internal/product"
	"github.com/shoply/service/internal/response"
	"github.com/shoply/service/internal/storage"

	_ "github.com/shoply/service/docs/swagger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DB.URL)
	if err != nil {
		logger.Error("database connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DB.URL); err != nil {
		logger.Error("database migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store, err := storage.NewMinioStore(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Error("object storage init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire dependencies: repository → service → handler
	authRepo := auth.NewRepository(pool)
	authSvc := auth.NewService(authRepo, cfg.Auth)
	authHandler := auth.NewHandler(authSvc)

	mediaSvc := media.NewService(store, cfg.Upload, logger)
	mediaHandler := media.NewHandler(mediaSvc)

	productRepo := product.NewRepository(pool)
	productSvc := product.NewService(productRepo)
	productHandler := product.NewHandler(productSvc)

	categoryRepo := category.NewRepository(pool)
	categorySvc := category.NewService(categoryRepo)
	categoryHandler := category.NewHandler(categorySvc)

	customerRepo := customer.NewRepository(pool)
	customerSvc := customer.NewService(customerRepo)
	customerHandler := customer.NewHandler(customerSvc)

	orderRepo := order.NewRepository(pool)
	orderSvc := order.NewService(orderRepo)
	orderHandler := order.NewHandler(orderSvc)

	pageRepo := page.NewRepository(pool)
	pageSvc := page.NewService(pageRepo)
	pageHandler := page.NewHandler(pageSvc)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI at /swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/login", authHandler.Login)
		r.Get("/pages/{slug}", pageHandler.Get)

		// Protected admin endpoints
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.RequireAuth(cfg.Auth.JWTSecret))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/register", authHandler.Register)
				r.Get("/me", authHandler.Me)
			})

			r.Route("/media", func(r chi.Router) {
				r.Post("/upload", mediaHandler.Upload)
				r.Post("/upload/batch", mediaHandler.UploadBatch)
				r.Delete("/variants/{stem}", mediaHandler.DeleteVariants)
				r.Get("/signed-url/*", mediaHandler.SignedURL)
				r.Delete("/*", mediaHandler.Delete)
			})

			r.Route("/products", func(r chi.Router) {
				r.Post("/", productHandler.Create)
				r.Get("/", productHandler.List)
				r.Get("/{id}", productHandler.Get)
				r.Put("/{id}", productHandler.Update)
				r.Patch("/{id}/stock", productHandler.AdjustStock)
				r.Delete("/{id}", productHandler.Delete)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", categoryHandler.Create)
				r.Get("/", categoryHandler.Tree)
				r.Put("/reorder", categoryHandler.Reorder)
				r.Get("/{id}", categoryHandler.Get)
				r.Put("/{id}", categoryHandler.Update)
				r.Delete("/{id}", categoryHandler.Delete)
			})

			r.Route("/customers", func(r chi.Router) {
				r.Post("/", customerHandler.Create)
				r.Get("/", customerHandler.List)
				r.Get("/{id}", customerHandler.Get)
				r.Put("/{id}", customerHandler.Update)
				r.Delete("/{id}", customerHandler.Delete)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", orderHandler.Create)
				r.Get("/", orderHandler.List)
				r.Get("/{id}", orderHandler.Get)
				r.Patch("/{id}/status", orderHandler.UpdateStatus)
			})

			r.Route("/pages", func(r chi.Router) {
				r.Post("/", pageHandler.Create)
				r.Get("/", pageHandler.List)
				r.Put("/{slug}", pageHandler.Update)
				r.Delete("/{slug}", pageHandler.Delete)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "route not found")
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server listening",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.App.Env),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	<-quit
	logger.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}
