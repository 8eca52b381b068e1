package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"backoffice/internal/board"
	"backoffice/internal/config"
	"backoffice/internal/database"
	"backoffice/internal/events"
	"backoffice/internal/handler"
	"backoffice/internal/mw"
	"backoffice/internal/service"
	"backoffice/internal/worker"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.NewDB(cfg.DatabaseURI)
	if err != nil {
		slog.Error("failed to connect to DB", "error", err)
		os.Exit(1)
	}
	defer database.CloseDB(db)

	if err := database.InitSchema(db); err != nil {
		slog.Error("failed to init DB schema", "error", err)
		os.Exit(1)
	}

	// Process-wide event hub, torn down at shutdown.
	hub := events.NewHub()
	defer hub.Close()

	// Services
	authSvc := service.NewAuthService(db)
	orderSvc := service.NewOrderService(db, hub)
	productSvc := service.NewProductService(db)
	categorySvc := service.NewCategoryService(db)
	testimonialSvc := service.NewTestimonialService(db)
	contactSvc := service.NewContactService(db)

	// Live order board
	completionStore, err := board.OpenFileStore(cfg.CompletionFile)
	if err != nil {
		slog.Error("failed to open completion store", "error", err)
		os.Exit(1)
	}
	liveBoard := board.New(orderSvc, completionStore)
	liveBoard.Start(hub)
	defer liveBoard.Close()

	if err := liveBoard.LoadSnapshot(context.Background()); err != nil {
		slog.Warn("initial board snapshot failed", "error", err)
	}

	// Worker
	refreshWorker := worker.NewRefreshWorker(liveBoard, time.Duration(cfg.BoardRefreshSecs)*time.Second)

	validate := handler.NewValidator()

	// Router
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes
	r.Post("/auth/login", handler.LoginHandler(authSvc, cfg.JWTSecret))
	r.Post("/orders", handler.CreateOrderHandler(orderSvc, validate))
	r.Post("/contacts", handler.CreateContactHandler(contactSvc, validate))
	r.Get("/products", handler.ListProductsHandler(productSvc))
	r.Get("/categories", handler.ListCategoriesHandler(categorySvc))
	r.Get("/testimonials", handler.ListTestimonialsHandler(testimonialSvc))
	r.Get("/ws", handler.EventsHandler(hub))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.JWTSecret))

		r.Post("/auth/register", handler.RegisterHandler(authSvc))
		r.Get("/auth/users", handler.ListUsersHandler(authSvc))
		r.Delete("/auth/delete/{id}", handler.DeleteUserHandler(authSvc))

		r.Get("/orders", handler.ListOrdersHandler(orderSvc))
		r.Get("/orders/today", handler.TodayOrdersHandler(orderSvc))
		r.Get("/orders/sales", handler.SalesHandler(orderSvc))
		r.Get("/orders/dashboardOrders", handler.DashboardOrdersHandler(orderSvc))
		r.Get("/orders/export", handler.ExportOrdersHandler(orderSvc))
		r.Get("/orders/{orderNumber}", handler.GetOrderHandler(orderSvc))

		r.Post("/products", handler.CreateProductHandler(productSvc, validate))
		r.Put("/products/{id}", handler.UpdateProductHandler(productSvc, validate))
		r.Delete("/products/{id}", handler.DeleteProductHandler(productSvc))
		r.Put("/products/{id}/toggleVisible", handler.ToggleProductVisibleHandler(productSvc))

		r.Post("/categories", handler.CreateCategoryHandler(categorySvc, validate))
		r.Put("/categories/{id}", handler.UpdateCategoryHandler(categorySvc, validate))
		r.Delete("/categories/{id}", handler.DeleteCategoryHandler(categorySvc))

		r.Post("/testimonials", handler.CreateTestimonialHandler(testimonialSvc, validate))
		r.Put("/testimonials/{id}", handler.UpdateTestimonialHandler(testimonialSvc, validate))
		r.Delete("/testimonials/{id}", handler.DeleteTestimonialHandler(testimonialSvc))

		r.Get("/contacts", handler.ListContactsHandler(contactSvc))
		r.Get("/contacts/export", handler.ExportContactsHandler(contactSvc))

		r.Get("/board", handler.GetBoardHandler(liveBoard))
		r.Post("/board/refresh", handler.RefreshBoardHandler(liveBoard))
		r.Post("/board/orders/{id}/toggle", handler.ToggleOrderDoneHandler(liveBoard))
		r.Post("/board/reorder", handler.ReorderBoardHandler(liveBoard))
		r.Post("/board/view", handler.ToggleBoardViewHandler(liveBoard))
	})

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go refreshWorker.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-quit
	slog.Info("shutting down...")

	cancel() // stop worker
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
