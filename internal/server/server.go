package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"corpsite/internal/config"
	custommiddleware "corpsite/internal/middleware"
	"corpsite/internal/repository"
	"corpsite/internal/service"
	"corpsite/internal/storage"
	"corpsite/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, store storage.Store) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(nil, !cfg.IsProduction()))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	testimonialRepo := repository.NewTestimonialRepository(db)
	visitorRepo := repository.NewVisitorRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Initialize services
	authService := service.NewAuthService(
		adminRepo,
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.TokenExpiry)*time.Minute,
	)
	productService := service.NewProductService(productRepo, store, logger)
	blogService := service.NewBlogService(blogRepo, store, logger)
	testimonialService := service.NewTestimonialService(testimonialRepo, store, logger)
	visitorService := service.NewVisitorService(visitorRepo)

	// Rate limit the public contact form
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	contactRateLimit := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 5,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit:contact",
	}, logger)

	// Initialize handlers
	bearerAuth := custommiddleware.BearerAuth(authService, logger)

	authHandler := transport.NewAuthHandler(
		authService,
		logger,
		time.Duration(cfg.JWT.CookieMaxAge)*time.Hour,
		cfg.IsProduction(),
	)
	productHandler := transport.NewProductHandler(productService, logger)
	blogHandler := transport.NewBlogHandler(blogService, logger)
	testimonialHandler := transport.NewTestimonialHandler(testimonialService, logger)
	contactHandler := transport.NewContactHandler(visitorService, logger, contactRateLimit)

	// Register routes
	authHandler.RegisterRoutes(router, bearerAuth)
	productHandler.RegisterRoutes(router)
	blogHandler.RegisterRoutes(router)
	testimonialHandler.RegisterRoutes(router)
	contactHandler.RegisterRoutes(router)

	// Admin pages sit behind the session-cookie gate; the login page is
	// public.
	adminGate := custommiddleware.AdminGate(authService, logger)
	router.Route("/admin", func(r chi.Router) {
		r.Use(adminGate)
		r.Handle("/*", http.StripPrefix("/admin", http.FileServer(http.Dir(cfg.Server.AdminDir))))
	})
	router.Handle("/login", http.StripPrefix("/login", http.FileServer(http.Dir(cfg.Server.LoginDir))))
	router.Handle("/login/*", http.StripPrefix("/login", http.FileServer(http.Dir(cfg.Server.LoginDir))))

	// With the local storage driver the API serves the uploads itself.
	if local, ok := store.(*storage.LocalStore); ok {
		router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(local.Root()))))
	}

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
