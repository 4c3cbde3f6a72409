package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/task-tracker-api/internal/audit"
	"github.com/yukikurage/task-tracker-api/internal/auth"
	"github.com/yukikurage/task-tracker-api/internal/cache"
	"github.com/yukikurage/task-tracker-api/internal/config"
	"github.com/yukikurage/task-tracker-api/internal/constants"
	"github.com/yukikurage/task-tracker-api/internal/database"
	"github.com/yukikurage/task-tracker-api/internal/handlers"
	"github.com/yukikurage/task-tracker-api/internal/logger"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.Setup(cfg.App.LogLevel, os.Stdout)

	// Set Gin mode
	gin.SetMode(cfg.App.GinMode)

	// Connect to database
	db, err := database.Connect(cfg.DB, logger.Component(log, "database"))
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Run migrations
	if err := database.Migrate(db, logger.Component(log, "database")); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if cfg.UsesRedis() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Error("failed to connect to redis", "addr", cfg.Redis.Addr(), "error", err)
			os.Exit(1)
		}
	}

	registry := prometheus.DefaultRegisterer
	entityCache := newCache(cfg, rdb, registry, logger.Component(log, "cache"))

	// Repositories and services
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	passwords := auth.NewBcryptVerifier(0)
	sink := audit.NewLogSink(log)

	authService := services.NewAuthService(userRepo, passwords, entityCache, log)
	userService := services.NewUserService(userRepo, passwords, entityCache, sink)
	taskService := services.NewTaskService(taskRepo, userRepo, entityCache, sink).WithListScope(cfg.Tasks.ListScope)
	commentService := services.NewCommentService(commentRepo, taskRepo, userRepo, entityCache, sink)

	if cfg.Admin.Email != "" {
		admin, err := authService.EnsureAdmin(ctx, services.AdminInput{
			Email:     cfg.Admin.Email,
			Password:  cfg.Admin.Password,
			FirstName: cfg.Admin.FirstName,
			LastName:  cfg.Admin.LastName,
		})
		if err != nil {
			log.Error("failed to ensure admin account", "error", err)
			os.Exit(1)
		}
		log.Info("admin account ready", "user_id", admin.ID)
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger.Component(log, "http")))
	r.Use(gin.Recovery())
	r.Use(middleware.NewHTTPMetrics(registry).Instrument())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", constants.HeaderRequestID},
		ExposeHeaders:    []string{constants.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	store, err := newSessionStore(cfg)
	if err != nil {
		log.Error("failed to create session store", "store", cfg.Session.Store, "error", err)
		os.Exit(1)
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task Tracker API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.RegisterRoutes(r, handlers.Handlers{
		Auth:     handlers.NewAuthHandler(authService, userService),
		Tasks:    handlers.NewTaskHandler(taskService),
		Comments: handlers.NewCommentHandler(commentService),
		Users:    handlers.NewUserHandler(userService),
	}, middleware.RequireAuth(authService))

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info("server starting", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

// newCache builds the read-through cache for the configured backend.
// The "none" backend returns nil, which disables caching in the services.
func newCache(cfg *config.Config, rdb redis.UniversalClient, reg prometheus.Registerer, log *slog.Logger) *cache.Cache {
	var store cache.Store
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		store = cache.NewRedisStore(rdb, cfg.Cache.KeyPrefix)
	case config.CacheBackendMemory:
		store = cache.NewMemoryStore()
	default:
		log.Info("entity cache disabled")
		return nil
	}
	log.Info("entity cache enabled", "backend", cfg.Cache.Backend, "ttl", cfg.Cache.TTL)
	return cache.New(store,
		cache.WithTTL(cfg.Cache.TTL),
		cache.WithMetrics(cache.NewMetrics(reg)),
		cache.WithLogger(log),
	)
}

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	if cfg.Session.Store == "redis" {
		s, err := redisStore.NewStoreWithDB(
			10,
			"tcp",
			cfg.Redis.Addr(),
			cfg.Redis.Password,
			strconv.Itoa(cfg.Redis.DB),
			[]byte(cfg.Session.Secret),
		)
		if err != nil {
			return nil, err
		}
		store = s
	} else {
		store = cookie.NewStore([]byte(cfg.Session.Secret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
