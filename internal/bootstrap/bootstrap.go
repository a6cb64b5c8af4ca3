// Package bootstrap builds the dependency graph of each deployable.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"

	"github.com/campusgrid/campusgrid/internal/app/controllers"
	"github.com/campusgrid/campusgrid/internal/app/migrations"
	"github.com/campusgrid/campusgrid/internal/app/repositories"
	"github.com/campusgrid/campusgrid/internal/app/routes"
	"github.com/campusgrid/campusgrid/internal/app/services"
	"github.com/campusgrid/campusgrid/internal/clients/enrollmentclient"
	"github.com/campusgrid/campusgrid/internal/clients/studentclient"
	"github.com/campusgrid/campusgrid/internal/config"
	"github.com/campusgrid/campusgrid/internal/db"
	"github.com/campusgrid/campusgrid/internal/grpc/studentpb"
	"github.com/campusgrid/campusgrid/internal/grpc/studentserver"
	"github.com/campusgrid/campusgrid/internal/middleware"
	"github.com/campusgrid/campusgrid/internal/pkg/auth"
	"github.com/campusgrid/campusgrid/internal/pkg/cache"
	"github.com/campusgrid/campusgrid/internal/pkg/logger"
	"github.com/campusgrid/campusgrid/internal/server"
)

// LoadConfigAndSetupLogger loads configuration and configures the global
// logger. serviceName tags every log line of the deployable.
func LoadConfigAndSetupLogger(serviceName string) (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:   logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty:  strings.ToLower(cfg.Logging.Format) == "text",
		Service: serviceName,
	})

	lgr := logger.Default()
	lgr.Info().Str("service", serviceName).Str("mode", cfg.Server.Mode).Msg("Configuration loaded")
	return cfg, lgr, nil
}

// SetupDatabase connects to postgres and applies pending migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	pool, err := db.NewPostgresPool(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrations.NewMigrator(pool).Run(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	lgr.Info().Msg("Database ready")
	return pool, nil
}

// SetupCache builds the configured cache, or returns nil when caching is
// disabled.
func SetupCache(cfg *config.Config, lgr zerolog.Logger) (*cache.Cache, error) {
	if !cfg.Cache.Enabled {
		lgr.Info().Msg("Cache disabled")
		return nil, nil
	}

	var store cache.Store
	switch cfg.Cache.Backend {
	case "redis":
		var err error
		store, err = cache.NewRedisStore(cache.RedisConfig{
			URL:    cfg.Cache.RedisURL,
			Prefix: cfg.Cache.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
	default:
		store = cache.NewMemoryStore(cfg.Cache.MaxEntries)
	}

	lgr.Info().
		Str("backend", cfg.Cache.Backend).
		Dur("ttl", cfg.CacheTTL()).
		Msg("Cache configured")

	return cache.New(store, cache.Options{
		TTL:         cfg.CacheTTL(),
		NegativeTTL: cfg.CacheNegativeTTL(),
	}, lgr), nil
}

func newJWTService(cfg *config.Config) *auth.JWTService {
	accessExp, _ := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	refreshExp, _ := time.ParseDuration(cfg.JWT.RefreshTokenExpiration)

	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  accessExp,
		RefreshTokenExp: refreshExp,
		TokenIssuer:     cfg.JWT.Issuer,
		TokenAudience:   cfg.JWT.Audience,
	})
}

func newRouter(cfg *config.Config, lgr zerolog.Logger) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(lgr))
	return router
}

// requireAuth picks the auth strategy for course and student deployables.
func requireAuth(cfg *config.Config, jwtService *auth.JWTService) gin.HandlerFunc {
	if cfg.Server.AuthMode == "gateway" {
		return middleware.GatewayAuth()
	}
	return middleware.NewAuthMiddleware(jwtService).JWTAuth()
}

// BuildAuthServer assembles the auth deployable.
func BuildAuthServer(cfg *config.Config, lgr zerolog.Logger) (*server.Server, error) {
	pool, err := SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, err
	}

	jwtService := newJWTService(cfg)
	userRepo := repositories.NewUserRepository(pool)
	tokenRepo := repositories.NewTokenRepository(pool)

	authService := services.NewAuthService(userRepo, tokenRepo, jwtService, lgr)
	authController := controllers.NewAuthController(authService)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	router := newRouter(cfg, lgr)
	routes.SetupAuthRoutes(router, authController, authMiddleware)

	srv := server.New(cfg, router, lgr).
		OnShutdown(pool.Close)
	return srv, nil
}

// BuildCourseServer assembles the course deployable, which also owns
// enrollments and talks to the student service over gRPC.
func BuildCourseServer(cfg *config.Config, lgr zerolog.Logger) (*server.Server, error) {
	pool, err := SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, err
	}

	cacheLayer, err := SetupCache(cfg, lgr)
	if err != nil {
		pool.Close()
		return nil, err
	}

	studentCli, err := studentclient.New(cfg.Services.StudentGRPCAddr, cfg.ServiceCallTimeout())
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to dial student service: %w", err)
	}

	courseRepo := repositories.NewCourseRepository(pool)
	enrollmentRepo := repositories.NewEnrollmentRepository(pool)

	courseService := services.NewCourseService(courseRepo, enrollmentRepo, studentCli, lgr)
	enrollmentService := services.NewEnrollmentService(enrollmentRepo, courseRepo, lgr)

	courseController := controllers.NewCourseController(courseService, cacheLayer)
	enrollmentController := controllers.NewEnrollmentController(enrollmentService, cacheLayer)

	router := newRouter(cfg, lgr)
	routes.SetupCourseRoutes(router, courseController, enrollmentController, requireAuth(cfg, newJWTService(cfg)))

	srv := server.New(cfg, router, lgr).
		OnShutdown(func() { _ = studentCli.Close() }).
		OnShutdown(func() {
			if cacheLayer != nil {
				_ = cacheLayer.Close()
			}
		}).
		OnShutdown(pool.Close)
	return srv, nil
}

// BuildStudentServer assembles the student deployable: REST plus the gRPC
// server the course service resolves students through.
func BuildStudentServer(cfg *config.Config, lgr zerolog.Logger) (*server.Server, error) {
	pool, err := SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, err
	}

	cacheLayer, err := SetupCache(cfg, lgr)
	if err != nil {
		pool.Close()
		return nil, err
	}

	studentRepo := repositories.NewStudentRepository(pool)
	enrollmentProbe := enrollmentclient.New(cfg.Services.EnrollmentBaseURL, cfg.ServiceCallTimeout())

	studentService := services.NewStudentService(studentRepo, enrollmentProbe, lgr)
	studentController := controllers.NewStudentController(studentService, cacheLayer)

	router := newRouter(cfg, lgr)
	routes.SetupStudentRoutes(router, studentController, requireAuth(cfg, newJWTService(cfg)))

	grpcServer := grpc.NewServer()
	studentpb.RegisterStudentServiceServer(grpcServer, studentserver.New(studentRepo, lgr))

	srv := server.New(cfg, router, lgr).
		WithGRPC(grpcServer, ":"+cfg.Services.StudentGRPCPort).
		OnShutdown(func() {
			if cacheLayer != nil {
				_ = cacheLayer.Close()
			}
		}).
		OnShutdown(pool.Close)
	return srv, nil
}
