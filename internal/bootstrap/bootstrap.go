package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/alumniconnect/internal/app/auth"
	appControllers "github.com/yigit/alumniconnect/internal/app/controllers"
	appMigrations "github.com/yigit/alumniconnect/internal/app/migrations"
	appRepos "github.com/yigit/alumniconnect/internal/app/repositories"
	appRoutes "github.com/yigit/alumniconnect/internal/app/routes"
	appServices "github.com/yigit/alumniconnect/internal/app/services"
	"github.com/yigit/alumniconnect/internal/config"
	"github.com/yigit/alumniconnect/internal/db"
	appMiddleware "github.com/yigit/alumniconnect/internal/middleware"
	pkgAuth "github.com/yigit/alumniconnect/internal/pkg/auth"
	"github.com/yigit/alumniconnect/internal/pkg/events"
	"github.com/yigit/alumniconnect/internal/pkg/logger"
	"github.com/yigit/alumniconnect/internal/pkg/realtime"
	"github.com/yigit/alumniconnect/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService
	Publisher      events.Publisher
	Hub            *realtime.Hub
	Broker         realtime.Broker
	Redis          *redis.Client
	Metrics        *appMiddleware.Metrics
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
}

// Close releases everything BuildDependencies opened, in reverse order
func (d *Dependencies) Close() error {
	var errs []error
	if d.Broker != nil {
		if err := d.Broker.Close(); err != nil {
			errs = append(errs, fmt.Errorf("realtime broker: %w", err))
		}
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	if d.Hub != nil {
		d.Hub.Close()
	}
	if d.Publisher != nil {
		if err := d.Publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("event publisher: %w", err))
		}
	}
	return errors.Join(errs...)
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.Config{
		Level:  strings.ToLower(cfg.Logging.Level),
		Format: strings.ToLower(cfg.Logging.Format),
	})
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds the admin account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	migrationsDir := cfg.Server.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	admin := seed.AdminAccount{
		Name:     cfg.Admin.Name,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	}
	if err := seed.CreateDefaultData(ctx, appRepos.NewUserRepository(database.Pool), admin, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes repositories, infrastructure clients, services and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)
	deps.AuthzService = appAuth.NewAuthorizationService()
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	if len(cfg.Kafka.Brokers) > 0 {
		lgr.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("Publishing domain events to Kafka")
		deps.Publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, lgr)
	} else {
		deps.Publisher = events.NoopPublisher{}
	}

	deps.Hub = realtime.NewHub(lgr)
	go deps.Hub.Run()

	if cfg.Redis.Addr != "" {
		deps.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := deps.Redis.Ping(ctx).Err(); err != nil {
			deps.Close()
			return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.Redis.Addr, err)
		}
		broker, err := realtime.NewRedisBroker(context.Background(), deps.Redis, cfg.Redis.Channel, deps.Hub, lgr)
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("failed to subscribe realtime channel: %w", err)
		}
		deps.Broker = broker
		lgr.Info().Str("addr", cfg.Redis.Addr).Str("channel", cfg.Redis.Channel).Msg("Realtime fan-out via Redis")
	} else {
		deps.Broker = realtime.NewLocalBroker(deps.Hub)
	}
	notifier := realtime.NewNotifier(deps.Broker, lgr)

	repos := deps.Repos
	authService := appServices.NewAuthService(repos.UserRepository, deps.JWTService, deps.AuthzService, deps.Publisher, lgr)
	userService := appServices.NewUserService(repos.UserRepository, deps.AuthzService, deps.Publisher, lgr)
	jobService := appServices.NewJobService(repos.JobRepository, database, deps.AuthzService, lgr)
	applicationService := appServices.NewApplicationService(repos.ApplicationRepository, repos.JobRepository, database, deps.AuthzService, deps.Publisher, lgr)
	eventService := appServices.NewEventService(repos.EventRepository, database, deps.AuthzService, lgr)
	donationService := appServices.NewDonationService(repos.DonationRepository, deps.AuthzService, lgr)
	mentorshipService := appServices.NewMentorshipService(repos.MentorshipRepository, repos.UserRepository, database, deps.AuthzService, deps.Publisher, lgr)
	messageService := appServices.NewMessageService(repos.ConversationRepository, repos.UserRepository, database, notifier, deps.Publisher, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, repos.UserRepository, deps.AuthzService)
	deps.Controllers = appRoutes.Controllers{
		Auth:        appControllers.NewAuthController(authService, lgr),
		User:        appControllers.NewUserController(userService),
		Job:         appControllers.NewJobController(jobService),
		Application: appControllers.NewApplicationController(applicationService),
		Event:       appControllers.NewEventController(eventService),
		Donation:    appControllers.NewDonationController(donationService),
		Mentorship:  appControllers.NewMentorshipController(mentorshipService),
		Message:     appControllers.NewMessageController(messageService),
		Realtime:    realtime.NewHandler(deps.Hub, appMiddleware.UserIDKey, cfg.Server.CORSAllowedOrigins, lgr),
	}

	deps.Metrics = appMiddleware.NewMetrics()
	hub := deps.Hub
	deps.Metrics.Registry().MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "alumniconnect_realtime_online_users",
		Help: "Users with at least one open realtime connection on this instance.",
	}, func() float64 { return float64(hub.OnlineUsers()) }))

	return deps, nil
}

// corsConfig builds the CORS policy. An empty list or "*" allows any origin.
func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", appMiddleware.RequestIDHeader)
	c.ExposeHeaders = []string{appMiddleware.RequestIDHeader}
	c.MaxAge = 12 * time.Hour

	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestLogger(lgr),
		deps.Metrics.Middleware(),
		cors.New(corsConfig(cfg.Server.CORSAllowedOrigins)),
		appMiddleware.Timeout(cfg.RequestTimeout()),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/metrics", deps.Metrics.Handler())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
