package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	appControllers "github.com/yigit/coursefeedback/internal/app/controllers"
	appMigrations "github.com/yigit/coursefeedback/internal/app/migrations"
	appRepos "github.com/yigit/coursefeedback/internal/app/repositories"
	"github.com/yigit/coursefeedback/internal/app/repositories/memory"
	"github.com/yigit/coursefeedback/internal/app/repositories/mongostore"
	appRoutes "github.com/yigit/coursefeedback/internal/app/routes"
	appServices "github.com/yigit/coursefeedback/internal/app/services"
	"github.com/yigit/coursefeedback/internal/config"
	"github.com/yigit/coursefeedback/internal/db"
	appMiddleware "github.com/yigit/coursefeedback/internal/middleware"
	"github.com/yigit/coursefeedback/internal/pkg/events"
	"github.com/yigit/coursefeedback/internal/pkg/helpers"
	"github.com/yigit/coursefeedback/internal/pkg/logger"
	"github.com/yigit/coursefeedback/internal/seed"
)

// Store is the selected backend with its repositories and lifecycle hooks
type Store struct {
	Driver string
	Repos  *appRepos.Repositories
	Ping   appControllers.PingFunc
	Close  func(ctx context.Context) error
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	CourseService   appServices.CourseService
	StudentService  appServices.StudentService
	FeedbackService appServices.FeedbackService
	Controllers     appRoutes.Controllers
	Publisher       events.Publisher
	Logger          zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: logger.ParseFormat(cfg.Logging.Format),
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore connects the configured backend and prepares its schema.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Store, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		return setupPostgres(ctx, cfg, lgr)
	case config.DriverMongo:
		return setupMongo(ctx, cfg, lgr)
	case config.DriverMemory:
		lgr.Warn().Msg("Using in-memory store; data is lost on shutdown")
		return &Store{
			Driver: config.DriverMemory,
			Repos:  memory.NewStore().Repositories(),
			Close:  func(context.Context) error { return nil },
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func setupPostgres(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Store, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Str("dir", cfg.Database.MigrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database, lgr)
	if err := migrator.MigrateFromDirectory(ctx, cfg.Database.MigrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return &Store{
		Driver: config.DriverPostgres,
		Repos:  appRepos.NewRepositories(database.Pool),
		Ping:   database.Pool.Ping,
		Close: func(context.Context) error {
			database.Close()
			return nil
		},
	}, nil
}

func setupMongo(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Store, error) {
	lgr.Info().Str("database", cfg.Database.MongoDatabase).Msg("Establishing MongoDB connection...")
	mdb, err := db.NewMongoDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to MongoDB")
		return nil, err
	}

	if err := mongostore.EnsureIndexes(ctx, mdb.Database); err != nil {
		lgr.Error().Err(err).Msg("Failed to create MongoDB indexes")
		_ = mdb.Close(context.Background())
		return nil, err
	}
	lgr.Info().Msg("MongoDB connection and indexes ready.")

	return &Store{
		Driver: config.DriverMongo,
		Repos:  mongostore.NewRepositories(mdb.Database),
		Ping: func(ctx context.Context) error {
			return mdb.Client.Ping(ctx, readpref.Primary())
		},
		Close: mdb.Close,
	}, nil
}

// SetupEvents returns a Kafka publisher when enabled, otherwise a no-op publisher.
func SetupEvents(cfg *config.Config, lgr zerolog.Logger) (events.Publisher, error) {
	if !cfg.Kafka.Enabled {
		lgr.Info().Msg("Event publishing disabled")
		return events.NewNoopPublisher(), nil
	}

	publisher, err := events.NewKafkaPublisher(events.KafkaConfig{
		Brokers:      cfg.Kafka.Brokers,
		Topic:        cfg.Kafka.Topic,
		WriteTimeout: helpers.ParseDuration(cfg.Kafka.WriteTimeout, defaultKafkaWriteTimeout),
		BatchTimeout: helpers.ParseDuration(cfg.Kafka.BatchTimeout, events.DefaultBatchTimeout),
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to create Kafka publisher")
		return nil, err
	}

	lgr.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("Kafka event publisher configured")
	return publisher, nil
}

// BuildDependencies initializes services and controllers on top of the store.
func BuildDependencies(cfg *config.Config, store *Store, publisher events.Publisher, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Publisher: publisher, Logger: lgr}

	deps.CourseService = appServices.NewCourseService(store.Repos.CourseRepository, publisher, lgr)
	deps.StudentService = appServices.NewStudentService(store.Repos.StudentRepository, deps.CourseService, publisher, lgr)
	deps.FeedbackService = appServices.NewFeedbackService(
		store.Repos.FeedbackRepository,
		deps.StudentService,
		deps.CourseService,
		publisher,
		lgr,
	)
	deps.CourseService.RegisterCascade(deps.FeedbackService)

	deps.Controllers = appRoutes.Controllers{
		Course:   appControllers.NewCourseController(deps.CourseService),
		Student:  appControllers.NewStudentController(deps.StudentService),
		Feedback: appControllers.NewFeedbackController(deps.FeedbackService),
		System:   appControllers.NewSystemController(store.Ping),
	}
	if !cfg.IsProduction() {
		deps.Controllers.Admin = appControllers.NewAdminController(deps.CourseService, deps.StudentService, lgr)
	}

	return deps
}

// SeedTestData creates the demo records when seeding is enabled.
func SeedTestData(ctx context.Context, cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) {
	if !cfg.Seed.Enabled {
		return
	}
	if _, err := seed.CreateTestData(ctx, deps.CourseService, deps.StudentService, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create test data, proceeding anyway...")
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(router, deps.Controllers)

	return router
}
