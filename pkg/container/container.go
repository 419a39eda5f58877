package container

import (
	"context"
	"fmt"
	"time"

	"library-backend/internal/config"
	infraCache "library-backend/internal/infrastructure/cache"
	infraDB "library-backend/internal/infrastructure/database"
	"library-backend/internal/infrastructure/email"
	"library-backend/internal/infrastructure/storage"
	"library-backend/pkg/cache"
	"library-backend/pkg/database"
	"library-backend/pkg/jwt"

	authorHandler "library-backend/internal/domains/author/handler"
	authorRepo "library-backend/internal/domains/author/repository"
	authorService "library-backend/internal/domains/author/service"
	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"
	genreHandler "library-backend/internal/domains/genre/handler"
	genreRepo "library-backend/internal/domains/genre/repository"
	genreService "library-backend/internal/domains/genre/service"
	reservationHandler "library-backend/internal/domains/reservation/handler"
	reservationRepo "library-backend/internal/domains/reservation/repository"
	reservationService "library-backend/internal/domains/reservation/service"
	userHandler "library-backend/internal/domains/user/handler"
	userRepo "library-backend/internal/domains/user/repository"
	userService "library-backend/internal/domains/user/service"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

const cachePrefix = "library:"

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph, shared by the api and the worker.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *infraDB.PostgresDB
	Transactor  database.Transactor
	Redis       *infraCache.RedisClient
	Cache       cache.Cache
	Storage     *storage.MinIOStorage
	QueueClient *asynq.Client
	SMTP        *email.SMTPSender
	Mailer      email.MailSender // queued unless LIBRARY_SYNC_MAIL is set
	JWTManager  *jwt.Manager
	Location    *time.Location

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	AuthorRepo       authorRepo.RepositoryInterface
	AuthorsBooksRepo authorRepo.AuthorsBooksRepository
	GenreRepo        genreRepo.RepositoryInterface
	GenresBooksRepo  genreRepo.GenresBooksRepository
	BookRepo         bookRepo.RepositoryInterface
	ReservationRepo  reservationRepo.RepositoryInterface
	UserRepo         userRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================
	AuthorService       authorService.ServiceInterface
	AuthorsBooksService authorService.AuthorsBooksServiceInterface
	GenreService        genreService.ServiceInterface
	GenresBooksService  genreService.GenresBooksServiceInterface
	BookService         bookService.ServiceInterface
	ReservationService  reservationService.ServiceInterface
	UserService         userService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	AuthorHandler      *authorHandler.AuthorHandler
	GenreHandler       *genreHandler.GenreHandler
	BookHandler        *bookHandler.BookHandler
	ReservationHandler *reservationHandler.ReservationHandler
	UserHandler        *userHandler.UserHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the graph in dependency order:
// config -> infrastructure -> repositories -> services -> handlers.
func NewContainer() (*Container, error) {
	log.Info().Msg("initializing DI container")

	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("config loaded")

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initInfrastructure() error {
	cfg := c.Config

	loc, err := time.LoadLocation(cfg.Library.TimeZone)
	if err != nil {
		return fmt.Errorf("load time zone: %w", err)
	}
	c.Location = loc

	// PostgreSQL
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := infraDB.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	c.Transactor = database.NewTransactor(db.Pool)

	// Redis: the cache is optional at startup, counts fall back to the database
	c.Redis = infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("redis connection failed (non-critical)")
	}
	c.Cache = infraCache.NewRedisCache(c.Redis.Client, cachePrefix)

	// MinIO
	blobs, err := storage.NewMinIOStorage(ctx, cfg.MinIO, cfg.Library.MaxCoverSize)
	if err != nil {
		return fmt.Errorf("failed to init cover storage: %w", err)
	}
	c.Storage = blobs

	// Mail
	c.SMTP = email.NewSMTPSender(cfg.SMTP)
	c.QueueClient = asynq.NewClient(c.RedisConnOpt())
	if cfg.Library.SendMailSynchronly {
		c.Mailer = c.SMTP
	} else {
		c.Mailer = email.NewQueuedSender(c.QueueClient)
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.AuthorRepo = authorRepo.NewPostgresRepository(pool)
	c.AuthorsBooksRepo = authorRepo.NewAuthorsBooksRepository(pool)
	c.GenreRepo = genreRepo.NewPostgresRepository(pool)
	c.GenresBooksRepo = genreRepo.NewGenresBooksRepository(pool)
	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	c.ReservationRepo = reservationRepo.NewPostgresRepository(pool)
	c.UserRepo = userRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	lib := c.Config.Library

	c.AuthorsBooksService = authorService.NewAuthorsBooksService(c.AuthorsBooksRepo)
	c.GenresBooksService = genreService.NewGenresBooksService(c.GenresBooksRepo)

	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.AuthorsBooksService)
	c.GenreService = genreService.NewGenreService(c.GenreRepo, c.GenresBooksService, c.Cache, lib.CountCacheTTL)

	c.BookService = bookService.NewBookService(
		c.BookRepo,
		c.Transactor,
		c.AuthorService,
		c.GenreService,
		c.AuthorsBooksService,
		c.GenresBooksService,
		c.Storage,
		c.Cache,
		bookService.Config{
			RecentWindow:  lib.RecentBooksWindow,
			CountCacheTTL: lib.CountCacheTTL,
		},
	)

	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.JWTManager,
		c.Cache,
		c.Mailer,
		userService.Config{
			HostURL:       lib.HostURL,
			ResetTokenTTL: lib.ResetTokenTTL,
		},
	)

	c.ReservationService = reservationService.NewReservationService(
		c.ReservationRepo,
		c.Transactor,
		c.BookRepo,
		c.UserService,
		c.Mailer,
		c.Location,
	)
}

func (c *Container) initHandlers() {
	pageSize := c.Config.Library.DefaultPageSize

	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService, pageSize)
	c.GenreHandler = genreHandler.NewGenreHandler(c.GenreService, pageSize)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService, pageSize)
	c.ReservationHandler = reservationHandler.NewReservationHandler(c.ReservationService, pageSize)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
}

// ========================================
// HELPER METHODS
// ========================================

// RedisConnOpt is the asynq view of the redis settings.
func (c *Container) RedisConnOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	}
}

// Cleanup releases connections on shutdown.
func (c *Container) Cleanup() {
	log.Info().Msg("cleaning up container resources")

	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close queue client")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		}
	}

	log.Info().Msg("container cleanup completed")
}
