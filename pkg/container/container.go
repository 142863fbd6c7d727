package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"twooter-backend/internal/config"
	"twooter-backend/internal/infrastructure/cache"
	"twooter-backend/internal/infrastructure/database"
	"twooter-backend/internal/infrastructure/identity"
	"twooter-backend/internal/infrastructure/ratelimit"
	"twooter-backend/pkg/jwt"

	profileHandler "twooter-backend/internal/domains/profile/handler"
	profileService "twooter-backend/internal/domains/profile/service"
	tweetHandler "twooter-backend/internal/domains/tweet/handler"
	tweetRepo "twooter-backend/internal/domains/tweet/repository"
	tweetService "twooter-backend/internal/domains/tweet/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the full dependency graph. Everything in it is a
// singleton living for the whole process.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================

	Config     *config.Config
	DB         *database.PostgresDB
	Redis      *cache.RedisClient
	Identity   *identity.Resolver
	Limiter    ratelimit.Limiter
	JWTManager *jwt.Manager

	// ========================================
	// REPOSITORY LAYER
	// ========================================

	TweetRepo tweetRepo.TweetRepository

	// ========================================
	// SERVICE LAYER
	// ========================================

	TweetService   tweetService.ServiceInterface
	ProfileService profileService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================

	TweetHandler   *tweetHandler.TweetHandler
	ProfileHandler *profileHandler.ProfileHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer initializes the dependency graph in dependency order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	log.Println("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	log.Println("🗄️  Connecting to PostgreSQL...")

	db := database.NewPostgresDB(&cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	log.Println("✅ Database connected")

	// ========================================
	// STEP 3: INITIALIZE REDIS
	// ========================================
	// Redis backs the rate limiter, which gates every tweet write. Unlike a
	// read cache a limiter cannot fail open, so a broken Redis is fatal.
	log.Println("🔴 Connecting to Redis...")

	redisClient := cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.Connect(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Redis = redisClient
	log.Println("✅ Redis connected")

	c.Limiter = ratelimit.NewRedisLimiter(
		redisClient.Client,
		cfg.RateLimit.MaxRequests,
		cfg.RateLimit.Window,
	)

	// ========================================
	// STEP 4: INITIALIZE IDENTITY PROVIDER
	// ========================================
	log.Println("👤 Initializing identity provider client...")

	clerkClient := identity.NewClerkClient(&cfg.Identity)
	c.Identity = identity.NewResolver(clerkClient)

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	// ========================================
	// STEP 5: INITIALIZE REPOSITORIES
	// ========================================
	log.Println("📦 Initializing repositories...")

	c.TweetRepo = tweetRepo.NewPostgresTweetRepository(db.Pool)
	log.Println("✅ Repositories initialized")

	// ========================================
	// STEP 6: INITIALIZE SERVICES
	// ========================================
	log.Println("⚙️  Initializing services...")

	c.TweetService = tweetService.NewTweetService(
		c.TweetRepo,
		c.Identity,
		c.Limiter,
	)
	c.ProfileService = profileService.NewProfileService(
		c.Identity,
		c.TweetService,
	)
	log.Println("✅ Services initialized")

	// ========================================
	// STEP 7: INITIALIZE HANDLERS
	// ========================================
	log.Println("🎯 Initializing handlers...")

	c.TweetHandler = tweetHandler.NewTweetHandler(c.TweetService)
	c.ProfileHandler = profileHandler.NewProfileHandler(c.ProfileService)
	log.Println("✅ Handlers initialized")

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// CLEANUP
// ========================================

// Close releases external connections on shutdown.
func (c *Container) Close() error {
	log.Println("🧹 Cleaning up container resources...")

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis: %v", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Println("✅ Container cleanup completed")
	return nil
}
