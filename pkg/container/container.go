package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"directory-backend/internal/config"
	directoryHandler "directory-backend/internal/domains/directory/handler"
	directoryRepo "directory-backend/internal/domains/directory/repository"
	directoryService "directory-backend/internal/domains/directory/service"
	infraCache "directory-backend/internal/infrastructure/cache"
	"directory-backend/internal/infrastructure/database"
	"directory-backend/internal/infrastructure/storage"
	"directory-backend/internal/infrastructure/viewer"
	"directory-backend/pkg/cache"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application.
// Every external system is optional: when one is down the directory
// degrades to the next source instead of refusing to start.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================

	Config  *config.Config
	DB      *database.PostgresDB   // nil Pool when PostgreSQL is unreachable
	Redis   *infraCache.RedisCache // nil when Redis is unreachable
	Cache   cache.Cache            // Redis, or an empty in-memory cache
	Storage *storage.MinIOStorage  // nil when MinIO is disabled

	// ========================================
	// REPOSITORY LAYER
	// ========================================

	RemoteSource   directoryRepo.RemoteSource
	LocalSource    directoryRepo.LocalSource
	FallbackSource directoryRepo.FallbackSource

	// ========================================
	// SERVICE LAYER
	// ========================================

	ProfileViewer    directoryService.ProfileViewer
	DirectoryService directoryService.ServiceInterface
	Refresher        *directoryService.Refresher // nil when no schedule is configured

	// ========================================
	// HANDLER LAYER
	// ========================================

	DirectoryHandler *directoryHandler.DirectoryHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
//
// QUAN TRỌNG: Thứ tự initialization:
// 1. Config (không phụ thuộc gì)
// 2. Infrastructure (DB, Redis, MinIO) - phụ thuộc Config
// 3. Repositories - phụ thuộc Infrastructure
// 4. Services - phụ thuộc Repositories
// 5. Handlers - phụ thuộc Services
func NewContainer(ctx context.Context) (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Info().Str("env", cfg.App.Environment).Msg("✅ Config loaded")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: INFRASTRUCTURE
	// ========================================
	c.initDatabase(ctx)
	c.initCache(ctx)
	c.initStorage(ctx)

	// ========================================
	// STEP 2: REPOSITORIES
	// ========================================
	c.initRepositories()
	log.Info().Msg("✅ Repositories initialized")

	// ========================================
	// STEP 3: SERVICES
	// ========================================
	if err := c.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}
	log.Info().Msg("✅ Services initialized")

	// ========================================
	// STEP 4: HANDLERS
	// ========================================
	c.DirectoryHandler = directoryHandler.NewDirectoryHandler(c.DirectoryService)
	log.Info().Msg("✅ Handlers initialized")

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

// initDatabase: PostgreSQL failure không critical - remote source báo unavailable
func (c *Container) initDatabase(ctx context.Context) {
	log.Info().Msg("🗄️  Connecting to PostgreSQL...")

	c.DB = database.NewPostgresDB(c.Config.Database)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := c.DB.Connect(connectCtx); err != nil {
		log.Warn().Err(err).Msg("⚠️  PostgreSQL unavailable, directory will use the local fallback")
		return
	}
	log.Info().Msg("✅ Database connected")
}

// initCache: Redis failure không critical - fallback reads an empty memory cache
func (c *Container) initCache(ctx context.Context) {
	log.Info().Msg("🔴 Connecting to Redis...")

	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	if err := redisCache.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("⚠️  Redis connection failed (non-critical), using in-memory cache")
		_ = redisCache.Close()
		c.Cache = cache.NewMemoryCache()
		return
	}

	c.Redis = redisCache
	c.Cache = redisCache
	log.Info().Msg("✅ Redis connected")
}

// initStorage: MinIO chỉ dùng để presign avatar
func (c *Container) initStorage(ctx context.Context) {
	if !c.Config.MinIO.Enabled {
		log.Info().Msg("🪣 MinIO disabled, avatar references are served as stored")
		return
	}

	s, err := storage.NewMinIOStorage(ctx, c.Config.MinIO)
	if err != nil {
		log.Warn().Err(err).Msg("⚠️  MinIO unavailable (non-critical), avatar references are served as stored")
		return
	}

	c.Storage = s
	log.Info().Str("bucket", c.Config.MinIO.Bucket).Msg("✅ MinIO connected")
}

func (c *Container) initRepositories() {
	if c.DB.Pool != nil {
		c.RemoteSource = directoryRepo.NewPostgresProfileRepository(c.DB.Pool, c.Config.Directory.ProfilesTable)
	} else {
		c.RemoteSource = directoryRepo.NewUnavailableRemote()
	}

	c.LocalSource = directoryRepo.NewCacheLocalStore(c.Cache)
	c.FallbackSource = directoryRepo.NewFallbackAdapter(c.LocalSource)
}

func (c *Container) initServices() error {
	dirCfg := c.Config.Directory

	rules, err := directoryService.NewNameRules(dirCfg.ReservedUsernames, dirCfg.DeletedPattern)
	if err != nil {
		return err
	}

	var avatars directoryService.AvatarResolver = directoryService.PassthroughAvatars{}
	if c.Storage != nil {
		avatars = c.Storage
	}

	c.ProfileViewer = directoryService.NoopProfileViewer{}
	if dirCfg.ViewerChannel != "" && c.Redis != nil {
		c.ProfileViewer = viewer.NewRedisProfileViewer(c.Redis.Client(), dirCfg.ViewerChannel)
	}

	reconciler := directoryService.NewReconciler(
		c.RemoteSource,
		c.FallbackSource,
		rules,
		avatars,
		dirCfg.RemoteTimeout,
	)

	c.DirectoryService = directoryService.NewDirectoryService(
		reconciler,
		directoryService.NewProfileResolver(c.ProfileViewer),
		dirCfg.PageSize,
	)

	if dirCfg.RefreshCron != "" {
		refresher, err := directoryService.NewRefresher(c.DirectoryService, dirCfg.RefreshCron)
		if err != nil {
			return err
		}
		c.Refresher = refresher
	}

	return nil
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.Refresher != nil {
		c.Refresher.Stop()
	}

	if c.DB != nil {
		c.DB.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		}
	}

	log.Info().Msg("✅ Container cleanup completed")
}
