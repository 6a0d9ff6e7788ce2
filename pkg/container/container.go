package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"shop-backend/internal/config"
	infraCache "shop-backend/internal/infrastructure/cache"
	"shop-backend/internal/infrastructure/database"
	"shop-backend/internal/infrastructure/queue"
	"shop-backend/internal/infrastructure/storage"
	"shop-backend/pkg/cache"
	pkgdb "shop-backend/pkg/database"
	"shop-backend/pkg/jwt"
	"shop-backend/pkg/logger"

	"shop-backend/internal/domains/category"
	categoryHandler "shop-backend/internal/domains/category/handler"
	categoryRepo "shop-backend/internal/domains/category/repository"
	categoryService "shop-backend/internal/domains/category/service"
	couponHandler "shop-backend/internal/domains/coupon/handler"
	couponRepo "shop-backend/internal/domains/coupon/repository"
	couponService "shop-backend/internal/domains/coupon/service"
	dashboardHandler "shop-backend/internal/domains/dashboard/handler"
	dashboardRepo "shop-backend/internal/domains/dashboard/repository"
	dashboardService "shop-backend/internal/domains/dashboard/service"
	imageHandler "shop-backend/internal/domains/image/handler"
	imageRepo "shop-backend/internal/domains/image/repository"
	imageService "shop-backend/internal/domains/image/service"
	orderHandler "shop-backend/internal/domains/order/handler"
	orderRepo "shop-backend/internal/domains/order/repository"
	orderService "shop-backend/internal/domains/order/service"
	productHandler "shop-backend/internal/domains/product/handler"
	productRepo "shop-backend/internal/domains/product/repository"
	productService "shop-backend/internal/domains/product/service"
	"shop-backend/internal/domains/user"
	userHandler "shop-backend/internal/domains/user/handler"
	userRepo "shop-backend/internal/domains/user/repository"
	userService "shop-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph shared by cmd/api and
// cmd/worker. Everything in it lives for the whole process.
type Container struct {
	// Infrastructure
	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *infraCache.RedisClient
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	TxManager   pkgdb.TxManager
	AsynqClient *asynq.Client
	Storage     *storage.MinIOStorage

	// Repositories
	UserRepo      user.Repository
	CategoryRepo  category.CategoryRepository
	ProductRepo   productRepo.ProductRepository
	ImageRepo     imageRepo.ImageRepository
	CouponRepo    couponRepo.CouponRepository
	OrderRepo     orderRepo.OrderRepository
	DashboardRepo dashboardRepo.StatsRepository

	// Services
	UserService      user.Service
	CategoryService  category.CategoryService
	ProductService   productService.ServiceInterface
	ImageService     imageService.ServiceInterface
	CouponService    couponService.ServiceInterface
	OrderService     orderService.OrderService
	DashboardService dashboardService.ServiceInterface

	// Handlers
	AuthHandler        *userHandler.AuthHandler
	UserHandler        *userHandler.UserHandler
	CategoryHandler    *categoryHandler.CategoryHandler
	ProductHandler     *productHandler.Handler
	ImageHandler       *imageHandler.AdminHandler
	CouponHandler      *couponHandler.AdminHandler
	OrderAdminHandler  *orderHandler.AdminHandler
	OrderClientHandler *orderHandler.ClientHandler
	DashboardHandler   *dashboardHandler.Handler
}

// ========================================
// CONSTRUCTOR
// ========================================

// NewContainer loads config and builds the graph bottom-up:
// infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Init(cfg.App.Environment)
	logger.Info("config loaded", map[string]interface{}{"environment": cfg.App.Environment})

	if err := c.initInfrastructure(); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("container initialized", map[string]interface{}{})
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION
// ========================================

func (c *Container) initInfrastructure() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	c.DB = database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.DB.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := c.DB.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	c.TxManager = pkgdb.NewPoolTxManager(c.DB.Pool)

	// Redis only backs the cache; reads fall through to postgres when it is down.
	c.Redis = infraCache.NewRedisClient(c.Config.Redis.Addr, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		logger.Warn("redis unavailable, continuing without cache", map[string]interface{}{"error": err.Error()})
	}
	c.Cache = infraCache.NewRedisCache(c.Redis.Client, c.Config.Redis.Prefix)

	c.JWTManager = jwt.NewManager(c.Config.JWT.Secret, c.Config.JWT.AccessExpiry, c.Config.JWT.RefreshExpiry)
	c.AsynqClient = queue.NewClient(c.Config.Queue.RedisAddr)

	store, err := storage.NewMinIOStorage(ctx, c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = store

	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
	c.ProductRepo = productRepo.NewPostgresRepository(pool)
	c.ImageRepo = imageRepo.NewPostgresRepository(pool)
	c.CouponRepo = couponRepo.NewPostgresRepository(pool)
	c.OrderRepo = orderRepo.NewPostgresRepository(pool)
	c.DashboardRepo = dashboardRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo)
	c.ProductService = productService.NewProductService(c.ProductRepo, c.Cache)
	c.ImageService = imageService.NewImageService(c.ImageRepo, c.Storage, storage.NewImageProcessor())

	// Coupons and orders depend on each other's stores, never on each other's services.
	c.CouponService = couponService.NewCouponService(c.CouponRepo, c.OrderRepo, c.TxManager)
	c.OrderService = orderService.NewOrderService(
		c.OrderRepo,
		c.CouponRepo,
		c.ProductRepo,
		c.TxManager,
		c.AsynqClient,
	)

	c.DashboardService = dashboardService.NewDashboardService(c.DashboardRepo, c.Cache)
}

func (c *Container) initHandlers() {
	c.AuthHandler = userHandler.NewAuthHandler(c.UserService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.ProductHandler = productHandler.NewHandler(c.ProductService)
	c.ImageHandler = imageHandler.NewAdminHandler(c.ImageService)
	c.CouponHandler = couponHandler.NewAdminHandler(c.CouponService)
	c.OrderAdminHandler = orderHandler.NewAdminHandler(c.OrderService)
	c.OrderClientHandler = orderHandler.NewClientHandler(c.OrderService)
	c.DashboardHandler = dashboardHandler.NewHandler(c.DashboardService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases connections in reverse order of creation. It tolerates a
// partially built container.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("failed to close asynq client", err)
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
	}

	if c.DB != nil {
		_ = c.DB.Close()
	}

	logger.Info("container cleanup completed", map[string]interface{}{})
}
