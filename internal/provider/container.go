package provider

import (
	"github.com/cartloom/cartloom/internal/authz"
	"github.com/cartloom/cartloom/internal/cache"
	"github.com/cartloom/cartloom/internal/config"
	"github.com/cartloom/cartloom/internal/logger"
	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/payment/stripe"
	"github.com/cartloom/cartloom/internal/queue"
	"github.com/cartloom/cartloom/internal/repository"
	"github.com/cartloom/cartloom/internal/service"
)

// Container wires repositories and services once and hands them to the
// handlers.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	StripeCfg   *stripe.Config

	// Repositories
	AdminRepo    repository.AdminRepository
	UserRepo     repository.UserRepository
	OrderRepo    repository.OrderRepository
	ProductRepo  repository.ProductRepository
	CartRepo     repository.CartRepository
	CategoryRepo repository.CategoryRepository
	ReviewRepo   repository.ReviewRepository
	WishlistRepo repository.WishlistRepository

	// Services
	AuthzService    *authz.Service
	AuthService     *service.AuthService
	UserAuthService *service.UserAuthService
	EmailService    *service.EmailService
	CaptchaService  *service.CaptchaService
	ProductService  *service.ProductService
	CategoryService *service.CategoryService
	CartService     *service.CartService
	CheckoutService *service.CheckoutService
	OrderService    *service.OrderService
	ReviewService   *service.ReviewService
	WishlistService *service.WishlistService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		StripeCfg:   stripeConfig(cfg),
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.CheckoutService = service.NewCheckoutService(
		c.OrderRepo, c.ProductRepo, c.CartRepo, c.QueueClient,
		c.StripeCfg, c.Config.Checkout.Currency, c.Config.Checkout.AdvanceStatusOnPayment,
	)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.QueueClient)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.OrderRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
}

func stripeConfig(cfg *config.Config) *stripe.Config {
	s := cfg.Payment.Stripe
	return &stripe.Config{
		SecretKey:               s.SecretKey,
		PublishableKey:          s.PublishableKey,
		WebhookSecret:           s.WebhookSecret,
		SuccessURL:              s.SuccessURL,
		CancelURL:               s.CancelURL,
		APIBaseURL:              s.APIBaseURL,
		WebhookToleranceSeconds: s.WebhookToleranceSeconds,
	}
}
