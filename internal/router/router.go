package router

import (
	"fmt"
	"strings"

	"github.com/cartloom/cartloom/internal/cache"
	"github.com/cartloom/cartloom/internal/config"
	"github.com/cartloom/cartloom/internal/constants"
	adminhandlers "github.com/cartloom/cartloom/internal/http/handlers/admin"
	publichandlers "github.com/cartloom/cartloom/internal/http/handlers/public"
	"github.com/cartloom/cartloom/internal/logger"
	"github.com/cartloom/cartloom/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware, handlers and route groups.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// Uploaded product images.
	r.Static("/uploads", "./uploads")

	apiV1 := r.Group("/api/v1")
	{
		// Storefront catalog, open to everyone.
		apiV1.GET("/products", publicHandler.ListProducts)
		apiV1.GET("/products/:slug", publicHandler.GetProduct)
		apiV1.GET("/categories", publicHandler.ListCategories)
		apiV1.GET("/reviews/product/:id", publicHandler.ListProductReviews)
		apiV1.GET("/captcha/image", publicHandler.GetImageCaptcha)

		// Payment provider callbacks.
		apiV1.POST("/payments/webhook/stripe", publicHandler.StripeWebhook)

		// Post-checkout landing page lookup. The session ID is the secret.
		apiV1.GET("/orders/session/:sessionId", publicHandler.GetOrderBySession)

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		}

		// Order history is visible to its owner and to admins.
		apiV1.GET("/orders/user/:userId",
			UserOrAdminJWTAuthMiddleware(cfg.UserJWT.SecretKey, cfg.JWT.SecretKey, c.UserRepo, c.AdminRepo),
			publicHandler.ListUserOrders)

		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.Profile)
			user.GET("/me/reviews", publicHandler.ListMyReviews)

			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:product_id", publicHandler.DeleteCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)

			user.GET("/wishlist", publicHandler.GetWishlist)
			user.POST("/wishlist/items", publicHandler.AddWishlistItem)
			user.DELETE("/wishlist/items/:product_id", publicHandler.RemoveWishlistItem)

			user.POST("/checkout/create-session", publicHandler.CreateCheckoutSession)
			user.GET("/orders/:id", publicHandler.GetOrder)

			user.POST("/reviews", publicHandler.CreateReview)
			user.PUT("/reviews/:id", publicHandler.UpdateReview)
			user.DELETE("/reviews/:id", publicHandler.DeleteReview)
		}

		// Admin order console lives under /orders/admin so the storefront
		// and console share one order API surface.
		ordersAdmin := apiV1.Group("/orders/admin")
		ordersAdmin.Use(
			AdminJWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo),
			AdminRBACMiddleware(c.AuthzService),
		)
		{
			ordersAdmin.GET("", adminHandler.ListOrders)
			ordersAdmin.GET("/:orderId", adminHandler.GetOrder)
			ordersAdmin.PUT("/:orderId", adminHandler.UpdateOrderStatus)
			ordersAdmin.GET("/:orderId/history", adminHandler.GetOrderStatusHistory)
		}

		admin := apiV1.Group("/admin")
		{
			adminAuth := admin.Group("/auth")
			{
				adminAuth.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.Login)
			}

			authorized := admin.Group("")
			authorized.Use(
				AdminJWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo),
				AdminRBACMiddleware(c.AuthzService),
			)
			{
				authorized.GET("/auth/me", adminHandler.Profile)

				authorized.GET("/products", adminHandler.ListProducts)
				authorized.GET("/products/:id", adminHandler.GetProduct)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)

				authorized.GET("/categories", adminHandler.ListCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)

				authorized.GET("/authz/roles", adminHandler.ListRoles)
				authorized.POST("/authz/roles", adminHandler.CreateRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetRolePolicies)
				authorized.POST("/authz/roles/:role/policies", adminHandler.GrantRolePolicy)
				authorized.DELETE("/authz/roles/:role/policies", adminHandler.RevokeRolePolicy)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAdminRoles)
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
