package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tourquote/internal/database"
	"tourquote/internal/modules/auth"
	"tourquote/internal/modules/estimate"
	"tourquote/internal/modules/feed"
	"tourquote/internal/modules/flightquote"
	"tourquote/internal/modules/pricing"
	jwtsvc "tourquote/internal/pkg/jwt"
	"tourquote/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(
		repository.UserMigrationModel(),
		repository.EstimateMigrationModel(),
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	userRepo := repository.NewUserRepository(db)
	estimateRepo := repository.NewEstimateRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)

	engine, err := pricing.NewEngine(pricing.DefaultRouteTable(), pricing.DefaultAdjustmentSettings())
	if err != nil {
		log.Fatal(err)
	}

	hub := feed.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	estimateService := estimate.NewService(estimateRepo, engine, hub)
	estimateHandler := estimate.NewHandler(estimateService)

	var quoteCache flightquote.Cache = flightquote.NewNoOpCache()
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg := flightquote.DefaultRedisConfig()
		cfg.Addr = addr
		cfg.Password = os.Getenv("REDIS_PASSWORD")
		redisCache, err := flightquote.NewRedisCache(cfg)
		if err != nil {
			log.Println("Redis unavailable, quote cache disabled:", err)
		} else {
			quoteCache = redisCache
		}
	}
	defer quoteCache.Close()

	provider := flightquote.NewStaticProvider(engine, flightquote.NewProviderLimiter(flightquote.DefaultRateLimitConfig()))
	quoteService := flightquote.NewService(provider, quoteCache)
	quoteHandler := flightquote.NewHandler(quoteService)

	wsHandler := feed.NewWSHandler(hub, j)

	r := gin.Default()

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(authMiddleware(j))
		{
			estimateHandler.RegisterRoutes(protected)
			quoteHandler.RegisterRoutes(protected)
		}
	}

	// websocket auth rides in the query string, not the Authorization header
	r.GET("/ws/estimates/:id", wsHandler.HandleWebSocket)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}

func authMiddleware(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Missing Authorization header",
				},
			})
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid Authorization header",
				},
			})
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Empty token",
				},
			})
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid token",
				},
			})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}
