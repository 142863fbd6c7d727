package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"twooter-backend/internal/shared/middleware"
	"twooter-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupTweetRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupProfileRoutes(v1, c)
	}

	return router
}

// ========================================
// TWEET ROUTES
// ========================================
func setupTweetRoutes(v1 *gin.RouterGroup, c *container.Container) {
	tweets := v1.Group("/tweets")
	{
		tweets.GET("", c.TweetHandler.GetFeed)
		tweets.GET("/:id", c.TweetHandler.GetTweet)
		tweets.POST("", middleware.AuthMiddleware(c.JWTManager), c.TweetHandler.CreateTweet)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	{
		users.GET("/:user_id/tweets", c.TweetHandler.GetUserTweets)
	}
}

// ========================================
// PROFILE ROUTES
// ========================================
func setupProfileRoutes(v1 *gin.RouterGroup, c *container.Container) {
	profiles := v1.Group("/profiles")
	{
		profiles.GET("/:username", c.ProfileHandler.GetProfile)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis; the rate limiter cannot work without it
		redisStatus := "ok"
		if appCtx.Redis == nil {
			redisStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Redis.HealthCheck(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := 200
		if health["status"] != "ok" {
			statusCode = 503
		}
		c.JSON(statusCode, health)
	}
}
