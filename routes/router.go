package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tanoeluis/VibrantBlog/config"
	"github.com/tanoeluis/VibrantBlog/controllers"
	"github.com/tanoeluis/VibrantBlog/middleware"
	"github.com/tanoeluis/VibrantBlog/storage"
	"github.com/tanoeluis/VibrantBlog/utils"
)

// Deps are the collaborators the router hands to controllers and middlewares.
type Deps struct {
	Config    config.AppConfig
	Store     storage.Storage
	Tokens    *utils.TokenManager
	Blacklist *utils.TokenBlacklist
	Logger    *zap.Logger
}

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(deps Deps) *gin.Engine {
	cfg := deps.Config
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Request lines go to their own rolling file; fall back to the app logger.
	accessLog := deps.Logger
	if cfg.GinPath != "" {
		gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
		if err == nil {
			accessLog = gl
		} else {
			deps.Logger.Warn("gin access log unavailable", zap.String("path", cfg.GinPath), zap.Error(err))
		}
	}
	r.Use(utils.Ginzap(accessLog, time.RFC3339, true))
	r.Use(utils.RecoveryWithZap(accessLog, false))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		// Credentials cannot be combined with a wildcard origin.
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(deps.Store, deps.Tokens, deps.Blacklist, deps.Logger)
	postController := controllers.NewPostController(deps.Store, deps.Logger)
	authRequired := middleware.AuthRequired(deps.Tokens, deps.Blacklist)
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute)

	api := r.Group("/api")

	api.POST("/register", limiter.Middleware(), authController.Register)
	api.POST("/login", limiter.Middleware(), authController.Login)
	api.POST("/logout", authRequired, authController.Logout)
	api.GET("/user", authRequired, authController.Me)

	postsGroup := api.Group("/posts")
	postsGroup.GET("", postController.ListPosts)
	postsGroup.GET("/:id", postController.GetPost)

	protected := postsGroup.Group("")
	protected.Use(authRequired)
	protected.POST("", postController.CreatePost)
	protected.PATCH("/:id", postController.UpdatePost)
	protected.PUT("/:id", postController.UpdatePost)
	protected.DELETE("/:id", postController.DeletePost)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		utils.Error(ctx, http.StatusNotFound, 40400, "not found")
	})

	return r
}
