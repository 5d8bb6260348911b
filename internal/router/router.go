package router

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wakja/wakja-be/internal/handler"
	"github.com/wakja/wakja-be/internal/locale"
	"github.com/wakja/wakja-be/internal/observability"
)

// Options 描述路由层需要的外部配置。
type Options struct {
	Origins []string
	Logger  *slog.Logger
	// UploadDir 非空时以 UploadURLPath 提供本地上传文件。
	UploadDir     string
	UploadURLPath string
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(
		CORSMiddleware(opts.Origins),
		recovery(logger),
		observability.RequestLogger(logger),
		observability.Metrics(),
	)

	if opts.UploadDir != "" {
		urlPath := "/" + strings.Trim(opts.UploadURLPath, "/")
		if urlPath == "/" {
			urlPath = "/static/uploads"
		}
		uploads := r.Group(urlPath, noSniff())
		uploads.Static("/", opts.UploadDir)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	r.GET("/metrics", observability.MetricsHandler())

	apiGroup := r.Group("/api")
	apiGroup.Use(handler.LocaleMiddleware(), api.Identity())
	{
		apiGroup.POST("/auth/signup", api.Signup)
		apiGroup.POST("/auth/login", api.Login)
		apiGroup.POST("/auth/logout", api.Logout)
		apiGroup.GET("/auth/me", api.Me)

		apiGroup.GET("/posts", api.ListPosts)
		apiGroup.GET("/posts/:id", api.GetPost)
		apiGroup.POST("/posts/:id/like", api.ToggleLike)
		apiGroup.GET("/posts/:id/comments", api.ListComments)
		apiGroup.POST("/feedback", api.SubmitFeedback)

		// 需要登录的路由
		authed := apiGroup.Group("")
		authed.Use(api.AuthRequired())
		{
			authed.POST("/posts", api.CreatePost)
			authed.PUT("/posts/:id", api.UpdatePost)
			authed.DELETE("/posts/:id", api.DeletePost)

			authed.POST("/posts/:id/comments", api.CreateComment)
			authed.PUT("/comments/:id", api.UpdateComment)
			authed.DELETE("/comments/:id", api.DeleteComment)

			authed.POST("/upload", api.UploadImage)
		}
	}

	return r
}

// noSniff 禁止浏览器对上传文件做内容类型嗅探。
func noSniff() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Next()
	}
}

// recovery 将 panic 转换为统一的 500 响应。
func recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", fmt.Sprint(recovered),
		)
		language := locale.NormalizeLanguage(c.Query("lang"))
		if language == "" {
			language = locale.LanguageFromAcceptLanguage(c.GetHeader("Accept-Language"))
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   locale.Message(language, "server_error"),
		})
	})
}
