// Package httpapi is the JSON/HTTP transport of the development auth server.
package httpapi

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/mybestvenue/internal/logging"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options configures NewRouter.
type Options struct {
	Accounts      Accounts
	Logger        logging.Logger
	AllowedOrigin string
}

// NewRouter builds the gin engine with recovery, request logging and CORS.
func NewRouter(opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(loggingMiddleware(logger))
	engine.Use(cors.New(corsConfig(opts.AllowedOrigin)))

	h := &handlers{accounts: opts.Accounts, logger: logger}

	engine.GET("/ping", h.ping)

	apiGroup := engine.Group("/api")
	apiGroup.GET("/me", h.requireToken, h.me)
	apiGroup.POST("/:role/login", h.login)
	apiGroup.POST("/:role/signup", h.signup)
	apiGroup.POST("/:role/verify-otp", h.verifyOTP)

	engine.NoRoute(func(c *gin.Context) {
		RespondError(c, http.StatusNotFound, "Not found")
	})

	return engine
}

func corsConfig(origin string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	var origins []string
	for _, o := range strings.Split(origin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func loggingMiddleware(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
