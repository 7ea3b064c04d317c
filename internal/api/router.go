package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/shareit-backend/internal/booking/http"
	"github.com/nekogravitycat/shareit-backend/internal/file"
	fileHttp "github.com/nekogravitycat/shareit-backend/internal/file/http"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	itemHttp "github.com/nekogravitycat/shareit-backend/internal/item/http"
	"github.com/nekogravitycat/shareit-backend/internal/itemrequest"
	itemRequestHttp "github.com/nekogravitycat/shareit-backend/internal/itemrequest/http"
	"github.com/nekogravitycat/shareit-backend/internal/metrics"
	"github.com/nekogravitycat/shareit-backend/internal/ratelimit"
	"github.com/nekogravitycat/shareit-backend/internal/user"
	userHttp "github.com/nekogravitycat/shareit-backend/internal/user/http"
)

// Config holds everything the router needs to wire the HTTP layer.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       zerolog.Logger

	UserService        user.Service
	ItemService        item.Service
	ItemRequestService itemrequest.Service
	BookingService     booking.Service
	FileService        file.Service

	JWTManager     *auth.JWTManager // nil disables bearer tokens
	Limiter        ratelimit.Limiter
	MaxUploadBytes int64

	// HealthCheck backs /healthz; nil means always healthy.
	HealthCheck func(ctx context.Context) error
}

// NewRouter initializes the HTTP router engine.
// It assembles the global middleware and registers the routes of every module.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Recovery: Captures panics and returns a 500 error.
	// - RequestLogger: Request ID and structured access log.
	// - Metrics: Prometheus request count and latency.
	r.Use(gin.Recovery(), RequestLogger(cfg.Logger), metrics.Middleware())
	r.Use(cors.New(corsConfig(cfg)))

	r.GET("/healthz", healthz(cfg.HealthCheck))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	identity := auth.Identity(cfg.JWTManager)
	limiter := ratelimit.Middleware(cfg.Limiter)

	fileHandler := fileHttp.NewHandler(cfg.FileService)
	userHandler := userHttp.NewHandler(cfg.UserService)
	itemHandler := itemHttp.NewHandler(cfg.ItemService, cfg.BookingService, fileHandler, cfg.MaxUploadBytes)
	itemRequestHandler := itemRequestHttp.NewHandler(cfg.ItemRequestService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler)
		itemHttp.RegisterRoutes(v1, itemHandler, identity, limiter)
		itemRequestHttp.RegisterRoutes(v1, itemRequestHandler, identity, limiter)
		bookingHttp.RegisterRoutes(v1, bookingHandler, identity, limiter)
		fileHttp.RegisterRoutes(v1, fileHandler)
	}

	return r
}

func corsConfig(cfg Config) cors.Config {
	config := cors.DefaultConfig()
	if cfg.IsProduction {
		config.AllowOrigins = splitOrigins(cfg.ProdOrigins)
		if len(config.AllowOrigins) == 0 {
			// No configured origin: refuse every cross-origin request.
			config.AllowOriginFunc = func(string) bool { return false }
		}
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", auth.HeaderUserID, HeaderRequestID}
	config.ExposeHeaders = []string{HeaderRequestID}
	return config
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func healthz(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("health check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
