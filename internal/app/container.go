package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/api"
	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/db"
	"github.com/nekogravitycat/shareit-backend/internal/file"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/itemrequest"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/clock"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/storage"
	"github.com/nekogravitycat/shareit-backend/internal/ratelimit"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Logger       zerolog.Logger

	// JWTSecret is optional; empty disables bearer tokens.
	JWTSecret string
	JWTTTL    time.Duration

	// Redis is optional; nil selects the in-memory rate limiter.
	Redis          *redis.Client
	RateLimitRPS   float64
	RateLimitBurst int

	UploadDir      string
	MaxUploadBytes int64
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	var jwtManager *auth.JWTManager
	if cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	}

	var limiter ratelimit.Limiter
	if cfg.Redis != nil {
		limiter = ratelimit.NewRedisLimiter(cfg.Redis, cfg.RateLimitBurst, time.Second)
	} else {
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init upload storage: %w", err)
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo)

	// Item Request Module (answers are read straight from the item repository)
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	reqRepo := itemrequest.NewPgxRepository(cfg.DBPool)
	reqService := itemrequest.NewService(reqRepo, userService, itemRepo)

	// Item Module (booking history comes from the booking repository)
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	itemService := item.NewService(itemRepo, userService, reqService, bookingRepo, clock.System{})

	// Booking Module
	bookingService := booking.NewService(bookingRepo, userService, itemService, clock.System{})

	// File Module
	fileRepo := file.NewPgxRepository(cfg.DBPool)
	fileService := file.NewService(fileRepo, store)

	router := api.NewRouter(api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		Logger:             cfg.Logger,
		UserService:        userService,
		ItemService:        itemService,
		ItemRequestService: reqService,
		BookingService:     bookingService,
		FileService:        fileService,
		JWTManager:         jwtManager,
		Limiter:            limiter,
		MaxUploadBytes:     cfg.MaxUploadBytes,
		HealthCheck: func(ctx context.Context) error {
			return db.Ping(ctx, cfg.DBPool)
		},
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
