// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	_ "letsparkit/docs"
	"letsparkit/internal/analytics"
	"letsparkit/internal/auth"
	"letsparkit/internal/bookings"
	"letsparkit/internal/feedback"
	"letsparkit/internal/locations"
	"letsparkit/internal/parking"
	"letsparkit/internal/payments"
	"letsparkit/internal/realtime"
	"letsparkit/internal/shared/config"
	"letsparkit/internal/shared/database"
	"letsparkit/internal/shared/middleware"
	"letsparkit/internal/slots"
	"letsparkit/internal/users"
	"letsparkit/pkg/cache"
	"letsparkit/pkg/logger"
	"letsparkit/pkg/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config  *config.Config
	db      *database.DB
	store   *parking.Store
	users   users.Repository
	metrics *metrics.Metrics
	hub     *realtime.Hub

	authn          *middleware.Authenticator
	slotService    slots.Service
	bookingService bookings.Service
}

// NewRouter creates a new router instance. metrics and hub are optional.
func NewRouter(cfg *config.Config, db *database.DB, store *parking.Store, userRepo users.Repository, m *metrics.Metrics, hub *realtime.Hub) *Router {
	return &Router{
		config:  cfg,
		db:      db,
		store:   store,
		users:   userRepo,
		metrics: m,
		hub:     hub,
	}
}

// BookingService is available once SetupRoutes has run
func (r *Router) BookingService() bookings.Service {
	return r.bookingService
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if r.metrics != nil {
		engine.GET("/metrics", r.metrics.Handler())
	}

	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Auth first: it builds the shared authenticator
		r.setupAuthRoutes(api)

		r.setupUserRoutes(api)
		r.setupLocationRoutes(api)
		r.setupSlotRoutes(api)
		r.setupBookingRoutes(api)
		r.setupPaymentRoutes(api)
		r.setupFeedbackRoutes(api)
		r.setupAnalyticsRoutes(api)
		r.setupRealtimeRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "letsparkit-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "letsparkit-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		status := gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
			"redis":       r.db.GetRedis() != nil,
			"kafka":       r.config.Kafka.Enabled,
		}
		if r.hub != nil {
			status["live_clients"] = r.hub.ClientCount()
		}
		c.JSON(http.StatusOK, status)
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	var revocations auth.RevocationStore
	if rdb := r.db.GetRedis(); rdb != nil {
		revocations = auth.NewRedisRevocationStore(rdb)
	} else {
		revocations = auth.NewMemoryRevocationStore()
	}
	r.authn = middleware.NewAuthenticator(r.config, revocations)

	authService := auth.NewService(r.users, revocations, r.config)
	authController := auth.NewController(authService)
	auth.NewRouter(authController, r.authn).SetupRoutes(rg)
}

// setupUserRoutes configures the admin user directory
func (r *Router) setupUserRoutes(rg *gin.RouterGroup) {
	userService := users.NewService(r.users, r.store)
	users.SetupUserRoutes(rg, users.NewController(userService), r.authn)
}

func (r *Router) setupLocationRoutes(rg *gin.RouterGroup) {
	locationService := locations.NewService(r.store)
	locations.SetupLocationRoutes(rg, locations.NewController(locationService), r.authn)
}

// setupSlotRoutes configures slot listing and holds
func (r *Router) setupSlotRoutes(rg *gin.RouterGroup) {
	var holds slots.HoldManager
	if rdb := r.db.GetRedis(); rdb != nil {
		holds = slots.NewAtomicRedisHolds(rdb)
	} else {
		holds = slots.NewMemoryHoldManager()
	}
	r.slotService = slots.NewService(r.store, holds, r.config.Redis.SlotHoldTTL)
	slots.SetupSlotRoutes(rg, slots.NewController(r.slotService), r.authn)
}

// setupBookingRoutes configures bookings and tickets
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	r.bookingService = bookings.NewService(
		r.store,
		r.slotService,
		users.NewVehicleLookup(r.users),
		r.config.Booking.DefaultVehicle,
	)
	tickets := bookings.NewTickets(r.config.Booking.TicketSecret)
	bookings.SetupBookingRoutes(rg, bookings.NewController(r.bookingService, r.store, tickets), r.authn)
}

func (r *Router) setupPaymentRoutes(rg *gin.RouterGroup) {
	payments.SetupPaymentRoutes(rg, payments.NewController(payments.NewService(r.store)), r.authn)
}

func (r *Router) setupFeedbackRoutes(rg *gin.RouterGroup) {
	feedback.SetupFeedbackRoutes(rg, feedback.NewController(feedback.NewService(r.store)), r.authn)
}

// setupAnalyticsRoutes configures the dashboard; the cache is dropped on every domain event
func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	var dashboardCache cache.Service
	if rdb := r.db.GetRedis(); rdb != nil {
		dashboardCache = cache.NewService(rdb)
	}
	analyticsService := analytics.NewService(r.store, dashboardCache, r.config.Redis.DashboardTTL)
	r.store.Subscribe(analytics.CacheInvalidator(analyticsService))

	analytics.SetupAnalyticsRoutes(rg, analytics.NewController(analyticsService), r.authn)
}

func (r *Router) setupRealtimeRoutes(rg *gin.RouterGroup) {
	if r.hub == nil {
		logger.GetDefault().Info("Realtime hub not configured, websocket stream disabled")
		return
	}
	realtime.SetupRealtimeRoutes(rg, realtime.NewController(r.hub))
}
