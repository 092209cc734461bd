package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/edoc/booking-api/internal/handler"
	"github.com/edoc/booking-api/internal/middleware"
)

// Handler registers its routes on an API group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimit  rate.Limit
	RateBurst  int
	CORSConfig middleware.CORSConfig
}

type Router struct {
	engine        *gin.Engine
	h             *handler.Handler
	availabilityH Handler
	appointmentH  Handler
	ratingH       Handler
	config        Config
}

var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Time spent handling HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
	requestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)

func NewRouter(
	h *handler.Handler,
	availabilityH Handler,
	appointmentH Handler,
	ratingH Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	if config.RateLimit <= 0 {
		config.RateLimit = 50
	}
	if config.RateBurst <= 0 {
		config.RateBurst = 100
	}
	if len(config.CORSConfig.AllowOrigins) == 0 {
		config.CORSConfig = middleware.DefaultCORSConfig()
	}

	return &Router{
		engine:        gin.New(),
		h:             h,
		availabilityH: availabilityH,
		appointmentH:  appointmentH,
		ratingH:       ratingH,
		config:        config,
	}
}

func (r *Router) Setup() {
	limiter := middleware.NewRateLimiter(r.config.RateLimit, r.config.RateBurst)

	r.engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.ErrorHandler(),
		middleware.CORS(r.config.CORSConfig),
		limiter.RateLimit(),
		r.observe(),
	)

	r.engine.GET("/health", r.h.HealthCheck)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")
	r.availabilityH.RegisterRoutes(api)
	r.appointmentH.RegisterRoutes(api)
	r.ratingH.RegisterRoutes(api)
}

func (r *Router) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
