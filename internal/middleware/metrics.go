package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// InitMetrics creates the fiberprometheus middleware for HTTP metrics.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request-instrumentation handler.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}

// RedisErrors counts Redis command failures by command name.
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis command errors",
	},
	[]string{"command"},
)

// LikeToggles counts like toggle outcomes by result code.
var LikeToggles = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "post_like_toggles_total",
		Help: "Total number of like toggle attempts by outcome",
	},
	[]string{"outcome"},
)

// StatAdjustSkips counts counter decrements skipped because no stat row existed.
var StatAdjustSkips = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "post_stat_decrement_skips_total",
		Help: "Total number of counter decrements that found no stat row",
	},
)
