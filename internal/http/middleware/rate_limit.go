package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorags/sewa-lapangan/internal/http/response"
	"github.com/gorags/sewa-lapangan/pkg/logger"
	"github.com/gorags/sewa-lapangan/pkg/metrics"
)

// Limiter records one hit for key and reports whether the caller is still
// within its allowance.
type Limiter interface {
	Hit(ctx context.Context, key string, requests int, window time.Duration) (bool, error)
}

type RateLimitConfig struct {
	Requests int                            // Max requests per window
	Window   time.Duration                  // Time window duration
	KeyFunc  func(r *http.Request) []string // Keys counted for a request
	SkipFunc func(r *http.Request) bool     // Requests not counted at all
}

type RateLimiter struct {
	limiter Limiter
	config  RateLimitConfig
	metrics *metrics.Metrics
}

func NewRateLimiter(limiter Limiter, config RateLimitConfig, m *metrics.Metrics) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = IPKeyFunc
	}
	return &RateLimiter{limiter: limiter, config: config, metrics: m}
}

func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rl.config.SkipFunc != nil && rl.config.SkipFunc(r) {
				next.ServeHTTP(w, r)
				return
			}

			for _, key := range rl.config.KeyFunc(r) {
				if !rl.allow(r.Context(), key) {
					rl.metrics.RateLimited.Inc()
					w.Header().Set("Retry-After", strconv.Itoa(int(rl.config.Window.Seconds())))
					response.RateLimit(w, "Too many requests. Try again later.")
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// allow fails open when the limiter store is unavailable.
func (rl *RateLimiter) allow(ctx context.Context, key string) bool {
	ok, err := rl.limiter.Hit(ctx, key, rl.config.Requests, rl.config.Window)
	if err != nil {
		logger.WarnContext(ctx, "Rate limiter unavailable, allowing request", "error", err)
		return true
	}
	return ok
}

// IPKeyFunc keys requests by client address. It expects chi's RealIP to have
// already rewritten RemoteAddr from proxy headers.
func IPKeyFunc(r *http.Request) []string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if ip == "" {
		return nil
	}
	return []string{"ip:" + ip}
}

// SkipInfrastructure leaves probes, metrics scrapes and static assets
// uncounted.
func SkipInfrastructure(r *http.Request) bool {
	switch {
	case r.URL.Path == "/healthz", r.URL.Path == "/metrics":
		return true
	case strings.HasPrefix(r.URL.Path, "/public/"):
		return true
	}
	return false
}
