package middlewares

import (
	"medisync-service/internal/app/config"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// SignInLimiter throttles sign-in attempts per client IP. An IP that runs out
// of attempts is blocked for blockTime.
type SignInLimiter struct {
	log       *zap.Logger
	limiters  map[string]*rate.Limiter
	blocked   map[string]time.Time
	mu        sync.Mutex
	attempts  int
	window    time.Duration
	blockTime time.Duration
	now       func() time.Time
}

func NewSignInLimiter(cfg config.AppSignIn, logger *zap.Logger) *SignInLimiter {
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 5
	}
	window := time.Duration(cfg.AttemptWindowSeconds) * time.Second
	if window <= 0 {
		window = time.Minute
	}
	return &SignInLimiter{
		log:       logger,
		limiters:  make(map[string]*rate.Limiter),
		blocked:   make(map[string]time.Time),
		attempts:  attempts,
		window:    window,
		blockTime: time.Duration(cfg.BlockTimeInMinutes) * time.Minute,
		now:       time.Now,
	}
}

func (l *SignInLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ip, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			ip = req.RemoteAddr
		}
		now := l.now()

		l.mu.Lock()
		if blockedUntil, found := l.blocked[ip]; found {
			if now.Before(blockedUntil) {
				l.mu.Unlock()
				l.reject(w, req, ip, blockedUntil.Sub(now))
				return
			}
			delete(l.blocked, ip)
		}

		limiter, exists := l.limiters[ip]
		if !exists {
			limiter = rate.NewLimiter(rate.Every(l.window/time.Duration(l.attempts)), l.attempts)
			l.limiters[ip] = limiter
		}

		if !limiter.AllowN(now, 1) {
			l.blocked[ip] = now.Add(l.blockTime)
			l.mu.Unlock()
			l.reject(w, req, ip, l.blockTime)
			return
		}
		l.mu.Unlock()

		next.ServeHTTP(w, req)
	})
}

func (l *SignInLimiter) reject(w http.ResponseWriter, req *http.Request, ip string, retryAfter time.Duration) {
	l.log.Warn("SignInLimiter.Limit blocked sign-in attempt",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(req.Context())),
		zap.String(constvars.LoggingRemoteAddrKey, ip),
	)
	seconds := int(retryAfter.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(seconds))
	utils.BuildErrorResponse(l.log, w, exceptions.ErrTooManyRequests(nil, ip))
}
