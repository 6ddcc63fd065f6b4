package middleware

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"forgespace/utils"
)

// In-memory sliding-window rate limiting, per IP for unauthenticated traffic
// and per member for authenticated traffic. Designed to be replaced by Redis
// when the service runs multi-instance.

type timestamps []int64 // unix nanos

func nowUnix() int64 { return time.Now().UnixNano() }

func getEnvDuration(key string, def time.Duration) time.Duration {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return time.Duration(v) * time.Second
		}
	}
	return def
}

// clientIPGeneric returns the client IP string. If trustedCIDR is provided,
// X-Forwarded-For / X-Real-IP headers are honored when the remote addr is
// inside one of the trusted CIDRs or IPs.
func clientIPGeneric(r *http.Request, trustedCIDR []string) string {
	remoteHost, _, _ := net.SplitHostPort(r.RemoteAddr)
	remoteIP := net.ParseIP(remoteHost)
	trusted := false
	for _, cidr := range trustedCIDR {
		cidr = strings.TrimSpace(cidr)
		if cidr == "" {
			continue
		}
		if strings.Contains(cidr, "/") {
			if _, ipnet, err := net.ParseCIDR(cidr); err == nil {
				if remoteIP != nil && ipnet.Contains(remoteIP) {
					trusted = true
					break
				}
			}
			continue
		}
		if ip := net.ParseIP(cidr); ip != nil && remoteIP != nil && ip.Equal(remoteIP) {
			trusted = true
			break
		}
	}
	if trusted {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			if len(parts) > 0 {
				return strings.TrimSpace(parts[0])
			}
		}
		if xr := r.Header.Get("X-Real-IP"); xr != "" {
			return strings.TrimSpace(xr)
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// IPRateLimiter implements per-IP sliding-window counters with optional
// trusted-proxy parsing.
type IPRateLimiter struct {
	maxReq      int
	window      time.Duration
	mu          sync.Mutex
	state       map[string]timestamps
	cleanupTick time.Duration
	trustedCIDR []string
}

func NewIPRateLimiter(maxReq int, window time.Duration) *IPRateLimiter {
	l := &IPRateLimiter{
		maxReq:      maxReq,
		window:      window,
		state:       make(map[string]timestamps),
		cleanupTick: getEnvDuration("RATE_CLEANUP_SECONDS", 60*time.Second),
	}
	if v := os.Getenv("TRUSTED_PROXIES"); v != "" {
		l.trustedCIDR = strings.Split(v, ",")
	}
	go l.cleanupLoop()
	return l
}

// recordAndCount appends the current request to a key's window and returns
// the new count plus the oldest in-window timestamp.
func recordAndCount(state map[string]timestamps, key string, now, windowNs int64) (int, int64) {
	arr := state[key]
	cutoff := now - windowNs
	var filtered timestamps
	oldest := now
	for _, ts := range arr {
		if ts >= cutoff {
			filtered = append(filtered, ts)
			if ts < oldest {
				oldest = ts
			}
		}
	}
	filtered = append(filtered, now)
	state[key] = filtered
	return len(filtered), oldest
}

func writeLimited(w http.ResponseWriter, now, oldest, windowNs int64) {
	retryAfter := int((oldest + windowNs - now) / 1e9)
	if retryAfter < 1 {
		retryAfter = 1
	}
	w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": "Too many requests, please try again later",
		"data":    map[string]interface{}{"retry_after_seconds": retryAfter},
	})
}

func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIPGeneric(r, l.trustedCIDR)
		now := nowUnix()
		windowNs := int64(l.window)

		l.mu.Lock()
		count, oldest := recordAndCount(l.state, ip, now, windowNs)
		l.mu.Unlock()

		remaining := l.maxReq - count
		if remaining < 0 {
			remaining = 0
		}
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", l.maxReq))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if count > l.maxReq {
			writeLimited(w, now, oldest, windowNs)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *IPRateLimiter) cleanupLoop() {
	tick := time.NewTicker(l.cleanupTick)
	defer tick.Stop()
	for range tick.C {
		l.mu.Lock()
		cutoff := nowUnix() - int64(l.window)
		for k, arr := range l.state {
			var filtered timestamps
			for _, ts := range arr {
				if ts >= cutoff {
					filtered = append(filtered, ts)
				}
			}
			if len(filtered) == 0 {
				delete(l.state, k)
			} else {
				l.state[k] = filtered
			}
		}
		l.mu.Unlock()
	}
}

// UserRateLimiter applies separate read and write budgets per member within
// a shared window. Admins bypass it; unauthenticated requests fall through
// to the IP limiter in front.
type UserRateLimiter struct {
	mu          sync.Mutex
	state       map[string]timestamps // key = u:<id>:<read|write>
	window      time.Duration
	cleanupTick time.Duration
	maxRead     int
	maxWrite    int
}

func NewUserRateLimiter(maxRead, maxWrite, windowSec int) *UserRateLimiter {
	l := &UserRateLimiter{
		state:       make(map[string]timestamps),
		window:      time.Duration(windowSec) * time.Second,
		cleanupTick: getEnvDuration("RATE_CLEANUP_SECONDS", 60*time.Second),
		maxRead:     maxRead,
		maxWrite:    maxWrite,
	}
	go l.cleanupLoop()
	return l
}

func (l *UserRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := utils.GetMemberID(r)
		if utils.GetMemberRole(r) == "admin" {
			next.ServeHTTP(w, r)
			return
		}
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		limit := l.maxRead
		cat := "read"
		switch r.Method {
		case http.MethodGet, http.MethodHead:
		default:
			limit = l.maxWrite
			cat = "write"
		}

		key := fmt.Sprintf("u:%d:%s", uid, cat)
		now := nowUnix()
		windowNs := int64(l.window)

		l.mu.Lock()
		count, oldest := recordAndCount(l.state, key, now, windowNs)
		l.mu.Unlock()

		remaining := limit - count
		if remaining < 0 {
			remaining = 0
		}
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if count > limit {
			writeLimited(w, now, oldest, windowNs)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *UserRateLimiter) cleanupLoop() {
	tick := time.NewTicker(l.cleanupTick)
	defer tick.Stop()
	for range tick.C {
		l.mu.Lock()
		cutoff := nowUnix() - int64(l.window)
		for k, arr := range l.state {
			var filtered timestamps
			for _, ts := range arr {
				if ts >= cutoff {
					filtered = append(filtered, ts)
				}
			}
			if len(filtered) == 0 {
				delete(l.state, k)
			} else {
				l.state[k] = filtered
			}
		}
		l.mu.Unlock()
	}
}
