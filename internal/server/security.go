package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/osse101/LuckBot_Go/internal/logger"
)

// ClientGuard rate limits clients by IP and counts their failed API key checks.
// Idle clients age out of both caches after ClientIdleTTL.
type ClientGuard struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	failures *expirable.LRU[string, int]
}

// NewClientGuard allows each client limit requests per second with the given burst
func NewClientGuard(limit rate.Limit, burst int) *ClientGuard {
	return &ClientGuard{
		limit:    limit,
		burst:    burst,
		limiters: expirable.NewLRU[string, *rate.Limiter](MaxTrackedClients, nil, ClientIdleTTL),
		failures: expirable.NewLRU[string, int](MaxTrackedClients, nil, ClientIdleTTL),
	}
}

// Allow takes one token from the client's bucket
func (g *ClientGuard) Allow(ip string) bool {
	g.mu.Lock()
	l, ok := g.limiters.Get(ip)
	if !ok {
		l = rate.NewLimiter(g.limit, g.burst)
	}
	// re-adding refreshes the idle TTL
	g.limiters.Add(ip, l)
	g.mu.Unlock()
	return l.Allow()
}

// FailedAuth records a rejected key and returns the client's failure count
func (g *ClientGuard) FailedAuth(ip string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, _ := g.failures.Get(ip)
	n++
	g.failures.Add(ip, n)
	if n == FailedAuthAlertAt || (n > FailedAuthAlertAt && n%FailedAuthAlertAt == 0) {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", n)
	}
	return n
}

// AuthMiddleware accepts the key in X-API-Key or as an Authorization bearer token
func AuthMiddleware(apiKey string, proxies TrustedProxies, guard *ClientGuard) func(http.Handler) http.Handler {
	want := []byte(apiKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := presentedKey(r)
			if subtle.ConstantTimeCompare([]byte(got), want) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			ip := proxies.ClientIP(r)
			guard.FailedAuth(ip)
			logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
				"path", r.URL.Path,
				"has_key", got != "",
				"ip", ip)
			http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
		})
	}
}

func presentedKey(r *http.Request) string {
	if k := r.Header.Get(HeaderAPIKey); k != "" {
		return k
	}
	auth := r.Header.Get(HeaderAuthorization)
	if len(auth) > len(BearerPrefix) && strings.EqualFold(auth[:len(BearerPrefix)], BearerPrefix) {
		return strings.TrimSpace(auth[len(BearerPrefix):])
	}
	return ""
}

// RateLimitMiddleware rejects clients whose bucket is empty
func RateLimitMiddleware(proxies TrustedProxies, guard *ClientGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := proxies.ClientIP(r)
			if !guard.Allow(ip) {
				logger.FromContext(r.Context()).Debug(LogMsgRateLimited, "ip", ip, "path", r.URL.Path)
				w.Header().Set(HeaderRetryAfter, RetryAfterSeconds)
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TrustedProxies are the peers whose X-Forwarded-For header is believed.
// Entries are single addresses or CIDR prefixes.
type TrustedProxies []netip.Prefix

// ParseTrustedProxies parses addresses and prefixes, skipping invalid entries
func ParseTrustedProxies(entries []string) TrustedProxies {
	var out TrustedProxies
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if p, err := netip.ParsePrefix(e); err == nil {
			out = append(out, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(e); err == nil {
			out = append(out, netip.PrefixFrom(a.Unmap(), a.Unmap().BitLen()))
			continue
		}
		slog.Warn(LogMsgBadTrustedProxy, "entry", e)
	}
	return out
}

func (t TrustedProxies) trusts(ip string) bool {
	a, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	a = a.Unmap()
	for _, p := range t {
		if p.Contains(a) {
			return true
		}
	}
	return false
}

// ClientIP returns the peer address, or the rightmost X-Forwarded-For hop
// when the peer is a trusted proxy
func (t TrustedProxies) ClientIP(r *http.Request) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	if !t.trusts(peer) {
		return peer
	}
	fwd := r.Header.Get(HeaderForwardedFor)
	if fwd == "" {
		return peer
	}
	hops := strings.Split(fwd, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

var securityHeaders = map[string]string{
	"X-Content-Type-Options": "nosniff",
	"X-Frame-Options":        "DENY",
	"Referrer-Policy":        "no-referrer",
	"Cache-Control":          "no-store",
}

// SecurityHeadersMiddleware sets the fixed response headers of the ops surface
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for k, v := range securityHeaders {
			h.Set(k, v)
		}
		next.ServeHTTP(w, r)
	})
}
