package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

type client struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter ограничивает частоту запросов с одного IP
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	r       rate.Limit
	burst   int
	now     func() time.Time

	// X-Forwarded-For учитывается только от этих адресов
	trusted []netip.Prefix
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*client),
		r:       rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

// TrustProxies задает адреса или подсети прокси, которым разрешено передавать X-Forwarded-For
func (rl *RateLimiter) TrustProxies(entries []string) error {
	prefixes, err := ParseTrustedProxies(entries)
	if err != nil {
		return err
	}
	rl.trusted = prefixes
	return nil
}

// ParseTrustedProxies разбирает список IP и CIDR ("10.0.0.1", "10.0.0.0/8")
func ParseTrustedProxies(entries []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

func (rl *RateLimiter) isTrusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range rl.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func (rl *RateLimiter) get(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if c, ok := rl.clients[ip]; ok {
		c.seen = rl.now()
		return c.lim
	}
	l := rate.NewLimiter(rl.r, rl.burst)
	rl.clients[ip] = &client{lim: l, seen: rl.now()}
	return l
}

// Cleanup удаляет клиентов, не обращавшихся дольше idle; вызывается планировщиком
func (rl *RateLimiter) Cleanup(idle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for ip, c := range rl.clients {
		if rl.now().Sub(c.seen) > idle {
			delete(rl.clients, ip)
			removed++
		}
	}
	return removed
}

// RateLimit middleware, отвечает 429 при превышении лимита
func RateLimit(rl *RateLimiter, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := rl.clientIP(r)
			if !rl.get(ip).Allow() {
				logger.Warn("RateLimit - Too many requests: ip=%s, %s %s", ip, r.Method, r.URL.Path)
				handlers.RespondTooManyRequests(w, msgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP возвращает адрес соединения; X-Forwarded-For читается только
// если соединение пришло от доверенного прокси. Цепочка разбирается справа,
// первый недоверенный адрес считается клиентом
func (rl *RateLimiter) clientIP(r *http.Request) string {
	remote, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remote = r.RemoteAddr
	}
	if !rl.isTrusted(remote) {
		return remote
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if _, err := netip.ParseAddr(hop); err != nil {
			break
		}
		if !rl.isTrusted(hop) {
			return hop
		}
	}
	return remote
}
