package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/pkg/metrics"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const testSecret = "test-secret"

var testAuth = AuthConfig{Secret: testSecret, Issuer: "salon-auth", AdminRole: "admin"}

func signToken(t *testing.T, method jwt.SigningMethod, claims Claims, secret string) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func adminClaims() Claims {
	return Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-7",
			Issuer:    "salon-auth",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func protectedHandler(t *testing.T) http.Handler {
	return Auth(testAuth, nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetAdminID(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(id))
	}))
}

func TestAuth_ValidAdminToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS256, adminClaims(), testSecret))
	rec := httptest.NewRecorder()

	protectedHandler(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin-7", rec.Body.String())
}

func TestAuth_Rejections(t *testing.T) {
	expired := adminClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	wrongIssuer := adminClaims()
	wrongIssuer.Issuer = "someone-else"

	customer := adminClaims()
	customer.Role = "customer"

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "no header", header: "", status: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer not-a-jwt", status: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + signToken(t, jwt.SigningMethodHS256, adminClaims(), "other"), status: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + signToken(t, jwt.SigningMethodHS256, expired, testSecret), status: http.StatusUnauthorized},
		{name: "wrong issuer", header: "Bearer " + signToken(t, jwt.SigningMethodHS256, wrongIssuer, testSecret), status: http.StatusUnauthorized},
		{name: "not admin", header: "Bearer " + signToken(t, jwt.SigningMethodHS256, customer, testSecret), status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			protectedHandler(t).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRateLimit(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	h := RateLimit(rl, nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		req.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusCreated, send("10.0.0.1"))
	assert.Equal(t, http.StatusCreated, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))

	// у другого клиента свой лимит
	assert.Equal(t, http.StatusCreated, send("10.0.0.2"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	rl.get("10.0.0.1")
	now = now.Add(5 * time.Minute)
	rl.get("10.0.0.2")

	assert.Equal(t, 1, rl.Cleanup(3*time.Minute))
	assert.Len(t, rl.clients, 1)
}

func TestRateLimit_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	h := RateLimit(rl, nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	allowed := 0
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		req.RemoteAddr = "198.51.100.7:4000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code == http.StatusCreated {
			allowed++
		}
	}

	assert.Equal(t, 1, allowed)
}

func TestClientIP(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	require.NoError(t, rl.TrustProxies([]string{"10.0.0.0/8", "192.168.1.1"}))

	tests := []struct {
		name   string
		remote string
		xff    string
		want   string
	}{
		{name: "no header", remote: "203.0.113.9:1234", want: "203.0.113.9"},
		{name: "untrusted peer header ignored", remote: "203.0.113.9:1234", xff: "1.2.3.4", want: "203.0.113.9"},
		{name: "trusted proxy", remote: "10.1.2.3:1234", xff: "203.0.113.9", want: "203.0.113.9"},
		{name: "spoofed left hops skipped", remote: "10.1.2.3:1234", xff: "1.2.3.4, 203.0.113.9, 10.0.0.5", want: "203.0.113.9"},
		{name: "single trusted ip", remote: "192.168.1.1:80", xff: "203.0.113.10", want: "203.0.113.10"},
		{name: "trusted proxy without header", remote: "10.1.2.3:1234", want: "10.1.2.3"},
		{name: "garbage header", remote: "10.1.2.3:1234", xff: "not-an-ip", want: "10.1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			assert.Equal(t, tt.want, rl.clientIP(req))
		})
	}
}

func TestTrustProxies_Invalid(t *testing.T) {
	assert.Error(t, NewRateLimiter(1, 1).TrustProxies([]string{"10.0.0.0/33"}))
	assert.Error(t, NewRateLimiter(1, 1).TrustProxies([]string{"proxy.local"}))
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegisterer(prometheus.NewRegistry(), "test")

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/v1/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	for _, id := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+id, nil))
	}

	count := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/bookings/{bookingId}", "404"))
	assert.Equal(t, float64(3), count)
}
