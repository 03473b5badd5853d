package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/logging"
)

const secret = "test-secret"

func init() { gin.SetMode(gin.TestMode) }

func signed(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func validClaims(role string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  "user-1",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
}

func authedEngine(extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(secret)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		u := CurrentUser(c)
		c.String(http.StatusOK, u.ID+"|"+string(u.Role))
	})
	r.GET("/x", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	expired := validClaims("CLIENT")
	expired["exp"] = time.Now().Add(-time.Minute).Unix()

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, "missing_authorization_header"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "invalid_authorization_header"},
		{"garbage", "Bearer abc", http.StatusUnauthorized, "invalid_token"},
		{"wrong secret", "Bearer " + signed(t, jwt.SigningMethodHS256, []byte("other"), validClaims("CLIENT")), http.StatusUnauthorized, "invalid_token"},
		{"expired", "Bearer " + signed(t, jwt.SigningMethodHS256, []byte(secret), expired), http.StatusUnauthorized, "invalid_token"},
		{"unknown role", "Bearer " + signed(t, jwt.SigningMethodHS256, []byte(secret), validClaims("OWNER")), http.StatusUnauthorized, "invalid_token_payload"},
		{"valid", "Bearer " + signed(t, jwt.SigningMethodHS256, []byte(secret), validClaims("PROFESSIONAL")), http.StatusOK, "user-1|PROFESSIONAL"},
	}

	r := authedEngine()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tc.status, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tc.body) {
				t.Fatalf("body = %s, want %q", w.Body.String(), tc.body)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	r := authedEngine(RequireRole(domain.RoleAdmin, domain.RoleProfessional))

	for role, want := range map[string]int{
		"ADMIN":        http.StatusOK,
		"PROFESSIONAL": http.StatusOK,
		"CLIENT":       http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Bearer "+signed(t, jwt.SigningMethodHS256, []byte(secret), validClaims(role)))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != want {
			t.Errorf("%s: status = %d, want %d", role, w.Code, want)
		}
	}
}

func TestRequestIDAndAccessLog(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestID(), AccessLog(logging.NewWithWriter(&buf, "test", "info")))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Header().Get(RequestIDHeader) != "req-42" {
		t.Fatalf("request id header = %q", w.Header().Get(RequestIDHeader))
	}
	if !strings.Contains(buf.String(), `"request_id":"req-42"`) || !strings.Contains(buf.String(), `"status":204`) {
		t.Fatalf("access log = %s", buf.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Header().Get(RequestIDHeader) == "" {
		t.Fatalf("request id not generated")
	}
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Fatalf("allow origin = %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

type memCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (m *memCounter) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return m.counts[key], nil
}

func TestRateLimit(t *testing.T) {
	counter := &memCounter{counts: map[string]int64{}}
	r := gin.New()
	r.Use(RateLimit(counter, 2, time.Hour, logging.Discard()))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}

	counter.err = errors.New("redis down")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("fail-open status = %d", w.Code)
	}
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(time.Second))
	r.GET("/x", func(c *gin.Context) {
		if _, ok := c.Request.Context().Deadline(); !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("no deadline on request context")
	}
}

func TestErrorBodyCarriesRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), AuthMiddleware(secret))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), `"request_id":"req-7"`) {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
}
