package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"interviewsched/models"
)

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": CurrentRole(c)})
	})
	return r
}

func do(r http.Handler, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRole(t *testing.T) {
	r := newRouter(RequireRole(models.RoleCoordinator))

	cases := []struct {
		name string
		role string
		want int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong role", "Interviewer", http.StatusForbidden},
		{"allowed", "Coordinator", http.StatusOK},
		{"allowed with padding", "  Coordinator ", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			headers := map[string]string{}
			if tc.role != "" {
				headers[RoleHeader] = tc.role
			}
			if w := do(r, headers); w.Code != tc.want {
				t.Fatalf("expected %d, got %d (%s)", tc.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestRateLimitMiddlewarePerIP(t *testing.T) {
	r := newRouter(RateLimitMiddleware(2))

	for i := 0; i < 2; i++ {
		if w := do(r, map[string]string{"X-Forwarded-For": "10.0.0.1"}); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}
	if w := do(r, map[string]string{"X-Forwarded-For": "10.0.0.1, 172.16.0.1"}); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if w := do(r, map[string]string{"X-Real-IP": "10.0.0.2"}); w.Code != http.StatusOK {
		t.Fatalf("other IP should pass, got %d", w.Code)
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := newRouter(RequestLoggerMiddleware(zap.NewNop()))

	w := do(r, nil)
	if w.Header().Get(RequestIDHeader) == "" {
		t.Fatalf("expected generated request id")
	}
	w = do(r, map[string]string{RequestIDHeader: "req-42"})
	if got := w.Header().Get(RequestIDHeader); got != "req-42" {
		t.Fatalf("expected propagated request id, got %q", got)
	}
}
