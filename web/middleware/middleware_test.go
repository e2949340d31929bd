package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/officeportal/portal/database/model"
	"github.com/officeportal/portal/web/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEngine(role model.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		if role != "" {
			session.SetPrincipal(c, &model.AdminUser{Id: 1, Username: "u", Role: role})
		}
	})
	return engine
}

func deny(c *gin.Context) { c.String(http.StatusForbidden, "forbidden") }

func TestRoleRequired(t *testing.T) {
	cases := []struct {
		role model.Role
		code int
	}{
		{model.RoleAdmin, http.StatusOK},
		{model.RoleDeputyHead, http.StatusForbidden},
		{"", http.StatusForbidden},
	}
	for _, tc := range cases {
		engine := newEngine(tc.role)
		engine.GET("/admin/users", RoleRequired(deny, model.RoleAdmin), func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/users", nil))
		assert.Equal(t, tc.code, w.Code, string(tc.role))
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	engine := newEngine("")
	limited := func(c *gin.Context) { c.String(http.StatusTooManyRequests, "slow down") }
	engine.Use(RateLimitMiddleware(DefaultRateLimitConfig(2), limited))
	engine.Any("/admin/login", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDomainValidator(t *testing.T) {
	engine := newEngine("")
	engine.Use(DomainValidatorMiddleware("portal.example"))
	engine.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "Portal.Example:5000"
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req.Host = "evil.example"
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestExtractActionFromPath(t *testing.T) {
	action, resource := extractActionFromPath("/admin/documents/4/approve")
	assert.Equal(t, "APPROVE", action)
	assert.Equal(t, "documents", resource)

	action, resource = extractActionFromPath("/admin/users/new")
	assert.Equal(t, "CREATE", action)
	assert.Equal(t, "users", resource)

	action, _ = extractActionFromPath("/admin/news/2/delete")
	assert.Equal(t, "DELETE", action)
}
