package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/cleanproservices/cleanpro-api/internal/config"
	"github.com/cleanproservices/cleanpro-api/internal/middleware"
	"github.com/cleanproservices/cleanpro-api/internal/models"
	"github.com/cleanproservices/cleanpro-api/internal/session"
)

const testSecret = "test-secret"

func newGateRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWTSecret: testSecret}

	r := gin.New()
	r.Use(middleware.Gate(cfg))
	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func tokenFor(t *testing.T, id uint, role string) string {
	t.Helper()
	tok, err := session.IssueToken(&models.User{ID: id, Role: role}, testSecret)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGatePublicPathsPassAnonymously(t *testing.T) {
	r := newGateRouter(t)

	paths := []string{
		"/", "/login", "/register", "/carpet-cleaning", "/sofa-cleaning",
		"/upholstery-cleaning", "/contact", "/about",
	}

	for _, path := range paths {
		if w := doRequest(r, path, ""); w.Code != http.StatusOK {
			t.Errorf("%s: anonymous request got %d, want 200", path, w.Code)
		}
	}
}

func TestGateBouncesAuthedUsersFromAuthPages(t *testing.T) {
	r := newGateRouter(t)
	token := tokenFor(t, 1, models.RoleUser)

	for _, path := range []string{"/login", "/register"} {
		w := doRequest(r, path, token)
		if w.Code != http.StatusFound {
			t.Fatalf("%s: got %d, want 302", path, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/dashboard" {
			t.Fatalf("%s: redirected to %q, want /dashboard", path, loc)
		}
	}
}

func TestGateDashboardRequiresSession(t *testing.T) {
	r := newGateRouter(t)

	w := doRequest(r, "/dashboard/bookings", "")
	if w.Code != http.StatusFound {
		t.Fatalf("got %d, want 302", w.Code)
	}
	want := "/login?callbackUrl=%2Fdashboard%2Fbookings"
	if loc := w.Header().Get("Location"); loc != want {
		t.Fatalf("redirected to %q, want %q", loc, want)
	}

	if w := doRequest(r, "/dashboard", tokenFor(t, 1, models.RoleUser)); w.Code != http.StatusOK {
		t.Fatalf("authed dashboard request got %d, want 200", w.Code)
	}
}

func TestGateAdminPages(t *testing.T) {
	r := newGateRouter(t)

	// anonymous: login redirect
	w := doRequest(r, "/admin/users", "")
	if w.Code != http.StatusFound {
		t.Fatalf("anonymous: got %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login?callbackUrl=%2Fadmin%2Fusers" {
		t.Fatalf("anonymous redirected to %q", loc)
	}

	// authed non-admin: back to the user area, never to login
	w = doRequest(r, "/admin/users", tokenFor(t, 1, models.RoleUser))
	if w.Code != http.StatusFound {
		t.Fatalf("non-admin: got %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Fatalf("non-admin redirected to %q, want /dashboard", loc)
	}

	// admin passes
	if w := doRequest(r, "/admin/users", tokenFor(t, 2, models.RoleAdmin)); w.Code != http.StatusOK {
		t.Fatalf("admin: got %d, want 200", w.Code)
	}
}

func TestGateAPIPaths(t *testing.T) {
	r := newGateRouter(t)

	userToken := tokenFor(t, 1, models.RoleUser)
	adminToken := tokenFor(t, 2, models.RoleAdmin)

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"auth api is public", "/api/auth/login", "", http.StatusOK},
		{"contact api is public", "/api/contact", "", http.StatusOK},
		{"bookings need a session", "/api/bookings", "", http.StatusUnauthorized},
		{"bookings pass with a session", "/api/bookings", userToken, http.StatusOK},
		{"services need admin", "/api/services", userToken, http.StatusUnauthorized},
		{"services pass for admin", "/api/services", adminToken, http.StatusOK},
		{"admin api needs admin", "/api/admin/stats", userToken, http.StatusUnauthorized},
		{"admin api anonymous", "/api/admin/stats", "", http.StatusUnauthorized},
		{"admin api passes for admin", "/api/admin/stats", adminToken, http.StatusOK},
		{"users api needs admin", "/api/users", userToken, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := doRequest(r, tt.path, tt.token); w.Code != tt.want {
				t.Fatalf("%s: got %d, want %d", tt.path, w.Code, tt.want)
			}
		})
	}
}

func TestClassifyIsTotal(t *testing.T) {
	// every path lands in exactly one bucket, including ones no route serves
	paths := []string{
		"/", "/about", "/nonexistent", "/dashboard/x/y", "/admin",
		"/api/auth/whatever", "/api/contact", "/api/contact/extra",
		"/api/services/5", "/api/users/1", "/api/admin/bookings",
		"/api/other", "/favicon.ico",
	}

	for _, path := range paths {
		_ = middleware.Classify(path)
	}

	// spot checks on the subtle ones
	if d := middleware.Classify("/api/contact/extra"); d.Requirement != middleware.RequireUser {
		t.Fatal("/api/contact/extra is not the public contact endpoint")
	}
	if d := middleware.Classify("/api/services/5"); d.Requirement != middleware.RequireAdmin {
		t.Fatal("/api/services/5 should require admin")
	}
	if d := middleware.Classify("/favicon.ico"); d.Requirement != middleware.Public {
		t.Fatal("unmatched paths default to public")
	}
}
