package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cleanproservices/cleanpro-api/internal/config"
	"github.com/cleanproservices/cleanpro-api/internal/session"
)

const ContextSession = "session"

// Requirement is the access tier a path falls into.
type Requirement int

const (
	Public Requirement = iota
	RequireUser
	RequireAdmin
)

// Decision is the gate's verdict for a path. API surfaces answer with JSON
// statuses; page surfaces redirect the browser.
type Decision struct {
	Requirement Requirement
	API         bool
}

type rule struct {
	match    func(path string) bool
	decision Decision
}

func exact(p string) func(string) bool {
	return func(path string) bool { return path == p }
}

func prefix(p string) func(string) bool {
	return func(path string) bool { return strings.HasPrefix(path, p) }
}

// Ordered top-down; the first matching rule wins, and the trailing catch-all
// keeps classification total.
var rules = []rule{
	{exact("/"), Decision{Public, false}},
	{exact("/login"), Decision{Public, false}},
	{exact("/register"), Decision{Public, false}},
	{exact("/carpet-cleaning"), Decision{Public, false}},
	{exact("/sofa-cleaning"), Decision{Public, false}},
	{exact("/upholstery-cleaning"), Decision{Public, false}},
	{exact("/contact"), Decision{Public, false}},
	{exact("/about"), Decision{Public, false}},

	{prefix("/dashboard"), Decision{RequireUser, false}},
	{prefix("/admin"), Decision{RequireAdmin, false}},

	{prefix("/api/auth"), Decision{Public, true}},
	{exact("/api/contact"), Decision{Public, true}},
	{prefix("/api/admin"), Decision{RequireAdmin, true}},
	{prefix("/api/services"), Decision{RequireAdmin, true}},
	{prefix("/api/users"), Decision{RequireAdmin, true}},
	{prefix("/api"), Decision{RequireUser, true}},

	{func(string) bool { return true }, Decision{Public, false}},
}

// Classify walks the rule table and returns the decision for a path. Every
// path falls into exactly one bucket.
func Classify(path string) Decision {
	for _, r := range rules {
		if r.match(path) {
			return r.decision
		}
	}
	return Decision{Public, false}
}

// Gate intercepts every request before handler dispatch. It verifies the
// session token once, stores the result in the request context, and enforces
// the decision for the path: pages redirect, API paths answer 401.
func Gate(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		sess := session.FromRequest(c.Request, cfg.JWTSecret)
		if sess != nil {
			c.Set(ContextSession, sess)
		}

		decision := Classify(path)

		switch decision.Requirement {
		case Public:
			// send logged-in users away from the auth pages
			if sess != nil && (path == "/login" || path == "/register") {
				c.Redirect(http.StatusFound, "/dashboard")
				c.Abort()
				return
			}

		case RequireUser:
			if sess == nil {
				deny(c, decision, path)
				return
			}

		case RequireAdmin:
			if sess == nil {
				deny(c, decision, path)
				return
			}
			if !sess.IsAdmin() {
				// logged in but forbidden: back to the user area, not login
				if decision.API {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				} else {
					c.Redirect(http.StatusFound, "/dashboard")
					c.Abort()
				}
				return
			}
		}

		c.Next()
	}
}

func deny(c *gin.Context, decision Decision, path string) {
	if decision.API {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication_required"})
		return
	}

	// preserve the original target so login can send the user back
	c.Redirect(http.StatusFound, "/login?callbackUrl="+url.QueryEscape(path))
	c.Abort()
}

// CurrentSession returns the session stored by the gate, or nil for
// anonymous requests.
func CurrentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(ContextSession); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}
