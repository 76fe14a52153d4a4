package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskforge/taskforge/internal/application/dto"
	"github.com/taskforge/taskforge/pkg/errors"
	"github.com/taskforge/taskforge/pkg/logger"
)

// Access is the requirement a route places on the caller.
type Access int

const (
	// AccessPublic routes are reachable without a principal.
	AccessPublic Access = iota

	// AccessAuthenticated routes require the gate to have established one.
	AccessAuthenticated
)

// Rule pairs a path pattern with an access requirement. Patterns ending in
// "/" match by prefix, anything else matches exactly.
type Rule struct {
	Pattern string
	Access  Access
}

// DefaultRules is the static ordered allow-list, evaluated top to bottom
// with first match winning. Routes matching no rule require authentication.
var DefaultRules = []Rule{
	{"/", AccessPublic},
	{"/login", AccessPublic},
	{"/register", AccessPublic},
	{"/dashboard", AccessPublic},
	{"/favicon.ico", AccessPublic},
	{"/css/", AccessPublic},
	{"/js/", AccessPublic},
	{"/images/", AccessPublic},
	{"/webjars/", AccessPublic},
	{"/api/auth/", AccessPublic},
	{"/health/", AccessPublic},
	{"/metrics", AccessPublic},
}

// AccessPolicy enforces the allow-list after the authentication gate has
// run. Protected API routes are rejected with a 401 JSON body; protected
// browser routes redirect to the login form.
func AccessPolicy(rules []Rule, log logger.Logger) gin.HandlerFunc {
	policyLog := log.WithComponent("access_policy")

	return func(c *gin.Context) {
		if requirementFor(rules, c.Request.URL.Path) == AccessPublic {
			c.Next()
			return
		}

		if p, ok := PrincipalFrom(c); ok && p.Username != "" {
			c.Next()
			return
		}

		policyLog.Warn(c.Request.Context(), "Unauthenticated access to protected route",
			logger.String("path", c.Request.URL.Path),
			logger.String("method", c.Request.Method),
		)

		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			dto.SendError(c, errors.ErrUnauthenticated())
			c.Abort()
			return
		}

		c.Redirect(http.StatusSeeOther, "/login")
		c.Abort()
	}
}

// requirementFor resolves the first matching rule for path.
func requirementFor(rules []Rule, path string) Access {
	for _, rule := range rules {
		if matches(rule.Pattern, path) {
			return rule.Access
		}
	}
	return AccessAuthenticated
}

func matches(pattern, path string) bool {
	if pattern == "/" {
		return path == "/"
	}
	if strings.HasSuffix(pattern, "/") {
		return strings.HasPrefix(path, pattern)
	}
	return path == pattern
}
