// Package middleware contains the request authentication gate, the access
// policy and the observability middleware of the HTTP surface.
package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskforge/taskforge/internal/domain/models"
	"github.com/taskforge/taskforge/pkg/constants"
	"github.com/taskforge/taskforge/pkg/logger"
)

// TokenVerifier is the verification half of the token codec needed by the
// gate.
type TokenVerifier interface {
	ExtractSubject(token string) (string, error)
	IsValid(token string) bool
}

// principalKey is the gin context key carrying the *models.Principal.
const principalKey = "principal"

// AuthenticationGate intercepts every inbound request exactly once, extracts
// a candidate token from the Authorization header or the JWT_TOKEN cookie,
// and, if the token verifies, establishes the authenticated principal for the
// remainder of request processing.
//
// The gate never short-circuits the chain: an invalid or absent token simply
// forwards the request unauthenticated, and rejecting access to protected
// routes is the access policy's responsibility.
func AuthenticationGate(verifier TokenVerifier, log logger.Logger) gin.HandlerFunc {
	gateLog := log.WithComponent("auth_gate")

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		// Explicit per-request marker: the gate runs at most once no matter
		// how the request is internally forwarded or re-dispatched.
		if processed, _ := ctx.Value(constants.ContextKeyAuthProcessed).(bool); processed {
			c.Next()
			return
		}
		ctx = context.WithValue(ctx, constants.ContextKeyAuthProcessed, true)
		c.Request = c.Request.WithContext(ctx)

		tokenString := extractToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		subject, err := verifier.ExtractSubject(tokenString)
		if err != nil || subject == "" {
			// Forward unauthenticated; no error response is generated here.
			if err != nil {
				gateLog.Warn(ctx, "Discarding unreadable token", logger.Err(err))
			}
			c.Next()
			return
		}

		// Idempotency guard: an already-established principal wins.
		if _, ok := PrincipalFrom(c); ok {
			c.Next()
			return
		}

		if !verifier.IsValid(tokenString) {
			c.Next()
			return
		}

		principal := &models.Principal{Username: subject}
		c.Set(principalKey, principal)
		c.Request = c.Request.WithContext(models.ContextWithPrincipal(ctx, principal))

		c.Next()
	}
}

// extractToken looks for a bearer token in the Authorization header first
// (exact case-sensitive "Bearer " prefix), then falls back to the JWT_TOKEN
// cookie. This is the single unified extraction policy.
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, constants.BearerPrefix) {
		if tok := header[constants.BearerPrefixLen:]; tok != "" {
			return tok
		}
	}

	if cookie, err := c.Cookie(constants.CookieJWTToken); err == nil {
		return cookie
	}
	return ""
}

// PrincipalFrom returns the authenticated principal of the current request,
// if the gate established one.
func PrincipalFrom(c *gin.Context) (*models.Principal, bool) {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(*models.Principal); ok {
			return p, true
		}
	}
	return models.PrincipalFromContext(c.Request.Context())
}
