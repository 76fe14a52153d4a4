package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/taskforge/internal/domain/models"
	"github.com/taskforge/taskforge/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubVerifier maps token strings to subjects; anything else is invalid.
type stubVerifier struct {
	subjects map[string]string
	// expired tokens yield a subject but never validate.
	expired map[string]bool
}

func (v *stubVerifier) ExtractSubject(token string) (string, error) {
	if subject, ok := v.subjects[token]; ok {
		return subject, nil
	}
	return "", errors.New("token is malformed")
}

func (v *stubVerifier) IsValid(token string) bool {
	_, known := v.subjects[token]
	return known && !v.expired[token]
}

func newGateEngine(verifier TokenVerifier, capture *string) *gin.Engine {
	engine := gin.New()
	engine.Use(AuthenticationGate(verifier, logger.NewNoopLogger()))
	engine.GET("/whoami", func(c *gin.Context) {
		if p, ok := PrincipalFrom(c); ok {
			*capture = p.Username
			c.String(http.StatusOK, p.Username)
			return
		}
		*capture = ""
		c.String(http.StatusOK, "anonymous")
	})
	return engine
}

func TestGateEstablishesPrincipalFromHeader(t *testing.T) {
	verifier := &stubVerifier{subjects: map[string]string{"tok-alice": "alice"}}
	var principal string
	engine := newGateEngine(verifier, &principal)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer tok-alice")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", principal)
}

func TestGateFallsBackToCookie(t *testing.T) {
	verifier := &stubVerifier{subjects: map[string]string{"tok-bob": "bob"}}
	var principal string
	engine := newGateEngine(verifier, &principal)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "JWT_TOKEN", Value: "tok-bob"})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bob", principal)
}

func TestGateHeaderWinsOverCookie(t *testing.T) {
	verifier := &stubVerifier{subjects: map[string]string{
		"tok-alice": "alice",
		"tok-bob":   "bob",
	}}
	var principal string
	engine := newGateEngine(verifier, &principal)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer tok-alice")
	req.AddCookie(&http.Cookie{Name: "JWT_TOKEN", Value: "tok-bob"})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "alice", principal)
}

func TestGateForwardsAnonymousWithoutToken(t *testing.T) {
	verifier := &stubVerifier{subjects: map[string]string{}}
	var principal string
	engine := newGateEngine(verifier, &principal)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	// The request completes normally, just unauthenticated.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
	assert.Empty(t, principal)
}

func TestGateForwardsAnonymousOnUnreadableToken(t *testing.T) {
	verifier := &stubVerifier{subjects: map[string]string{}}
	var principal string
	engine := newGateEngine(verifier, &principal)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, principal)
}

func TestGateRejectsExpiredToken(t *testing.T) {
	verifier := &stubVerifier{
		subjects: map[string]string{"tok-old": "alice"},
		expired:  map[string]bool{"tok-old": true},
	}
	var principal string
	engine := newGateEngine(verifier, &principal)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer tok-old")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	// Readable subject but failed validation: no principal established.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, principal)
}

func TestGateIgnoresMalformedAuthorizationHeader(t *testing.T) {
	verifier := &stubVerifier{subjects: map[string]string{"tok-alice": "alice"}}
	var principal string
	engine := newGateEngine(verifier, &principal)

	for _, header := range []string{"bearer tok-alice", "Bearer", "Bearer ", "Token tok-alice"} {
		principal = "unset"
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "header %q", header)
		assert.Empty(t, principal, "header %q", header)
	}
}

func TestGateRunsOncePerRequest(t *testing.T) {
	verifier := &stubVerifier{subjects: map[string]string{"tok-alice": "alice"}}

	engine := gin.New()
	gate := AuthenticationGate(verifier, logger.NewNoopLogger())
	// The gate installed twice must still process the request exactly once:
	// the second pass sees the marker and forwards untouched.
	engine.Use(gate, gate)

	var principal string
	engine.GET("/whoami", func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		require.True(t, ok)
		principal = p.Username
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer tok-alice")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", principal)
}

func TestPrincipalReachableFromRequestContext(t *testing.T) {
	verifier := &stubVerifier{subjects: map[string]string{"tok-alice": "alice"}}

	engine := gin.New()
	engine.Use(AuthenticationGate(verifier, logger.NewNoopLogger()))

	var fromCtx string
	engine.GET("/ctx", func(c *gin.Context) {
		// Downstream code holding only the context, not the gin handle,
		// must see the same principal.
		if p, ok := models.PrincipalFromContext(c.Request.Context()); ok {
			fromCtx = p.Username
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ctx", nil)
	req.Header.Set("Authorization", "Bearer tok-alice")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "alice", fromCtx)
}
