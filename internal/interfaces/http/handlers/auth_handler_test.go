package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/taskforge/internal/application/dto"
	"github.com/taskforge/taskforge/internal/infrastructure/monitoring"
	"github.com/taskforge/taskforge/pkg/constants"
	"github.com/taskforge/taskforge/pkg/errors"
	"github.com/taskforge/taskforge/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeGateway scripts the credential gateway responses.
type fakeGateway struct {
	loginResp   *dto.LoginResponse
	loginErr    error
	registerErr error

	lastLogin    *dto.LoginRequest
	lastRegister *dto.RegisterRequest
}

func (f *fakeGateway) Login(_ context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	f.lastLogin = req
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResp, nil
}

func (f *fakeGateway) Register(_ context.Context, req *dto.RegisterRequest) error {
	f.lastRegister = req
	return f.registerErr
}

func newAuthEngine(gateway *fakeGateway) *gin.Engine {
	metrics := monitoring.NewMetricsWith(prometheus.NewRegistry())
	h := NewAuthHandler(gateway, metrics, logger.NewNoopLogger())

	engine := gin.New()
	engine.POST("/api/auth/login", h.Login)
	engine.POST("/api/auth/register", h.Register)
	return engine
}

func postJSON(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func cookieByName(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLoginSetsSessionCookies(t *testing.T) {
	gateway := &fakeGateway{loginResp: &dto.LoginResponse{
		Token:    "issued-token",
		Username: "alice",
		Email:    "alice@example.com",
	}}
	engine := newAuthEngine(gateway)

	w := postJSON(engine, "/api/auth/login", `{"username":"alice","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, w.Code)

	jwtCookie := cookieByName(t, w, constants.CookieJWTToken)
	require.NotNil(t, jwtCookie)
	assert.Equal(t, "issued-token", jwtCookie.Value)
	assert.True(t, jwtCookie.HttpOnly)
	assert.Equal(t, "/", jwtCookie.Path)
	assert.Equal(t, constants.SessionCookieMaxAge, jwtCookie.MaxAge)

	userCookie := cookieByName(t, w, constants.CookieUsername)
	require.NotNil(t, userCookie)
	assert.Equal(t, "alice", userCookie.Value)
	assert.False(t, userCookie.HttpOnly)
	assert.Equal(t, constants.SessionCookieMaxAge, userCookie.MaxAge)

	var body struct {
		Success bool              `json:"success"`
		Data    dto.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "issued-token", body.Data.Token)
	assert.Equal(t, "alice", body.Data.Username)
}

func TestLoginRejectedCredentialsReturns401(t *testing.T) {
	gateway := &fakeGateway{loginErr: errors.ErrCredentialRejected("Credenciales incorrectas")}
	engine := newAuthEngine(gateway)

	w := postJSON(engine, "/api/auth/login", `{"username":"alice","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// No session cookie on a failed login.
	assert.Nil(t, cookieByName(t, w, constants.CookieJWTToken))

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Credenciales incorrectas", body.Error.Message)
}

func TestLoginUpstreamUnreachableReturns502(t *testing.T) {
	gateway := &fakeGateway{loginErr: errors.ErrUpstreamUnreachable("Error de conexión con auth-service")}
	engine := newAuthEngine(gateway)

	w := postJSON(engine, "/api/auth/login", `{"username":"alice","password":"s3cret"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Nil(t, cookieByName(t, w, constants.CookieJWTToken))
}

func TestLoginValidationFailure(t *testing.T) {
	gateway := &fakeGateway{}
	engine := newAuthEngine(gateway)

	w := postJSON(engine, "/api/auth/login", `{"username":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	// The gateway is never consulted with an incomplete payload.
	assert.Nil(t, gateway.lastLogin)
}

func TestRegisterSuccessReturns201(t *testing.T) {
	gateway := &fakeGateway{}
	engine := newAuthEngine(gateway)

	w := postJSON(engine, "/api/auth/register", `{"username":"bob","email":"bob@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, gateway.lastRegister)
	assert.Equal(t, "bob", gateway.lastRegister.Username)
}

func TestRegisterFailureSurfacesGatewayMessage(t *testing.T) {
	gateway := &fakeGateway{registerErr: errors.ErrRegistration("Error al registrar el usuario: estado 409")}
	engine := newAuthEngine(gateway)

	w := postJSON(engine, "/api/auth/register", `{"username":"bob","email":"bob@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Error.Message, "Error al registrar el usuario")
}

func TestRegisterInvalidEmailRejectedLocally(t *testing.T) {
	gateway := &fakeGateway{}
	engine := newAuthEngine(gateway)

	w := postJSON(engine, "/api/auth/register", `{"username":"bob","email":"not-an-email","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, gateway.lastRegister)
}
