// Package handlers implements the HTTP endpoints of the TaskForge backend.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskforge/taskforge/internal/application/dto"
	"github.com/taskforge/taskforge/internal/infrastructure/monitoring"
	"github.com/taskforge/taskforge/pkg/errors"
	"github.com/taskforge/taskforge/pkg/logger"
)

// AuthGateway is the credential gateway consumed by the auth handlers.
// Implemented by authclient.Client.
type AuthGateway interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) error
}

// AuthHandler handles the JSON authentication endpoints.
type AuthHandler struct {
	gateway AuthGateway
	metrics *monitoring.Metrics
	log     logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(gateway AuthGateway, metrics *monitoring.Metrics, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		gateway: gateway,
		metrics: metrics,
		log:     log.WithComponent("auth_handler"),
	}
}

// Login delegates the credentials to auth-service and, on success,
// materializes the session cookies alongside the JSON reply.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, dto.BindingError(err))
		return
	}

	login, err := h.gateway.Login(c.Request.Context(), &req)
	if err != nil {
		h.metrics.RecordLogin(loginOutcome(err))
		dto.SendError(c, err)
		return
	}

	setSessionCookies(c, login.Token, login.Username)
	h.metrics.RecordLogin("success")
	dto.SendSuccess(c, http.StatusOK, login)
}

// Register delegates the registration payload to auth-service.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, dto.BindingError(err))
		return
	}

	if err := h.gateway.Register(c.Request.Context(), &req); err != nil {
		dto.SendError(c, err)
		return
	}

	dto.SendSuccess(c, http.StatusCreated, gin.H{"status": "registered"})
}

// loginOutcome maps a login failure to its metrics label.
func loginOutcome(err error) string {
	switch {
	case errors.IsCredentialRejected(err):
		return "rejected"
	case errors.IsUpstreamUnreachable(err):
		return "unreachable"
	default:
		return "error"
	}
}
