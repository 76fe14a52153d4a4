// Package authclient delegates login and registration to the external
// auth-service over HTTP. Every call is a fresh synchronous round trip: no
// caching of responses, no retries, no circuit breaker.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/taskforge/taskforge/internal/application/dto"
	"github.com/taskforge/taskforge/internal/config"
	"github.com/taskforge/taskforge/pkg/constants"
	"github.com/taskforge/taskforge/pkg/errors"
	"github.com/taskforge/taskforge/pkg/logger"
)

// Client is the HTTP credential gateway towards auth-service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
}

// NewClient creates a gateway client with a tuned transport.
func NewClient(cfg *config.AuthServiceConfig, log logger.Logger) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		log: log.WithComponent("authclient"),
	}
}

// Login forwards the credentials to auth-service and returns the issued
// token with the user data. The three failure classes surface to the caller
// as a single AppError with a human-readable message; the distinction only
// drives logging severity.
func (c *Client) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	resp, err := c.postJSON(ctx, c.baseURL, req)
	if err != nil {
		c.log.Error(ctx, "No se puede acceder al auth-service", err,
			logger.String("username", req.Username),
		)
		return nil, errors.ErrUpstreamUnreachable("Error de conexión con auth-service").WithCause(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		c.log.Warn(ctx, "Error de autenticación desde auth-service",
			logger.String("username", req.Username),
			logger.Int("status", resp.StatusCode),
		)
		return nil, errors.ErrCredentialRejected("Credenciales incorrectas")

	case resp.StatusCode != http.StatusOK:
		c.log.Error(ctx, "Error inesperado en login", nil,
			logger.String("username", req.Username),
			logger.Int("status", resp.StatusCode),
		)
		return nil, errors.ErrUnexpected("Error inesperado al autenticar")
	}

	var login dto.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		c.log.Error(ctx, "Respuesta de login ilegible", err)
		return nil, errors.ErrUnexpected("Error inesperado al autenticar").WithCause(err)
	}

	return &login, nil
}

// Register forwards the registration payload to auth-service. Any failure,
// whether a validation rejection, a conflict or a connectivity error, is
// wrapped with the underlying message and surfaced to the caller. No retry.
func (c *Client) Register(ctx context.Context, req *dto.RegisterRequest) error {
	resp, err := c.postJSON(ctx, c.baseURL+"/auth/register", req)
	if err != nil {
		c.log.Error(ctx, "No se puede acceder al auth-service para registro", err,
			logger.String("username", req.Username),
		)
		return errors.ErrRegistration(fmt.Sprintf("Error al registrar el usuario: %v", err)).WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		c.log.Warn(ctx, "Registro rechazado por auth-service",
			logger.String("username", req.Username),
			logger.Int("status", resp.StatusCode),
		)
		return errors.ErrRegistration(fmt.Sprintf("Error al registrar el usuario: estado %d", resp.StatusCode))
	}

	return nil
}

// postJSON performs one synchronous JSON POST. The call runs to completion
// or failure; there is no cancellation path beyond the request context.
func (c *Client) postJSON(ctx context.Context, url string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}
