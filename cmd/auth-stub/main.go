// auth-stub is a minimal identity service for local development. It issues
// tokens signed with the same shared secret the main server verifies with,
// so a full login round trip works without a real identity provider.
package main

import (
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskforge/taskforge/internal/application/dto"
	"github.com/taskforge/taskforge/internal/infrastructure/token"
	"github.com/taskforge/taskforge/pkg/constants"
	"github.com/taskforge/taskforge/pkg/logger"
)

type account struct {
	password string
	email    string
}

type userStore struct {
	mu    sync.RWMutex
	users map[string]account
}

func newUserStore() *userStore {
	return &userStore{
		users: map[string]account{
			// Demo account for local smoke testing.
			"demo": {password: "demo123", email: "demo@taskforge.local"},
		},
	}
}

func (s *userStore) authenticate(username, password string) (account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.users[username]
	if !ok || acc.password != password {
		return account{}, false
	}
	return acc, true
}

func (s *userStore) register(username, password, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[username]; exists {
		return fmt.Errorf("el usuario %s ya existe", username)
	}
	s.users[username] = account{password: password, email: email}
	return nil
}

func main() {
	secret := os.Getenv("TASKFORGE_JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "auth-stub: TASKFORGE_JWT_SECRET is required")
		os.Exit(1)
	}
	addr := os.Getenv("TASKFORGE_AUTH_STUB_ADDR")
	if addr == "" {
		addr = ":9090"
	}

	codec := token.NewCodec(secret, constants.DefaultTokenTTL, logger.NewNoopLogger())
	store := newUserStore()

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.POST("/", func(c *gin.Context) {
		var req dto.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "usuario y contraseña son obligatorios"})
			return
		}

		acc, ok := store.authenticate(req.Username, req.Password)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciales incorrectas"})
			return
		}

		tok, err := codec.Issue(req.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo emitir el token"})
			return
		}

		c.JSON(http.StatusOK, dto.LoginResponse{
			Token:    tok,
			Username: req.Username,
			Email:    acc.email,
		})
	})

	engine.POST("/auth/register", func(c *gin.Context) {
		var req dto.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "datos de registro inválidos"})
			return
		}
		if err := store.register(req.Username, req.Password, req.Email); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"status": "registered", "timestamp": time.Now().UTC()})
	})

	if err := engine.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "auth-stub: %v\n", err)
		os.Exit(1)
	}
}
