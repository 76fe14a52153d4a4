package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskforge/taskforge/internal/application/dto"
	"github.com/taskforge/taskforge/internal/application/service"
	"github.com/taskforge/taskforge/internal/interfaces/http/middleware"
	"github.com/taskforge/taskforge/pkg/constants"
	"github.com/taskforge/taskforge/pkg/errors"
	"github.com/taskforge/taskforge/pkg/logger"
)

// WebHandler serves the server-rendered pages. The browser flows reuse the
// same gateway and services as the JSON API, they only differ in how the
// result is materialized: cookies plus redirects instead of JSON envelopes.
type WebHandler struct {
	gateway  AuthGateway
	projects service.ProjectService
	tasks    service.TaskService
	log      logger.Logger
}

// NewWebHandler creates a new WebHandler.
func NewWebHandler(gateway AuthGateway, projects service.ProjectService, tasks service.TaskService, log logger.Logger) *WebHandler {
	return &WebHandler{
		gateway:  gateway,
		projects: projects,
		tasks:    tasks,
		log:      log.WithComponent("web_handler"),
	}
}

// Home renders the landing page.
func (h *WebHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.tmpl", gin.H{
		"Title": "TaskForge",
	})
}

// ShowLogin renders the login form.
func (h *WebHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.tmpl", gin.H{
		"Title": "Iniciar sesión",
	})
}

// ProcessLogin handles the login form submission. On success the session
// cookies are set and the browser is sent to the dashboard; on failure the
// form is re-rendered with the error message.
func (h *WebHandler) ProcessLogin(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "login.tmpl", gin.H{
			"Title": "Iniciar sesión",
			"Error": "usuario y contraseña son obligatorios",
		})
		return
	}

	login, err := h.gateway.Login(c.Request.Context(), &req)
	if err != nil {
		status := errors.HTTPStatus(err)
		message := "Error inesperado al autenticar"
		if appErr, ok := errors.AsAppError(err); ok {
			message = appErr.Message
		}
		c.HTML(status, "login.tmpl", gin.H{
			"Title": "Iniciar sesión",
			"Error": message,
		})
		return
	}

	setSessionCookies(c, login.Token, login.Username)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// ShowRegister renders the registration form.
func (h *WebHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.tmpl", gin.H{
		"Title": "Registro",
	})
}

// ProcessRegister handles the registration form and sends the new user to
// the login page.
func (h *WebHandler) ProcessRegister(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "register.tmpl", gin.H{
			"Title": "Registro",
			"Error": "datos de registro inválidos",
		})
		return
	}

	if err := h.gateway.Register(c.Request.Context(), &req); err != nil {
		message := "Error al registrar el usuario"
		if appErr, ok := errors.AsAppError(err); ok {
			message = appErr.Message
		}
		c.HTML(http.StatusBadRequest, "register.tmpl", gin.H{
			"Title": "Registro",
			"Error": message,
		})
		return
	}

	c.Redirect(http.StatusSeeOther, "/login")
}

// Dashboard renders the project overview for the authenticated user. The
// USERNAME cookie is only a display hint; ownership queries always use the
// principal derived from the verified token.
func (h *WebHandler) Dashboard(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	displayName := principal.Username
	if cookieName, err := c.Cookie(constants.CookieUsername); err == nil && cookieName != "" {
		displayName = cookieName
	}

	projects, err := h.projects.ListByOwner(c.Request.Context(), principal.Username)
	if err != nil {
		h.log.Error(c.Request.Context(), "No se pudieron cargar los proyectos", err)
		projects = nil
	}

	c.HTML(http.StatusOK, "dashboard.tmpl", gin.H{
		"Title":    "Panel",
		"Username": displayName,
		"Projects": projects,
	})
}

// ShowCreateProject renders the project creation form.
func (h *WebHandler) ShowCreateProject(c *gin.Context) {
	if _, ok := middleware.PrincipalFrom(c); !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	c.HTML(http.StatusOK, "project_new.tmpl", gin.H{
		"Title":    "Nuevo proyecto",
		"Statuses": constants.ValidProjectStatuses,
	})
}

// ProcessCreateProject handles the project creation form.
func (h *WebHandler) ProcessCreateProject(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	var req dto.ProjectCreateDTO
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "project_new.tmpl", gin.H{
			"Title":    "Nuevo proyecto",
			"Statuses": constants.ValidProjectStatuses,
			"Error":    "datos del proyecto inválidos",
		})
		return
	}

	if _, err := h.projects.CreateProject(c.Request.Context(), &req, principal.Username); err != nil {
		message := "no se pudo crear el proyecto"
		if appErr, ok := errors.AsAppError(err); ok {
			message = appErr.Message
		}
		c.HTML(http.StatusBadRequest, "project_new.tmpl", gin.H{
			"Title":    "Nuevo proyecto",
			"Statuses": constants.ValidProjectStatuses,
			"Error":    message,
		})
		return
	}

	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout clears the session cookies and returns to the landing page.
func (h *WebHandler) Logout(c *gin.Context) {
	clearSessionCookies(c)
	c.Redirect(http.StatusSeeOther, "/")
}
