package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/taskforge/taskforge/internal/application/dto"
	"github.com/taskforge/taskforge/internal/application/service"
	"github.com/taskforge/taskforge/internal/interfaces/http/middleware"
	"github.com/taskforge/taskforge/pkg/errors"
	"github.com/taskforge/taskforge/pkg/logger"
)

// ProjectHandler handles the JSON project endpoints. All of them run behind
// the access policy, so a principal is always present; the handler still
// fails closed if it is not.
type ProjectHandler struct {
	projects service.ProjectService
	log      logger.Logger
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects service.ProjectService, log logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		log:      log.WithComponent("project_handler"),
	}
}

// Create persists a new project owned by the authenticated user.
func (h *ProjectHandler) Create(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		dto.SendError(c, errors.ErrUnauthenticated())
		return
	}

	var req dto.ProjectCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, dto.BindingError(err))
		return
	}

	created, err := h.projects.CreateProject(c.Request.Context(), &req, principal.Username)
	if err != nil {
		dto.SendError(c, err)
		return
	}

	dto.SendSuccess(c, http.StatusCreated, created)
}

// List returns every project owned by the authenticated user.
func (h *ProjectHandler) List(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		dto.SendError(c, errors.ErrUnauthenticated())
		return
	}

	projects, err := h.projects.ListByOwner(c.Request.Context(), principal.Username)
	if err != nil {
		dto.SendError(c, err)
		return
	}

	dto.SendSuccess(c, http.StatusOK, projects)
}

// Get returns one project by id.
func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		dto.SendError(c, errors.ErrValidationFailure("identificador inválido", nil))
		return
	}

	project, err := h.projects.GetProject(c.Request.Context(), id)
	if err != nil {
		dto.SendError(c, err)
		return
	}

	dto.SendSuccess(c, http.StatusOK, project)
}

// parseID parses a positive numeric path parameter.
func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
