package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskforge/taskforge/internal/application/dto"
	"github.com/taskforge/taskforge/internal/application/service"
	"github.com/taskforge/taskforge/internal/interfaces/http/middleware"
	"github.com/taskforge/taskforge/pkg/errors"
	"github.com/taskforge/taskforge/pkg/logger"
)

// TaskHandler handles the JSON task endpoints.
type TaskHandler struct {
	tasks service.TaskService
	log   logger.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks service.TaskService, log logger.Logger) *TaskHandler {
	return &TaskHandler{
		tasks: tasks,
		log:   log.WithComponent("task_handler"),
	}
}

// Create persists a new task created by the authenticated user.
func (h *TaskHandler) Create(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		dto.SendError(c, errors.ErrUnauthenticated())
		return
	}

	var req dto.TaskCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, dto.BindingError(err))
		return
	}

	created, err := h.tasks.CreateTask(c.Request.Context(), &req, principal.Username)
	if err != nil {
		dto.SendError(c, err)
		return
	}

	dto.SendSuccess(c, http.StatusCreated, created)
}

// Get returns one task by id.
func (h *TaskHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		dto.SendError(c, errors.ErrValidationFailure("identificador inválido", nil))
		return
	}

	task, err := h.tasks.GetTask(c.Request.Context(), id)
	if err != nil {
		dto.SendError(c, err)
		return
	}

	dto.SendSuccess(c, http.StatusOK, task)
}

// ListMine returns every task assigned to the authenticated user.
func (h *TaskHandler) ListMine(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		dto.SendError(c, errors.ErrUnauthenticated())
		return
	}

	tasks, err := h.tasks.ListByAssignee(c.Request.Context(), principal.Username)
	if err != nil {
		dto.SendError(c, err)
		return
	}

	dto.SendSuccess(c, http.StatusOK, tasks)
}

// ListByProject returns every task of one project.
func (h *TaskHandler) ListByProject(c *gin.Context) {
	projectID, err := parseID(c.Param("projectId"))
	if err != nil {
		dto.SendError(c, errors.ErrValidationFailure("identificador inválido", nil))
		return
	}

	tasks, err := h.tasks.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		dto.SendError(c, err)
		return
	}

	dto.SendSuccess(c, http.StatusOK, tasks)
}
