package dto

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/taskforge/taskforge/pkg/errors"
)

// APIResponse is the envelope for every JSON reply.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorDTO   `json:"error,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// ErrorDTO is the serialized form of an application error.
type ErrorDTO struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// SendSuccess writes a success envelope with the given status and payload.
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, &APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
}

// SendError writes an error envelope. AppErrors keep their code, status and
// details; anything else collapses into an opaque internal error so that
// transport-level detail never reaches the caller.
func SendError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.ErrInternal("error interno del servidor")
	}

	c.JSON(appErr.HTTPStatus, &APIResponse{
		Success: false,
		Error: &ErrorDTO{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		},
		Timestamp: time.Now().Unix(),
	})
}

// BindingError converts a gin binding failure into a validation AppError with
// field-level messages, rejected before any business logic runs.
func BindingError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = fieldMessage(fe)
		}
		return apperrors.ErrValidationFailure("datos de entrada inválidos", details)
	}

	return apperrors.ErrValidationFailure("cuerpo de la petición inválido", nil)
}

// fieldMessage renders a single field failure.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "el campo es obligatorio"
	case "email":
		return "el email no tiene un formato válido"
	case "min":
		return "el valor es inferior al mínimo permitido (" + fe.Param() + ")"
	case "max":
		return "el valor supera el máximo permitido (" + fe.Param() + ")"
	default:
		return "el valor no es válido"
	}
}
