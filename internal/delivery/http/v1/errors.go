package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Brend-VanDenEynde/planner-api/internal/services"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgUserNotFound       = "User not found"
	msgTaskNotFound       = "Task not found"
	msgEmailExists        = "Email already exists"
	msgUserIDNotExist     = "User_id does not exist"
	msgInvalidStatus      = "Invalid status. Must be one of: open, in_progress, done"
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

// newInternalError passes the message of an unexpected store failure
// through to the client.
func newInternalError(err error) apiError {
	return newAPIError(http.StatusInternalServerError, err.Error())
}

// serviceError maps an error returned by a service to the API error the
// client sees.
func serviceError(err error) apiError {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return newNotFoundError(msgUserNotFound)
	case errors.Is(err, services.ErrTaskNotFound):
		return newNotFoundError(msgTaskNotFound)
	case errors.Is(err, services.ErrEmailAlreadyExists):
		return newBadRequestError(msgEmailExists)
	case errors.Is(err, services.ErrUserIDNotExist):
		return newBadRequestError(msgUserIDNotExist)
	case errors.Is(err, services.ErrInvalidTaskStatus):
		return newBadRequestError(msgInvalidStatus)
	default:
		return newInternalError(err)
	}
}
