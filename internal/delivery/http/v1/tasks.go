package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Brend-VanDenEynde/planner-api/internal/models"
	"github.com/Brend-VanDenEynde/planner-api/internal/services"
	"github.com/Brend-VanDenEynde/planner-api/internal/validation"
)

type getTaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     string    `json:"due_date"`
	Status      string    `json:"status"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newGetTaskResponse(task *models.Task) getTaskResponse {
	return getTaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Status:      task.Status,
		UserID:      task.UserID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func newGetTasksResponse(tasks []*models.Task) []getTaskResponse {
	response := make([]getTaskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = newGetTaskResponse(task)
	}
	return response
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	limit, offset := parsePagination(c)

	list, err := h.tasks.ListTasks(c, services.ListTasksParams{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		abort(c, serviceError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": newGetTasksResponse(list.Tasks),
		"pagination": paginationResponse{
			Limit:  limit,
			Offset: offset,
			Total:  list.Total,
		},
	})
}

func (h *handlerImpl) HandleGetOverdueTasks(c *gin.Context) {
	tasks, err := h.tasks.GetOverdueTasks(c)
	if err != nil {
		abort(c, serviceError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"overdue_tasks": newGetTasksResponse(tasks),
		"count":         len(tasks),
	})
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		abort(c, newNotFoundError(msgTaskNotFound))
		return
	}

	task, err := h.tasks.GetTaskByID(c, id)
	if err != nil {
		abort(c, serviceError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": newGetTaskResponse(task)})
}

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	UserID      idField `json:"user_id"`
	DueDate     string  `json:"due_date"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(msgInvalidRequestBody))
		return
	}

	params := services.CreateTaskParams{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Status:      req.Status,
	}
	err = firstError(
		func() error { return validation.ValidateRequired(params.Title, "Title") },
		func() error { return validation.ValidateRequired(params.Description, "Description") },
		func() error {
			if !req.UserID.set {
				return validation.ValidateRequired("", "User_id")
			}
			params.UserID = req.UserID.value
			return nil
		},
		func() error {
			dueDate, dueErr := validation.ValidateDueDate(req.DueDate, h.now())
			params.DueDate = dueDate
			return dueErr
		},
		func() error {
			if params.Status == "" {
				return nil
			}
			return validation.ValidateStatus(params.Status)
		},
	)
	if err != nil {
		h.logger.Info().
			Err(err).
			Msg("invalid task")
		abort(c, newBadRequestError(err.Error()))
		return
	}

	task, err := h.tasks.CreateTask(c, params)
	if err != nil {
		abort(c, serviceError(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created",
		"task":    newGetTaskResponse(task),
	})
}

type updateTaskRequest struct {
	Title       models.Optional[string] `json:"title"`
	Description models.Optional[string] `json:"description"`
	Status      models.Optional[string] `json:"status"`
	DueDate     models.Optional[string] `json:"due_date"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		abort(c, newNotFoundError(msgTaskNotFound))
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(msgInvalidRequestBody))
		return
	}

	params := services.UpdateTaskParams{
		ID:          id,
		Title:       trimOptional(req.Title),
		Description: trimOptional(req.Description),
		Status:      req.Status,
		DueDate:     req.DueDate,
	}
	err = firstError(
		ifSet(params.Title, func(v string) error { return validation.ValidateRequired(v, "Title") }),
		ifSet(params.Description, func(v string) error { return validation.ValidateRequired(v, "Description") }),
		ifSet(params.DueDate, func(v string) error {
			dueDate, dueErr := validation.ValidateDueDate(v, h.now())
			if dueErr == nil {
				params.DueDate = models.Some(dueDate)
			}
			return dueErr
		}),
		ifSet(params.Status, validation.ValidateStatus),
	)
	if err != nil {
		h.logger.Info().
			Err(err).
			Int64("task_id", id).
			Msg("invalid task update")
		abort(c, newBadRequestError(err.Error()))
		return
	}

	changes, err := h.tasks.UpdateTask(c, params)
	if err != nil {
		abort(c, serviceError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated",
		"changes": changes,
	})
}

type setTaskStatusRequest struct {
	Status string `json:"status"`
}

func (h *handlerImpl) HandleSetTaskStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		abort(c, newNotFoundError(msgTaskNotFound))
		return
	}

	var req setTaskStatusRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(msgInvalidRequestBody))
		return
	}

	err = firstError(
		func() error { return validation.ValidateRequired(req.Status, "Status") },
		func() error { return validation.ValidateStatus(req.Status) },
	)
	if err != nil {
		h.logger.Info().
			Str("status", req.Status).
			Msg("invalid status")
		abort(c, newBadRequestError(err.Error()))
		return
	}

	_, err = h.tasks.UpdateTaskStatus(c, services.UpdateTaskStatusParams{
		ID:     id,
		Status: req.Status,
	})
	if err != nil {
		abort(c, serviceError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task status updated",
		"status":  req.Status,
	})
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		abort(c, newNotFoundError(msgTaskNotFound))
		return
	}

	changes, err := h.tasks.DeleteTask(c, id)
	if err != nil {
		abort(c, serviceError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted",
		"changes": changes,
	})
}
