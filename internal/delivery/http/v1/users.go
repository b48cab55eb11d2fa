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

type getUserResponse struct {
	ID        int64     `json:"id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func newGetUserResponse(user *models.User) getUserResponse {
	return getUserResponse{
		ID:        user.ID,
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func (h *handlerImpl) HandleGetUsers(c *gin.Context) {
	limit, offset := parsePagination(c)

	list, err := h.users.ListUsers(c, services.ListUsersParams{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		abort(c, serviceError(err))
		return
	}

	response := make([]getUserResponse, len(list.Users))
	for i, user := range list.Users {
		response[i] = newGetUserResponse(user)
	}

	c.JSON(http.StatusOK, gin.H{
		"users": response,
		"pagination": paginationResponse{
			Limit:  limit,
			Offset: offset,
			Total:  list.Total,
		},
	})
}

func (h *handlerImpl) HandleGetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		abort(c, newNotFoundError(msgUserNotFound))
		return
	}

	user, err := h.users.GetUserByID(c, id)
	if err != nil {
		abort(c, serviceError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": newGetUserResponse(user)})
}

type createUserRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
}

func (h *handlerImpl) HandleCreateUser(c *gin.Context) {
	var req createUserRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(msgInvalidRequestBody))
		return
	}

	params := services.CreateUserParams{
		Firstname: strings.TrimSpace(req.Firstname),
		Lastname:  strings.TrimSpace(req.Lastname),
		Email:     strings.TrimSpace(req.Email),
	}
	err = firstError(
		func() error { return validation.ValidateName(params.Firstname, "Firstname") },
		func() error { return validation.ValidateName(params.Lastname, "Lastname") },
		func() error { return validation.ValidateEmail(params.Email) },
	)
	if err != nil {
		h.logger.Info().
			Err(err).
			Msg("invalid user")
		abort(c, newBadRequestError(err.Error()))
		return
	}

	user, err := h.users.CreateUser(c, params)
	if err != nil {
		abort(c, serviceError(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created",
		"user":    newGetUserResponse(user),
	})
}

type updateUserRequest struct {
	Firstname models.Optional[string] `json:"firstname"`
	Lastname  models.Optional[string] `json:"lastname"`
	Email     models.Optional[string] `json:"email"`
}

func (h *handlerImpl) HandleUpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		abort(c, newNotFoundError(msgUserNotFound))
		return
	}

	var req updateUserRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(msgInvalidRequestBody))
		return
	}

	params := services.UpdateUserParams{
		ID:        id,
		Firstname: trimOptional(req.Firstname),
		Lastname:  trimOptional(req.Lastname),
		Email:     trimOptional(req.Email),
	}
	err = firstError(
		ifSet(params.Firstname, func(v string) error { return validation.ValidateName(v, "Firstname") }),
		ifSet(params.Lastname, func(v string) error { return validation.ValidateName(v, "Lastname") }),
		ifSet(params.Email, validation.ValidateEmail),
	)
	if err != nil {
		h.logger.Info().
			Err(err).
			Int64("user_id", id).
			Msg("invalid user update")
		abort(c, newBadRequestError(err.Error()))
		return
	}

	changes, err := h.users.UpdateUser(c, params)
	if err != nil {
		abort(c, serviceError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated",
		"changes": changes,
	})
}

func (h *handlerImpl) HandleDeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		abort(c, newNotFoundError(msgUserNotFound))
		return
	}

	changes, err := h.users.DeleteUser(c, id)
	if err != nil {
		abort(c, serviceError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted",
		"changes": changes,
	})
}

func (h *handlerImpl) HandleGetUserTasks(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		abort(c, newNotFoundError(msgUserNotFound))
		return
	}

	user, err := h.users.GetUserByID(c, id)
	if err != nil {
		abort(c, serviceError(err))
		return
	}

	tasks, err := h.tasks.GetTasksByUserID(c, id)
	if err != nil {
		abort(c, serviceError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  newGetUserResponse(user),
		"tasks": newGetTasksResponse(tasks),
	})
}

type userStatsResponse struct {
	Total      int64 `json:"total"`
	Open       int64 `json:"open"`
	InProgress int64 `json:"in_progress"`
	Done       int64 `json:"done"`
	Overdue    int64 `json:"overdue"`
}

func (h *handlerImpl) HandleGetUserStats(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		abort(c, newNotFoundError(msgUserNotFound))
		return
	}

	stats, err := h.users.GetUserStats(c, id)
	if err != nil {
		abort(c, serviceError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": newGetUserResponse(stats.User),
		"tasks": userStatsResponse{
			Total:      stats.Total,
			Open:       stats.Open,
			InProgress: stats.InProgress,
			Done:       stats.Done,
			Overdue:    stats.Overdue,
		},
	})
}
