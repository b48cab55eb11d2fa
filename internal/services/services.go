package services

import (
	"context"
	"errors"

	"github.com/Brend-VanDenEynde/planner-api/internal/models"
	"github.com/Brend-VanDenEynde/planner-api/internal/query"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrTaskNotFound       = errors.New("task not found")
	ErrUserIDNotExist     = errors.New("user_id does not exist")
	ErrInvalidTaskStatus  = errors.New("invalid task status")
)

type UserService interface {
	// ListUsers returns a page of users, newest first, together with the
	// number of users matching the same search before pagination.
	ListUsers(ctx context.Context, params ListUsersParams) (*UserList, error)

	// GetUserByID returns ErrUserNotFound if no user has the given ID.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	UserExists(ctx context.Context, id int64) (bool, error)

	// CreateUser returns ErrEmailAlreadyExists if another user
	// already uses the given email.
	CreateUser(ctx context.Context, params CreateUserParams) (*models.User, error)

	// UpdateUser changes only the fields set in params and returns the
	// number of changed rows.
	//
	// It returns ErrUserNotFound if the user doesn't exist or
	// ErrEmailAlreadyExists if the new email is taken.
	UpdateUser(ctx context.Context, params UpdateUserParams) (int64, error)

	// DeleteUser removes the user together with all of its tasks.
	//
	// It returns ErrUserNotFound if the user doesn't exist.
	DeleteUser(ctx context.Context, id int64) (int64, error)

	// GetUserStats counts the user's tasks per status and how many of
	// them are overdue. It returns ErrUserNotFound if the user doesn't exist.
	GetUserStats(ctx context.Context, id int64) (*models.UserStats, error)
}

type TaskService interface {
	// ListTasks returns a page of tasks, newest first, together with the
	// number of tasks matching the same filter before pagination.
	ListTasks(ctx context.Context, params ListTasksParams) (*TaskList, error)

	// GetTaskByID returns ErrTaskNotFound if no task has the given ID.
	GetTaskByID(ctx context.Context, id int64) (*models.Task, error)

	// GetTasksByUserID returns the user's tasks ordered by due date.
	GetTasksByUserID(ctx context.Context, userID int64) ([]*models.Task, error)

	// GetOverdueTasks returns the unfinished tasks due before today,
	// oldest due date first.
	GetOverdueTasks(ctx context.Context) ([]*models.Task, error)

	// CreateTask stores a new task for an existing user. The status
	// defaults to open.
	//
	// It returns ErrUserIDNotExist if the user doesn't exist.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// UpdateTask changes only the fields set in params, refreshes
	// updated_at and returns the number of changed rows.
	//
	// It returns ErrTaskNotFound if the task doesn't exist.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (int64, error)

	// UpdateTaskStatus returns ErrInvalidTaskStatus for an unknown
	// status or ErrTaskNotFound if the task doesn't exist.
	UpdateTaskStatus(ctx context.Context, params UpdateTaskStatusParams) (int64, error)

	// DeleteTask returns ErrTaskNotFound if the task doesn't exist.
	DeleteTask(ctx context.Context, id int64) (int64, error)
}

// DefaultListLimit is the page size used when none is given.
const DefaultListLimit = 10

type ListUsersParams struct {
	Search string
	Limit  int
	Offset int
}

type UserList struct {
	Users []*models.User
	Total int64
}

type CreateUserParams struct {
	Firstname string
	Lastname  string
	Email     string
}

type UpdateUserParams struct {
	ID        int64
	Firstname models.Optional[string]
	Lastname  models.Optional[string]
	Email     models.Optional[string]
}

type ListTasksParams struct {
	Search string
	Status string
	Limit  int
	Offset int
}

type TaskList struct {
	Tasks []*models.Task
	Total int64
}

type CreateTaskParams struct {
	UserID      int64
	Title       string
	Description string
	// Status falls back to models.StatusOpen when empty.
	Status  string
	DueDate string
}

type UpdateTaskParams struct {
	ID          int64
	Title       models.Optional[string]
	Description models.Optional[string]
	Status      models.Optional[string]
	DueDate     models.Optional[string]
}

type UpdateTaskStatusParams struct {
	ID     int64
	Status string
}

// TaskFilter matches search against the title and description and, when
// status is one of the known statuses, restricts to that status. Any
// other status value is ignored.
func TaskFilter(search, status string) *query.Filter {
	f := query.New().Search(search, "title", "description")
	if status != "" && models.IsValidTaskStatus(status) {
		f.Equal("status", status)
	}
	return f
}

// UserFilter matches search against the first name, last name and email.
func UserFilter(search string) *query.Filter {
	return query.New().Search(search, "firstname", "lastname", "email")
}
