package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Brend-VanDenEynde/planner-api/internal/models"
	"github.com/Brend-VanDenEynde/planner-api/internal/storage"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	db     *sql.DB
	now    func() time.Time
}

func NewTaskService(
	logger zerolog.Logger,
	db *sql.DB,
	now func() time.Time,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		db:     db,
		now:    now,
	}
}

const selectTasksQuery = `
SELECT id,
       title,
       description,
       due_date,
       status,
       user_id,
       created_at,
       updated_at
FROM opdrachten
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := new(models.Task)
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.Status,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskServiceImpl) selectTasks(ctx context.Context, query string, args ...any) ([]*models.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	return tasks, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, params ListTasksParams) (*TaskList, error) {
	if params.Limit <= 0 {
		params.Limit = DefaultListLimit
	}
	f := TaskFilter(params.Search, params.Status)

	const countTasksQuery = `
SELECT COUNT(*)
FROM opdrachten
`
	var total int64
	err := s.db.QueryRowContext(
		ctx,
		countTasksQuery+f.Where(),
		f.Args()...,
	).Scan(&total)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to count tasks")
		return nil, err
	}

	listQuery := selectTasksQuery + f.Where() +
		"\nORDER BY created_at DESC, id DESC" +
		"\nLIMIT " + f.Bind(params.Limit) + " OFFSET " + f.Bind(params.Offset)
	tasks, err := s.selectTasks(ctx, listQuery, f.Args()...)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Int64("total", total).
		Str("search", params.Search).
		Str("status", params.Status).
		Msg("selected tasks")

	return &TaskList{Tasks: tasks, Total: total}, nil
}

func (s *taskServiceImpl) GetTaskByID(ctx context.Context, id int64) (*models.Task, error) {
	task, err := scanTask(s.db.QueryRowContext(
		ctx,
		selectTasksQuery+"WHERE id = $1",
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Info().
				Int64("task_id", id).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to select task by id")
		return nil, err
	}
	s.logger.Debug().
		Int64("task_id", id).
		Msg("selected task")

	return task, nil
}

func (s *taskServiceImpl) GetTasksByUserID(ctx context.Context, userID int64) ([]*models.Task, error) {
	tasks, err := s.selectTasks(
		ctx,
		selectTasksQuery+"WHERE user_id = $1\nORDER BY due_date ASC, id ASC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Int64("user_id", userID).
		Msg("selected tasks by user id")

	return tasks, nil
}

func (s *taskServiceImpl) GetOverdueTasks(ctx context.Context) ([]*models.Task, error) {
	tasks, err := s.selectTasks(
		ctx,
		selectTasksQuery+"WHERE due_date < $1 AND status <> $2\nORDER BY due_date ASC, id ASC",
		today(s.now()),
		models.StatusDone,
	)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("selected overdue tasks")

	return tasks, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	if params.Status == "" {
		params.Status = models.StatusOpen
	}
	if !models.IsValidTaskStatus(params.Status) {
		return nil, ErrInvalidTaskStatus
	}

	exists, err := userExists(ctx, s.db, params.UserID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("user_id", params.UserID).
			Msg("failed to check user existence")
		return nil, err
	}
	if !exists {
		s.logger.Info().
			Int64("user_id", params.UserID).
			Msg("user_id does not exist")
		return nil, ErrUserIDNotExist
	}

	now := s.now().UTC()
	task := &models.Task{
		UserID:      params.UserID,
		Title:       params.Title,
		Description: params.Description,
		DueDate:     params.DueDate,
		Status:      params.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	const insertTaskQuery = `
INSERT INTO opdrachten (title,
                        description,
                        due_date,
                        status,
                        user_id,
                        created_at,
                        updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`
	err = s.db.QueryRowContext(
		ctx,
		insertTaskQuery,
		task.Title,
		task.Description,
		task.DueDate,
		task.Status,
		task.UserID,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)
	if err != nil {
		// The user may have been deleted since the existence check.
		if storage.IsForeignKeyViolation(err) {
			s.logger.Info().
				Int64("user_id", params.UserID).
				Msg("user_id does not exist")
			return nil, ErrUserIDNotExist
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}
	s.logger.Debug().
		Int64("task_id", task.ID).
		Msg("inserted task")

	s.logger.Info().
		Int64("task_id", task.ID).
		Int64("user_id", task.UserID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (int64, error) {
	if status, ok := params.Status.Get(); ok && !models.IsValidTaskStatus(status) {
		return 0, ErrInvalidTaskStatus
	}

	const updateTaskQuery = `
UPDATE opdrachten
SET title = COALESCE($1, title),
    description = COALESCE($2, description),
    status = COALESCE($3, status),
    due_date = COALESCE($4, due_date),
    updated_at = $5
WHERE id = $6
`
	return s.execTaskUpdate(
		ctx,
		params.ID,
		"updated task",
		updateTaskQuery,
		params.Title.Ptr(),
		params.Description.Ptr(),
		params.Status.Ptr(),
		params.DueDate.Ptr(),
		s.now().UTC(),
		params.ID,
	)
}

func (s *taskServiceImpl) UpdateTaskStatus(ctx context.Context, params UpdateTaskStatusParams) (int64, error) {
	if !models.IsValidTaskStatus(params.Status) {
		return 0, ErrInvalidTaskStatus
	}

	const updateTaskStatusQuery = `
UPDATE opdrachten
SET status = $1,
    updated_at = $2
WHERE id = $3
`
	return s.execTaskUpdate(
		ctx,
		params.ID,
		"updated task status",
		updateTaskStatusQuery,
		params.Status,
		s.now().UTC(),
		params.ID,
	)
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) (int64, error) {
	const deleteTaskQuery = `
DELETE FROM opdrachten
WHERE id = $1
`
	return s.execTaskUpdate(ctx, id, "deleted task", deleteTaskQuery, id)
}

// execTaskUpdate runs a statement addressing a single task and maps zero
// affected rows to ErrTaskNotFound.
func (s *taskServiceImpl) execTaskUpdate(ctx context.Context, id int64, action, query string, args ...any) (int64, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to execute task statement")
		return 0, err
	}

	changes, err := res.RowsAffected()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to read affected rows")
		return 0, err
	}
	if changes == 0 {
		s.logger.Info().
			Int64("task_id", id).
			Msg("task not found")
		return 0, ErrTaskNotFound
	}

	s.logger.Info().
		Int64("task_id", id).
		Msg(action)
	return changes, nil
}
