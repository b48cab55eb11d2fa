package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Brend-VanDenEynde/planner-api/internal/models"
)

func TestCreateTask(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	luc := env.createUser(t, "Luc", "Vermeulen", "luc@email.be")

	t.Run("defaults to open", func(t *testing.T) {
		task, err := env.tasks.CreateTask(ctx, CreateTaskParams{
			UserID:      luc.ID,
			Title:       "Backend API ontwikkelen",
			Description: "REST API bouwen",
			DueDate:     "2026-02-01",
		})
		if err != nil {
			t.Fatalf("CreateTask() error = %v", err)
		}
		if task.ID == 0 {
			t.Error("CreateTask() returned task with ID 0")
		}
		if task.Status != models.StatusOpen {
			t.Errorf("CreateTask() status = %q, want %q", task.Status, models.StatusOpen)
		}

		got, err := env.tasks.GetTaskByID(ctx, task.ID)
		if err != nil {
			t.Fatalf("GetTaskByID() error = %v", err)
		}
		if got.Title != task.Title || got.DueDate != "2026-02-01" || got.UserID != luc.ID || got.Status != models.StatusOpen {
			t.Errorf("GetTaskByID() = %+v, want %+v", got, task)
		}
		if !got.CreatedAt.Equal(task.CreatedAt) || !got.UpdatedAt.Equal(task.UpdatedAt) {
			t.Errorf("GetTaskByID() timestamps = %v/%v, want %v/%v",
				got.CreatedAt, got.UpdatedAt, task.CreatedAt, task.UpdatedAt)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := env.tasks.CreateTask(ctx, CreateTaskParams{
			UserID:      9999,
			Title:       "Orphan",
			Description: "No owner",
			DueDate:     "2026-02-01",
		})
		if !errors.Is(err, ErrUserIDNotExist) {
			t.Errorf("CreateTask() error = %v, want %v", err, ErrUserIDNotExist)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := env.tasks.CreateTask(ctx, CreateTaskParams{
			UserID:      luc.ID,
			Title:       "Bad",
			Description: "Bad status",
			Status:      "bogus",
			DueDate:     "2026-02-01",
		})
		if !errors.Is(err, ErrInvalidTaskStatus) {
			t.Errorf("CreateTask() error = %v, want %v", err, ErrInvalidTaskStatus)
		}
	})

	_, err := env.tasks.GetTaskByID(ctx, 9999)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("GetTaskByID(9999) error = %v, want %v", err, ErrTaskNotFound)
	}
}

func TestListTasks(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	luc := env.createUser(t, "Luc", "Vermeulen", "luc@email.be")
	api := env.createTask(t, luc.ID, "Backend API ontwikkelen", "REST API bouwen met SQLite", models.StatusInProgress, "2026-01-15")
	ui := env.createTask(t, luc.ID, "Frontend dashboard ontwerpen", "Moderne UI/UX ontwerpen", models.StatusOpen, "2026-01-20")
	docs := env.createTask(t, luc.ID, "Documentatie schrijven", "Swagger docs voor de api", models.StatusDone, "2026-01-10")

	tests := []struct {
		name    string
		params  ListTasksParams
		wantIDs []int64
	}{
		{"unfiltered newest first", ListTasksParams{}, []int64{docs.ID, ui.ID, api.ID}},
		{"search matches title or description", ListTasksParams{Search: "api"}, []int64{docs.ID, api.ID}},
		{"search is case insensitive", ListTasksParams{Search: "FRONTEND"}, []int64{ui.ID}},
		{"status filter", ListTasksParams{Status: models.StatusOpen}, []int64{ui.ID}},
		{"search and status", ListTasksParams{Search: "api", Status: models.StatusDone}, []int64{docs.ID}},
		{"bogus status is ignored", ListTasksParams{Status: "bogus"}, []int64{docs.ID, ui.ID, api.ID}},
		{"no match", ListTasksParams{Search: "kubernetes"}, []int64{}},
		{"pagination", ListTasksParams{Limit: 1, Offset: 1}, []int64{ui.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := env.tasks.ListTasks(ctx, tt.params)
			if err != nil {
				t.Fatalf("ListTasks() error = %v", err)
			}
			if len(list.Tasks) != len(tt.wantIDs) {
				t.Fatalf("ListTasks() returned %d tasks, want %d", len(list.Tasks), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if list.Tasks[i].ID != id {
					t.Errorf("ListTasks()[%d].ID = %d, want %d", i, list.Tasks[i].ID, id)
				}
			}
		})
	}

	list, err := env.tasks.ListTasks(ctx, ListTasksParams{Search: "api", Limit: 1})
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if list.Total != 2 {
		t.Errorf("ListTasks() total = %d, want 2 before pagination", list.Total)
	}
}

func TestGetTasksByUserIDOrderedByDueDate(t *testing.T) {
	env := setupTestEnv(t)

	luc := env.createUser(t, "Luc", "Vermeulen", "luc@email.be")
	late := env.createTask(t, luc.ID, "late", "late", "", "2026-03-01")
	early := env.createTask(t, luc.ID, "early", "early", "", "2026-01-20")

	tasks, err := env.tasks.GetTasksByUserID(context.Background(), luc.ID)
	if err != nil {
		t.Fatalf("GetTasksByUserID() error = %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != early.ID || tasks[1].ID != late.ID {
		t.Errorf("GetTasksByUserID() = %+v, want early then late", tasks)
	}
}

func TestGetOverdueTasks(t *testing.T) {
	env := setupTestEnv(t)

	luc := env.createUser(t, "Luc", "Vermeulen", "luc@email.be")
	openPast := env.createTask(t, luc.ID, "open past", "x", models.StatusOpen, "2026-01-15")
	env.createTask(t, luc.ID, "done past", "x", models.StatusDone, "2026-01-15")
	env.createTask(t, luc.ID, "due today", "x", models.StatusOpen, "2026-01-16")
	olderInProgress := env.createTask(t, luc.ID, "older", "x", models.StatusInProgress, "2026-01-02")

	tasks, err := env.tasks.GetOverdueTasks(context.Background())
	if err != nil {
		t.Fatalf("GetOverdueTasks() error = %v", err)
	}

	wantIDs := []int64{olderInProgress.ID, openPast.ID}
	if len(tasks) != len(wantIDs) {
		t.Fatalf("GetOverdueTasks() returned %d tasks, want %d", len(tasks), len(wantIDs))
	}
	for i, id := range wantIDs {
		if tasks[i].ID != id {
			t.Errorf("GetOverdueTasks()[%d].ID = %d, want %d", i, tasks[i].ID, id)
		}
	}
}

func TestUpdateTaskPartial(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	luc := env.createUser(t, "Luc", "Vermeulen", "luc@email.be")
	task := env.createTask(t, luc.ID, "Backend API ontwikkelen", "REST API bouwen", "", "2026-02-01")

	env.clock.Advance(time.Hour)
	changes, err := env.tasks.UpdateTask(ctx, UpdateTaskParams{
		ID:     task.ID,
		Status: models.Some(models.StatusDone),
	})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if changes != 1 {
		t.Errorf("UpdateTask() changes = %d, want 1", changes)
	}

	got, err := env.tasks.GetTaskByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTaskByID() error = %v", err)
	}
	if got.Status != models.StatusDone {
		t.Errorf("status = %q, want %q", got.Status, models.StatusDone)
	}
	if got.Title != task.Title || got.Description != task.Description || got.DueDate != task.DueDate {
		t.Errorf("UpdateTask() touched omitted fields: got %+v, want %+v", got, task)
	}
	if !got.UpdatedAt.After(task.UpdatedAt) {
		t.Errorf("updated_at = %v, want after %v", got.UpdatedAt, task.UpdatedAt)
	}
	if !got.CreatedAt.Equal(task.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, task.CreatedAt)
	}

	_, err = env.tasks.UpdateTask(ctx, UpdateTaskParams{ID: 9999, Title: models.Some("x")})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("UpdateTask(9999) error = %v, want %v", err, ErrTaskNotFound)
	}

	_, err = env.tasks.UpdateTask(ctx, UpdateTaskParams{ID: task.ID, Status: models.Some("bogus")})
	if !errors.Is(err, ErrInvalidTaskStatus) {
		t.Errorf("UpdateTask(bogus status) error = %v, want %v", err, ErrInvalidTaskStatus)
	}
}

func TestUpdateTaskStatus(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	luc := env.createUser(t, "Luc", "Vermeulen", "luc@email.be")
	task := env.createTask(t, luc.ID, "Code review", "Pull requests reviewen", "", "2026-02-01")

	changes, err := env.tasks.UpdateTaskStatus(ctx, UpdateTaskStatusParams{ID: task.ID, Status: models.StatusInProgress})
	if err != nil || changes != 1 {
		t.Fatalf("UpdateTaskStatus() = %d, %v, want 1, nil", changes, err)
	}

	got, err := env.tasks.GetTaskByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTaskByID() error = %v", err)
	}
	if got.Status != models.StatusInProgress {
		t.Errorf("status = %q, want %q", got.Status, models.StatusInProgress)
	}

	_, err = env.tasks.UpdateTaskStatus(ctx, UpdateTaskStatusParams{ID: task.ID, Status: "bogus"})
	if !errors.Is(err, ErrInvalidTaskStatus) {
		t.Errorf("UpdateTaskStatus(bogus) error = %v, want %v", err, ErrInvalidTaskStatus)
	}

	_, err = env.tasks.UpdateTaskStatus(ctx, UpdateTaskStatusParams{ID: 9999, Status: models.StatusDone})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("UpdateTaskStatus(9999) error = %v, want %v", err, ErrTaskNotFound)
	}
}

func TestDeleteTask(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	luc := env.createUser(t, "Luc", "Vermeulen", "luc@email.be")
	task := env.createTask(t, luc.ID, "Docker", "Dockerfile maken", "", "2026-02-01")

	changes, err := env.tasks.DeleteTask(ctx, task.ID)
	if err != nil || changes != 1 {
		t.Fatalf("DeleteTask() = %d, %v, want 1, nil", changes, err)
	}

	_, err = env.tasks.DeleteTask(ctx, task.ID)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("second DeleteTask() error = %v, want %v", err, ErrTaskNotFound)
	}

	if _, err = env.users.GetUserByID(ctx, luc.ID); err != nil {
		t.Errorf("GetUserByID() after task delete error = %v, want nil", err)
	}
}
