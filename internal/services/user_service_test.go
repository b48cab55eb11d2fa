package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Brend-VanDenEynde/planner-api/internal/models"
)

func TestCreateAndGetUser(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	created := env.createUser(t, "Luc", "Vermeulen", "luc.vermeulen@email.be")
	if created.ID == 0 {
		t.Fatal("CreateUser() returned user with ID 0")
	}
	if created.CreatedAt.IsZero() {
		t.Error("CreateUser() CreatedAt is zero")
	}

	got, err := env.users.GetUserByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if got.Firstname != "Luc" || got.Lastname != "Vermeulen" || got.Email != "luc.vermeulen@email.be" {
		t.Errorf("GetUserByID() = %+v, want the created user", got)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("GetUserByID() CreatedAt = %v, want %v", got.CreatedAt, created.CreatedAt)
	}

	exists, err := env.users.UserExists(ctx, created.ID)
	if err != nil || !exists {
		t.Errorf("UserExists() = %v, %v, want true, nil", exists, err)
	}

	_, err = env.users.GetUserByID(ctx, 9999)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUserByID(9999) error = %v, want %v", err, ErrUserNotFound)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)

	env.createUser(t, "Sofie", "Peeters", "sofie@email.be")

	_, err := env.users.CreateUser(context.Background(), CreateUserParams{
		Firstname: "Other",
		Lastname:  "Person",
		Email:     "sofie@email.be",
	})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("CreateUser() with existing email error = %v, want %v", err, ErrEmailAlreadyExists)
	}
}

func TestListUsers(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	luc := env.createUser(t, "Luc", "Vermeulen", "luc@email.be")
	sofie := env.createUser(t, "Sofie", "Peeters", "sofie@email.be")
	tom := env.createUser(t, "Tom", "Janssens", "tom@email.be")

	t.Run("newest first", func(t *testing.T) {
		list, err := env.users.ListUsers(ctx, ListUsersParams{Limit: 10})
		if err != nil {
			t.Fatalf("ListUsers() error = %v", err)
		}
		if list.Total != 3 {
			t.Errorf("ListUsers() total = %d, want 3", list.Total)
		}
		wantIDs := []int64{tom.ID, sofie.ID, luc.ID}
		if len(list.Users) != len(wantIDs) {
			t.Fatalf("ListUsers() returned %d users, want %d", len(list.Users), len(wantIDs))
		}
		for i, id := range wantIDs {
			if list.Users[i].ID != id {
				t.Errorf("ListUsers()[%d].ID = %d, want %d", i, list.Users[i].ID, id)
			}
		}
	})

	t.Run("pagination keeps total", func(t *testing.T) {
		list, err := env.users.ListUsers(ctx, ListUsersParams{Limit: 1, Offset: 1})
		if err != nil {
			t.Fatalf("ListUsers() error = %v", err)
		}
		if list.Total != 3 {
			t.Errorf("ListUsers() total = %d, want 3", list.Total)
		}
		if len(list.Users) != 1 || list.Users[0].ID != sofie.ID {
			t.Errorf("ListUsers() page = %+v, want only Sofie", list.Users)
		}
	})

	t.Run("search is case insensitive across columns", func(t *testing.T) {
		list, err := env.users.ListUsers(ctx, ListUsersParams{Search: "PEET", Limit: 10})
		if err != nil {
			t.Fatalf("ListUsers() error = %v", err)
		}
		if list.Total != 1 || len(list.Users) != 1 || list.Users[0].ID != sofie.ID {
			t.Errorf("ListUsers(search=PEET) = %+v (total %d), want only Sofie", list.Users, list.Total)
		}

		list, err = env.users.ListUsers(ctx, ListUsersParams{Search: "tom@", Limit: 10})
		if err != nil {
			t.Fatalf("ListUsers() error = %v", err)
		}
		if list.Total != 1 || list.Users[0].ID != tom.ID {
			t.Errorf("ListUsers(search=tom@) = %+v, want only Tom", list.Users)
		}
	})

	t.Run("zero limit falls back to default", func(t *testing.T) {
		list, err := env.users.ListUsers(ctx, ListUsersParams{})
		if err != nil {
			t.Fatalf("ListUsers() error = %v", err)
		}
		if len(list.Users) != 3 {
			t.Errorf("ListUsers() returned %d users, want 3", len(list.Users))
		}
	})
}

func TestListUsersLargeLimit(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	env.createUser(t, "Luc", "Vermeulen", "luc@email.be")
	env.createUser(t, "Sofie", "Peeters", "sofie@email.be")

	list, err := env.users.ListUsers(ctx, ListUsersParams{Limit: 1 << 40})
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if list.Total != 2 || len(list.Users) != 2 {
		t.Errorf("ListUsers() = %d users (total %d), want 2 (total 2)", len(list.Users), list.Total)
	}
}

func TestListUsersSearchNonASCII(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	elodie := env.createUser(t, "Élodie", "Öztürk", "elodie@email.be")
	env.createUser(t, "Luc", "Vermeulen", "luc@email.be")

	for _, search := range []string{"Élodie", "Öztürk", "lodie", "ÉLODIE"} {
		list, err := env.users.ListUsers(ctx, ListUsersParams{Search: search})
		if err != nil {
			t.Fatalf("ListUsers(search=%q) error = %v", search, err)
		}
		if list.Total != 1 || len(list.Users) != 1 || list.Users[0].ID != elodie.ID {
			t.Errorf("ListUsers(search=%q) = %+v (total %d), want only Élodie", search, list.Users, list.Total)
		}
	}
}

func TestUpdateUser(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	luc := env.createUser(t, "Luc", "Vermeulen", "luc@email.be")
	env.createUser(t, "Sofie", "Peeters", "sofie@email.be")

	t.Run("partial update", func(t *testing.T) {
		changes, err := env.users.UpdateUser(ctx, UpdateUserParams{
			ID:       luc.ID,
			Lastname: models.Some("Maes"),
		})
		if err != nil {
			t.Fatalf("UpdateUser() error = %v", err)
		}
		if changes != 1 {
			t.Errorf("UpdateUser() changes = %d, want 1", changes)
		}

		got, err := env.users.GetUserByID(ctx, luc.ID)
		if err != nil {
			t.Fatalf("GetUserByID() error = %v", err)
		}
		if got.Firstname != "Luc" || got.Lastname != "Maes" || got.Email != "luc@email.be" {
			t.Errorf("GetUserByID() after update = %+v, want only lastname changed", got)
		}
	})

	t.Run("email conflict", func(t *testing.T) {
		_, err := env.users.UpdateUser(ctx, UpdateUserParams{
			ID:    luc.ID,
			Email: models.Some("sofie@email.be"),
		})
		if !errors.Is(err, ErrEmailAlreadyExists) {
			t.Errorf("UpdateUser() error = %v, want %v", err, ErrEmailAlreadyExists)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := env.users.UpdateUser(ctx, UpdateUserParams{
			ID:        9999,
			Firstname: models.Some("Nobody"),
		})
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("UpdateUser() error = %v, want %v", err, ErrUserNotFound)
		}
	})
}

func TestDeleteUserCascadesTasks(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	luc := env.createUser(t, "Luc", "Vermeulen", "luc@email.be")
	sofie := env.createUser(t, "Sofie", "Peeters", "sofie@email.be")
	env.createTask(t, luc.ID, "Backend API ontwikkelen", "REST API bouwen", "", "2026-02-01")
	env.createTask(t, luc.ID, "Database schema optimaliseren", "Indexen toevoegen", "done", "2026-02-05")
	kept := env.createTask(t, sofie.ID, "Frontend dashboard ontwerpen", "UI ontwerpen", "", "2026-02-10")

	changes, err := env.users.DeleteUser(ctx, luc.ID)
	if err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}
	if changes != 1 {
		t.Errorf("DeleteUser() changes = %d, want 1", changes)
	}

	tasks, err := env.tasks.GetTasksByUserID(ctx, luc.ID)
	if err != nil {
		t.Fatalf("GetTasksByUserID() error = %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("GetTasksByUserID() after delete returned %d tasks, want 0", len(tasks))
	}

	list, err := env.tasks.ListTasks(ctx, ListTasksParams{Limit: 10})
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if list.Total != 1 || list.Tasks[0].ID != kept.ID {
		t.Errorf("ListTasks() after delete = %+v, want only the other user's task", list.Tasks)
	}

	_, err = env.users.DeleteUser(ctx, luc.ID)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("second DeleteUser() error = %v, want %v", err, ErrUserNotFound)
	}
}

func TestGetUserStats(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	luc := env.createUser(t, "Luc", "Vermeulen", "luc@email.be")
	other := env.createUser(t, "Emma", "Maes", "emma@email.be")

	env.createTask(t, luc.ID, "a", "a", models.StatusOpen, "2026-01-10")
	env.createTask(t, luc.ID, "b", "b", models.StatusInProgress, "2026-01-15")
	env.createTask(t, luc.ID, "c", "c", models.StatusDone, "2026-01-05")
	env.createTask(t, luc.ID, "d", "d", models.StatusOpen, "2026-01-16")
	env.createTask(t, other.ID, "e", "e", models.StatusOpen, "2026-01-01")

	stats, err := env.users.GetUserStats(ctx, luc.ID)
	if err != nil {
		t.Fatalf("GetUserStats() error = %v", err)
	}
	if stats.User.ID != luc.ID {
		t.Errorf("GetUserStats() user = %d, want %d", stats.User.ID, luc.ID)
	}

	want := models.UserStats{User: stats.User, Total: 4, Open: 2, InProgress: 1, Done: 1, Overdue: 2}
	if *stats != want {
		t.Errorf("GetUserStats() = %+v, want %+v", *stats, want)
	}

	empty, err := env.users.GetUserStats(ctx, other.ID)
	if err != nil {
		t.Fatalf("GetUserStats() error = %v", err)
	}
	if empty.Total != 1 || empty.Overdue != 1 {
		t.Errorf("GetUserStats() for other user = %+v, want total 1 overdue 1", *empty)
	}

	_, err = env.users.GetUserStats(ctx, 9999)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUserStats(9999) error = %v, want %v", err, ErrUserNotFound)
	}
}

func TestGetUserStatsWithoutTasks(t *testing.T) {
	env := setupTestEnv(t)

	kevin := env.createUser(t, "Kevin", "Claes", "kevin@email.be")

	stats, err := env.users.GetUserStats(context.Background(), kevin.ID)
	if err != nil {
		t.Fatalf("GetUserStats() error = %v", err)
	}
	if stats.Total != 0 || stats.Open != 0 || stats.InProgress != 0 || stats.Done != 0 || stats.Overdue != 0 {
		t.Errorf("GetUserStats() = %+v, want all zero", *stats)
	}
}
