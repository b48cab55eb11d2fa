package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Brend-VanDenEynde/planner-api/internal/models"
)

type SeedService interface {
	// SeedDemoData removes every user and task and inserts the demo
	// data set. Due dates are taken as is, so some tasks may already be
	// overdue.
	SeedDemoData(ctx context.Context) (*SeedResult, error)
}

type SeedResult struct {
	Users int
	Tasks int
}

type seedServiceImpl struct {
	logger zerolog.Logger
	db     *sql.DB
	users  UserService
	tasks  TaskService
}

func NewSeedService(
	logger zerolog.Logger,
	db *sql.DB,
	users UserService,
	tasks TaskService,
) SeedService {
	return &seedServiceImpl{
		logger: logger,
		db:     db,
		users:  users,
		tasks:  tasks,
	}
}

var demoUsers = []CreateUserParams{
	{Firstname: "Luc", Lastname: "Vermeulen", Email: "luc.vermeulen@email.be"},
	{Firstname: "Sofie", Lastname: "Peeters", Email: "sofie.peeters@email.be"},
	{Firstname: "Tom", Lastname: "Janssens", Email: "tom.janssens@email.be"},
	{Firstname: "Emma", Lastname: "Maes", Email: "emma.maes@email.be"},
	{Firstname: "Kevin", Lastname: "Claes", Email: "kevin.claes@email.be"},
}

// demoTask refers to its owner by index into demoUsers.
type demoTask struct {
	owner       int
	title       string
	description string
	status      string
	dueDate     string
}

var demoTasks = []demoTask{
	{0, "Backend API ontwikkelen", "REST API bouwen met Go en SQLite voor de planner applicatie", models.StatusInProgress, "2026-01-15"},
	{1, "Frontend dashboard ontwerpen", "Moderne UI/UX ontwerpen voor het dashboard met Figma", models.StatusOpen, "2026-01-20"},
	{0, "Database schema optimaliseren", "Database indexen toevoegen en query performance verbeteren", models.StatusDone, "2026-01-05"},
	{2, "API documentatie schrijven", "Documentatie compleet maken voor alle endpoints", models.StatusDone, "2026-01-10"},
	{1, "Unit tests implementeren", "Test coverage verhogen naar minimaal 80%", models.StatusOpen, "2026-01-25"},
	{3, "Authentication systeem bouwen", "JWT authenticatie implementeren voor beveiligde endpoints", models.StatusInProgress, "2026-01-18"},
	{4, "Email notificaties opzetten", "Automatische emails versturen bij nieuwe taken en deadlines", models.StatusOpen, "2026-02-01"},
	{2, "Docker container configureren", "Dockerfile en docker-compose.yml maken voor deployment", models.StatusOpen, "2026-01-22"},
	{3, "Code review uitvoeren", "Alle pull requests reviewen en feedback geven", models.StatusInProgress, "2026-01-12"},
	{4, "Performance monitoring", "Monitoring tools integreren voor API performance tracking", models.StatusOpen, "2026-01-30"},
}

const clearTasksQuery = `
DELETE FROM opdrachten
`

const clearUsersQuery = `
DELETE FROM users
`

func (s *seedServiceImpl) SeedDemoData(ctx context.Context) (*SeedResult, error) {
	for _, q := range []string{clearTasksQuery, clearUsersQuery} {
		_, err := s.db.ExecContext(ctx, q)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to clear table")
			return nil, fmt.Errorf("clear tables: %w", err)
		}
	}
	s.logger.Debug().Msg("cleared users and tasks")

	userIDs := make([]int64, len(demoUsers))
	for i, params := range demoUsers {
		user, err := s.users.CreateUser(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("seed user %s: %w", params.Email, err)
		}
		userIDs[i] = user.ID
	}

	for _, task := range demoTasks {
		_, err := s.tasks.CreateTask(ctx, CreateTaskParams{
			UserID:      userIDs[task.owner],
			Title:       task.title,
			Description: task.description,
			Status:      task.status,
			DueDate:     task.dueDate,
		})
		if err != nil {
			return nil, fmt.Errorf("seed task %q: %w", task.title, err)
		}
	}

	result := &SeedResult{
		Users: len(demoUsers),
		Tasks: len(demoTasks),
	}
	s.logger.Info().
		Int("users", result.Users).
		Int("tasks", result.Tasks).
		Msg("seeded demo data")
	return result, nil
}
