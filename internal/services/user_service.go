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

type userServiceImpl struct {
	logger zerolog.Logger
	db     *sql.DB
	now    func() time.Time
}

func NewUserService(
	logger zerolog.Logger,
	db *sql.DB,
	now func() time.Time,
) UserService {
	return &userServiceImpl{
		logger: logger,
		db:     db,
		now:    now,
	}
}

func (s *userServiceImpl) ListUsers(ctx context.Context, params ListUsersParams) (*UserList, error) {
	if params.Limit <= 0 {
		params.Limit = DefaultListLimit
	}
	f := UserFilter(params.Search)

	const countUsersQuery = `
SELECT COUNT(*)
FROM users
`
	var total int64
	err := s.db.QueryRowContext(
		ctx,
		countUsersQuery+f.Where(),
		f.Args()...,
	).Scan(&total)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to count users")
		return nil, err
	}

	const selectUsersQuery = `
SELECT id,
       firstname,
       lastname,
       email,
       created_at
FROM users
`
	listQuery := selectUsersQuery + f.Where() +
		"\nORDER BY created_at DESC, id DESC" +
		"\nLIMIT " + f.Bind(params.Limit) + " OFFSET " + f.Bind(params.Offset)
	rows, err := s.db.QueryContext(ctx, listQuery, f.Args()...)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select users")
		return nil, err
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user := new(models.User)
		err = rows.Scan(
			&user.ID,
			&user.Firstname,
			&user.Lastname,
			&user.Email,
			&user.CreatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan user")
			return nil, err
		}
		users = append(users, user)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(users)).
		Int64("total", total).
		Int("limit", params.Limit).
		Int("offset", params.Offset).
		Msg("selected users")

	return &UserList{Users: users, Total: total}, nil
}

func (s *userServiceImpl) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{ID: id}

	const selectUserByIDQuery = `
SELECT firstname,
       lastname,
       email,
       created_at
FROM users
WHERE id = $1
`
	err := s.db.QueryRowContext(
		ctx,
		selectUserByIDQuery,
		id,
	).Scan(
		&user.Firstname,
		&user.Lastname,
		&user.Email,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Info().
				Int64("user_id", id).
				Msg("user not found")
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("user_id", id).
			Msg("failed to select user by id")
		return nil, err
	}
	s.logger.Debug().
		Int64("user_id", id).
		Msg("selected user")

	return user, nil
}

func (s *userServiceImpl) UserExists(ctx context.Context, id int64) (bool, error) {
	return userExists(ctx, s.db, id)
}

func userExists(ctx context.Context, db *sql.DB, id int64) (bool, error) {
	const selectUserExistsQuery = `
SELECT COUNT(*)
FROM users
WHERE id = $1
`
	var count int64
	err := db.QueryRowContext(ctx, selectUserExistsQuery, id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *userServiceImpl) CreateUser(ctx context.Context, params CreateUserParams) (*models.User, error) {
	user := &models.User{
		Firstname: params.Firstname,
		Lastname:  params.Lastname,
		Email:     params.Email,
		CreatedAt: s.now().UTC(),
	}

	const insertUserQuery = `
INSERT INTO users (firstname,
                   lastname,
                   email,
                   created_at)
VALUES ($1, $2, $3, $4)
RETURNING id
`
	err := s.db.QueryRowContext(
		ctx,
		insertUserQuery,
		user.Firstname,
		user.Lastname,
		user.Email,
		user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			s.logger.Info().
				Str("email", user.Email).
				Msg("user with this email already exists")
			return nil, ErrEmailAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return nil, err
	}
	s.logger.Debug().
		Int64("user_id", user.ID).
		Msg("inserted user")

	s.logger.Info().
		Int64("user_id", user.ID).
		Msg("created user")
	return user, nil
}

func (s *userServiceImpl) UpdateUser(ctx context.Context, params UpdateUserParams) (int64, error) {
	const updateUserQuery = `
UPDATE users
SET firstname = COALESCE($1, firstname),
    lastname = COALESCE($2, lastname),
    email = COALESCE($3, email)
WHERE id = $4
`
	res, err := s.db.ExecContext(
		ctx,
		updateUserQuery,
		params.Firstname.Ptr(),
		params.Lastname.Ptr(),
		params.Email.Ptr(),
		params.ID,
	)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			s.logger.Info().
				Int64("user_id", params.ID).
				Msg("user with this email already exists")
			return 0, ErrEmailAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Int64("user_id", params.ID).
			Msg("failed to update user")
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
			Int64("user_id", params.ID).
			Msg("user not found")
		return 0, ErrUserNotFound
	}

	s.logger.Info().
		Int64("user_id", params.ID).
		Msg("updated user")
	return changes, nil
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, id int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	const countTasksByUserIDQuery = `
SELECT COUNT(*)
FROM opdrachten
WHERE user_id = $1
`
	var cascaded int64
	err = tx.QueryRowContext(ctx, countTasksByUserIDQuery, id).Scan(&cascaded)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("user_id", id).
			Msg("failed to count tasks by user id")
		return 0, err
	}

	// Tasks go with the user through ON DELETE CASCADE.
	const deleteUserQuery = `
DELETE FROM users
WHERE id = $1
`
	res, err := tx.ExecContext(ctx, deleteUserQuery, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("user_id", id).
			Msg("failed to delete user")
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
			Int64("user_id", id).
			Msg("user not found")
		return 0, ErrUserNotFound
	}

	err = tx.Commit()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return 0, err
	}
	s.logger.Debug().
		Int64("user_id", id).
		Int64("cascaded_tasks", cascaded).
		Msg("deleted user tasks")

	s.logger.Info().
		Int64("user_id", id).
		Msg("deleted user")
	return changes, nil
}

func (s *userServiceImpl) GetUserStats(ctx context.Context, id int64) (*models.UserStats, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	stats := &models.UserStats{User: user}

	const selectUserStatsQuery = `
SELECT COUNT(*),
       COALESCE(SUM(CASE WHEN status = 'open' THEN 1 ELSE 0 END), 0),
       COALESCE(SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END), 0),
       COALESCE(SUM(CASE WHEN status = 'done' THEN 1 ELSE 0 END), 0),
       COALESCE(SUM(CASE WHEN due_date < $1 AND status <> 'done' THEN 1 ELSE 0 END), 0)
FROM opdrachten
WHERE user_id = $2
`
	err = s.db.QueryRowContext(
		ctx,
		selectUserStatsQuery,
		today(s.now()),
		id,
	).Scan(
		&stats.Total,
		&stats.Open,
		&stats.InProgress,
		&stats.Done,
		&stats.Overdue,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("user_id", id).
			Msg("failed to select user stats")
		return nil, err
	}
	s.logger.Debug().
		Int64("user_id", id).
		Int64("total", stats.Total).
		Msg("selected user stats")

	return stats, nil
}

// today formats the calendar date of now the way due dates are stored.
func today(now time.Time) string {
	return now.Format(time.DateOnly)
}
