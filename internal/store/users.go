package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mateo/matchwork/internal/types"
)

const userColumns = `id, name, COALESCE(bio, ''), skills, COALESCE(location, ''),
	experience_level, COALESCE(profile_image, ''), created_at, updated_at`

// GetUserByID retrieves a candidate profile by ID. Returns (nil, nil) when
// no row matches.
func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ListUsersBySkills retrieves candidates whose skill set overlaps any of the
// given skills, excluding one user (typically the requester), newest first.
func (s *Store) ListUsersBySkills(ctx context.Context, skills []string, exclude uuid.UUID, limit int) ([]types.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE skills && $1 AND id <> $2
		 ORDER BY created_at DESC LIMIT $3`,
		skills, exclude, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by skills: %w", err)
	}
	defer rows.Close()

	var users []types.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (*types.User, error) {
	var user types.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Bio, &user.Skills, &user.Location,
		&user.Experience, &user.ProfileImage, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
