package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/timbercreek/coffee-connect/pkg/db"
)

// GetUser retrieves a single user record
func (d *DB) GetUser(ctx context.Context, id string) (*db.User, error) {
	var u db.User
	err := d.pool.QueryRow(ctx, `
		SELECT id, name, email, role, points, profile_picture, bio
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Points, &u.ProfilePicture, &u.Bio)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

// InsertUser inserts a new user record
func (d *DB) InsertUser(ctx context.Context, user *db.User) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO users (id, name, email, role, points, profile_picture, bio)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.Name, user.Email, user.Role, user.Points, user.ProfilePicture, user.Bio)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// UpdateUser updates a user's profile fields. Points are untouched here;
// use AddPoints so concurrent awards never lose updates.
func (d *DB) UpdateUser(ctx context.Context, user *db.User) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE users SET name = $2, email = $3, role = $4, profile_picture = $5, bio = $6
		WHERE id = $1
	`, user.ID, user.Name, user.Email, user.Role, user.ProfilePicture, user.Bio)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// DeleteUser removes a user record
func (d *DB) DeleteUser(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// AddPoints applies a point delta as an atomic increment so interleaved
// scoring events for the same user cannot lose updates.
func (d *DB) AddPoints(ctx context.Context, userID string, delta int) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE users SET points = points + $2 WHERE id = $1
	`, userID, delta)
	if err != nil {
		return fmt.Errorf("failed to add points: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// ListUsersByPoints retrieves all users ordered by points, highest first
func (d *DB) ListUsersByPoints(ctx context.Context) ([]db.User, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, email, role, points, profile_picture, bio
		FROM users
		ORDER BY points DESC, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []db.User
	for rows.Next() {
		var u db.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Points, &u.ProfilePicture, &u.Bio); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}
