package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/timbercreek/coffee-connect/pkg/db"
)

func scanLocation(row pgx.Row) (*db.Location, error) {
	var l db.Location
	var submittedBy *string
	err := row.Scan(&l.ID, &l.Name, &l.Address, &l.Latitude, &l.Longitude,
		&l.IsApproved, &submittedBy)
	if err != nil {
		return nil, err
	}
	if submittedBy != nil {
		l.SubmittedByUserID = *submittedBy
	}
	return &l, nil
}

// GetLocation retrieves a single location record
func (d *DB) GetLocation(ctx context.Context, id string) (*db.Location, error) {
	l, err := scanLocation(d.pool.QueryRow(ctx, `
		SELECT id, name, address, latitude, longitude, is_approved, submitted_by_user_id
		FROM locations WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query location: %w", err)
	}
	return l, nil
}

// ListLocations retrieves all location records ordered by name
func (d *DB) ListLocations(ctx context.Context) ([]db.Location, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, address, latitude, longitude, is_approved, submitted_by_user_id
		FROM locations
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var locations []db.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, *l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locations: %w", err)
	}

	return locations, nil
}

// InsertLocation inserts a new location record
func (d *DB) InsertLocation(ctx context.Context, l *db.Location) error {
	var submittedBy *string
	if l.SubmittedByUserID != "" {
		submittedBy = &l.SubmittedByUserID
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO locations (id, name, address, latitude, longitude, is_approved, submitted_by_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, l.ID, l.Name, l.Address, l.Latitude, l.Longitude, l.IsApproved, submittedBy)
	if err != nil {
		return fmt.Errorf("failed to insert location: %w", err)
	}
	return nil
}

// ApproveLocation marks a location as approved
func (d *DB) ApproveLocation(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE locations SET is_approved = TRUE WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to approve location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// DeleteLocationCascade removes a location together with its dependent
// timeslots and meetings in a single transaction.
func (d *DB) DeleteLocationCascade(ctx context.Context, id string) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM meetings WHERE location_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete dependent meetings: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM timeslots WHERE location_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete dependent timeslots: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
