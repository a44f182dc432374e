package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/timbercreek/coffee-connect/pkg/db"
)

func scanTimeslot(row pgx.Row) (*db.Timeslot, error) {
	var t db.Timeslot
	var bookedBy *string
	err := row.Scan(&t.ID, &t.HostUserID, &t.StartTime, &t.DurationMinutes,
		&t.LocationID, &t.IsBooked, &bookedBy, &t.RepeatWeekly)
	if err != nil {
		return nil, err
	}
	if bookedBy != nil {
		t.BookedByUserID = *bookedBy
	}
	return &t, nil
}

// GetTimeslot retrieves a single timeslot record
func (d *DB) GetTimeslot(ctx context.Context, id string) (*db.Timeslot, error) {
	t, err := scanTimeslot(d.pool.QueryRow(ctx, `
		SELECT id, host_user_id, start_time, duration_minutes, location_id,
		       is_booked, booked_by_user_id, repeat_weekly
		FROM timeslots WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query timeslot: %w", err)
	}
	return t, nil
}

// ListTimeslots retrieves all timeslot records ordered by start time
func (d *DB) ListTimeslots(ctx context.Context) ([]db.Timeslot, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, host_user_id, start_time, duration_minutes, location_id,
		       is_booked, booked_by_user_id, repeat_weekly
		FROM timeslots
		ORDER BY start_time
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query timeslots: %w", err)
	}
	defer rows.Close()

	var timeslots []db.Timeslot
	for rows.Next() {
		t, err := scanTimeslot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timeslot: %w", err)
		}
		timeslots = append(timeslots, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating timeslots: %w", err)
	}

	return timeslots, nil
}

// InsertTimeslots inserts timeslot records in a single transaction, so a
// repeat-weekly batch lands all-or-nothing.
func (d *DB) InsertTimeslots(ctx context.Context, timeslots []db.Timeslot) error {
	if len(timeslots) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, t := range timeslots {
		var bookedBy *string
		if t.BookedByUserID != "" {
			bookedBy = &t.BookedByUserID
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO timeslots (id, host_user_id, start_time, duration_minutes,
			                       location_id, is_booked, booked_by_user_id, repeat_weekly)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, t.ID, t.HostUserID, t.StartTime, t.DurationMinutes,
			t.LocationID, t.IsBooked, bookedBy, t.RepeatWeekly)
		if err != nil {
			return fmt.Errorf("failed to insert timeslot: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// BookTimeslot conditionally marks a timeslot as booked by the attendee.
// The update only matches an unbooked row, so of two racing bookings exactly
// one observes a row change; the other caller must treat the false return as
// a lost race.
func (d *DB) BookTimeslot(ctx context.Context, id, attendeeID string) (bool, error) {
	tag, err := d.pool.Exec(ctx, `
		UPDATE timeslots
		SET is_booked = TRUE, booked_by_user_id = $2
		WHERE id = $1 AND is_booked = FALSE
	`, id, attendeeID)
	if err != nil {
		return false, fmt.Errorf("failed to book timeslot: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ReleaseTimeslot returns a timeslot to the open pool. The release is
// idempotent; releasing an already-open slot is a no-op.
func (d *DB) ReleaseTimeslot(ctx context.Context, id string) error {
	_, err := d.pool.Exec(ctx, `
		UPDATE timeslots
		SET is_booked = FALSE, booked_by_user_id = NULL
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to release timeslot: %w", err)
	}
	return nil
}

// DeleteTimeslot removes a timeslot record
func (d *DB) DeleteTimeslot(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM timeslots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete timeslot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
