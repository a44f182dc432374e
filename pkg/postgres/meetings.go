package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/timbercreek/coffee-connect/pkg/db"
)

const meetingColumns = `id, host_user_id, attendee_user_id, timeslot_id,
	location_id, start_time, duration_minutes, status`

func scanMeeting(row pgx.Row) (*db.Meeting, error) {
	var m db.Meeting
	err := row.Scan(&m.ID, &m.HostUserID, &m.AttendeeUserID, &m.TimeslotID,
		&m.LocationID, &m.StartTime, &m.DurationMinutes, &m.Status)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMeeting retrieves a single meeting record
func (d *DB) GetMeeting(ctx context.Context, id string) (*db.Meeting, error) {
	m, err := scanMeeting(d.pool.QueryRow(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query meeting: %w", err)
	}
	return m, nil
}

// GetConfirmedMeetingByTimeslot retrieves the confirmed meeting referencing
// a timeslot. The booking transition guarantees at most one exists.
func (d *DB) GetConfirmedMeetingByTimeslot(ctx context.Context, timeslotID string) (*db.Meeting, error) {
	m, err := scanMeeting(d.pool.QueryRow(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE timeslot_id = $1 AND status = $2`,
		timeslotID, db.MeetingConfirmed))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query meeting by timeslot: %w", err)
	}
	return m, nil
}

// ListMeetings retrieves all meeting records ordered by start time
func (d *DB) ListMeetings(ctx context.Context) ([]db.Meeting, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT `+meetingColumns+` FROM meetings ORDER BY start_time`)
	if err != nil {
		return nil, fmt.Errorf("failed to query meetings: %w", err)
	}
	defer rows.Close()

	var meetings []db.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meeting: %w", err)
		}
		meetings = append(meetings, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meetings: %w", err)
	}

	return meetings, nil
}

// InsertMeeting inserts a new meeting record
func (d *DB) InsertMeeting(ctx context.Context, m *db.Meeting) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO meetings (id, host_user_id, attendee_user_id, timeslot_id,
		                      location_id, start_time, duration_minutes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, m.ID, m.HostUserID, m.AttendeeUserID, m.TimeslotID,
		m.LocationID, m.StartTime, m.DurationMinutes, m.Status)
	if err != nil {
		return fmt.Errorf("failed to insert meeting: %w", err)
	}
	return nil
}

// UpdateMeetingStatusFrom conditionally transitions a meeting's status. The
// update only matches the expected current status, so concurrent
// cancel/complete attempts resolve to exactly one winner.
func (d *DB) UpdateMeetingStatusFrom(ctx context.Context, id string, from, to db.MeetingStatus) (bool, error) {
	tag, err := d.pool.Exec(ctx, `
		UPDATE meetings SET status = $3 WHERE id = $1 AND status = $2
	`, id, from, to)
	if err != nil {
		return false, fmt.Errorf("failed to update meeting status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
