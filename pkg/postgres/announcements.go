package postgres

import (
	"context"
	"fmt"

	"github.com/timbercreek/coffee-connect/pkg/db"
)

// InsertAnnouncement inserts a new announcement record
func (d *DB) InsertAnnouncement(ctx context.Context, a *db.Announcement) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO announcements (id, title, content, author_user_id, timestamp)
		VALUES ($1, $2, $3, $4, $5)
	`, a.ID, a.Title, a.Content, a.AuthorUserID, a.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert announcement: %w", err)
	}
	return nil
}

// DeleteAnnouncement removes an announcement record
func (d *DB) DeleteAnnouncement(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// ListAnnouncements retrieves all announcements, newest first
func (d *DB) ListAnnouncements(ctx context.Context) ([]db.Announcement, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, title, content, author_user_id, timestamp
		FROM announcements
		ORDER BY timestamp DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query announcements: %w", err)
	}
	defer rows.Close()

	var announcements []db.Announcement
	for rows.Next() {
		var a db.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.AuthorUserID, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan announcement: %w", err)
		}
		announcements = append(announcements, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating announcements: %w", err)
	}

	return announcements, nil
}
