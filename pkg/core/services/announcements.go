package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/timbercreek/coffee-connect/pkg/db"
)

// AnnouncementStore defines the database operations for announcements
type AnnouncementStore interface {
	InsertAnnouncement(ctx context.Context, announcement *db.Announcement) error
	DeleteAnnouncement(ctx context.Context, id string) error
	ListAnnouncements(ctx context.Context) ([]db.Announcement, error)
}

// PostAnnouncementParams describes a new community announcement
type PostAnnouncementParams struct {
	Title      string
	Content    string
	AuthorID   string
	AuthorRole db.Role
}

// PostAnnouncement publishes a community announcement. Leaders and
// administrators only.
func PostAnnouncement(
	ctx context.Context,
	store AnnouncementStore,
	logger *zap.Logger,
	params PostAnnouncementParams,
) (*db.Announcement, error) {
	if !db.CanPostAnnouncements(params.AuthorRole) {
		return nil, fmt.Errorf("only leaders and administrators may post announcements: %w", ErrForbidden)
	}

	announcement := &db.Announcement{
		ID:           uuid.New().String(),
		Title:        params.Title,
		Content:      params.Content,
		AuthorUserID: params.AuthorID,
		Timestamp:    timeNow(),
	}

	if err := store.InsertAnnouncement(ctx, announcement); err != nil {
		return nil, storeErr("post announcement", err)
	}

	logger.Info("Announcement posted",
		zap.String("announcement_id", announcement.ID),
		zap.String("author_id", params.AuthorID))

	return announcement, nil
}

// DeleteAnnouncement removes an announcement. Administrator only.
func DeleteAnnouncement(
	ctx context.Context,
	store AnnouncementStore,
	logger *zap.Logger,
	announcementID string,
	requesterRole db.Role,
) error {
	if !db.CanDeleteAnnouncements(requesterRole) {
		return fmt.Errorf("only administrators may delete announcements: %w", ErrForbidden)
	}

	if err := store.DeleteAnnouncement(ctx, announcementID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("announcement %s: %w", announcementID, ErrNotFound)
		}
		return storeErr("delete announcement", err)
	}

	logger.Info("Announcement deleted", zap.String("announcement_id", announcementID))
	return nil
}

// ListAnnouncements returns announcements newest first.
func ListAnnouncements(ctx context.Context, store AnnouncementStore) ([]db.Announcement, error) {
	announcements, err := store.ListAnnouncements(ctx)
	if err != nil {
		return nil, storeErr("list announcements", err)
	}
	return announcements, nil
}
