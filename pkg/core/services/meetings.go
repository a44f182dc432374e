package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/timbercreek/coffee-connect/pkg/core/scoring"
	"github.com/timbercreek/coffee-connect/pkg/db"
)

// MeetingCancelStore defines the database operations needed to cancel a meeting
type MeetingCancelStore interface {
	GetMeeting(ctx context.Context, id string) (*db.Meeting, error)
	UpdateMeetingStatusFrom(ctx context.Context, id string, from, to db.MeetingStatus) (bool, error)
	ReleaseTimeslot(ctx context.Context, id string) error
	GetUser(ctx context.Context, id string) (*db.User, error)
	GetLocation(ctx context.Context, id string) (*db.Location, error)
}

// MeetingCompleteStore defines the database operations needed to mark a
// meeting completed
type MeetingCompleteStore interface {
	GetMeeting(ctx context.Context, id string) (*db.Meeting, error)
	UpdateMeetingStatusFrom(ctx context.Context, id string, from, to db.MeetingStatus) (bool, error)
	AddPoints(ctx context.Context, userID string, delta int) error
}

// meetingTransitionStore is the slice of store behaviour shared by the
// cancel paths (direct cancel and the admin cascade delete).
type meetingTransitionStore interface {
	UpdateMeetingStatusFrom(ctx context.Context, id string, from, to db.MeetingStatus) (bool, error)
	ReleaseTimeslot(ctx context.Context, id string) error
}

// transitionMeeting moves a CONFIRMED meeting to a terminal state and, for
// cancellations, releases the linked timeslot so it becomes bookable again.
// The status write is conditional on the meeting still being CONFIRMED, so
// racing transitions resolve to exactly one winner.
func transitionMeeting(ctx context.Context, store meetingTransitionStore, meeting *db.Meeting, to db.MeetingStatus) error {
	moved, err := store.UpdateMeetingStatusFrom(ctx, meeting.ID, db.MeetingConfirmed, to)
	if err != nil {
		return storeErr("transition meeting", err)
	}
	if !moved {
		return fmt.Errorf("meeting %s is not confirmed: %w", meeting.ID, ErrInvalidState)
	}
	meeting.Status = to

	if to == db.MeetingCancelled {
		if err := store.ReleaseTimeslot(ctx, meeting.TimeslotID); err != nil {
			return storeErr("release timeslot", err)
		}
	}
	return nil
}

// CancelMeeting cancels a confirmed meeting and releases its timeslot back
// to the open pool. The non-cancelling party is texted with the canceller
// identified by name. No points change hands.
func CancelMeeting(
	ctx context.Context,
	store MeetingCancelStore,
	notifier Notifier,
	logger *zap.Logger,
	meetingID, cancellingUserID string,
) (*db.Meeting, error) {
	logger.Info("Cancelling meeting",
		zap.String("meeting_id", meetingID),
		zap.String("cancelling_user_id", cancellingUserID))

	meeting, err := store.GetMeeting(ctx, meetingID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("meeting %s: %w", meetingID, ErrNotFound)
		}
		return nil, storeErr("cancel meeting", err)
	}
	if meeting.Status != db.MeetingConfirmed {
		return nil, fmt.Errorf("meeting %s is %s: %w", meetingID, meeting.Status, ErrInvalidState)
	}

	if err := transitionMeeting(ctx, store, meeting, db.MeetingCancelled); err != nil {
		return nil, err
	}

	notifyCancellation(ctx, store, notifier, logger, meeting, cancellingUserID)

	logger.Info("Meeting cancelled",
		zap.String("meeting_id", meeting.ID),
		zap.String("timeslot_id", meeting.TimeslotID))

	return meeting, nil
}

// notifyCancellation texts the party who did not cancel. Lookup failures
// downgrade to a log entry; the cancellation itself already stuck.
func notifyCancellation(
	ctx context.Context,
	store MeetingCancelStore,
	notifier Notifier,
	logger *zap.Logger,
	meeting *db.Meeting,
	cancellingUserID string,
) {
	otherPartyID := meeting.HostUserID
	if cancellingUserID == meeting.HostUserID {
		otherPartyID = meeting.AttendeeUserID
	}

	canceller, cancErr := store.GetUser(ctx, cancellingUserID)
	otherParty, otherErr := store.GetUser(ctx, otherPartyID)
	location, locErr := store.GetLocation(ctx, meeting.LocationID)
	if cancErr != nil || otherErr != nil || locErr != nil {
		logger.Warn("Skipping cancellation messaging, party lookup failed",
			zap.NamedError("canceller_err", cancErr),
			zap.NamedError("other_party_err", otherErr),
			zap.NamedError("location_err", locErr))
		return
	}

	sendText(ctx, notifier, logger, ContactNumber(otherParty),
		cancellationMessage(canceller.Name, meeting.StartTime, location))
}

// CompleteMeeting marks a confirmed meeting as completed and awards
// completion points to both parties.
func CompleteMeeting(
	ctx context.Context,
	store MeetingCompleteStore,
	scores scoring.Table,
	logger *zap.Logger,
	meetingID string,
) (*db.Meeting, error) {
	logger.Info("Completing meeting", zap.String("meeting_id", meetingID))

	meeting, err := store.GetMeeting(ctx, meetingID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("meeting %s: %w", meetingID, ErrNotFound)
		}
		return nil, storeErr("complete meeting", err)
	}
	if meeting.Status != db.MeetingConfirmed {
		return nil, fmt.Errorf("meeting %s is %s: %w", meetingID, meeting.Status, ErrInvalidState)
	}

	moved, err := store.UpdateMeetingStatusFrom(ctx, meeting.ID, db.MeetingConfirmed, db.MeetingCompleted)
	if err != nil {
		return nil, storeErr("complete meeting", err)
	}
	if !moved {
		return nil, fmt.Errorf("meeting %s is not confirmed: %w", meetingID, ErrInvalidState)
	}
	meeting.Status = db.MeetingCompleted

	completeDelta := scores.Points(scoring.EventCompleteMeeting)
	for _, userID := range []string{meeting.HostUserID, meeting.AttendeeUserID} {
		if err := store.AddPoints(ctx, userID, completeDelta); err != nil {
			logger.Error("Failed to award completion points",
				zap.String("user_id", userID), zap.Error(err))
		}
	}

	logger.Info("Meeting completed",
		zap.String("meeting_id", meeting.ID),
		zap.Int("points_each", completeDelta))

	return meeting, nil
}
