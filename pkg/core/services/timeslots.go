package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/timbercreek/coffee-connect/pkg/core/scoring"
	"github.com/timbercreek/coffee-connect/pkg/db"
	"github.com/timbercreek/coffee-connect/pkg/ics"
)

// TimeslotCreateStore defines the database operations needed to post timeslots
type TimeslotCreateStore interface {
	GetLocation(ctx context.Context, id string) (*db.Location, error)
	InsertTimeslots(ctx context.Context, timeslots []db.Timeslot) error
	AddPoints(ctx context.Context, userID string, delta int) error
}

// TimeslotBookingStore defines the database operations needed to book a
// timeslot and create its meeting
type TimeslotBookingStore interface {
	GetTimeslot(ctx context.Context, id string) (*db.Timeslot, error)
	BookTimeslot(ctx context.Context, id, attendeeID string) (bool, error)
	ReleaseTimeslot(ctx context.Context, id string) error
	InsertMeeting(ctx context.Context, meeting *db.Meeting) error
	GetUser(ctx context.Context, id string) (*db.User, error)
	GetLocation(ctx context.Context, id string) (*db.Location, error)
	AddPoints(ctx context.Context, userID string, delta int) error
}

// TimeslotDeleteStore defines the database operations needed to delete a
// timeslot, including the admin cascade over a booked one
type TimeslotDeleteStore interface {
	GetTimeslot(ctx context.Context, id string) (*db.Timeslot, error)
	DeleteTimeslot(ctx context.Context, id string) error
	GetConfirmedMeetingByTimeslot(ctx context.Context, timeslotID string) (*db.Meeting, error)
	UpdateMeetingStatusFrom(ctx context.Context, id string, from, to db.MeetingStatus) (bool, error)
	ReleaseTimeslot(ctx context.Context, id string) error
	GetUser(ctx context.Context, id string) (*db.User, error)
	GetLocation(ctx context.Context, id string) (*db.Location, error)
}

// CreateTimeslotParams describes a new availability window posted by a host
type CreateTimeslotParams struct {
	HostID          string
	StartTime       time.Time
	DurationMinutes int
	LocationID      string
	RepeatWeekly    bool
}

// AcceptResult is returned when a timeslot is booked: the confirmed meeting
// plus the rendered calendar invite for the parties.
type AcceptResult struct {
	Meeting      db.Meeting
	CalendarFile string
}

// CreateTimeslot posts a host's availability window. A repeat-weekly slot is
// expanded into recurrenceCount additional weekly occurrences, none of which
// repeat again themselves. The host earns posting points for every
// occurrence created.
func CreateTimeslot(
	ctx context.Context,
	store TimeslotCreateStore,
	scores scoring.Table,
	logger *zap.Logger,
	params CreateTimeslotParams,
	recurrenceCount int,
) ([]db.Timeslot, error) {
	logger.Info("Creating timeslot",
		zap.String("host_id", params.HostID),
		zap.Time("start_time", params.StartTime),
		zap.Bool("repeat_weekly", params.RepeatWeekly))

	if !params.StartTime.After(timeNow()) {
		return nil, ErrInvalidTime
	}
	if !db.ValidDuration(params.DurationMinutes) {
		return nil, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, params.DurationMinutes)
	}

	location, err := store.GetLocation(ctx, params.LocationID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("location %s: %w", params.LocationID, ErrNotFound)
		}
		return nil, storeErr("create timeslot", err)
	}
	if !location.IsApproved {
		return nil, fmt.Errorf("location %s: %w", params.LocationID, ErrLocationNotApproved)
	}

	starts, err := occurrenceTimes(params.StartTime, params.RepeatWeekly, recurrenceCount)
	if err != nil {
		return nil, fmt.Errorf("failed to expand recurrence: %w", err)
	}

	timeslots := make([]db.Timeslot, 0, len(starts))
	for i, start := range starts {
		timeslots = append(timeslots, db.Timeslot{
			ID:              uuid.New().String(),
			HostUserID:      params.HostID,
			StartTime:       start,
			DurationMinutes: params.DurationMinutes,
			LocationID:      params.LocationID,
			// Only the first occurrence carries the repeat flag; copies must
			// not spawn further chains.
			RepeatWeekly: params.RepeatWeekly && i == 0,
		})
	}

	if err := store.InsertTimeslots(ctx, timeslots); err != nil {
		return nil, storeErr("create timeslot", err)
	}

	postDelta := scores.Points(scoring.EventPostTimeslot)
	for range timeslots {
		if err := store.AddPoints(ctx, params.HostID, postDelta); err != nil {
			logger.Error("Failed to award posting points",
				zap.String("host_id", params.HostID), zap.Error(err))
			break
		}
	}

	logger.Info("Timeslots created",
		zap.Int("count", len(timeslots)),
		zap.Int("points_each", postDelta))

	return timeslots, nil
}

// occurrenceTimes expands a start time into its weekly occurrences using an
// RRULE (FREQ=WEEKLY). A non-repeating slot yields just the start time.
func occurrenceTimes(start time.Time, repeatWeekly bool, recurrenceCount int) ([]time.Time, error) {
	if !repeatWeekly || recurrenceCount <= 0 {
		return []time.Time{start}, nil
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.WEEKLY,
		Count:   recurrenceCount + 1,
		Dtstart: start,
	})
	if err != nil {
		return nil, err
	}

	return rule.All(), nil
}

// AcceptTimeslot books an open timeslot for an attendee and creates the
// confirmed meeting atomically from the caller's perspective: the booking is
// a compare-and-swap on the unbooked state, and a failed meeting insert
// rolls the booking back. Both parties earn acceptance points and receive a
// confirmation text; the rendered calendar invite is returned.
func AcceptTimeslot(
	ctx context.Context,
	store TimeslotBookingStore,
	notifier Notifier,
	scores scoring.Table,
	logger *zap.Logger,
	timeslotID, attendeeID string,
) (*AcceptResult, error) {
	logger.Info("Accepting timeslot",
		zap.String("timeslot_id", timeslotID),
		zap.String("attendee_id", attendeeID))

	timeslot, err := store.GetTimeslot(ctx, timeslotID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("timeslot %s: %w", timeslotID, ErrNotFound)
		}
		return nil, storeErr("accept timeslot", err)
	}
	if timeslot.HostUserID == attendeeID {
		return nil, ErrSelfBooking
	}
	if timeslot.IsBooked {
		return nil, fmt.Errorf("timeslot %s is no longer available: %w", timeslotID, ErrNotFound)
	}

	booked, err := store.BookTimeslot(ctx, timeslotID, attendeeID)
	if err != nil {
		return nil, storeErr("accept timeslot", err)
	}
	if !booked {
		// Someone else won the compare-and-swap between our read and write.
		return nil, fmt.Errorf("timeslot %s: %w", timeslotID, ErrConflict)
	}

	meeting := db.Meeting{
		ID:              uuid.New().String(),
		HostUserID:      timeslot.HostUserID,
		AttendeeUserID:  attendeeID,
		TimeslotID:      timeslot.ID,
		LocationID:      timeslot.LocationID,
		StartTime:       timeslot.StartTime,
		DurationMinutes: timeslot.DurationMinutes,
		Status:          db.MeetingConfirmed,
	}

	if err := store.InsertMeeting(ctx, &meeting); err != nil {
		// Compensate: a booked timeslot with no meeting violates the core
		// consistency obligation, so release the booking before failing.
		if relErr := store.ReleaseTimeslot(ctx, timeslotID); relErr != nil {
			logger.Error("Failed to release timeslot after meeting insert failure",
				zap.String("timeslot_id", timeslotID), zap.Error(relErr))
		}
		return nil, storeErr("accept timeslot", err)
	}

	acceptDelta := scores.Points(scoring.EventAcceptMeeting)
	for _, userID := range []string{meeting.HostUserID, meeting.AttendeeUserID} {
		if err := store.AddPoints(ctx, userID, acceptDelta); err != nil {
			logger.Error("Failed to award acceptance points",
				zap.String("user_id", userID), zap.Error(err))
		}
	}

	result := &AcceptResult{Meeting: meeting}

	host, hostErr := store.GetUser(ctx, meeting.HostUserID)
	attendee, attErr := store.GetUser(ctx, meeting.AttendeeUserID)
	location, locErr := store.GetLocation(ctx, meeting.LocationID)
	if hostErr != nil || attErr != nil || locErr != nil {
		logger.Warn("Skipping confirmation messaging, party lookup failed",
			zap.NamedError("host_err", hostErr),
			zap.NamedError("attendee_err", attErr),
			zap.NamedError("location_err", locErr))
		return result, nil
	}

	sendText(ctx, notifier, logger, ContactNumber(host),
		hostConfirmationMessage(attendee, meeting.StartTime, location))
	sendText(ctx, notifier, logger, ContactNumber(attendee),
		attendeeConfirmationMessage(host, meeting.StartTime, location))

	result.CalendarFile = ics.Generate(&meeting, location, host, attendee, timeNow())

	logger.Info("Meeting confirmed",
		zap.String("meeting_id", meeting.ID),
		zap.String("host_id", meeting.HostUserID),
		zap.String("attendee_id", meeting.AttendeeUserID))

	return result, nil
}

// DeleteTimeslot removes an availability window. An unbooked slot may be
// deleted by its host or an administrator. A booked slot may only be deleted
// by an administrator, which first cancels the confirmed meeting through the
// normal cancellation path (freeing the slot and texting both parties with
// an admin-attributed cancellation) and then removes the row. Points are
// never revoked on deletion.
func DeleteTimeslot(
	ctx context.Context,
	store TimeslotDeleteStore,
	notifier Notifier,
	logger *zap.Logger,
	timeslotID, requesterID string,
	requesterRole db.Role,
) error {
	logger.Info("Deleting timeslot",
		zap.String("timeslot_id", timeslotID),
		zap.String("requester_id", requesterID))

	timeslot, err := store.GetTimeslot(ctx, timeslotID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("timeslot %s: %w", timeslotID, ErrNotFound)
		}
		return storeErr("delete timeslot", err)
	}

	if !timeslot.IsBooked {
		if requesterID != timeslot.HostUserID && requesterRole != db.RoleAdministrator {
			return fmt.Errorf("only the host or an administrator may delete a timeslot: %w", ErrForbidden)
		}
		if err := store.DeleteTimeslot(ctx, timeslotID); err != nil {
			return storeErr("delete timeslot", err)
		}
		logger.Info("Timeslot deleted", zap.String("timeslot_id", timeslotID))
		return nil
	}

	if !db.CanDeleteBookedTimeslot(requesterRole) {
		return fmt.Errorf("timeslot is booked, cancel the meeting first: %w", ErrForbidden)
	}

	meeting, err := store.GetConfirmedMeetingByTimeslot(ctx, timeslotID)
	switch {
	case errors.Is(err, db.ErrNotFound):
		// Booked slot without a confirmed meeting; nothing to cancel.
	case err != nil:
		return storeErr("delete timeslot", err)
	default:
		// Cancel first so the cancellation texts go out before the row
		// disappears. The cancel also frees the slot; the hard delete below
		// makes that moot but keeps the ordering observable.
		if err := transitionMeeting(ctx, store, meeting, db.MeetingCancelled); err != nil {
			return err
		}
		notifyAdminCancellation(ctx, store, notifier, logger, meeting)
	}

	if err := store.DeleteTimeslot(ctx, timeslotID); err != nil {
		return storeErr("delete timeslot", err)
	}

	logger.Info("Booked timeslot deleted by administrator",
		zap.String("timeslot_id", timeslotID))
	return nil
}

// notifyAdminCancellation texts both parties that an administrator cancelled
// their meeting. Lookup failures downgrade to a log entry.
func notifyAdminCancellation(
	ctx context.Context,
	store TimeslotDeleteStore,
	notifier Notifier,
	logger *zap.Logger,
	meeting *db.Meeting,
) {
	host, hostErr := store.GetUser(ctx, meeting.HostUserID)
	attendee, attErr := store.GetUser(ctx, meeting.AttendeeUserID)
	location, locErr := store.GetLocation(ctx, meeting.LocationID)
	if hostErr != nil || attErr != nil || locErr != nil {
		logger.Warn("Skipping admin cancellation messaging, party lookup failed",
			zap.NamedError("host_err", hostErr),
			zap.NamedError("attendee_err", attErr),
			zap.NamedError("location_err", locErr))
		return
	}

	sendText(ctx, notifier, logger, ContactNumber(host),
		adminCancellationMessage(attendee, meeting.StartTime, location))
	sendText(ctx, notifier, logger, ContactNumber(attendee),
		adminCancellationMessage(host, meeting.StartTime, location))
}
