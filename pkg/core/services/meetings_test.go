package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/timbercreek/coffee-connect/pkg/core/scoring"
	"github.com/timbercreek/coffee-connect/pkg/db"
)

func seedConfirmedMeeting(store *mockStore) {
	seedBookableWorld(store)
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store.timeslots["slot-1"] = &db.Timeslot{
		ID: "slot-1", HostUserID: "host-1234", LocationID: "loc-1",
		StartTime: start, IsBooked: true, BookedByUserID: "att-5678",
	}
	store.meetings["meet-1"] = &db.Meeting{
		ID: "meet-1", HostUserID: "host-1234", AttendeeUserID: "att-5678",
		TimeslotID: "slot-1", LocationID: "loc-1", StartTime: start,
		DurationMinutes: db.DurationSixtyMinutes, Status: db.MeetingConfirmed,
	}
}

func TestCancelMeeting_ByAttendee(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	store := newMockStore()
	seedConfirmedMeeting(store)
	notifier := newMockNotifier()

	meeting, err := CancelMeeting(ctx, store, notifier, logger, "meet-1", "att-5678")
	require.NoError(t, err)

	assert.Equal(t, db.MeetingCancelled, meeting.Status)
	assert.Equal(t, db.MeetingCancelled, store.meetings["meet-1"].Status)

	// The timeslot is open again
	assert.False(t, store.timeslots["slot-1"].IsBooked)
	assert.Empty(t, store.timeslots["slot-1"].BookedByUserID)

	// Only the host is texted, with the canceller named
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "+15551234", notifier.sent[0].To)
	assert.Equal(t,
		"Annie Attendee has cancelled your coffee meeting on Mar 10, 2026 9:00 AM at Corner Brew. Please check the app for updates.",
		notifier.sent[0].Message)

	// No points move on cancellation
	assert.Zero(t, store.points["host-1234"])
	assert.Zero(t, store.points["att-5678"])
}

func TestCancelMeeting_ByHostNotifiesAttendee(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	store := newMockStore()
	seedConfirmedMeeting(store)
	notifier := newMockNotifier()

	_, err := CancelMeeting(ctx, store, notifier, logger, "meet-1", "host-1234")
	require.NoError(t, err)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "+15555678", notifier.sent[0].To)
	assert.Contains(t, notifier.sent[0].Message, "Harold Host has cancelled")
}

func TestCancelMeeting_NotFound(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	store := newMockStore()

	_, err := CancelMeeting(ctx, store, newMockNotifier(), logger, "meet-missing", "att-5678")

	require.ErrorIs(t, err, ErrNotFound)
}

func TestCancelMeeting_AlreadyCancelled(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	store := newMockStore()
	seedConfirmedMeeting(store)
	store.meetings["meet-1"].Status = db.MeetingCancelled

	notifier := newMockNotifier()

	_, err := CancelMeeting(ctx, store, notifier, logger, "meet-1", "att-5678")

	require.ErrorIs(t, err, ErrInvalidState)
	assert.Empty(t, notifier.sent)
}

func TestCancelMeeting_Completed(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	store := newMockStore()
	seedConfirmedMeeting(store)
	store.meetings["meet-1"].Status = db.MeetingCompleted

	_, err := CancelMeeting(ctx, store, newMockNotifier(), logger, "meet-1", "host-1234")

	require.ErrorIs(t, err, ErrInvalidState)
	// The slot stays booked; a completed meeting never frees it
	assert.True(t, store.timeslots["slot-1"].IsBooked)
}

func TestCompleteMeeting_AwardsBothParties(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	store := newMockStore()
	seedConfirmedMeeting(store)

	meeting, err := CompleteMeeting(ctx, store, scoring.DefaultTable, logger, "meet-1")
	require.NoError(t, err)

	assert.Equal(t, db.MeetingCompleted, meeting.Status)
	assert.Equal(t, db.MeetingCompleted, store.meetings["meet-1"].Status)
	assert.Equal(t, 25, store.points["host-1234"])
	assert.Equal(t, 25, store.points["att-5678"])

	// Completion keeps the slot consumed
	assert.True(t, store.timeslots["slot-1"].IsBooked)
}

func TestCompleteMeeting_NotConfirmed(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	store := newMockStore()
	seedConfirmedMeeting(store)
	store.meetings["meet-1"].Status = db.MeetingCancelled

	_, err := CompleteMeeting(ctx, store, scoring.DefaultTable, logger, "meet-1")

	require.ErrorIs(t, err, ErrInvalidState)
	assert.Zero(t, store.points["host-1234"])
}

func TestCompleteMeeting_NotFound(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	store := newMockStore()

	_, err := CompleteMeeting(ctx, store, scoring.DefaultTable, logger, "meet-missing")

	require.ErrorIs(t, err, ErrNotFound)
}
