package services

import (
	"context"
	"time"

	"github.com/timbercreek/coffee-connect/pkg/db"
)

// mockStore satisfies every store interface in this package. State lives in
// maps so individual tests can seed exactly what they need; the ops slice
// records mutation order for the cascade tests.
type mockStore struct {
	users     map[string]*db.User
	timeslots map[string]*db.Timeslot
	meetings  map[string]*db.Meeting
	locations map[string]*db.Location

	announcements []db.Announcement
	points        map[string]int
	ops           []string

	insertTimeslotsErr error
	insertMeetingErr   error
	bookErr            error
	addPointsErr       error
	insertLocationErr  error

	// forceBookFail makes BookTimeslot lose the compare-and-swap even when
	// the in-memory slot looks free, simulating a concurrent booker.
	forceBookFail bool
}

func newMockStore() *mockStore {
	return &mockStore{
		users:     map[string]*db.User{},
		timeslots: map[string]*db.Timeslot{},
		meetings:  map[string]*db.Meeting{},
		locations: map[string]*db.Location{},
		points:    map[string]int{},
	}
}

func (m *mockStore) GetUser(ctx context.Context, id string) (*db.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return u, nil
}

func (m *mockStore) GetLocation(ctx context.Context, id string) (*db.Location, error) {
	l, ok := m.locations[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return l, nil
}

func (m *mockStore) GetTimeslot(ctx context.Context, id string) (*db.Timeslot, error) {
	t, ok := m.timeslots[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return t, nil
}

func (m *mockStore) InsertTimeslots(ctx context.Context, timeslots []db.Timeslot) error {
	if m.insertTimeslotsErr != nil {
		return m.insertTimeslotsErr
	}
	for i := range timeslots {
		t := timeslots[i]
		m.timeslots[t.ID] = &t
	}
	m.ops = append(m.ops, "insert_timeslots")
	return nil
}

func (m *mockStore) BookTimeslot(ctx context.Context, id, attendeeID string) (bool, error) {
	if m.bookErr != nil {
		return false, m.bookErr
	}
	t, ok := m.timeslots[id]
	if !ok || t.IsBooked || m.forceBookFail {
		return false, nil
	}
	t.IsBooked = true
	t.BookedByUserID = attendeeID
	m.ops = append(m.ops, "book_timeslot")
	return true, nil
}

func (m *mockStore) ReleaseTimeslot(ctx context.Context, id string) error {
	if t, ok := m.timeslots[id]; ok {
		t.IsBooked = false
		t.BookedByUserID = ""
	}
	m.ops = append(m.ops, "release_timeslot")
	return nil
}

func (m *mockStore) DeleteTimeslot(ctx context.Context, id string) error {
	if _, ok := m.timeslots[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.timeslots, id)
	m.ops = append(m.ops, "delete_timeslot")
	return nil
}

func (m *mockStore) InsertMeeting(ctx context.Context, meeting *db.Meeting) error {
	if m.insertMeetingErr != nil {
		return m.insertMeetingErr
	}
	copied := *meeting
	m.meetings[meeting.ID] = &copied
	m.ops = append(m.ops, "insert_meeting")
	return nil
}

func (m *mockStore) GetMeeting(ctx context.Context, id string) (*db.Meeting, error) {
	mt, ok := m.meetings[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *mt
	return &copied, nil
}

func (m *mockStore) GetConfirmedMeetingByTimeslot(ctx context.Context, timeslotID string) (*db.Meeting, error) {
	for _, mt := range m.meetings {
		if mt.TimeslotID == timeslotID && mt.Status == db.MeetingConfirmed {
			copied := *mt
			return &copied, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *mockStore) UpdateMeetingStatusFrom(ctx context.Context, id string, from, to db.MeetingStatus) (bool, error) {
	mt, ok := m.meetings[id]
	if !ok || mt.Status != from {
		return false, nil
	}
	mt.Status = to
	m.ops = append(m.ops, "update_meeting_status")
	return true, nil
}

func (m *mockStore) AddPoints(ctx context.Context, userID string, delta int) error {
	if m.addPointsErr != nil {
		return m.addPointsErr
	}
	m.points[userID] += delta
	m.ops = append(m.ops, "add_points")
	return nil
}

func (m *mockStore) InsertLocation(ctx context.Context, location *db.Location) error {
	if m.insertLocationErr != nil {
		return m.insertLocationErr
	}
	copied := *location
	m.locations[location.ID] = &copied
	return nil
}

func (m *mockStore) ApproveLocation(ctx context.Context, id string) error {
	l, ok := m.locations[id]
	if !ok {
		return db.ErrNotFound
	}
	l.IsApproved = true
	return nil
}

func (m *mockStore) DeleteLocationCascade(ctx context.Context, id string) error {
	if _, ok := m.locations[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.locations, id)
	m.ops = append(m.ops, "delete_location_cascade")
	return nil
}

func (m *mockStore) ListLocations(ctx context.Context) ([]db.Location, error) {
	var out []db.Location
	for _, l := range m.locations {
		out = append(out, *l)
	}
	return out, nil
}

func (m *mockStore) InsertAnnouncement(ctx context.Context, announcement *db.Announcement) error {
	m.announcements = append(m.announcements, *announcement)
	return nil
}

func (m *mockStore) DeleteAnnouncement(ctx context.Context, id string) error {
	for i, a := range m.announcements {
		if a.ID == id {
			m.announcements = append(m.announcements[:i], m.announcements[i+1:]...)
			return nil
		}
	}
	return db.ErrNotFound
}

func (m *mockStore) ListAnnouncements(ctx context.Context) ([]db.Announcement, error) {
	return m.announcements, nil
}

func (m *mockStore) ListUsersByPoints(ctx context.Context) ([]db.User, error) {
	var out []db.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

type sentMessage struct {
	To      string
	Message string
}

// mockNotifier records every outbound text
type mockNotifier struct {
	sent []sentMessage
	ok   bool
	err  error
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{ok: true}
}

func (m *mockNotifier) Notify(ctx context.Context, toPhoneNumber, message string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	m.sent = append(m.sent, sentMessage{To: toPhoneNumber, Message: message})
	return m.ok, nil
}

// withFixedNow pins the service clock for the duration of a test.
func withFixedNow(now time.Time) func() {
	prev := timeNow
	timeNow = func() time.Time { return now }
	return func() { timeNow = prev }
}
