package db

import "time"

// Role is a user's community role. Roles gate administrative actions;
// see roles.go for the capability checks.
type Role string

const (
	RoleMember        Role = "Member"
	RoleLeader        Role = "Leader"
	RoleAdministrator Role = "Administrator"
)

// MeetingStatus is the lifecycle state of a meeting.
type MeetingStatus string

const (
	MeetingConfirmed MeetingStatus = "CONFIRMED"
	MeetingCancelled MeetingStatus = "CANCELLED"
	MeetingCompleted MeetingStatus = "COMPLETED"
)

// Allowed timeslot durations in minutes.
const (
	DurationThirtyMinutes = 30
	DurationSixtyMinutes  = 60
)

// User represents a community member record
type User struct {
	ID             string
	Name           string
	Email          string
	Role           Role
	Points         int
	ProfilePicture string
	Bio            string
}

// Timeslot represents a host-offered availability window.
// BookedByUserID is set if and only if IsBooked is true.
type Timeslot struct {
	ID              string
	HostUserID      string
	StartTime       time.Time
	DurationMinutes int
	LocationID      string
	IsBooked        bool
	BookedByUserID  string
	RepeatWeekly    bool
}

// Meeting represents a confirmed pairing of host and attendee against a
// timeslot. At most one non-cancelled meeting references a given timeslot;
// the booking transition enforces that.
type Meeting struct {
	ID              string
	HostUserID      string
	AttendeeUserID  string
	TimeslotID      string
	LocationID      string
	StartTime       time.Time
	DurationMinutes int
	Status          MeetingStatus
}

// Location represents a meeting venue record
type Location struct {
	ID                string
	Name              string
	Address           string
	Latitude          float64
	Longitude         float64
	IsApproved        bool
	SubmittedByUserID string
}

// Announcement represents a community announcement record
type Announcement struct {
	ID           string
	Title        string
	Content      string
	AuthorUserID string
	Timestamp    time.Time
}

// ValidDuration reports whether minutes is an allowed timeslot duration.
func ValidDuration(minutes int) bool {
	return minutes == DurationThirtyMinutes || minutes == DurationSixtyMinutes
}
