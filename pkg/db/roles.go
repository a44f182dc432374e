package db

// Capability checks for role-gated actions. These are deliberately free of
// any UI concerns so callers never branch on the Role enum directly.

// CanDeleteBookedTimeslot reports whether the role may force-delete a
// timeslot that already has a confirmed meeting.
func CanDeleteBookedTimeslot(role Role) bool {
	return role == RoleAdministrator
}

// CanApproveLocations reports whether the role may approve submitted locations.
func CanApproveLocations(role Role) bool {
	return role == RoleAdministrator
}

// CanDeleteLocations reports whether the role may delete a location and its
// dependent timeslots and meetings.
func CanDeleteLocations(role Role) bool {
	return role == RoleAdministrator
}

// CanPostAnnouncements reports whether the role may author announcements.
func CanPostAnnouncements(role Role) bool {
	return role == RoleLeader || role == RoleAdministrator
}

// CanDeleteAnnouncements reports whether the role may remove announcements.
func CanDeleteAnnouncements(role Role) bool {
	return role == RoleAdministrator
}
