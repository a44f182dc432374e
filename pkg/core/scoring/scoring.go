package scoring

// Event is a lifecycle transition that triggers a point award.
type Event string

const (
	EventPostTimeslot    Event = "POST_TIMESLOT"
	EventAcceptMeeting   Event = "ACCEPT_MEETING"
	EventCompleteMeeting Event = "COMPLETE_MEETING"
	EventApproveLocation Event = "APPROVE_LOCATION"
	EventSubmitLocation  Event = "SUBMIT_LOCATION"
)

// Table maps scoring events to point deltas. Deltas are always applied
// additively; points are never revoked once granted.
type Table map[Event]int

// DefaultTable holds the community point values.
var DefaultTable = Table{
	EventPostTimeslot:    10,
	EventAcceptMeeting:   15,
	EventCompleteMeeting: 25,
	EventApproveLocation: 20,
	EventSubmitLocation:  5,
}

// Points returns the point delta for an event. Unknown events score zero.
func (t Table) Points(event Event) int {
	return t[event]
}
