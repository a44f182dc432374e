package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTableValues(t *testing.T) {
	assert.Equal(t, 10, DefaultTable.Points(EventPostTimeslot))
	assert.Equal(t, 15, DefaultTable.Points(EventAcceptMeeting))
	assert.Equal(t, 25, DefaultTable.Points(EventCompleteMeeting))
	assert.Equal(t, 20, DefaultTable.Points(EventApproveLocation))
	assert.Equal(t, 5, DefaultTable.Points(EventSubmitLocation))
}

func TestUnknownEventScoresZero(t *testing.T) {
	assert.Equal(t, 0, DefaultTable.Points(Event("NO_SUCH_EVENT")))
}

func TestTableOverride(t *testing.T) {
	custom := Table{EventPostTimeslot: 1}

	assert.Equal(t, 1, custom.Points(EventPostTimeslot))
	assert.Equal(t, 0, custom.Points(EventAcceptMeeting))
}
