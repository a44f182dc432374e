package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/timbercreek/coffee-connect/pkg/db"
)

// Notifier sends an outbound text message to a recipient. Sends are
// fire-and-forget: lifecycle transitions never block or roll back on a
// failed send.
type Notifier interface {
	Notify(ctx context.Context, toPhoneNumber, message string) (bool, error)
}

// messageTimeLayout matches the "MMM dd, yyyy h:mm a" wording used in
// member-facing texts.
const messageTimeLayout = "Jan 02, 2006 3:04 PM"

// ContactNumber derives a member's SMS contact from their user ID. Real
// phone numbers are not stored; the community line prefixes the last four
// characters of the ID.
func ContactNumber(user *db.User) string {
	suffix := user.ID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}
	return "+1555" + suffix
}

func hostConfirmationMessage(attendee *db.User, startTime time.Time, location *db.Location) string {
	return fmt.Sprintf("SUCCESS! You have a coffee meeting with %s on %s at %s. Check your in-app calendar for details and an .ics file!",
		attendee.Name, startTime.Format(messageTimeLayout), location.Name)
}

func attendeeConfirmationMessage(host *db.User, startTime time.Time, location *db.Location) string {
	return fmt.Sprintf("SUCCESS! You're meeting %s on %s at %s. Check your in-app calendar for details and an .ics file!",
		host.Name, startTime.Format(messageTimeLayout), location.Name)
}

func cancellationMessage(cancellerName string, startTime time.Time, location *db.Location) string {
	return fmt.Sprintf("%s has cancelled your coffee meeting on %s at %s. Please check the app for updates.",
		cancellerName, startTime.Format(messageTimeLayout), location.Name)
}

func adminCancellationMessage(otherParty *db.User, startTime time.Time, location *db.Location) string {
	return fmt.Sprintf("ALERT: Your meeting with %s on %s at %s has been cancelled by an administrator.",
		otherParty.Name, startTime.Format(messageTimeLayout), location.Name)
}

// sendText dispatches a message and logs failures without propagating them.
func sendText(ctx context.Context, notifier Notifier, logger *zap.Logger, to, message string) {
	if notifier == nil {
		return
	}

	ok, err := notifier.Notify(ctx, to, message)
	if err != nil {
		logger.Warn("Failed to send SMS", zap.String("to", to), zap.Error(err))
		return
	}
	if !ok {
		logger.Warn("SMS provider reported send failure", zap.String("to", to))
	}
}
