package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/timbercreek/coffee-connect/pkg/core/services"
)

// CancelMeetingCmd creates the cancelMeeting command
func CancelMeetingCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cancelMeeting [meetingID] [cancellingUserID]",
		Short: "Cancel a confirmed meeting and release its timeslot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			meetingID, cancellingUserID := args[0], args[1]

			app.Logger.Debug("cancelMeeting command",
				zap.String("meeting_id", meetingID),
				zap.String("cancelling_user_id", cancellingUserID))

			meeting, err := services.CancelMeeting(
				app.Ctx,
				app.Database,
				app.Notifier,
				app.Logger,
				meetingID,
				cancellingUserID,
			)
			if err != nil {
				return fmt.Errorf("failed to cancel meeting: %w", err)
			}

			fmt.Printf("\n✅ Meeting Cancelled\n\n")
			fmt.Printf("Meeting ID: %s\n", meeting.ID)
			fmt.Printf("Timeslot:   %s (released)\n", meeting.TimeslotID)
			fmt.Println()

			return nil
		},
	}
}

// CompleteMeetingCmd creates the completeMeeting command
func CompleteMeetingCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "completeMeeting [meetingID]",
		Short: "Mark a confirmed meeting as completed and award points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meetingID := args[0]

			meeting, err := services.CompleteMeeting(
				app.Ctx,
				app.Database,
				app.Scores,
				app.Logger,
				meetingID,
			)
			if err != nil {
				return fmt.Errorf("failed to complete meeting: %w", err)
			}

			fmt.Printf("\n✅ Meeting Completed\n\n")
			fmt.Printf("Meeting ID: %s\n", meeting.ID)
			fmt.Printf("Host:       %s\n", meeting.HostUserID)
			fmt.Printf("Attendee:   %s\n", meeting.AttendeeUserID)
			fmt.Println()

			return nil
		},
	}
}
