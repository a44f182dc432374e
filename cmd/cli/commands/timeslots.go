package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/timbercreek/coffee-connect/pkg/core/services"
	"github.com/timbercreek/coffee-connect/pkg/db"
)

// PostTimeslotCmd creates the postTimeslot command
func PostTimeslotCmd(app *AppContext) *cobra.Command {
	var (
		duration     int
		locationID   string
		repeatWeekly bool
	)

	cmd := &cobra.Command{
		Use:   "postTimeslot [hostUserID] [startTime]",
		Short: "Post an availability window on behalf of a host",
		Long:  "Post an availability window. startTime uses RFC 3339, e.g. 2026-09-05T09:30:00-06:00.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hostID := args[0]
			startTime, err := time.Parse(time.RFC3339, args[1])
			if err != nil {
				return fmt.Errorf("invalid start time %q: %w", args[1], err)
			}

			app.Logger.Debug("postTimeslot command",
				zap.String("host_id", hostID),
				zap.Time("start_time", startTime))

			timeslots, err := services.CreateTimeslot(
				app.Ctx,
				app.Database,
				app.Scores,
				app.Logger,
				services.CreateTimeslotParams{
					HostID:          hostID,
					StartTime:       startTime,
					DurationMinutes: duration,
					LocationID:      locationID,
					RepeatWeekly:    repeatWeekly,
				},
				app.Cfg.Recurrences(),
			)
			if err != nil {
				return fmt.Errorf("failed to post timeslot: %w", err)
			}

			fmt.Printf("\n✅ Availability Posted\n\n")
			for _, t := range timeslots {
				fmt.Printf("%-38s  %s  (%d min)\n", t.ID, t.StartTime.Format("Mon Jan 02 2006 3:04 PM"), t.DurationMinutes)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().IntVarP(&duration, "duration", "d", db.DurationSixtyMinutes, "Duration in minutes (30 or 60)")
	cmd.Flags().StringVarP(&locationID, "location", "l", "", "Approved location ID")
	cmd.Flags().BoolVarP(&repeatWeekly, "repeat-weekly", "r", false, "Repeat weekly")
	cmd.MarkFlagRequired("location")

	return cmd
}

// AcceptTimeslotCmd creates the acceptTimeslot command
func AcceptTimeslotCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "acceptTimeslot [timeslotID] [attendeeUserID]",
		Short: "Book an open timeslot for an attendee",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			timeslotID, attendeeID := args[0], args[1]

			app.Logger.Debug("acceptTimeslot command",
				zap.String("timeslot_id", timeslotID),
				zap.String("attendee_id", attendeeID))

			result, err := services.AcceptTimeslot(
				app.Ctx,
				app.Database,
				app.Notifier,
				app.Scores,
				app.Logger,
				timeslotID,
				attendeeID,
			)
			if err != nil {
				return fmt.Errorf("failed to accept timeslot: %w", err)
			}

			meeting := result.Meeting
			fmt.Printf("\n✅ Meeting Confirmed\n\n")
			fmt.Printf("Meeting ID: %s\n", meeting.ID)
			fmt.Printf("Host:       %s\n", meeting.HostUserID)
			fmt.Printf("Attendee:   %s\n", meeting.AttendeeUserID)
			fmt.Printf("Start:      %s\n", meeting.StartTime.Format("Mon Jan 02 2006 3:04 PM"))
			if result.CalendarFile != "" {
				fmt.Printf("\n--- .ics Calendar File ---\n%s\n", result.CalendarFile)
			}

			return nil
		},
	}
}

// DeleteTimeslotCmd creates the deleteTimeslot command
func DeleteTimeslotCmd(app *AppContext) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "deleteTimeslot [timeslotID] [requesterUserID]",
		Short: "Delete a timeslot (admins may delete booked ones, cascading the meeting)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			timeslotID, requesterID := args[0], args[1]

			err := services.DeleteTimeslot(
				app.Ctx,
				app.Database,
				app.Notifier,
				app.Logger,
				timeslotID,
				requesterID,
				db.Role(role),
			)
			if err != nil {
				return fmt.Errorf("failed to delete timeslot: %w", err)
			}

			fmt.Println("✅ Timeslot deleted.")
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", string(db.RoleMember), "Requester role (Member, Leader, Administrator)")

	return cmd
}

// ListTimeslotsCmd creates the listTimeslots command
func ListTimeslotsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listTimeslots",
		Short: "List all timeslots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			timeslots, err := app.Database.ListTimeslots(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to list timeslots: %w", err)
			}

			fmt.Printf("\n📅 Timeslots (%d):\n\n", len(timeslots))
			fmt.Printf("%-38s  %-24s  %-8s  %-8s\n", "ID", "Start", "Minutes", "Status")
			fmt.Println("--------------------------------------  ------------------------  --------  --------")
			for _, t := range timeslots {
				status := "Open"
				if t.IsBooked {
					status = "Booked"
				}
				fmt.Printf("%-38s  %-24s  %-8d  %-8s\n",
					t.ID, t.StartTime.Format("Mon Jan 02 2006 3:04 PM"), t.DurationMinutes, status)
			}
			fmt.Println()

			return nil
		},
	}
}
