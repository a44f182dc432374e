package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/timbercreek/coffee-connect/pkg/core/services"
	"github.com/timbercreek/coffee-connect/pkg/db"
)

// AddLocationCmd creates the addLocation command
func AddLocationCmd(app *AppContext) *cobra.Command {
	var (
		address   string
		latitude  float64
		longitude float64
	)

	cmd := &cobra.Command{
		Use:   "addLocation [submitterUserID] [name]",
		Short: "Submit a meeting location for approval",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			submitterID, name := args[0], args[1]

			app.Logger.Debug("addLocation command",
				zap.String("submitter_id", submitterID),
				zap.String("name", name))

			location, err := services.AddLocation(
				app.Ctx,
				app.Database,
				app.Scores,
				app.Logger,
				services.AddLocationParams{
					Name:              name,
					Address:           address,
					Latitude:          latitude,
					Longitude:         longitude,
					SubmittedByUserID: submitterID,
				},
			)
			if err != nil {
				return fmt.Errorf("failed to add location: %w", err)
			}

			fmt.Printf("\n✅ Location Submitted (pending approval)\n\n")
			fmt.Printf("Location ID: %s\n", location.ID)
			fmt.Printf("Name:        %s\n", location.Name)
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", "", "Street address")
	cmd.Flags().Float64Var(&latitude, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&longitude, "lng", 0, "Longitude")

	return cmd
}

// ApproveLocationCmd creates the approveLocation command
func ApproveLocationCmd(app *AppContext) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "approveLocation [locationID]",
		Short: "Approve a submitted location (administrators only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locationID := args[0]

			location, err := services.ApproveLocation(
				app.Ctx,
				app.Database,
				app.Scores,
				app.Logger,
				locationID,
				db.Role(role),
			)
			if err != nil {
				return fmt.Errorf("failed to approve location: %w", err)
			}

			fmt.Printf("✅ Location approved: %s\n", location.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", string(db.RoleMember), "Requester role (Member, Leader, Administrator)")

	return cmd
}

// DeleteLocationCmd creates the deleteLocation command
func DeleteLocationCmd(app *AppContext) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "deleteLocation [locationID]",
		Short: "Delete a location and everything scheduled at it (administrators only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locationID := args[0]

			err := services.DeleteLocation(
				app.Ctx,
				app.Database,
				app.Logger,
				locationID,
				db.Role(role),
			)
			if err != nil {
				return fmt.Errorf("failed to delete location: %w", err)
			}

			fmt.Println("✅ Location deleted.")
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", string(db.RoleMember), "Requester role (Member, Leader, Administrator)")

	return cmd
}
