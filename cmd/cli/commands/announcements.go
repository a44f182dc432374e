package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/timbercreek/coffee-connect/pkg/core/services"
	"github.com/timbercreek/coffee-connect/pkg/db"
)

// AnnounceCmd creates the announce command
func AnnounceCmd(app *AppContext) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "announce [authorUserID] [title] [content]",
		Short: "Post a community announcement (leaders and administrators)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			authorID, title, content := args[0], args[1], args[2]

			app.Logger.Debug("announce command", zap.String("author_id", authorID))

			announcement, err := services.PostAnnouncement(
				app.Ctx,
				app.Database,
				app.Logger,
				services.PostAnnouncementParams{
					Title:      title,
					Content:    content,
					AuthorID:   authorID,
					AuthorRole: db.Role(role),
				},
			)
			if err != nil {
				return fmt.Errorf("failed to post announcement: %w", err)
			}

			fmt.Printf("\n📢 Announcement Posted\n\n")
			fmt.Printf("ID:    %s\n", announcement.ID)
			fmt.Printf("Title: %s\n", announcement.Title)
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", string(db.RoleMember), "Author role (Member, Leader, Administrator)")

	return cmd
}

// DeleteAnnouncementCmd creates the deleteAnnouncement command
func DeleteAnnouncementCmd(app *AppContext) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "deleteAnnouncement [announcementID]",
		Short: "Delete an announcement (administrators only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			announcementID := args[0]

			err := services.DeleteAnnouncement(
				app.Ctx,
				app.Database,
				app.Logger,
				announcementID,
				db.Role(role),
			)
			if err != nil {
				return fmt.Errorf("failed to delete announcement: %w", err)
			}

			fmt.Println("✅ Announcement deleted.")
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", string(db.RoleMember), "Requester role (Member, Leader, Administrator)")

	return cmd
}
