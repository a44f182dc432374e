package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/timbercreek/coffee-connect/cmd/cli/commands"
	"github.com/timbercreek/coffee-connect/internal/config"
	"github.com/timbercreek/coffee-connect/pkg/clients/smsclient"
	"github.com/timbercreek/coffee-connect/pkg/core/scoring"
	"github.com/timbercreek/coffee-connect/pkg/core/services"
	"github.com/timbercreek/coffee-connect/pkg/postgres"
	"github.com/timbercreek/coffee-connect/pkg/utils/logging"
)

var env string

func main() {
	app := &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:   "coffee-connect",
		Short: "Coffee Connect CLI - Manage community coffee meetings",
		Long:  `A CLI tool for managing timeslots, meetings, locations, announcements, and the community leaderboard.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(app)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Database != nil {
				app.Database.Close()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.PostTimeslotCmd(app))
	rootCmd.AddCommand(commands.AcceptTimeslotCmd(app))
	rootCmd.AddCommand(commands.DeleteTimeslotCmd(app))
	rootCmd.AddCommand(commands.ListTimeslotsCmd(app))
	rootCmd.AddCommand(commands.CancelMeetingCmd(app))
	rootCmd.AddCommand(commands.CompleteMeetingCmd(app))
	rootCmd.AddCommand(commands.AddLocationCmd(app))
	rootCmd.AddCommand(commands.ApproveLocationCmd(app))
	rootCmd.AddCommand(commands.DeleteLocationCmd(app))
	rootCmd.AddCommand(commands.LeaderboardCmd(app))
	rootCmd.AddCommand(commands.AnnounceCmd(app))
	rootCmd.AddCommand(commands.DeleteAnnouncementCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, database, and the SMS notifier
func initApp(app *commands.AppContext) error {
	logger, err := logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting application", zap.String("environment", env))

	// Secrets and local overrides live in .env during development
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file loaded", zap.Error(err))
	}

	cfg, err := config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Debug("Configuration loaded successfully")

	ctx := context.Background()

	database, err := postgres.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	app.Cfg = cfg
	app.Database = database
	app.Notifier = buildNotifier(cfg, logger)
	app.Scores = scoring.DefaultTable
	app.Logger = logger
	app.Ctx = ctx

	return nil
}

func buildNotifier(cfg *config.Config, logger *zap.Logger) services.Notifier {
	if cfg.SMSEnabled {
		return smsclient.NewClient(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber, logger)
	}
	return smsclient.NewConsoleClient(logger)
}
