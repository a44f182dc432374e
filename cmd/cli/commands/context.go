package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/timbercreek/coffee-connect/internal/config"
	"github.com/timbercreek/coffee-connect/pkg/core/scoring"
	"github.com/timbercreek/coffee-connect/pkg/core/services"
	"github.com/timbercreek/coffee-connect/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database *postgres.DB
	Notifier services.Notifier
	Scores   scoring.Table
	Logger   *zap.Logger
	Ctx      context.Context
}
