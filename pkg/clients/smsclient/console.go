package smsclient

import (
	"context"

	"go.uber.org/zap"
)

// ConsoleClient logs messages instead of sending them, for local
// development and environments without Twilio credentials.
type ConsoleClient struct {
	logger *zap.Logger
}

// NewConsoleClient creates a console-only SMS client
func NewConsoleClient(logger *zap.Logger) *ConsoleClient {
	return &ConsoleClient{logger: logger}
}

// Notify logs the message and reports success.
func (c *ConsoleClient) Notify(_ context.Context, toPhoneNumber, message string) (bool, error) {
	c.logger.Info("Simulated SMS",
		zap.String("to", toPhoneNumber),
		zap.String("message", message))
	return true, nil
}
