// Package smsclient sends outbound text messages through the Twilio
// Messages API.
package smsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultAPIBase = "https://api.twilio.com/2010-04-01"

// Client sends SMS messages via Twilio
type Client struct {
	accountSID string
	authToken  string
	fromNumber string
	apiBase    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Twilio SMS client
func NewClient(accountSID, authToken, fromNumber string, logger *zap.Logger) *Client {
	return &Client{
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		apiBase:    defaultAPIBase,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Notify sends a text message to the recipient. It reports whether the
// provider accepted the message for delivery.
func (c *Client) Notify(ctx context.Context, toPhoneNumber, message string) (bool, error) {
	form := url.Values{}
	form.Set("To", toPhoneNumber)
	form.Set("From", c.fromNumber)
	form.Set("Body", message)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.apiBase, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("failed to build SMS request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to send SMS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		c.logger.Warn("Twilio rejected message",
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return false, nil
	}

	c.logger.Debug("SMS accepted for delivery", zap.String("to", toPhoneNumber))
	return true, nil
}
