package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/earnquick/earnquick-api/internal/domain/withdrawal"
)

// Config holds Telegram Bot API configuration
type Config struct {
	BotToken    string
	AdminChatID int64
	PointRatio  int64
	BaseURL     string // overridable for tests; defaults to the Bot API
	Timeout     time.Duration
}

// Client posts administrative notifications through the Telegram Bot API.
// A client with no bot token or admin chat configured is a no-op.
type Client struct {
	httpClient *http.Client
	config     Config
}

type sendMessageRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

type apiResponse struct {
	Ok          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// NewClient creates a new Telegram Bot API client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.telegram.org"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		config:     cfg,
	}
}

// Enabled reports whether the client is configured to deliver anything.
func (c *Client) Enabled() bool {
	return c != nil && c.config.BotToken != "" && c.config.AdminChatID != 0
}

// WithdrawalRequested sends the new-withdrawal notification to the admin chat.
func (c *Client) WithdrawalRequested(ctx context.Context, ev withdrawal.Event) error {
	if !c.Enabled() {
		return nil
	}

	text := fmt.Sprintf(
		"New withdrawal request!\nUser ID: %d\nPoints: %d\nAmount: %.2f\nMethod: %s - %s",
		ev.UserID, ev.Amount, c.currencyAmount(ev.Amount), ev.Method, ev.Destination,
	)

	return c.sendMessage(ctx, text)
}

func (c *Client) currencyAmount(points int64) float64 {
	if c.config.PointRatio == 0 {
		return 0
	}
	return float64(points) / float64(c.config.PointRatio)
}

func (c *Client) sendMessage(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID: c.config.AdminChatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("failed to encode telegram request: %w", err)
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + "/bot" + c.config.BotToken + "/sendMessage"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create telegram request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("failed to read telegram response: %w", err)
	}

	var api apiResponse
	if err := json.Unmarshal(respBody, &api); err != nil {
		return fmt.Errorf("failed to decode telegram response (status %d): %w", resp.StatusCode, err)
	}
	if !api.Ok {
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, api.Description)
	}

	return nil
}
