// Package webhook delivers completed entries and quick-action requests to
// the n8n automation webhook. One attempt per call, no retry: a failed
// submission is reported to the user and the data is gone from the bot's
// side.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-bot/internal/domain"
)

// DefaultTimeout bounds a single webhook call. The automation side normally
// answers in well under a second; anything past this is treated as down.
const DefaultTimeout = 15 * time.Second

// ErrTimeout reports that the webhook did not answer within the deadline.
// Callers can distinguish it from an ordinary transport failure.
var ErrTimeout = errors.New("webhook: request timed out")

// Client posts JSON payloads to a single webhook URL.
type Client struct {
	url     string
	timeout time.Duration
	httpc   *http.Client
	log     zerolog.Logger
}

// New creates a webhook client. A non-positive timeout falls back to
// DefaultTimeout.
func New(url string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url:     url,
		timeout: timeout,
		httpc:   &http.Client{},
		log:     log,
	}
}

// Submit delivers one completed entry.
func (c *Client) Submit(ctx context.Context, entry *domain.Entry) error {
	return c.post(ctx, entry)
}

// SubmitAction delivers a quick-action request (balance, spending report).
func (c *Client) SubmitAction(ctx context.Context, action domain.QuickAction, user string) error {
	payload := struct {
		Action domain.QuickAction `json:"action"`
		User   string             `json:"user"`
	}{Action: action, User: user}
	return c.post(ctx, payload)
}

func (c *Client) post(ctx context.Context, payload any) error {
	if c.url == "" {
		return errors.New("webhook: no URL configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("webhook: encoding payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.log.Error().
				Str("request_id", requestID).
				Dur("elapsed", time.Since(start)).
				Msg("Webhook call timed out")
			return ErrTimeout
		}
		return fmt.Errorf("webhook: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error().
			Str("request_id", requestID).
			Int("status", resp.StatusCode).
			Msg("Webhook rejected payload")
		return fmt.Errorf("webhook: unexpected status %d", resp.StatusCode)
	}

	c.log.Info().
		Str("request_id", requestID).
		Dur("elapsed", time.Since(start)).
		Msg("Webhook delivery succeeded")

	return nil
}
