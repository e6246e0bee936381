// Package telegram relays order and reservation notifications to an
// operator chat through the Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/leademy-studio/shusha-rest/internal/domain"
)

// DefaultBaseURL is the public Bot API endpoint.
const DefaultBaseURL = "https://api.telegram.org"

// Client sends messages on behalf of one bot.
type Client struct {
	baseURL string
	token   string
	chatID  string
	client  *http.Client
}

// New builds a client for the given bot token and operator chat.
func New(baseURL, token, chatID string, client *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, token: token, chatID: chatID, client: client}
}

// NotifyOrder sends the human-readable order summary to the operator chat.
func (c *Client) NotifyOrder(ctx context.Context, order domain.Order) error {
	return c.sendMessage(ctx, FormatOrder(order))
}

// NotifyReservation sends the reservation request to the operator chat.
func (c *Client) NotifyReservation(ctx context.Context, r domain.Reservation) error {
	return c.sendMessage(ctx, FormatReservation(r))
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (c *Client) sendMessage(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: c.chatID, Text: text})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	var ack sendMessageResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&ack); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !ack.OK {
		return fmt.Errorf("sendMessage failed with status %d: %s", resp.StatusCode, ack.Description)
	}
	return nil
}
