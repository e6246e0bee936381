package checkout

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

// HTTPSubmitter posts orders as JSON to the storefront order endpoint. Any
// 2xx with a JSON acknowledgement is success; everything else is a
// submission fault the pipeline surfaces as retryable.
type HTTPSubmitter struct {
	url    string
	client *http.Client
}

// NewHTTPSubmitter targets the given order endpoint URL. A nil client gets
// a default with a request timeout.
func NewHTTPSubmitter(url string, client *http.Client) *HTTPSubmitter {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPSubmitter{url: url, client: client}
}

type submitAck struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Submit performs the single POST. A transport error is returned as an
// error; a reachable endpoint yields its status code either way.
func (s *HTTPSubmitter) Submit(ctx context.Context, order domain.Order) (SubmitResult, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("encode order: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return SubmitResult{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return SubmitResult{}, err
	}
	defer resp.Body.Close()

	res := SubmitResult{Status: resp.StatusCode}
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		var ack submitAck
		if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&ack); err == nil {
			res.OrderID = ack.ID
		}
	}
	return res, nil
}
