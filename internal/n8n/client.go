// Package n8n hands an image off to the external workflow engine and waits
// for the result. The engine may take minutes, so the call is bounded by a
// hard wall-clock timeout; exceeding it surfaces a Timeout error distinct
// from an upstream API failure. The engine may also finish later and write
// the row itself, which viewing sessions observe through the realtime
// channel instead of this response.
package n8n

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"valida-backend/internal/apperr"
)

const defaultTask = "remove_background_studio"

type Client struct {
	webhookURL string
	timeout    time.Duration
	httpClient *http.Client
}

type workflowRequest struct {
	ImageURL  string `json:"image_url"`
	ProductID string `json:"product_id"`
	Task      string `json:"task"`
}

func NewClient(webhookURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Client{
		webhookURL: webhookURL,
		timeout:    timeout,
		// Timeout is enforced per-call through the context so that a
		// deadline hit is distinguishable from transport failures.
		httpClient: &http.Client{},
	}
}

// ProcessImage forwards the image reference and blocks until the engine
// responds with the processed PNG bytes or the timeout elapses.
func (c *Client) ProcessImage(ctx context.Context, imageURL, productID string) ([]byte, error) {
	if c.webhookURL == "" {
		return nil, apperr.New(apperr.Configuration, "N8N_IMAGE_WEBHOOK_URL não configurada")
	}

	body, err := json.Marshal(workflowRequest{
		ImageURL:  imageURL,
		ProductID: productID,
		Task:      defaultTask,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperr.Newf(apperr.Timeout, "timeout: o processamento demorou mais de %s", c.timeout)
		}
		return nil, apperr.Wrap(apperr.Upstream, "erro ao chamar o n8n", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, apperr.Newf(apperr.Upstream, "erro na resposta do n8n: %d - %s", resp.StatusCode, string(respBody))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperr.Newf(apperr.Timeout, "timeout: o processamento demorou mais de %s", c.timeout)
		}
		return nil, apperr.Wrap(apperr.Upstream, "erro ao ler resposta do n8n", err)
	}
	if len(data) == 0 {
		return nil, apperr.New(apperr.Upstream, "resposta do n8n está vazia ou inválida")
	}

	return data, nil
}
