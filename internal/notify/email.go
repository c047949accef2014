package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// EmailClient posts notification payloads to the email delivery service.
type EmailClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewEmailClient returns a client. With an empty baseURL every send is a
// no-op reporting false.
func NewEmailClient(baseURL string) *EmailClient {
	return &EmailClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (c *EmailClient) send(ctx context.Context, path string, data map[string]any) bool {
	if c.baseURL == "" {
		return false
	}
	body, err := json.Marshal(data)
	if err != nil {
		log.Printf("notify: marshal email payload: %v", err)
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		log.Printf("notify: new email request: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("notify: email request: %v", err)
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("notify: email service status %d for %s", resp.StatusCode, path)
		return false
	}
	return true
}

func (c *EmailClient) SendNewOrderNotification(ctx context.Context, data map[string]any) bool {
	return c.send(ctx, "/email/new-order", data)
}

func (c *EmailClient) SendNewUserNotification(ctx context.Context, data map[string]any) bool {
	return c.send(ctx, "/email/new-user", data)
}

func (c *EmailClient) SendLowStockNotification(ctx context.Context, data map[string]any) bool {
	return c.send(ctx, "/email/low-stock", data)
}
