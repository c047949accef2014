package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// SMSClient posts notification payloads to the SMS delivery service.
type SMSClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewSMSClient returns a client. With an empty baseURL every send is a
// no-op reporting false.
func NewSMSClient(baseURL string) *SMSClient {
	return &SMSClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (c *SMSClient) SendNotification(ctx context.Context, notificationType string, data map[string]any) bool {
	if c.baseURL == "" {
		return false
	}
	payload := map[string]any{"type": notificationType, "data": data}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("notify: marshal sms payload: %v", err)
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sms/send", bytes.NewReader(body))
	if err != nil {
		log.Printf("notify: new sms request: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("notify: sms request: %v", err)
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("notify: sms service status %d", resp.StatusCode)
		return false
	}
	return true
}
