package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEmailClientPostsPerTypePaths(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewEmailClient(srv.URL)
	ctx := context.Background()

	cases := []struct {
		send func() bool
		path string
	}{
		{func() bool { return c.SendNewOrderNotification(ctx, map[string]any{"orderId": "o1"}) }, "/email/new-order"},
		{func() bool { return c.SendNewUserNotification(ctx, map[string]any{"email": "a@b.co"}) }, "/email/new-user"},
		{func() bool { return c.SendLowStockNotification(ctx, map[string]any{"productName": "Mug"}) }, "/email/low-stock"},
	}
	for _, tc := range cases {
		if !tc.send() {
			t.Fatalf("%s: send reported failure", tc.path)
		}
		if gotPath != tc.path {
			t.Fatalf("path = %s, want %s", gotPath, tc.path)
		}
	}
	if gotBody["productName"] != "Mug" {
		t.Fatalf("body = %v", gotBody)
	}
}

func TestEmailClientReportsFalseOnNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewEmailClient(srv.URL)
	if c.SendNewOrderNotification(context.Background(), nil) {
		t.Fatal("send reported success for 502")
	}
}

func TestEmailClientNoOpWithoutBaseURL(t *testing.T) {
	c := NewEmailClient("")
	if c.SendNewOrderNotification(context.Background(), nil) {
		t.Fatal("send reported success with no base URL")
	}
}

func TestSMSClientWrapsTypeAndData(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sms/send" {
			t.Errorf("path = %s, want /sms/send", r.URL.Path)
		}
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewSMSClient(srv.URL)
	if !c.SendNotification(context.Background(), "lowStock", map[string]any{"stock": "2"}) {
		t.Fatal("send reported failure")
	}
	if gotBody["type"] != "lowStock" {
		t.Fatalf("type = %v", gotBody["type"])
	}
	data, ok := gotBody["data"].(map[string]any)
	if !ok || data["stock"] != "2" {
		t.Fatalf("data = %v", gotBody["data"])
	}
}

func TestSMSClientNoOpWithoutBaseURL(t *testing.T) {
	c := NewSMSClient("")
	if c.SendNotification(context.Background(), "newOrder", nil) {
		t.Fatal("send reported success with no base URL")
	}
}
