package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopmono/storefront/internal/directory"
)

func TestDirectoryEntry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAdminHandler(nil, nil, directory.Seeded())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "email", Value: "Admin@storefront.local"}}
	h.DirectoryEntry(c)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var entry directory.Entry
	if err := json.Unmarshal(w.Body.Bytes(), &entry); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if entry.Email != "admin@storefront.local" || entry.Role != "ADMIN" {
		t.Fatalf("entry = %+v", entry)
	}

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "email", Value: "ghost@storefront.local"}}
	h.DirectoryEntry(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
