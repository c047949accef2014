package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/shopmono/storefront/internal/model"
)

func TestReadMissingFileYieldsEmpty(t *testing.T) {
	s := New(t.TempDir())
	var chats []model.Chat
	if err := s.Read(Chats, &chats); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(chats) != 0 {
		t.Fatalf("expected empty collection, got %d", len(chats))
	}
}

func TestReadCorruptFileYieldsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "chats.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := New(dir)
	var chats []model.Chat
	if err := s.Read(Chats, &chats); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(chats) != 0 {
		t.Fatalf("expected empty collection, got %d", len(chats))
	}
}

func TestReadUnreadableFileYieldsEmpty(t *testing.T) {
	dir := t.TempDir()
	// A directory at the collection path makes ReadFile fail with EISDIR.
	if err := os.Mkdir(filepath.Join(dir, "chats.json"), 0o755); err != nil {
		t.Fatal(err)
	}
	s := New(dir)
	var chats []model.Chat
	if err := s.Read(Chats, &chats); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(chats) != 0 {
		t.Fatalf("expected empty collection, got %d", len(chats))
	}
}

func TestWriteCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := New(dir)
	if err := s.Write(Ratings, []model.Rating{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "ratings.json")); err != nil {
		t.Fatalf("expected ratings.json: %v", err)
	}
}

func TestRoundTripAllEntityTypes(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	rating := model.Rating{ID: "r1", ChatID: "c1", UserEmail: "a@b.co", Rating: 4, Comment: "fine", CreatedAt: ts}

	cases := []struct {
		collection string
		in         any
		out        func() any
	}{
		{
			collection: Chats,
			in: []model.Chat{{
				ID: "c1", UserEmail: "a@b.co", UserName: "A", Status: model.ChatStatusWaiting,
				CreatedAt: ts, UpdatedAt: ts.Add(time.Minute),
				Messages: []model.Message{{
					ID: "m1", ChatID: "c1", Content: "hi", Sender: model.SenderUser,
					Timestamp: ts, Status: model.MessageStatusSent,
				}},
				Rating: &rating,
			}},
			out: func() any { return &[]model.Chat{} },
		},
		{
			collection: Ratings,
			in:         []model.Rating{rating},
			out:        func() any { return &[]model.Rating{} },
		},
		{
			collection: Contacts,
			in: []model.ContactMessage{{
				ID: "k1", Name: "B", Email: "b@c.de", Subject: "s", Message: "m",
				Priority: model.PriorityHigh, Status: model.ContactStatusReplied,
				CreatedAt: ts, UpdatedAt: ts,
				Replies: []model.ContactReply{{ID: "p1", Content: "re", Sender: "support", Timestamp: ts}},
			}},
			out: func() any { return &[]model.ContactMessage{} },
		},
		{
			collection: Notifications,
			in: []model.Notification{{
				ID: "1700000000000", Type: "newOrder",
				Data:  map[string]any{"orderId": "55"},
				Title: "New order received", Message: "Order 55", Timestamp: ts, Read: true,
			}},
			out: func() any { return &[]model.Notification{} },
		},
		{
			collection: Settings,
			in:         model.DefaultSettings(),
			out:        func() any { return &model.AppSettings{} },
		},
	}

	for _, tc := range cases {
		t.Run(tc.collection, func(t *testing.T) {
			s := New(t.TempDir())
			if err := s.Write(tc.collection, tc.in); err != nil {
				t.Fatalf("Write: %v", err)
			}
			got := tc.out()
			if err := s.Read(tc.collection, got); err != nil {
				t.Fatalf("Read: %v", err)
			}
			want := tc.in
			gotVal := reflect.ValueOf(got).Elem().Interface()
			if !reflect.DeepEqual(gotVal, want) {
				t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", gotVal, want)
			}
		})
	}
}

func TestWithLockSerializesMutations(t *testing.T) {
	s := New(t.TempDir())
	const writers = 20
	done := make(chan struct{})
	for i := 0; i < writers; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			_ = s.WithLock(Ratings, func() error {
				var ratings []model.Rating
				if err := s.Read(Ratings, &ratings); err != nil {
					return err
				}
				ratings = append(ratings, model.Rating{ID: "x", Rating: 5})
				return s.Write(Ratings, ratings)
			})
		}()
	}
	for i := 0; i < writers; i++ {
		<-done
	}
	var ratings []model.Rating
	if err := s.Read(Ratings, &ratings); err != nil {
		t.Fatal(err)
	}
	if len(ratings) != writers {
		t.Fatalf("lost updates: got %d ratings, want %d", len(ratings), writers)
	}
}
