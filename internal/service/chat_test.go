package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopmono/storefront/internal/errs"
	"github.com/shopmono/storefront/internal/model"
	"github.com/shopmono/storefront/internal/store"
)

func newChatService(t *testing.T) (*ChatService, *store.Store) {
	t.Helper()
	st := store.New(t.TempDir())
	return NewChatService(st, nil), st
}

func TestCreateChatIsIdempotentForActiveChat(t *testing.T) {
	svc, _ := newChatService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "a@b.co", "Ana")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.Status != "created" {
		t.Fatalf("first create status = %q, want created", first.Status)
	}
	second, err := svc.Create(ctx, "a@b.co", "Ana")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if second.Status != "existing" {
		t.Fatalf("second create status = %q, want existing", second.Status)
	}
	if second.ChatID != first.ChatID {
		t.Fatalf("chat ids differ: %q vs %q", first.ChatID, second.ChatID)
	}
}

func TestCreateChatAfterCloseOpensNewChat(t *testing.T) {
	svc, _ := newChatService(t)
	ctx := context.Background()

	first, _ := svc.Create(ctx, "a@b.co", "Ana")
	if _, err := svc.UpdateStatus(ctx, first.ChatID, "closed"); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	second, err := svc.Create(ctx, "a@b.co", "Ana")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if second.Status != "created" || second.ChatID == first.ChatID {
		t.Fatalf("expected a fresh chat after close, got %+v", second)
	}
}

func TestCreateChatValidation(t *testing.T) {
	svc, _ := newChatService(t)
	if _, err := svc.Create(context.Background(), "", "Ana"); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestUserMessageMovesChatToWaiting(t *testing.T) {
	svc, _ := newChatService(t)
	ctx := context.Background()
	created, _ := svc.Create(ctx, "a@b.co", "Ana")

	for _, tc := range []struct {
		sender string
		want   model.ChatStatus
	}{
		{"support", model.ChatStatusActive},
		{"bot", model.ChatStatusActive},
		{"user", model.ChatStatusWaiting},
		{"support", model.ChatStatusWaiting}, // support does not move it back
	} {
		if _, err := svc.SendMessage(ctx, created.ChatID, "hello", tc.sender); err != nil {
			t.Fatalf("SendMessage(%s): %v", tc.sender, err)
		}
		chat, err := svc.Messages(ctx, created.ChatID)
		if err != nil {
			t.Fatal(err)
		}
		if chat.Status != tc.want {
			t.Fatalf("after %s message status = %s, want %s", tc.sender, chat.Status, tc.want)
		}
	}

	chat, _ := svc.Messages(ctx, created.ChatID)
	if len(chat.Messages) != 4 {
		t.Fatalf("message count = %d, want 4", len(chat.Messages))
	}
	if !chat.UpdatedAt.After(chat.CreatedAt) && !chat.UpdatedAt.Equal(chat.CreatedAt) {
		t.Fatal("updatedAt fell behind createdAt")
	}
}

func TestSendMessageErrors(t *testing.T) {
	svc, _ := newChatService(t)
	ctx := context.Background()
	created, _ := svc.Create(ctx, "a@b.co", "Ana")

	if _, err := svc.SendMessage(ctx, "nope", "hello", "user"); !errors.Is(err, errs.ErrChatNotFound) {
		t.Fatalf("unknown chat: err = %v, want not found", err)
	}
	if _, err := svc.SendMessage(ctx, created.ChatID, "", "user"); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("empty content: err = %v, want validation", err)
	}
	if _, err := svc.SendMessage(ctx, created.ChatID, "hello", "alien"); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("bad sender: err = %v, want validation", err)
	}
}

func TestUpdateStatusValidatesEnum(t *testing.T) {
	svc, _ := newChatService(t)
	ctx := context.Background()
	created, _ := svc.Create(ctx, "a@b.co", "Ana")

	if _, err := svc.UpdateStatus(ctx, created.ChatID, "archived"); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
	if _, err := svc.UpdateStatus(ctx, "nope", "closed"); !errors.Is(err, errs.ErrChatNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
	chat, err := svc.UpdateStatus(ctx, created.ChatID, "waiting")
	if err != nil {
		t.Fatal(err)
	}
	if chat.Status != model.ChatStatusWaiting {
		t.Fatalf("status = %s, want waiting", chat.Status)
	}
}

func TestSubmitRatingRejectsOutOfRange(t *testing.T) {
	svc, st := newChatService(t)
	ctx := context.Background()
	created, _ := svc.Create(ctx, "a@b.co", "Ana")

	for _, bad := range []int{0, 6, -1} {
		if _, err := svc.SubmitRating(ctx, created.ChatID, bad, "", ""); !errors.Is(err, errs.ErrValidation) {
			t.Fatalf("rating %d: err = %v, want validation", bad, err)
		}
	}
	if _, err := svc.SubmitRating(ctx, "", 3, "", ""); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("missing chatId: err = %v, want validation", err)
	}

	// Nothing persisted in either collection.
	var ratings []model.Rating
	if err := st.Read(store.Ratings, &ratings); err != nil {
		t.Fatal(err)
	}
	if len(ratings) != 0 {
		t.Fatalf("rejected ratings were persisted: %d", len(ratings))
	}
	chat, _ := svc.Messages(ctx, created.ChatID)
	if chat.Rating != nil {
		t.Fatal("rejected rating attached to chat")
	}
}

func TestSubmitRatingAttachesToChat(t *testing.T) {
	svc, _ := newChatService(t)
	ctx := context.Background()
	created, _ := svc.Create(ctx, "a@b.co", "Ana")

	r, err := svc.SubmitRating(ctx, created.ChatID, 5, "great", "a@b.co")
	if err != nil {
		t.Fatalf("SubmitRating: %v", err)
	}
	chat, _ := svc.Messages(ctx, created.ChatID)
	if chat.Rating == nil || chat.Rating.ID != r.ID || chat.Rating.Rating != 5 {
		t.Fatalf("embedded rating = %+v, want copy of %+v", chat.Rating, r)
	}
}

func TestSubmitRatingForUnknownChatSucceedsOrphaned(t *testing.T) {
	svc, st := newChatService(t)
	r, err := svc.SubmitRating(context.Background(), "ghost", 2, "", "")
	if err != nil {
		t.Fatalf("SubmitRating: %v", err)
	}
	var ratings []model.Rating
	if err := st.Read(store.Ratings, &ratings); err != nil {
		t.Fatal(err)
	}
	if len(ratings) != 1 || ratings[0].ID != r.ID {
		t.Fatalf("flat rating missing: %+v", ratings)
	}
}

func TestRatingStats(t *testing.T) {
	svc, _ := newChatService(t)
	ctx := context.Background()
	for _, r := range []int{5, 4, 4, 1} {
		if _, err := svc.SubmitRating(ctx, "c", r, "", ""); err != nil {
			t.Fatal(err)
		}
	}
	ratings, stats, err := svc.Ratings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ratings) != 4 || stats.Total != 4 {
		t.Fatalf("total = %d/%d, want 4", len(ratings), stats.Total)
	}
	if stats.Average != 3.5 {
		t.Fatalf("average = %v, want 3.5", stats.Average)
	}
	want := map[int]int{1: 1, 2: 0, 3: 0, 4: 2, 5: 1}
	for star, n := range want {
		if stats.Distribution[star] != n {
			t.Fatalf("distribution[%d] = %d, want %d", star, stats.Distribution[star], n)
		}
	}
}

func TestAdminListSortsAndCounts(t *testing.T) {
	svc, _ := newChatService(t)
	ctx := context.Background()

	a, _ := svc.Create(ctx, "a@b.co", "Ana")
	b, _ := svc.Create(ctx, "b@b.co", "Ben")
	c, _ := svc.Create(ctx, "c@b.co", "Cam")
	if _, err := svc.UpdateStatus(ctx, a.ChatID, "closed"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SendMessage(ctx, b.ChatID, "help", "user"); err != nil {
		t.Fatal(err)
	}

	chats, counts, err := svc.AdminList(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if counts.Total != 3 || counts.Active != 1 || counts.Waiting != 1 || counts.Closed != 1 {
		t.Fatalf("counts = %+v", counts)
	}
	// b was touched last, a second, c never after creation.
	if chats[0].ID != b.ChatID {
		t.Fatalf("chats[0] = %s, want most recently updated %s", chats[0].ID, b.ChatID)
	}
	for i := 1; i < len(chats); i++ {
		if chats[i].UpdatedAt.After(chats[i-1].UpdatedAt) {
			t.Fatal("chats not sorted by updatedAt descending")
		}
	}

	waiting, counts, err := svc.AdminList(ctx, "waiting")
	if err != nil {
		t.Fatal(err)
	}
	if len(waiting) != 1 || waiting[0].ID != b.ChatID {
		t.Fatalf("waiting filter = %+v", waiting)
	}
	if counts.Total != 3 {
		t.Fatalf("counts cover all chats, got total %d", counts.Total)
	}
	_ = c

	if _, _, err := svc.AdminList(ctx, "bogus"); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}
