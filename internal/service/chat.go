package service

import (
	"context"
	"log"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopmono/storefront/internal/errs"
	"github.com/shopmono/storefront/internal/kafka"
	"github.com/shopmono/storefront/internal/model"
	"github.com/shopmono/storefront/internal/store"
)

// ChatService owns the chats and ratings collections.
type ChatService struct {
	store    *store.Store
	producer kafka.EventProducer
}

func NewChatService(st *store.Store, producer kafka.EventProducer) *ChatService {
	return &ChatService{store: st, producer: producer}
}

// ChatCreateResult reports whether a chat was created or an existing
// active one was returned.
type ChatCreateResult struct {
	ChatID string `json:"chatId"`
	Status string `json:"status"` // "created" or "existing"
}

// Create opens a chat for the user, or returns the id of their active
// chat if one exists. At most one chat per email is active at a time;
// that is enforced here, not by any storage constraint.
func (s *ChatService) Create(ctx context.Context, userEmail, userName string) (*ChatCreateResult, error) {
	if userEmail == "" || userName == "" {
		return nil, errs.Validationf("userEmail and userName are required")
	}
	var result *ChatCreateResult
	err := s.store.WithLock(store.Chats, func() error {
		var chats []model.Chat
		if err := s.store.Read(store.Chats, &chats); err != nil {
			return err
		}
		for i := range chats {
			if chats[i].UserEmail == userEmail && chats[i].Status == model.ChatStatusActive {
				result = &ChatCreateResult{ChatID: chats[i].ID, Status: "existing"}
				return nil
			}
		}
		now := time.Now().UTC()
		chat := model.Chat{
			ID:        uuid.NewString(),
			UserEmail: userEmail,
			UserName:  userName,
			Status:    model.ChatStatusActive,
			CreatedAt: now,
			UpdatedAt: now,
			Messages:  []model.Message{},
		}
		chats = append(chats, chat)
		if err := s.store.Write(store.Chats, chats); err != nil {
			return err
		}
		result = &ChatCreateResult{ChatID: chat.ID, Status: "created"}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.Status == "created" {
		produce(s.producer, "chat.created", map[string]any{
			"chat_id":    result.ChatID,
			"user_email": userEmail,
		})
	}
	return result, nil
}

// SendMessage appends a message to the chat. A message from the user
// sender moves the chat to waiting regardless of its prior status;
// support and bot messages leave the status alone.
func (s *ChatService) SendMessage(ctx context.Context, chatID, content, sender string) (*model.Message, error) {
	if chatID == "" || content == "" || sender == "" {
		return nil, errs.Validationf("chatId, content and sender are required")
	}
	snd := model.MessageSender(sender)
	if !snd.Valid() {
		return nil, errs.Validationf("sender must be one of user, support, bot")
	}
	var msg *model.Message
	err := s.store.WithLock(store.Chats, func() error {
		var chats []model.Chat
		if err := s.store.Read(store.Chats, &chats); err != nil {
			return err
		}
		for i := range chats {
			if chats[i].ID != chatID {
				continue
			}
			now := time.Now().UTC()
			m := model.Message{
				ID:        uuid.NewString(),
				ChatID:    chatID,
				Content:   content,
				Sender:    snd,
				Timestamp: now,
				Status:    model.MessageStatusSent,
			}
			chats[i].Messages = append(chats[i].Messages, m)
			if snd == model.SenderUser {
				chats[i].Status = model.ChatStatusWaiting
			}
			chats[i].UpdatedAt = now
			if err := s.store.Write(store.Chats, chats); err != nil {
				return err
			}
			msg = &m
			return nil
		}
		return errs.ErrChatNotFound
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// Messages returns the chat with its message list.
func (s *ChatService) Messages(ctx context.Context, chatID string) (*model.Chat, error) {
	var found *model.Chat
	err := s.store.WithLock(store.Chats, func() error {
		var chats []model.Chat
		if err := s.store.Read(store.Chats, &chats); err != nil {
			return err
		}
		for i := range chats {
			if chats[i].ID == chatID {
				c := chats[i]
				found = &c
				return nil
			}
		}
		return errs.ErrChatNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// UpdateStatus overwrites the chat status. Any status can follow any
// status through this explicit path.
func (s *ChatService) UpdateStatus(ctx context.Context, chatID, status string) (*model.Chat, error) {
	st := model.ChatStatus(status)
	if !st.Valid() {
		return nil, errs.Validationf("status must be one of active, closed, waiting")
	}
	var updated *model.Chat
	err := s.store.WithLock(store.Chats, func() error {
		var chats []model.Chat
		if err := s.store.Read(store.Chats, &chats); err != nil {
			return err
		}
		for i := range chats {
			if chats[i].ID != chatID {
				continue
			}
			chats[i].Status = st
			chats[i].UpdatedAt = time.Now().UTC()
			if err := s.store.Write(store.Chats, chats); err != nil {
				return err
			}
			c := chats[i]
			updated = &c
			return nil
		}
		return errs.ErrChatNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SubmitRating writes the rating to the flat ratings collection
// unconditionally, then attaches a denormalized copy to the chat on a
// best-effort basis. A missing chat does not fail the submission, so a
// rating can end up orphaned and the two copies can diverge: the second
// write runs outside the first one's lock.
func (s *ChatService) SubmitRating(ctx context.Context, chatID string, rating int, comment, userEmail string) (*model.Rating, error) {
	if chatID == "" {
		return nil, errs.Validationf("chatId is required")
	}
	if rating < 1 || rating > 5 {
		return nil, errs.Validationf("rating must be an integer between 1 and 5")
	}
	r := model.Rating{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		UserEmail: userEmail,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}
	err := s.store.WithLock(store.Ratings, func() error {
		var ratings []model.Rating
		if err := s.store.Read(store.Ratings, &ratings); err != nil {
			return err
		}
		ratings = append(ratings, r)
		return s.store.Write(store.Ratings, ratings)
	})
	if err != nil {
		return nil, err
	}
	if err := s.store.WithLock(store.Chats, func() error {
		var chats []model.Chat
		if err := s.store.Read(store.Chats, &chats); err != nil {
			return err
		}
		for i := range chats {
			if chats[i].ID != chatID {
				continue
			}
			rc := r
			chats[i].Rating = &rc
			chats[i].UpdatedAt = time.Now().UTC()
			return s.store.Write(store.Chats, chats)
		}
		return nil // missing chat: rating stays orphaned
	}); err != nil {
		log.Printf("chat: attach rating %s to chat %s: %v", r.ID, chatID, err)
	}
	return &r, nil
}

// RatingStats aggregates the flat ratings collection.
type RatingStats struct {
	Total        int         `json:"total"`
	Average      float64     `json:"average"`
	Distribution map[int]int `json:"distribution"`
}

// Ratings returns every rating plus aggregate statistics. The average is
// rounded to two decimals; the distribution always carries keys 1..5.
func (s *ChatService) Ratings(ctx context.Context) ([]model.Rating, *RatingStats, error) {
	var ratings []model.Rating
	err := s.store.WithLock(store.Ratings, func() error {
		return s.store.Read(store.Ratings, &ratings)
	})
	if err != nil {
		return nil, nil, err
	}
	if ratings == nil {
		ratings = []model.Rating{}
	}
	stats := &RatingStats{Total: len(ratings), Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r.Rating
			stats.Distribution[r.Rating]++
		}
		stats.Average = math.Round(float64(sum)/float64(len(ratings))*100) / 100
	}
	return ratings, stats, nil
}

// ChatCounts aggregates chats per status.
type ChatCounts struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	Waiting int `json:"waiting"`
	Closed  int `json:"closed"`
}

// AdminList returns chats, optionally filtered by status, sorted by
// updatedAt descending, plus per-status counts over all chats.
func (s *ChatService) AdminList(ctx context.Context, status string) ([]model.Chat, *ChatCounts, error) {
	if status != "" && !model.ChatStatus(status).Valid() {
		return nil, nil, errs.Validationf("status must be one of active, closed, waiting")
	}
	var chats []model.Chat
	err := s.store.WithLock(store.Chats, func() error {
		return s.store.Read(store.Chats, &chats)
	})
	if err != nil {
		return nil, nil, err
	}
	counts := &ChatCounts{Total: len(chats)}
	for _, c := range chats {
		switch c.Status {
		case model.ChatStatusActive:
			counts.Active++
		case model.ChatStatusWaiting:
			counts.Waiting++
		case model.ChatStatusClosed:
			counts.Closed++
		}
	}
	filtered := chats
	if status != "" {
		filtered = filtered[:0:0]
		for _, c := range chats {
			if c.Status == model.ChatStatus(status) {
				filtered = append(filtered, c)
			}
		}
	}
	if filtered == nil {
		filtered = []model.Chat{}
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].UpdatedAt.After(filtered[j].UpdatedAt)
	})
	return filtered, counts, nil
}

// produce fires an event in the background with its own timeout so a slow
// broker never holds up the request.
func produce(p kafka.EventProducer, event string, payload map[string]any) {
	if p == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		p.ProduceSupportEvent(ctx, event, payload)
	}()
}
