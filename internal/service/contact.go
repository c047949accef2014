package service

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopmono/storefront/internal/errs"
	"github.com/shopmono/storefront/internal/kafka"
	"github.com/shopmono/storefront/internal/model"
	"github.com/shopmono/storefront/internal/store"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactService owns the contacts collection.
type ContactService struct {
	store    *store.Store
	producer kafka.EventProducer
}

func NewContactService(st *store.Store, producer kafka.EventProducer) *ContactService {
	return &ContactService{store: st, producer: producer}
}

// Submit records an inbound contact message. New messages are prepended
// so the stored order is newest-first without a separate sort.
func (s *ContactService) Submit(ctx context.Context, name, email, subject, message, priority string) (*model.ContactMessage, error) {
	if name == "" || email == "" || subject == "" || message == "" {
		return nil, errs.Validationf("name, email, subject and message are required")
	}
	if !emailRegex.MatchString(email) {
		return nil, errs.Validationf("email is not valid")
	}
	if priority == "" {
		priority = string(model.PriorityMedium)
	}
	pr := model.ContactPriority(priority)
	if !pr.Valid() {
		return nil, errs.Validationf("priority must be one of low, medium, high")
	}
	now := time.Now().UTC()
	cm := model.ContactMessage{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Subject:   subject,
		Message:   message,
		Priority:  pr,
		Status:    model.ContactStatusNew,
		CreatedAt: now,
		UpdatedAt: now,
		Replies:   []model.ContactReply{},
	}
	err := s.store.WithLock(store.Contacts, func() error {
		var contacts []model.ContactMessage
		if err := s.store.Read(store.Contacts, &contacts); err != nil {
			return err
		}
		contacts = append([]model.ContactMessage{cm}, contacts...)
		return s.store.Write(store.Contacts, contacts)
	})
	if err != nil {
		return nil, err
	}
	produce(s.producer, "contact.submitted", map[string]any{
		"contact_id": cm.ID,
		"email":      cm.Email,
		"priority":   string(cm.Priority),
	})
	return &cm, nil
}

// Reply appends a reply and forces the message status to replied.
func (s *ContactService) Reply(ctx context.Context, contactID, content, sender string) (*model.ContactReply, error) {
	if contactID == "" || content == "" || sender == "" {
		return nil, errs.Validationf("contactId, content and sender are required")
	}
	var reply *model.ContactReply
	err := s.store.WithLock(store.Contacts, func() error {
		var contacts []model.ContactMessage
		if err := s.store.Read(store.Contacts, &contacts); err != nil {
			return err
		}
		for i := range contacts {
			if contacts[i].ID != contactID {
				continue
			}
			now := time.Now().UTC()
			r := model.ContactReply{
				ID:        uuid.NewString(),
				Content:   content,
				Sender:    sender,
				Timestamp: now,
			}
			if contacts[i].Replies == nil {
				contacts[i].Replies = []model.ContactReply{}
			}
			contacts[i].Replies = append(contacts[i].Replies, r)
			contacts[i].Status = model.ContactStatusReplied
			contacts[i].UpdatedAt = now
			if err := s.store.Write(store.Contacts, contacts); err != nil {
				return err
			}
			reply = &r
			return nil
		}
		return errs.ErrContactNotFound
	})
	if err != nil {
		return nil, err
	}
	return reply, nil
}

// UpdateStatus overwrites the message status.
func (s *ContactService) UpdateStatus(ctx context.Context, contactID, status string) (*model.ContactMessage, error) {
	st := model.ContactStatus(status)
	if !st.Valid() {
		return nil, errs.Validationf("status must be one of new, read, replied, closed")
	}
	var updated *model.ContactMessage
	err := s.store.WithLock(store.Contacts, func() error {
		var contacts []model.ContactMessage
		if err := s.store.Read(store.Contacts, &contacts); err != nil {
			return err
		}
		for i := range contacts {
			if contacts[i].ID != contactID {
				continue
			}
			contacts[i].Status = st
			contacts[i].UpdatedAt = time.Now().UTC()
			if err := s.store.Write(store.Contacts, contacts); err != nil {
				return err
			}
			c := contacts[i]
			updated = &c
			return nil
		}
		return errs.ErrContactNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// List returns contact messages, optionally filtered by status and
// priority (AND semantics). Stored order is already newest-first.
func (s *ContactService) List(ctx context.Context, status, priority string) ([]model.ContactMessage, error) {
	if status != "" && !model.ContactStatus(status).Valid() {
		return nil, errs.Validationf("status must be one of new, read, replied, closed")
	}
	if priority != "" && !model.ContactPriority(priority).Valid() {
		return nil, errs.Validationf("priority must be one of low, medium, high")
	}
	var contacts []model.ContactMessage
	err := s.store.WithLock(store.Contacts, func() error {
		return s.store.Read(store.Contacts, &contacts)
	})
	if err != nil {
		return nil, err
	}
	out := make([]model.ContactMessage, 0, len(contacts))
	for _, c := range contacts {
		if status != "" && c.Status != model.ContactStatus(status) {
			continue
		}
		if priority != "" && c.Priority != model.ContactPriority(priority) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}
