package model

import "time"

type ChatStatus string

const (
	ChatStatusActive  ChatStatus = "active"
	ChatStatusWaiting ChatStatus = "waiting"
	ChatStatusClosed  ChatStatus = "closed"
)

func (s ChatStatus) Valid() bool {
	switch s {
	case ChatStatusActive, ChatStatusWaiting, ChatStatusClosed:
		return true
	}
	return false
}

type MessageSender string

const (
	SenderUser    MessageSender = "user"
	SenderSupport MessageSender = "support"
	SenderBot     MessageSender = "bot"
)

func (s MessageSender) Valid() bool {
	switch s {
	case SenderUser, SenderSupport, SenderBot:
		return true
	}
	return false
}

type MessageStatus string

const (
	MessageStatusSending   MessageStatus = "sending"
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusRead      MessageStatus = "read"
)

// Message lives only inside its parent chat; there is no flat messages collection.
type Message struct {
	ID        string        `json:"id"`
	ChatID    string        `json:"chatId"`
	Content   string        `json:"content"`
	Sender    MessageSender `json:"sender"`
	Timestamp time.Time     `json:"timestamp"`
	Status    MessageStatus `json:"status"`
}

// Rating is written twice: to the flat ratings collection and,
// best-effort, embedded on the rated chat.
type Rating struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chatId"`
	UserEmail string    `json:"userEmail,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Chat struct {
	ID        string     `json:"id"`
	UserEmail string     `json:"userEmail"`
	UserName  string     `json:"userName"`
	Status    ChatStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Messages  []Message  `json:"messages"`
	Rating    *Rating    `json:"rating,omitempty"`
}
