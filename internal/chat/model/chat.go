package model

import "time"

type MessageType string

const (
	MessageText     MessageType = "text"
	MessageImage    MessageType = "image"
	MessageVideo    MessageType = "video"
	MessageLocation MessageType = "location"
)

func (t MessageType) Valid() bool {
	switch t {
	case MessageText, MessageImage, MessageVideo, MessageLocation:
		return true
	}
	return false
}

type MessageStatus string

const (
	MessageSent MessageStatus = "sent"
	MessageSeen MessageStatus = "seen"
)

type Message struct {
	ID        string        `json:"id"`
	ChatID    string        `json:"chat_id"`
	SenderID  string        `json:"sender_id"`
	Text      string        `json:"text"`
	Type      MessageType   `json:"type"`
	Status    MessageStatus `json:"status"`
	MediaURL  string        `json:"media_url,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

type Participant struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar,omitempty"`
	TrustLevel int    `json:"trust_level"`
}

type Session struct {
	ID           string        `json:"id"`
	Participants []Participant `json:"participants"`
	LastMessage  string        `json:"last_message,omitempty"`
	LastAt       time.Time     `json:"last_at,omitempty"`
	UnreadCount  int           `json:"unread_count"`
}
