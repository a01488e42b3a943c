package model

import "time"

type Type string

const (
	TypePost     Type = "post"
	TypeBreaking Type = "breaking"
	TypeJob      Type = "job"
	TypeSystem   Type = "system"
	TypeMessage  Type = "message"
	TypeReply    Type = "reply"
)

type Notification struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	TargetID  string    `json:"target_id,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
