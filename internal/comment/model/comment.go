package model

import "time"

// Status is the moderation state of a single comment. Hiding or deleting is
// always a status flip, never a structural removal from the tree.
type Status string

const (
	StatusActive  Status = "active"
	StatusPending Status = "pending"
	StatusHidden  Status = "hidden"
	StatusDeleted Status = "deleted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusHidden, StatusDeleted:
		return true
	}
	return false
}

// Author is a snapshot of the posting identity taken at creation time. It is
// not refreshed when the user's trust level changes later.
type Author struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar,omitempty"`
	TrustLevel int    `json:"trust_level"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Author    Author    `json:"author"`
	Text      string    `json:"text"`
	ParentID  string    `json:"parent_id,omitempty"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentNode is a comment together with its viewer-scoped like state and its
// materialized replies. Top-level nodes are ordered newest-first, replies
// oldest-first so a thread reads as a conversation.
type CommentNode struct {
	Comment
	LikeCount int           `json:"like_count"`
	IsLiked   bool          `json:"is_liked"`
	Replies   []CommentNode `json:"replies"`
}
