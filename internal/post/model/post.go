package model

import "time"

type Type string

const (
	TypeNews          Type = "news"
	TypeJob           Type = "job"
	TypeTech          Type = "tech"
	TypeEducation     Type = "education"
	TypeSports        Type = "sports"
	TypeEntertainment Type = "entertainment"
	TypeLocal         Type = "local"
)

func (t Type) Valid() bool {
	switch t {
	case TypeNews, TypeJob, TypeTech, TypeEducation, TypeSports, TypeEntertainment, TypeLocal:
		return true
	}
	return false
}

// Status is the moderation gate: pending at creation, then exactly one
// transition to approved or rejected. Only approved posts reach feeds.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Risk is the advisory verdict from post verification.
type Risk string

const (
	RiskLow    Risk = "Low"
	RiskMedium Risk = "Medium"
	RiskHigh   Risk = "High"
)

type Post struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Thumbnail       string    `json:"thumbnail,omitempty"`
	Category        string    `json:"category,omitempty"`
	SubCategory     string    `json:"sub_category,omitempty"`
	Type            Type      `json:"type"`
	AuthorID        string    `json:"author_id,omitempty"`
	AuthorName      string    `json:"author_name,omitempty"`
	AuthorLevel     int       `json:"author_level,omitempty"`
	Views           int       `json:"views"`
	Location        string    `json:"location,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	IsTrending      bool      `json:"is_trending,omitempty"`
	Status          Status    `json:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	ReportCount     int       `json:"report_count"`
	AIRisk          Risk      `json:"ai_risk,omitempty"`
	AIScore         float64   `json:"ai_score,omitempty"`
	AIReason        string    `json:"ai_reason,omitempty"`
	Salary          string    `json:"salary,omitempty"`
	Company         string    `json:"company,omitempty"`
	LastDate        string    `json:"last_date,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Filter narrows a feed query. Zero values mean "any".
type Filter struct {
	Type        Type
	SubCategory string
}

type FeedPage struct {
	Items []Post `json:"items"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Total int    `json:"total"`
}

type AdminStats struct {
	TotalPosts      int `json:"total_posts"`
	PendingApproval int `json:"pending_approval"`
	Approved        int `json:"approved"`
	Rejected        int `json:"rejected"`
	Reported        int `json:"reported"`
	AIFlagged       int `json:"ai_flagged"`
}
