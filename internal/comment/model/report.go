package model

import "time"

type ReportReason string

const (
	ReasonSpam       ReportReason = "spam"
	ReasonAbuse      ReportReason = "abuse"
	ReasonFake       ReportReason = "fake"
	ReasonHarassment ReportReason = "harassment"
)

func (r ReportReason) Valid() bool {
	switch r {
	case ReasonSpam, ReasonAbuse, ReasonFake, ReasonHarassment:
		return true
	}
	return false
}

type ReportStatus string

const (
	ReportOpen     ReportStatus = "open"
	ReportReviewed ReportStatus = "reviewed"
	ReportResolved ReportStatus = "resolved"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportOpen, ReportReviewed, ReportResolved:
		return true
	}
	return false
}

// Report is a viewer complaint about a comment. Text carries the reported
// comment body at the time of the report so moderators see what was flagged
// even if the comment is edited or hidden afterwards.
type Report struct {
	ID         string       `json:"id"`
	CommentID  string       `json:"comment_id"`
	ReportedBy string       `json:"reported_by"`
	Reason     ReportReason `json:"reason"`
	Text       string       `json:"text"`
	Status     ReportStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
}
