package model

import "time"

type UserType string

const (
	TypeCitizen      UserType = "citizen"
	TypeReporter     UserType = "reporter"
	TypeOrganization UserType = "organization"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

// Trust levels are ordinal: 1 New, 2 Verified, 3 Trusted, 4 Editor. Used for
// display badges only, never for authorization.
const (
	TrustNew      = 1
	TrustVerified = 2
	TrustTrusted  = 3
	TrustEditor   = 4
)

type Stats struct {
	Posted   int `json:"posted"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Reports  int `json:"reports"`
}

type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Mobile     string    `json:"mobile"`
	Type       UserType  `json:"type"`
	TrustLevel int       `json:"trust_level"`
	TrustScore int       `json:"trust_score"`
	IsVerified bool      `json:"is_verified"`
	Avatar     string    `json:"avatar,omitempty"`
	Role       Role      `json:"role"`
	Banned     bool      `json:"banned"`
	Strikes    int       `json:"strikes"`
	Stats      Stats     `json:"stats"`
	JoinedAt   time.Time `json:"joined_at"`
}
