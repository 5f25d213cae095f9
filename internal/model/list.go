package model

import "time"

// List types.
const (
	ListTypeFocus = true
	ListTypeBreak = false
)

type List struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Username  string     `json:"username"`
	ListType  bool       `json:"listType"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// Expired reports whether the list has an expiry strictly before now.
func (l List) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(now)
}

// ListDetail is a list with its tasks nested.
type ListDetail struct {
	List
	Tasks []Task `json:"tasks"`
}

type NewList struct {
	Username  string
	Title     *string
	ListType  *bool
	ExpiresAt *time.Time
}

type ListPatch struct {
	Title     *string
	ListType  *bool
	ExpiresAt *time.Time
}
