package model

import "time"

// DailyTarget holds one user's targets for a single day. The row is unique
// per (user, date); upserts merge field by field.
type DailyTarget struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"userId"`
	TargetDate         string    `json:"targetDate"`
	C1Target           int       `json:"c1Target"`
	C2Target           int       `json:"c2Target"`
	C3Target           int       `json:"c3Target"`
	C4Target           int       `json:"c4Target"`
	SubscriptionTarget int       `json:"subscriptionTarget"`
	Token              *string   `json:"token"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// TargetUpsert carries one day's target values for an upsert. Nil fields
// leave the stored value untouched when the row already exists.
type TargetUpsert struct {
	UserID             int64   `json:"userId"`
	TargetDate         string  `json:"date"`
	C1Target           *int    `json:"c1Target"`
	C2Target           *int    `json:"c2Target"`
	C3Target           *int    `json:"c3Target"`
	C4Target           *int    `json:"c4Target"`
	SubscriptionTarget *int    `json:"subscriptionTarget"`
	Token              *string `json:"token"`
}
