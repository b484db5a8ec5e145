package model

import "time"

// User is an account that owns leads and targets. Authentication lives in
// the upstream gateway; the backend only stores profile data.
type User struct {
	ID           int64      `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	GenderID     *int64     `json:"gender"`
	Email        *string    `json:"email"`
	PhoneNumber  *string    `json:"phoneNumber"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`
	LastLogoutAt *time.Time `json:"lastLogoutAt"`
	IsDeleted    bool       `json:"isDeleted"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// FullName joins first and last name the way lead rows record their
// sourcing agent.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserRef is the trimmed user projection returned alongside lead listings.
type UserRef struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     *string `json:"email"`
	Name      string  `json:"name"`
}

// Gender is simple reference data with soft delete.
type Gender struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
