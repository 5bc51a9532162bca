package models

import "time"

// User represents an account row of the "user" table.
// Username is unique; LoginCount only ever increases.
type User struct {
	// ID is the internal numeric identity.
	ID int64 `json:"id"`

	// CreateDate is the moment the account was created.
	CreateDate time.Time `json:"create_date"`

	// LastSeenDate is nil until the first successful login.
	LastSeenDate *time.Time `json:"last_seen_date"`

	// LoginCount is incremented on every successful password login.
	LoginCount int64 `json:"login_count"`

	// Username is the unique login name.
	Username string `json:"username"`

	// Person is the display name.
	Person string `json:"person"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "user"
}

// NewUser carries the fields an operator supplies when creating an account.
type NewUser struct {
	Username string `json:"username"`
	Person   string `json:"person"`
}
