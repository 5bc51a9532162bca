package models

import "time"

// UserPassword is the one-to-one password row of a user. PasswordHash is a
// self-describing PHC string; the plaintext is never stored.
type UserPassword struct {
	ID              int64
	UserID          int64
	LastUpdatedDate time.Time
	PasswordHash    string
}

// TableName returns the name of the database table
// associated with the UserPassword model.
func (p UserPassword) TableName() string {
	return "user_password"
}
