// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SessionTokenLength is the number of alphanumeric characters in a session
// token.
const SessionTokenLength = 64

// Session represents a row of the "user_session" table.
//
// A session whose UserID is nil is anonymous and never authenticates.
type Session struct {
	ID            int64     `json:"id"`
	UserID        *int64    `json:"user_id"`
	Token         string    `json:"-"`
	CreateDate    time.Time `json:"create_date"`
	LastSeenDate  time.Time `json:"last_seen_date"`
	RequestsCount int64     `json:"requests_count"`
	LastAddress   string    `json:"last_address"`
}

// IsAuthenticated reports whether the session is bound to a user.
func (s Session) IsAuthenticated() bool {
	return s.UserID != nil
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "user_session"
}

// Identity is the result of a successful session authentication: the
// owning user and the session that was presented.
type Identity struct {
	User    User    `json:"user"`
	Session Session `json:"session"`
}
