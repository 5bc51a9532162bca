// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced while reading list query parameters.
var (
	// ErrMalformedPageParam is returned when _start or _end is not a
	// non-negative integer.
	ErrMalformedPageParam = errors.New("_start and _end query params must be non-negative integers")

	// ErrInvalidPageRange is returned when _start is greater than _end.
	ErrInvalidPageRange = errors.New("_start query param must be less than _end")

	// ErrPageTooLarge is returned when _end - _start exceeds models.MaxPageSize.
	ErrPageTooLarge = errors.New("_end - _start must not exceed 1000")
)

// Response bodies shared by several handlers.
const (
	msgNotAuthorized      = "Not authorized"
	msgInvalidCredentials = "No such user or password is incorrect"
	msgInvalidJSON        = "Invalid JSON was passed"
	msgLoggedOut          = "Logged out"
	msgPasswordChanged    = "Password changed"

	msgOldPasswordIncorrect = "Old password is incorrect"
)
