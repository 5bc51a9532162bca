package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrNoCredential         = errors.New("no credential supplied")
	ErrNoClientAddress      = errors.New("client address is unknown")
	ErrInvalidSession       = errors.New("session is invalid")
	ErrAnonymousSession     = errors.New("not authenticated")
	ErrAuthenticationFailed = errors.New("authentication failed")

	ErrInvalidCredentials = errors.New("no such user or password is incorrect")
	ErrLoginFailed        = errors.New("login failed")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrNoSuchUser         = errors.New("no such user")
	ErrLogoutFailed       = errors.New("logout failed")

	ErrVersionIsNotSpecified = errors.New("version is not specified")
)
