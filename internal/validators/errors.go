package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyUsername    = errors.New("username is required")
	ErrInvalidUsername  = errors.New("username must not contain whitespace or control characters")
	ErrUsernameTooLong  = errors.New("username is too long")
	ErrPersonTooLong    = errors.New("person is too long")
	ErrEmptyPassword    = errors.New("password is required")
	ErrEmptyOldPassword = errors.New("old_password is required")
	ErrEmptyNewPassword = errors.New("new_password is required")
)
