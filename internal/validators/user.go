// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"unicode"

	"github.com/MKhiriev/go-webapp-plugins/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldUsername    = "username"
	FieldPerson      = "person"
	FieldPassword    = "password"
	FieldOldPassword = "old_password"
	FieldNewPassword = "new_password"
)

const (
	MaxUsernameLength = 150
	MaxPersonLength   = 255
)

// UserValidator checks account and credential payloads before they reach
// services.
type UserValidator struct {
}

func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.NewUser:
		return v.validateNewUser(ctx, value, fields...)
	case *models.NewUser:
		return v.validateNewUser(ctx, *value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(ctx, value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(ctx, *value, fields...)

	case models.ChangePasswordRequest:
		return v.validateChangePasswordRequest(ctx, value, fields...)
	case *models.ChangePasswordRequest:
		return v.validateChangePasswordRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateNewUser(_ context.Context, user models.NewUser, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPerson}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if err := validateUsername(user.Username); err != nil {
				return err
			}
		case FieldPerson:
			if len([]rune(user.Person)) > MaxPersonLength {
				return ErrPersonTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateLoginRequest(_ context.Context, request models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if request.Username == "" {
				return ErrEmptyUsername
			}
		case FieldPassword:
			if request.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateChangePasswordRequest(_ context.Context, request models.ChangePasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOldPassword, FieldNewPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldOldPassword:
			if request.OldPassword == "" {
				return ErrEmptyOldPassword
			}
		case FieldNewPassword:
			if request.NewPassword == "" {
				return ErrEmptyNewPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateUsername(username string) error {
	if username == "" {
		return ErrEmptyUsername
	}
	if len([]rune(username)) > MaxUsernameLength {
		return ErrUsernameTooLong
	}
	for _, r := range username {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return ErrInvalidUsername
		}
	}
	return nil
}
