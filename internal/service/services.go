package service

import (
	"github.com/MKhiriev/go-webapp-plugins/internal/crypto"
	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/MKhiriev/go-webapp-plugins/internal/store"
)

// Services bundles the services a plugin builds over its own pool.
type Services struct {
	AuthService     AuthService
	UserService     UserService
	PasswordService PasswordService
}

// NewServices wires every service to transactor. minPasswordLength applies
// to password changes; plugins that never set passwords may pass zero.
func NewServices(transactor store.Transactor, minPasswordLength int, logger *logger.Logger) *Services {
	hasher := crypto.NewPasswordHasher()

	return &Services{
		AuthService:     NewAuthService(transactor, hasher, crypto.NewTokenGenerator(), logger),
		UserService:     NewUserService(transactor, logger),
		PasswordService: NewPasswordService(transactor, hasher, minPasswordLength, logger),
	}
}
