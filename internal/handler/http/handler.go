package http

import (
	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/MKhiriev/go-webapp-plugins/internal/service"
	"github.com/MKhiriev/go-webapp-plugins/internal/validators"
)

type Handler struct {
	services *service.Services

	// validator checks request payloads before they reach services.
	validator validators.Validator

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		validator: validators.NewUserValidator(),
		logger:    logger,
	}
}
