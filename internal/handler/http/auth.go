package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/MKhiriev/go-webapp-plugins/internal/service"
	"github.com/MKhiriev/go-webapp-plugins/internal/utils"
	"github.com/MKhiriev/go-webapp-plugins/models"
)

func (h *Handler) loginPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	// an empty field gets the same answer as a wrong password
	if err := h.validator.Validate(ctx, req); err != nil {
		log.Info().Err(err).Msg("login payload rejected")
		http.Error(w, msgInvalidCredentials, http.StatusForbidden)
		return
	}

	session, err := h.services.AuthService.Login(ctx, req.Username, req.Password, utils.ClientIP(r))
	if err != nil {
		// unknown user, wrong password and database failures look the same
		log.Info().Err(err).Str("username", req.Username).Msg("login rejected")
		http.Error(w, msgInvalidCredentials, http.StatusForbidden)
		return
	}

	log.Info().Int64("session_id", session.ID).Msg("user logged in")

	http.SetCookie(w, sessionCookie(r, session.Token))
	utils.WriteJSON(w, models.LoginResponse{Token: session.Token}, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		http.Error(w, msgNotAuthorized, http.StatusForbidden)
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err := h.validator.Validate(ctx, req); err != nil {
		log.Info().Err(err).Msg("password change payload rejected")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.services.PasswordService.ChangePassword(ctx, identity, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Info().Int64("user_id", identity.User.ID).Msg("wrong old password")
			http.Error(w, msgOldPasswordIncorrect, http.StatusForbidden)
		case errors.Is(err, service.ErrPasswordTooShort):
			// built by the service from the configured minimum only
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Err(err).Msg("password change failed")
			writeError(w, err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(msgPasswordChanged))
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		http.Error(w, msgNotAuthorized, http.StatusForbidden)
		return
	}

	if err := h.services.AuthService.Logout(ctx, identity); err != nil {
		log.Err(err).Int64("session_id", identity.Session.ID).Msg("logout failed")
		writeError(w, err)
		return
	}

	http.SetCookie(w, expiredSessionCookie(r))
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(msgLoggedOut))
}
