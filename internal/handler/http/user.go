package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/MKhiriev/go-webapp-plugins/internal/utils"
	"github.com/MKhiriev/go-webapp-plugins/models"
)

const totalCountHeader = "X-Total-Count"

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	page, err := pageFromQuery(r)
	if err != nil {
		log.Info().Err(err).Msg("bad pagination params")
		writeError(w, err)
		return
	}

	result, err := h.services.UserService.ListUsers(ctx, page)
	if err != nil {
		log.Err(err).Msg("listing users failed")
		writeError(w, err)
		return
	}

	users := result.Items
	if users == nil {
		users = []models.User{}
	}

	w.Header().Set(totalCountHeader, strconv.FormatInt(result.Total, 10))
	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) sessionInfo(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		http.Error(w, msgNotAuthorized, http.StatusForbidden)
		return
	}

	utils.WriteJSON(w, identity, http.StatusOK)
}

// pageFromQuery reads the _start and _end window of a list request.
func pageFromQuery(r *http.Request) (models.Page, error) {
	page := models.Page{Start: models.DefaultPageStart, End: models.DefaultPageEnd}

	query := r.URL.Query()
	for name, dst := range map[string]*uint64{"_start": &page.Start, "_end": &page.End} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return models.Page{}, ErrMalformedPageParam
		}
		*dst = v
	}

	if page.Start > page.End {
		return models.Page{}, ErrInvalidPageRange
	}
	if page.Size() > models.MaxPageSize {
		return models.Page{}, ErrPageTooLarge
	}
	return page, nil
}
