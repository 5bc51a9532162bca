package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-webapp-plugins/internal/service"
	"github.com/MKhiriev/go-webapp-plugins/internal/store"
)

// errorStatusMap is consulted before storeErrorStatusMap: service errors
// often wrap a store error and the service meaning wins.
var errorStatusMap = map[error]int{
	ErrMalformedPageParam: http.StatusBadRequest,
	ErrInvalidPageRange:   http.StatusBadRequest,
	ErrPageTooLarge:       http.StatusBadRequest,

	service.ErrInvalidDataProvided:  http.StatusBadRequest,
	service.ErrPasswordTooShort:     http.StatusBadRequest,
	service.ErrNoCredential:         http.StatusForbidden,
	service.ErrNoClientAddress:      http.StatusForbidden,
	service.ErrInvalidSession:       http.StatusForbidden,
	service.ErrAnonymousSession:     http.StatusForbidden,
	service.ErrAuthenticationFailed: http.StatusForbidden,
	service.ErrInvalidCredentials:   http.StatusForbidden,
	service.ErrLoginFailed:          http.StatusForbidden,
	service.ErrNoSuchUser:           http.StatusNotFound,
}

var storeErrorStatusMap = map[error]int{
	store.ErrUsernameAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrSessionNotFound:       http.StatusNotFound,
	store.ErrPasswordNotFound:      http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrAcquiringConnection:  http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

// classifyError returns the status of the first known sentinel err wraps,
// and that sentinel.
// Unknown errors map to 500 with a nil sentinel.
func classifyError(err error) (int, error) {
	for _, table := range []map[error]int{errorStatusMap, storeErrorStatusMap} {
		for target, status := range table {
			if errors.Is(err, target) {
				return status, target
			}
		}
	}
	return http.StatusInternalServerError, nil
}

func statusFromError(err error) int {
	status, _ := classifyError(err)
	return status
}

// writeError answers with the status mapped from err. The body is the
// message of the matched sentinel only, never the wrapped chain: 403 always
// says "Not authorized" and server errors get the status text.
func writeError(w http.ResponseWriter, err error) {
	status, target := classifyError(err)
	switch {
	case status >= http.StatusInternalServerError:
		http.Error(w, http.StatusText(status), status)
	case status == http.StatusForbidden:
		http.Error(w, msgNotAuthorized, status)
	default:
		http.Error(w, target.Error(), status)
	}
}
