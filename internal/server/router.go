package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-webapp-plugins/internal/apidoc"
	httphandler "github.com/MKhiriev/go-webapp-plugins/internal/handler/http"
	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const apiTitle = "webapp"

// NewRouter builds the route table of one worker: shared middleware, the
// health probes, every plugin's routes and the API document.
func (h *Host) NewRouter() (*chi.Mux, error) {
	r := chi.NewRouter()

	if h.cfg.RealIP {
		r.Use(middleware.RealIP)
	}
	r.Use(
		httphandler.TraceID(h.logger),
		httphandler.Logging,
		middleware.Recoverer,
		middleware.Timeout(h.cfg.RequestTimeout),
		h.corsHandler(),
		httphandler.SecureCookies(h.cfg.Cookie.Secure),
	)

	probes := make([]httphandler.ReadinessProbe, 0, len(h.plugins))
	for _, p := range h.plugins {
		probes = append(probes, p)
	}

	fragments := []*apidoc.Fragment{httphandler.NewHealth(h.appInfo, probes...).RegisterRoutes(r)}
	for _, p := range h.plugins {
		fragments = append(fragments, p.RegisterRoutes(r))
	}

	doc := apidoc.NewDocument(apiTitle, h.appInfo.GetAppVersion(context.Background()))
	if err := apidoc.Merge(doc, fragments...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingRouter, err)
	}

	if h.cfg.OpenAPI == nil {
		return r, nil
	}

	spec, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingRouter, err)
	}

	specURI := h.cfg.OpenAPI.SpecURI
	r.Get(specURI, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(spec)
	})
	r.Get(h.cfg.OpenAPI.SwaggerURI, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := apidoc.WriteSwaggerUI(w, apiTitle, specURI); err != nil {
			logger.FromRequest(r).Err(err).Msg("error rendering swagger page")
		}
	})

	return r, nil
}

// corsHandler allows any origin unless the config lists them.
func (h *Host) corsHandler() func(http.Handler) http.Handler {
	if h.cfg.CORS == nil || len(h.cfg.CORS.Origins) == 0 {
		return cors.AllowAll().Handler
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.CORS.Origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Total-Count", "X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
