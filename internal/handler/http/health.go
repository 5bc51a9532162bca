package http

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/go-webapp-plugins/internal/apidoc"
	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/MKhiriev/go-webapp-plugins/internal/service"
	"github.com/MKhiriev/go-webapp-plugins/internal/utils"
	"github.com/MKhiriev/go-webapp-plugins/models"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
)

const readinessTimeout = 2 * time.Second

// ReadinessProbe is a named dependency consulted by the readiness route.
type ReadinessProbe interface {
	Name() string
	Ready(ctx context.Context) error
}

// Health serves the liveness and readiness probes of the host.
type Health struct {
	appInfo service.AppInfoService
	probes  []ReadinessProbe
}

func NewHealth(appInfo service.AppInfoService, probes ...ReadinessProbe) *Health {
	return &Health{appInfo: appInfo, probes: probes}
}

func (h *Health) live(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.HealthResponse{
		Status:  "ok",
		Version: h.appInfo.GetAppVersion(r.Context()),
	}, http.StatusOK)
}

func (h *Health) ready(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	resp := models.HealthResponse{
		Status:  "ok",
		Version: h.appInfo.GetAppVersion(ctx),
		Checks:  make(map[string]string, len(h.probes)),
	}
	status := http.StatusOK

	for _, probe := range h.probes {
		if err := probe.Ready(ctx); err != nil {
			log.Warn().Err(err).Str("plugin", probe.Name()).Msg("plugin is not ready")
			resp.Checks[probe.Name()] = "failing"
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[probe.Name()] = "ok"
	}

	utils.WriteJSON(w, resp, status)
}

// RegisterRoutes mounts /health/live and /health/ready.
func (h *Health) RegisterRoutes(r chi.Router) *apidoc.Fragment {
	r.Get("/health/live", h.live)
	r.Get("/health/ready", h.ready)

	return apidoc.NewFragment().
		AddSchema("HealthResponse", schemaOf(models.HealthResponse{})).
		AddOperation(http.MethodGet, "/health/live", &openapi3.Operation{
			OperationID: "healthLive",
			Tags:        []string{"health"},
			Summary:     "Liveness probe",
			Responses:   apidoc.Responses(apidoc.OK("Process is up", apidoc.SchemaRef("HealthResponse"))),
		}).
		AddOperation(http.MethodGet, "/health/ready", &openapi3.Operation{
			OperationID: "healthReady",
			Tags:        []string{"health"},
			Summary:     "Readiness probe over every plugin database",
			Responses: apidoc.Responses(
				apidoc.OK("Every plugin is ready", apidoc.SchemaRef("HealthResponse")),
				apidoc.Response{
					Status:      http.StatusServiceUnavailable,
					Description: "At least one plugin is not ready",
					Schema:      apidoc.SchemaRef("HealthResponse"),
				},
			),
		})
}
