package admin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tenantkit/tenantkit/pkg/provisioner"
	"github.com/tenantkit/tenantkit/pkg/registry"
	"github.com/tenantkit/tenantkit/pkg/tenant"
)

// TenantService exposes tenant onboarding and inspection over JSON.
type TenantService struct {
	svc *tenant.Service
	log *slog.Logger
}

func NewTenantService(svc *tenant.Service, log *slog.Logger) *TenantService {
	if log == nil {
		log = slog.Default()
	}
	return &TenantService{svc: svc, log: log}
}

func (s *TenantService) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/", s.create)
	r.Get("/{identifier}", s.show)

	return r
}

// CreateTenantRequest is the onboarding payload. DatabaseName is optional;
// when omitted it is derived from the tenant name.
type CreateTenantRequest struct {
	Name         string            `json:"name"`
	DatabaseName string            `json:"database_name"`
	Attributes   map[string]string `json:"attributes"`
}

type tenantResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	DatabaseName string            `json:"database_name"`
	Attributes   map[string]string `json:"attributes,omitempty"`
	Active       bool              `json:"active"`
	CreatedAt    string            `json:"created_at"`
}

func newTenantResponse(t *tenant.Tenant) tenantResponse {
	return tenantResponse{
		ID:           t.ID.String(),
		Name:         t.Name,
		DatabaseName: t.DatabaseName,
		Attributes:   t.Attributes,
		Active:       t.Active,
		CreatedAt:    t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (s *TenantService) create(w http.ResponseWriter, r *http.Request) {
	var req CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusUnprocessableEntity, "name is required")
		return
	}
	if req.DatabaseName == "" {
		req.DatabaseName = deriveDatabaseName(req.Name)
	}

	created, err := s.svc.Create(r.Context(), req.Name, req.DatabaseName, req.Attributes)
	if err != nil {
		s.writeCreateError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, newTenantResponse(created))
}

func (s *TenantService) show(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "identifier")

	t, err := s.svc.Lookup(r.Context(), identifier)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			writeError(w, http.StatusNotFound, "tenant not found")
			return
		}
		s.log.ErrorContext(r.Context(), "tenant lookup failed", "identifier", identifier, "error", err)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, newTenantResponse(t))
}

func (s *TenantService) writeCreateError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, provisioner.ErrInvalidDatabaseName):
		writeError(w, http.StatusUnprocessableEntity, "invalid database name")
	case errors.Is(err, registry.ErrDuplicateTenant):
		writeError(w, http.StatusConflict, "tenant already exists")
	case errors.Is(err, tenant.ErrProvisionFailed), errors.Is(err, tenant.ErrSchemaNotReady):
		// The registry record was persisted; the first request to the tenant
		// (or a retried create) resumes provisioning.
		s.log.ErrorContext(r.Context(), "tenant provisioning incomplete", "error", err)
		writeError(w, http.StatusInternalServerError, "tenant registered but not yet provisioned")
	default:
		s.log.ErrorContext(r.Context(), "tenant creation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "tenant creation failed")
	}
}

// deriveDatabaseName turns a tenant name into a valid database identifier:
// lowercased, non-alphanumerics folded to underscores, prefixed to never
// start with a digit.
func deriveDatabaseName(name string) string {
	var b strings.Builder
	b.WriteString("tenant_")
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	derived := b.String()
	if len(derived) > provisioner.MaxDatabaseNameLength {
		derived = derived[:provisioner.MaxDatabaseNameLength]
	}
	return derived
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
