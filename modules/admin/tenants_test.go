package admin_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantkit/tenantkit/modules/admin"
	"github.com/tenantkit/tenantkit/pkg/registry"
	"github.com/tenantkit/tenantkit/pkg/tenant"
)

type memStore struct {
	mu      sync.Mutex
	tenants map[string]*registry.Tenant
}

func newMemStore() *memStore {
	return &memStore{tenants: make(map[string]*registry.Tenant)}
}

func (s *memStore) FindByIdentifier(ctx context.Context, identifier string) (*registry.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tenants[identifier]
	if !ok {
		return nil, registry.ErrTenantNotFound
	}
	return t, nil
}

func (s *memStore) Create(ctx context.Context, t *registry.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tenants[t.Name]; exists {
		return registry.ErrDuplicateTenant
	}
	t.ID = uuid.New()
	s.tenants[t.Name] = t
	s.tenants[t.ID.String()] = t
	return nil
}

type noopProvisioner struct{ err error }

func (p *noopProvisioner) EnsureDatabase(ctx context.Context, name string) error { return p.err }

type noopRunner struct{}

func (noopRunner) EnsureSchema(ctx context.Context, databaseName string) (int, error) {
	return 1, nil
}

func newTestRouter(prov *noopProvisioner) chi.Router {
	svc := tenant.NewService(newMemStore(), prov, noopRunner{}, nil)
	return admin.Router(admin.RouterOptions{
		Tenants: admin.NewTenantService(svc, nil),
	})
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestTenantService_Create(t *testing.T) {
	t.Parallel()

	t.Run("creates and returns the tenant", func(t *testing.T) {
		t.Parallel()

		r := newTestRouter(&noopProvisioner{})
		rec := do(r, http.MethodPost, "/tenants", `{"name":"acme","database_name":"tenant_acme"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"acme"`)
		assert.Contains(t, rec.Body.String(), `"database_name":"tenant_acme"`)
		assert.Contains(t, rec.Body.String(), `"active":true`)
	})

	t.Run("derives a database name when omitted", func(t *testing.T) {
		t.Parallel()

		r := newTestRouter(&noopProvisioner{})
		rec := do(r, http.MethodPost, "/tenants", `{"name":"Acme Corp!"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"database_name":"tenant_acme_corp_"`)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		r := newTestRouter(&noopProvisioner{})
		rec := do(r, http.MethodPost, "/tenants", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		t.Parallel()

		r := newTestRouter(&noopProvisioner{})
		rec := do(r, http.MethodPost, "/tenants", `{"database_name":"tenant_x"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("rejects hostile database names", func(t *testing.T) {
		t.Parallel()

		r := newTestRouter(&noopProvisioner{})
		rec := do(r, http.MethodPost, "/tenants", `{"name":"acme","database_name":"x; DROP DATABASE postgres"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("conflicts on duplicate name", func(t *testing.T) {
		t.Parallel()

		r := newTestRouter(&noopProvisioner{})
		do(r, http.MethodPost, "/tenants", `{"name":"acme"}`)
		rec := do(r, http.MethodPost, "/tenants", `{"name":"acme"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("reports incomplete provisioning", func(t *testing.T) {
		t.Parallel()

		r := newTestRouter(&noopProvisioner{err: assert.AnError})
		rec := do(r, http.MethodPost, "/tenants", `{"name":"acme"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "not yet provisioned")
	})
}

func TestTenantService_Show(t *testing.T) {
	t.Parallel()

	t.Run("returns an existing tenant", func(t *testing.T) {
		t.Parallel()

		r := newTestRouter(&noopProvisioner{})
		do(r, http.MethodPost, "/tenants", `{"name":"acme","database_name":"tenant_acme"}`)

		rec := do(r, http.MethodGet, "/tenants/acme", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"database_name":"tenant_acme"`)
	})

	t.Run("404s on unknown tenant", func(t *testing.T) {
		t.Parallel()

		r := newTestRouter(&noopProvisioner{})
		rec := do(r, http.MethodGet, "/tenants/ghost", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
