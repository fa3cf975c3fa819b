package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/figlens/internal/testutil"
	"github.com/leapstack-labs/figlens/internal/ui/features"
)

func TestSetupRoutes(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		skipLoad   bool
		isDev      bool
		wantStatus int
	}{
		{name: "page", method: http.MethodGet, path: "/", wantStatus: http.StatusOK},
		{name: "health", method: http.MethodGet, path: "/healthz", wantStatus: http.StatusOK},
		{name: "health loading", method: http.MethodGet, path: "/healthz", skipLoad: true, wantStatus: http.StatusServiceUnavailable},
		{name: "nodes", method: http.MethodGet, path: "/api/nodes", wantStatus: http.StatusOK},
		{name: "bitmap", method: http.MethodGet, path: "/api/bitmap", wantStatus: http.StatusOK},
		{name: "export", method: http.MethodGet, path: "/api/nodes/1:3/export.png", wantStatus: http.StatusOK},
		{name: "static", method: http.MethodGet, path: "/static/figlens.css", wantStatus: http.StatusOK},
		{name: "hover needs post", method: http.MethodGet, path: "/api/hover", wantStatus: http.StatusMethodNotAllowed},
		{name: "hotreload off", method: http.MethodGet, path: "/hotreload", wantStatus: http.StatusNotFound},
		{name: "hotreload dev", method: http.MethodGet, path: "/hotreload", isDev: true, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := features.SetupTestFixture(t, features.FixtureOptions{SkipLoad: tt.skipLoad})
			r := chi.NewMux()
			require.NoError(t, SetupRoutes(r, fixture.Workspace, fixture.SessionStore, fixture.Notifier, testutil.NewTestLogger(t), tt.isDev))

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
