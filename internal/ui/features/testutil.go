// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/figlens/internal/testutil"
	"github.com/leapstack-labs/figlens/internal/ui/notifier"
	"github.com/leapstack-labs/figlens/internal/ui/workspace"
	"github.com/leapstack-labs/figlens/internal/viewer"
)

// FixtureOptions adjusts the viewer the fixture loads.
type FixtureOptions struct {
	EnablePanAndZoom bool
	ContainerWidth   float64
	// SkipLoad leaves the workspace without a loaded design.
	SkipLoad bool
}

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Workspace    *workspace.Workspace
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
	Source       *viewer.StaticSource
}

// SetupTestFixture creates a workspace loaded with the card fixture, wired to
// a notifier the way the server wires them.
func SetupTestFixture(t *testing.T, opts FixtureOptions) *TestFixture {
	t.Helper()

	notify := notifier.New()
	src := &viewer.StaticSource{
		Name:     "card",
		Document: testutil.Card(t),
		Bitmap:   viewer.Bitmap{Data: testutil.CardPNG(t), Format: "png"},
	}
	ws := workspace.New(viewer.Config{
		Source:           src,
		Logger:           testutil.NewTestLogger(t),
		Emitter:          notify,
		ContainerWidth:   opts.ContainerWidth,
		EnablePanAndZoom: opts.EnablePanAndZoom,
	})
	if !opts.SkipLoad {
		require.NoError(t, ws.Reload(context.Background()))
	}

	return &TestFixture{
		Workspace:    ws,
		Notifier:     notify,
		SessionStore: NewTestSessionStore(),
		Source:       src,
	}
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}
