// Package inspect serves the design inspector: the overlay, hover and
// selection round trips, per-tab viewports and the event stream.
package inspect

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/figlens/internal/ui/notifier"
	"github.com/leapstack-labs/figlens/internal/ui/workspace"
)

// SetupRoutes configures routes for the inspector.
func SetupRoutes(
	router chi.Router,
	ws *workspace.Workspace,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	logger *slog.Logger,
	isDev bool,
) error {
	handlers := NewHandlers(ws, sessionStore, notify, logger, isDev)

	router.Get("/", handlers.InspectorPage)
	router.Get("/updates", handlers.InspectorUpdates)

	router.Route("/api", func(r chi.Router) {
		r.Post("/hover", handlers.HoverSSE)
		r.Post("/select", handlers.SelectSSE)
		r.Post("/leave", handlers.LeaveSSE)
		r.Post("/zoom", handlers.ZoomSSE)
		r.Post("/pan", handlers.PanSSE)
		r.Post("/resize", handlers.ResizeSSE)

		r.Get("/bitmap", handlers.Bitmap)
		r.Get("/nodes", handlers.Nodes)
		r.Get("/nodes/{id}/export.png", handlers.Export)
		r.Get("/events", handlers.Events)
	})

	return nil
}
