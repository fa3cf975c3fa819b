package inspect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/figlens/internal/overlay"
	"github.com/leapstack-labs/figlens/internal/ui/features/inspect/pages"
	"github.com/leapstack-labs/figlens/internal/ui/notifier"
	"github.com/leapstack-labs/figlens/internal/ui/workspace"
	"github.com/leapstack-labs/figlens/internal/viewer"
	"github.com/leapstack-labs/figlens/pkg/figma"
	"github.com/leapstack-labs/figlens/pkg/style"
	"github.com/leapstack-labs/figlens/pkg/viewport"
	"github.com/starfederation/datastar-go/datastar"
)

const (
	sessionName = "figlens"
	clientKey   = "client"
)

// errNotLoaded is reported while no design is loaded.
var errNotLoaded = errors.New("no design loaded")

// Signals are the datastar signals the page sends with every request.
type Signals struct {
	TabID  string  `json:"tabId"`
	NodeID string  `json:"nodeId"`
	Zoom   float64 `json:"zoom"`
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	Width  float64 `json:"width"`
}

// Handlers provides HTTP handlers for the inspector.
type Handlers struct {
	ws           *workspace.Workspace
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	tabs         *Tabs
	logger       *slog.Logger
	isDev        bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(ws *workspace.Workspace, sessionStore sessions.Store, notify *notifier.Notifier, logger *slog.Logger, isDev bool) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		ws:           ws,
		sessionStore: sessionStore,
		notifier:     notify,
		tabs:         NewTabs(),
		logger:       logger,
		isDev:        isDev,
	}
}

// Tabs returns the per-tab viewport registry.
func (h *Handlers) Tabs() *Tabs {
	return h.tabs
}

// InspectorPage renders the page with the current overlay.
func (h *Handlers) InspectorPage(w http.ResponseWriter, r *http.Request) {
	client, err := h.clientID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	tabID := uuid.New().String()

	data := h.buildViewData(client+"/"+tabID, tabID)
	if err := pages.Page(data).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// InspectorUpdates is the long-lived SSE endpoint for a tab. It re-renders
// the overlay on every viewer event and the whole app when a design loads.
func (h *Handlers) InspectorUpdates(w http.ResponseWriter, r *http.Request) {
	signals, key, ok := h.readSignals(w, r)
	if !ok {
		return
	}
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)
	h.tabs.Attach(key)
	defer h.tabs.Forget(key)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case e, open := <-updates:
			if !open {
				return
			}
			var err error
			if e.Type == viewer.EventLoaded || e.Type == viewer.EventInit {
				err = sse.PatchElementTempl(pages.App(h.buildViewData(key, signals.TabID)))
			} else {
				err = h.patchOverlay(sse, key)
			}
			if err != nil {
				_ = sse.ConsoleError(err)
				// keep streaming, the next event may succeed
			}
		}
	}
}

// HoverSSE marks a node hovered and answers with the redrawn overlay.
func (h *Handlers) HoverSSE(w http.ResponseWriter, r *http.Request) {
	h.nodeAction(w, r, func(v *viewer.Viewer, id string) error { return v.Hover(id) })
}

// SelectSSE marks a node selected and answers with the redrawn overlay.
func (h *Handlers) SelectSSE(w http.ResponseWriter, r *http.Request) {
	h.nodeAction(w, r, func(v *viewer.Viewer, id string) error { return v.Select(id) })
}

// LeaveSSE clears the hover.
func (h *Handlers) LeaveSSE(w http.ResponseWriter, r *http.Request) {
	h.nodeAction(w, r, func(v *viewer.Viewer, _ string) error {
		v.Leave()
		return nil
	})
}

func (h *Handlers) nodeAction(w http.ResponseWriter, r *http.Request, action func(*viewer.Viewer, string) error) {
	signals, key, ok := h.readSignals(w, r)
	if !ok {
		return
	}
	sse := datastar.NewSSE(w, r)

	v := h.ws.Current()
	if v == nil {
		_ = sse.ConsoleError(errNotLoaded)
		return
	}
	if err := action(v, signals.NodeID); err != nil {
		h.logger.Debug("node action failed", "node", signals.NodeID, "error", err)
		_ = sse.ConsoleError(err)
		return
	}
	if err := h.patchOverlay(sse, key); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// ZoomSSE applies a zoom gesture to the tab's viewport.
func (h *Handlers) ZoomSSE(w http.ResponseWriter, r *http.Request) {
	h.viewportAction(w, r, true, func(_ context.Context, key string, v *viewer.Viewer, s Signals) (*viewport.Viewport, error) {
		vp := h.tabs.Viewport(key, v)
		return vp, vp.Zoom(s.Zoom)
	})
}

// PanSSE applies a pan gesture to the tab's viewport.
func (h *Handlers) PanSSE(w http.ResponseWriter, r *http.Request) {
	h.viewportAction(w, r, true, func(_ context.Context, key string, v *viewer.Viewer, s Signals) (*viewport.Viewport, error) {
		vp := h.tabs.Viewport(key, v)
		vp.Pan(s.DX, s.DY)
		return vp, nil
	})
}

// ResizeSSE publishes the tab's container width to its resize feed.
func (h *Handlers) ResizeSSE(w http.ResponseWriter, r *http.Request) {
	h.viewportAction(w, r, false, func(ctx context.Context, key string, v *viewer.Viewer, s Signals) (*viewport.Viewport, error) {
		return h.tabs.Resize(ctx, key, v, s.Width)
	})
}

type viewportFunc func(ctx context.Context, key string, v *viewer.Viewer, s Signals) (*viewport.Viewport, error)

func (h *Handlers) viewportAction(w http.ResponseWriter, r *http.Request, gesture bool, action viewportFunc) {
	signals, key, ok := h.readSignals(w, r)
	if !ok {
		return
	}
	sse := datastar.NewSSE(w, r)

	v := h.ws.Current()
	if v == nil {
		_ = sse.ConsoleError(errNotLoaded)
		return
	}
	if gesture && !v.Options().EnablePanAndZoom {
		_ = sse.ConsoleError(errors.New("pan and zoom are disabled"))
		return
	}

	vp, err := action(r.Context(), key, v, signals)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.MarshalAndPatchSignals(map[string]any{"zoom": vp.Transform().Zoom}); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := h.patchOverlay(sse, key); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// Bitmap serves the fetched bitmap.
func (h *Handlers) Bitmap(w http.ResponseWriter, _ *http.Request) {
	v := h.ws.Current()
	if v == nil {
		http.Error(w, errNotLoaded.Error(), http.StatusServiceUnavailable)
		return
	}
	_, raw := v.Bitmap()
	w.Header().Set("Content-Type", raw.MediaType())
	_, _ = w.Write(raw.Data)
}

// Nodes returns the paintable nodes with their styles as JSON.
func (h *Handlers) Nodes(w http.ResponseWriter, _ *http.Request) {
	v := h.ws.Current()
	if v == nil {
		http.Error(w, errNotLoaded.Error(), http.StatusServiceUnavailable)
		return
	}
	nodes := v.Nodes()
	out := make([]viewer.InspectedNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, viewer.Inspect(n))
	}
	writeJSON(w, out)
}

// Export returns a node's crop of the bitmap as PNG.
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	v := h.ws.Current()
	if v == nil {
		http.Error(w, errNotLoaded.Error(), http.StatusServiceUnavailable)
		return
	}
	n, err := v.Node(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	data, err := v.ExportPNG(n)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(data)
}

// Events streams viewer events as JSON server-sent events for embedders
// that do not use datastar.
func (h *Handlers) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	// every event counts here, so the listener queues instead of coalescing
	updates := h.notifier.SubscribeOrdered(notifier.DefaultQueueSize)
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case e, open := <-updates:
			if !open {
				h.logger.Warn("event stream fell behind, closing")
				return
			}
			data, err := json.Marshal(e)
			if err != nil {
				h.logger.Error("failed to encode event", "type", e.Type, "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Type, data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// readSignals reads the datastar signals and resolves the tab key. It must
// run before datastar.NewSSE, which consumes the body and writes headers.
func (h *Handlers) readSignals(w http.ResponseWriter, r *http.Request) (Signals, string, bool) {
	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "failed to read signals: "+err.Error(), http.StatusBadRequest)
		return signals, "", false
	}
	client, err := h.clientID(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return signals, "", false
	}
	return signals, client + "/" + signals.TabID, true
}

// clientID returns the browser's id from the session cookie, issuing one on
// first visit.
func (h *Handlers) clientID(w http.ResponseWriter, r *http.Request) (string, error) {
	session, err := h.sessionStore.Get(r, sessionName)
	if err != nil {
		// tampered or stale cookie: start over with the fresh session
		h.logger.Debug("discarding invalid session", "error", err)
	}
	if id, ok := session.Values[clientKey].(string); ok && id != "" {
		return id, nil
	}
	id := uuid.New().String()
	session.Values[clientKey] = id
	if err := session.Save(r, w); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return id, nil
}

func (h *Handlers) patchOverlay(sse *datastar.ServerSentEventGenerator, key string) error {
	v := h.ws.Current()
	if v == nil {
		return errNotLoaded
	}
	svg, err := renderOverlay(v, h.tabs.Viewport(key, v))
	if err != nil {
		return err
	}
	if err := sse.PatchElementTempl(pages.Overlay(svg)); err != nil {
		return err
	}
	return sse.PatchElementTempl(pages.Inspector(panel("Selected", v.Selected()), panel("Hovered", v.Hovered())))
}

func (h *Handlers) buildViewData(key, tabID string) pages.ViewData {
	data := pages.ViewData{
		Title: "Inspector",
		TabID: tabID,
		IsDev: h.isDev,
	}
	if src := h.ws.Source(); src != nil {
		data.Source = src.String()
	}

	v := h.ws.Current()
	if v == nil {
		data.Error = "No design loaded."
		if err := h.ws.Err(); err != nil {
			data.Error = err.Error()
		}
		return data
	}

	root := v.Root()
	if root.Name != "" {
		data.Title = root.Name
	}
	data.PanAndZoom = v.Options().EnablePanAndZoom
	for _, n := range v.Nodes() {
		data.Nodes = append(data.Nodes, pages.NodeItem{ID: n.ID, Name: n.Name, Type: string(n.Type), Size: size(n)})
	}

	svg, err := renderOverlay(v, h.tabs.Viewport(key, v))
	if err != nil {
		data.Error = err.Error()
		return data
	}
	data.Overlay = svg
	data.Selected = panel("Selected", v.Selected())
	data.Hovered = panel("Hovered", v.Hovered())
	return data
}

func renderOverlay(v *viewer.Viewer, vp *viewport.Viewport) (string, error) {
	sc, err := v.Scene(vp)
	if err != nil {
		return "", err
	}
	root := sc.Root.BoundingBox
	sc.Background = &overlay.Background{Href: "/api/bitmap", Width: root.Width, Height: root.Height}
	return overlay.RenderString(sc)
}

func panel(label string, n *figma.Node) *pages.NodePanel {
	if n == nil {
		return nil
	}
	return &pages.NodePanel{
		Label:  label,
		ID:     n.ID,
		Name:   n.Name,
		Type:   string(n.Type),
		Size:   size(n),
		Styles: style.Derive(n),
	}
}

func size(n *figma.Node) string {
	if n.BoundingBox == nil {
		return ""
	}
	return fmt.Sprintf("%s × %s", style.Px(n.BoundingBox.Width), style.Px(n.BoundingBox.Height))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
