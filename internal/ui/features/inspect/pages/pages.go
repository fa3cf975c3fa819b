package pages

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/leapstack-labs/figlens/internal/ui/resources"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// Page renders the full document.
func Page(data ViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		signals, err := json.Marshal(map[string]any{
			"tabId": data.TabID, "nodeId": "", "zoom": 1, "dx": 0, "dy": 0, "width": 0,
		})
		if err != nil {
			return err
		}

		p := &printer{w: w}
		p.printf("<!doctype html>\n<html lang=\"en\"><head><meta charset=\"utf-8\">")
		p.printf("<title>%s - figlens</title>", esc(data.Title))
		p.printf(`<link rel="stylesheet" href="%s">`, resources.StaticPath("figlens.css"))
		p.printf(`<script type="module" src="%s"></script>`, datastarScript)
		p.printf("</head>")
		p.printf(`<body data-signals='%s'>`, esc(string(signals)))
		p.printf(`<div id="stream" data-init="@get('/updates')"></div>`)
		if data.IsDev {
			p.printf(`<div id="hot-reload" data-init="@get('/reload')"></div>`)
		}
		if p.err != nil {
			return p.err
		}
		if err := App(data).Render(ctx, w); err != nil {
			return err
		}
		p.printf("</body></html>")
		return p.err
	})
}

// App renders the morph target holding the whole interface.
func App(data ViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.printf(`<main id="app" class="app">`)
		p.printf(`<header class="toolbar"><h1>%s</h1><span class="source">%s</span></header>`, esc(data.Title), esc(data.Source))
		if data.Error != "" {
			p.printf(`<p id="load-error" class="error">%s</p></main>`, esc(data.Error))
			return p.err
		}

		p.printf(`<nav class="nodes"><ul>`)
		for _, n := range data.Nodes {
			p.printf(`<li data-on:mouseenter="$nodeId = '%s'; @post('/api/hover')" data-on:click="$nodeId = '%s'; @post('/api/select')">`,
				esc(jsString(n.ID)), esc(jsString(n.ID)))
			p.printf(`<span class="type">%s</span> <span class="name">%s</span> <span class="size">%s</span></li>`,
				esc(n.Type), esc(n.Name), esc(n.Size))
		}
		p.printf(`</ul></nav>`)

		p.printf(`<section class="stage" data-init="$width = el.clientWidth; @post('/api/resize')" data-on:resize__window__debounce.100ms="$width = el.clientWidth; @post('/api/resize')"`)
		p.printf(` data-on:mouseover="evt.target.classList.contains('figma-node') && ($nodeId = evt.target.id, @post('/api/hover'))"`)
		p.printf(` data-on:click="evt.target.classList.contains('figma-node') && ($nodeId = evt.target.id, @post('/api/select'))"`)
		p.printf(` data-on:mouseleave="@post('/api/leave')"`)
		if data.PanAndZoom {
			p.printf(` data-on:wheel__prevent__throttle.50ms="$zoom = Math.min(5, Math.max(0.5, $zoom * (evt.deltaY < 0 ? 1.1 : 0.9))); @post('/api/zoom')"`)
		}
		p.printf(`>`)
		if p.err != nil {
			return p.err
		}
		if err := Overlay(data.Overlay).Render(ctx, w); err != nil {
			return err
		}
		p.printf(`</section>`)
		if p.err != nil {
			return p.err
		}
		if err := Inspector(data.Selected, data.Hovered).Render(ctx, w); err != nil {
			return err
		}
		p.printf(`</main>`)
		return p.err
	})
}

// Overlay wraps a rendered SVG overlay.
func Overlay(svg string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.printf(`<div id="overlay" class="overlay">`)
		p.raw(svg)
		p.printf(`</div>`)
		return p.err
	})
}

// Inspector renders the selected and hovered node panels.
func Inspector(selected, hovered *NodePanel) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.printf(`<aside id="inspector" class="inspector">`)
		if selected == nil && hovered == nil {
			p.printf(`<p class="hint">Hover or click a layer to inspect it.</p>`)
		}
		for _, panel := range []*NodePanel{selected, hovered} {
			if panel == nil {
				continue
			}
			p.printf(`<section class="panel"><h2>%s</h2>`, esc(panel.Label))
			p.printf(`<dl><dt>Name</dt><dd>%s</dd><dt>Type</dt><dd>%s</dd><dt>Size</dt><dd>%s</dd></dl>`,
				esc(panel.Name), esc(panel.Type), esc(panel.Size))
			if panel.ID != "" && panel.Label == "Selected" {
				p.printf(`<a class="export" href="/api/nodes/%s/export.png" download>Export PNG</a>`, esc(url.PathEscape(panel.ID)))
			}
			p.printf(`<pre class="css">`)
			for _, d := range panel.Styles {
				p.printf("%s: %s;\n", esc(d.Property), esc(d.Value.String()))
			}
			p.printf(`</pre></section>`)
		}
		p.printf(`</aside>`)
		return p.err
	})
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func esc(s string) string {
	return templ.EscapeString(s)
}

// jsString escapes s for a single-quoted JavaScript string literal.
func jsString(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}
