package web

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/iconforge/iconforge/internal/catalog"
	"github.com/iconforge/iconforge/internal/errors"
	"github.com/iconforge/iconforge/internal/ops"
	"github.com/iconforge/iconforge/internal/render"
)

// Handlers contains HTTP route handlers for the catalog preview.
type Handlers struct {
	cat      *catalog.Catalog
	source   string
	renderer *Renderer
}

func (h *Handlers) page(title string) PageData {
	return PageData{
		Title:   title,
		Version: h.renderer.version,
		Source:  h.source,
	}
}

// HandleList handles GET /entries: every entry in natural name order,
// optionally narrowed to names starting with ?q=.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	entries := h.cat.Filter(query)
	rows := make([]EntryRow, len(entries))
	for i, e := range entries {
		rows[i] = EntryRow{
			Name:  e.Name,
			Kind:  e.Detail(),
			Color: e.Color,
		}
		if e.IsIcon() {
			rows[i].Preview = template.URL(catalog.SVGDataURI(e))
		}
	}

	h.renderer.renderPage(w, "list", ListPageData{
		PageData: h.page("Entries"),
		Query:    query,
		Total:    h.cat.Len(),
		Entries:  rows,
	})
}

// HandleDetail handles GET /entries/{name}: the hover preview plus the highlighted snippet.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Lookup(h.cat, r.PathValue("name"))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	data := DetailPageData{
		PageData:  h.page(result.Name),
		Entry:     result.Entry,
		Kind:      result.Kind,
		HoverHTML: render.Markdown(result.Hover),
	}
	if result.Snippet != "" {
		data.Snippet = render.Highlight(result.Snippet)
	}

	h.renderer.renderPage(w, "detail", data)
}

// HandleEntryJSON handles GET /api/entries/{name}.
func (h *Handlers) HandleEntryJSON(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Lookup(h.cat, r.PathValue("name"))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// defaultIconSize is the PNG edge length when ?size= is absent.
const defaultIconSize = 64

// HandleIconPNG handles GET /entries/{name}/icon.png: the icon rasterized to a PNG.
func (h *Handlers) HandleIconPNG(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Lookup(h.cat, r.PathValue("name"))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	if !result.IsIcon() {
		h.renderer.renderError(w, r, errors.NewInvalidRequest(fmt.Sprintf("entry has no icon: %s", result.Name)))
		return
	}

	size := defaultIconSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.renderer.renderError(w, r, errors.NewInvalidRequest(fmt.Sprintf("invalid size: %q", raw)))
			return
		}
		size = n
	}

	data, err := render.IconPNG(catalog.SVG(result.Entry), size)
	if err != nil {
		h.renderer.renderError(w, r, errors.NewInternal(err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "max-age=300")
	_, _ = w.Write(data)
}
