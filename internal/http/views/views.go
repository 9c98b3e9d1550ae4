// Package views renders the server-side HTML pages.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gorags/sewa-lapangan/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	PageIndex          = "index.html"
	PageJadwal         = "jadwal.html"
	PageUpdateModal    = "update_modal.html"
	PageAdminLogin     = "admin_login.html"
	PageAdminDashboard = "admin_dashboard.html"
	PageRegister       = "register.html"
	PageLogin          = "login.html"
)

var pages = []string{
	PageIndex, PageJadwal, PageUpdateModal,
	PageAdminLogin, PageAdminDashboard,
	PageRegister, PageLogin,
}

// PageData is the one value every page template receives.
type PageData struct {
	Title    string
	Error    string
	Tanggal  string
	Bookings []domain.Sewa
	Booking  *domain.Sewa
	Session  *domain.Session
}

type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page against the shared layout. It fails on the first
// template that does not parse.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, p := range pages {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+p)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		r.pages[p] = t
	}
	return r, nil
}

// Render executes page into a buffer first so a template error never leaves
// a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data PageData) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
