package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorags/sewa-lapangan/internal/http/response"
	"github.com/gorags/sewa-lapangan/internal/http/views"
	"github.com/gorags/sewa-lapangan/internal/service"
	"github.com/gorags/sewa-lapangan/internal/session"
	"github.com/gorags/sewa-lapangan/pkg/logger"
)

type Handlers struct {
	bookings  service.BookingService
	admins    service.AdminService
	customers service.CustomerService
	sessions  *session.Manager
	views     *views.Renderer
	now       func() time.Time
}

func New(
	bookings service.BookingService,
	admins service.AdminService,
	customers service.CustomerService,
	sessions *session.Manager,
	renderer *views.Renderer,
) *Handlers {
	return &Handlers{
		bookings:  bookings,
		admins:    admins,
		customers: customers,
		sessions:  sessions,
		views:     renderer,
		now:       time.Now,
	}
}

// Routes mounts every page and endpoint on r. The session middleware must
// already be in r's chain.
func (h *Handlers) Routes(r chi.Router) {
	r.Get("/", h.Index)
	r.Post("/sewa", h.CreateSewa)
	r.Get("/jadwal", h.Jadwal)
	r.Get("/search", h.Search)
	r.Post("/path-to-delete-endpoint", h.DeleteSewa)
	r.Get("/verify-phone-date", h.VerifyPhoneDate)
	r.Get("/update-modal/{id}", h.UpdateModal)
	r.Post("/update", h.UpdateSewa)

	r.Route("/admin", func(r chi.Router) {
		r.Get("/", h.AdminLoginPage)
		r.Post("/login", h.AdminLogin)
		r.Get("/logout", h.AdminLogout)
		r.Group(func(r chi.Router) {
			r.Use(h.RequireAdmin)
			r.Get("/dashboard", h.AdminDashboard)
			r.Get("/export", h.AdminExport)
		})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Get("/register", h.RegisterPage)
		r.Post("/register", h.Register)
		r.Get("/login", h.LoginPage)
		r.Post("/login", h.Login)
		r.Get("/logout", h.Logout)
	})
}

// render writes page or, if the template fails, a bare 500.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, page string, data views.PageData) {
	data.Session = session.FromContext(r.Context())
	if err := h.views.Render(w, status, page, data); err != nil {
		logger.ErrorContext(r.Context(), "Failed to render page", "page", page, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func isJSON(r *http.Request) bool {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return ct == "application/json"
}

var errBadBody = errors.New("invalid request body")

// decode fills dst from a JSON body, or from form fields via fromForm.
func decode(r *http.Request, dst any, fromForm func(get func(string) string)) error {
	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return errBadBody
		}
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return errBadBody
	}
	fromForm(r.PostForm.Get)
	return nil
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	response.JSON(w, statusCode, data)
}
