package handlers

import (
	"errors"
	"net/http"

	"github.com/gorags/sewa-lapangan/internal/domain"
	"github.com/gorags/sewa-lapangan/internal/http/views"
	"github.com/gorags/sewa-lapangan/internal/validation"
	"github.com/gorags/sewa-lapangan/pkg/logger"
)

func (h *Handlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.PageRegister, views.PageData{Title: "Register"})
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := decode(r, &req, func(get func(string) string) {
		req = domain.RegisterRequest{
			NoTelp:        get("no_telp"),
			Password:      get("password"),
			NamaPelanggan: get("nama_pelanggan"),
		}
	}); err != nil {
		h.render(w, r, http.StatusBadRequest, views.PageRegister, views.PageData{Title: "Register", Error: err.Error()})
		return
	}

	err := h.customers.Register(r.Context(), req)
	var fe *validation.FieldError
	switch {
	case err == nil:
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
	case errors.As(err, &fe):
		h.render(w, r, http.StatusBadRequest, views.PageRegister, views.PageData{Title: "Register", Error: fe.Message})
	case errors.Is(err, domain.ErrDuplicateCustomer):
		h.render(w, r, http.StatusConflict, views.PageRegister, views.PageData{Title: "Register", Error: err.Error()})
	default:
		logger.ErrorContext(r.Context(), "Failed to register customer", "error", err)
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
	}
}

func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.PageLogin, views.PageData{Title: "Login"})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.CustomerLoginRequest
	if err := decode(r, &req, func(get func(string) string) {
		req = domain.CustomerLoginRequest{NoTelp: get("no_telp"), Password: get("password")}
	}); err != nil {
		h.render(w, r, http.StatusBadRequest, views.PageLogin, views.PageData{Title: "Login", Error: err.Error()})
		return
	}

	p, err := h.customers.Login(r.Context(), req.NoTelp, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		h.render(w, r, http.StatusUnauthorized, views.PageLogin, views.PageData{Title: "Login", Error: "Invalid credentials"})
		return
	}
	if err != nil {
		logger.ErrorContext(r.Context(), "Customer login failed", "error", err)
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
		return
	}

	if err := h.sessions.Start(w, r, &domain.Session{IsAuthenticated: true, CustomerPhone: p.NoTelp}); err != nil {
		logger.ErrorContext(r.Context(), "Failed to start customer session", "error", err)
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(w, r); err != nil {
		logger.WarnContext(r.Context(), "Failed to delete session", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
