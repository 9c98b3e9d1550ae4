package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorags/sewa-lapangan/internal/domain"
	"github.com/gorags/sewa-lapangan/internal/export"
	"github.com/gorags/sewa-lapangan/internal/http/response"
	"github.com/gorags/sewa-lapangan/internal/http/views"
	"github.com/gorags/sewa-lapangan/internal/session"
	"github.com/gorags/sewa-lapangan/internal/validation"
	"github.com/gorags/sewa-lapangan/pkg/logger"
)

const (
	adminLoginPath     = "/admin"
	adminDashboardPath = "/admin/dashboard"
	xlsxContentType    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var adminErrorMessages = map[string]string{
	"invalid_credentials": "Invalid name, phone number or password",
	"session":             "Your session has ended, please log in again",
}

// RequireAdmin sends anonymous visitors to the admin login page.
func (h *Handlers) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := session.FromContext(r.Context())
		if !s.IsAdmin() {
			http.Redirect(w, r, adminLoginPath, http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), logger.SubjectKey, "admin:"+strconv.FormatInt(s.AdminID, 10))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handlers) AdminLoginPage(w http.ResponseWriter, r *http.Request) {
	if session.FromContext(r.Context()).IsAdmin() {
		http.Redirect(w, r, adminDashboardPath, http.StatusSeeOther)
		return
	}
	data := views.PageData{Title: "Admin", Error: adminErrorMessages[r.URL.Query().Get("error")]}
	h.render(w, r, http.StatusOK, views.PageAdminLogin, data)
}

func (h *Handlers) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.AdminLoginRequest
	if err := decode(r, &req, func(get func(string) string) {
		req = domain.AdminLoginRequest{Identifier: get("identifier"), Password: get("password")}
	}); err != nil {
		http.Redirect(w, r, adminLoginPath+"?error=invalid_credentials", http.StatusSeeOther)
		return
	}

	a, err := h.admins.Login(r.Context(), req.Identifier, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		logger.WarnContext(r.Context(), "Admin login rejected")
		http.Redirect(w, r, adminLoginPath+"?error=invalid_credentials", http.StatusSeeOther)
		return
	}
	if err != nil {
		logger.ErrorContext(r.Context(), "Admin login failed", "error", err)
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
		return
	}

	s := &domain.Session{IsAuthenticated: true, AdminID: a.ID, AdminName: a.Nama}
	if err := h.sessions.Start(w, r, s); err != nil {
		logger.ErrorContext(r.Context(), "Failed to start admin session", "error", err)
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
		return
	}
	logger.InfoContext(r.Context(), "Admin logged in", "admin_id", a.ID)
	http.Redirect(w, r, adminDashboardPath, http.StatusSeeOther)
}

func (h *Handlers) AdminLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(w, r); err != nil {
		logger.WarnContext(r.Context(), "Failed to delete session", "error", err)
	}
	http.Redirect(w, r, adminLoginPath, http.StatusSeeOther)
}

func (h *Handlers) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	list, err := h.bookings.ListAll(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list bookings", "error", err)
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
		return
	}
	h.render(w, r, http.StatusOK, views.PageAdminDashboard, views.PageData{Title: "Dashboard", Bookings: list})
}

// AdminExport downloads bookings as xlsx, all of them or one date's when
// ?tanggal= is set.
func (h *Handlers) AdminExport(w http.ResponseWriter, r *http.Request) {
	tanggal := r.URL.Query().Get("tanggal")

	var (
		list []domain.Sewa
		err  error
	)
	name := "sewa-all.xlsx"
	if tanggal == "" {
		list, err = h.bookings.ListAll(r.Context())
	} else {
		list, err = h.bookings.ListByDate(r.Context(), tanggal)
		name = fmt.Sprintf("sewa-%s.xlsx", tanggal)
	}
	var fe *validation.FieldError
	if errors.As(err, &fe) {
		response.BadRequest(w, fe.Message)
		return
	}
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to list bookings for export", "error", err)
		response.InternalError(w, internalErrorMessage)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteBookings(&buf, list, h.now()); err != nil {
		logger.ErrorContext(r.Context(), "Failed to build export", "error", err)
		response.InternalError(w, internalErrorMessage)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}
