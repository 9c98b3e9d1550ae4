package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorags/sewa-lapangan/internal/domain"
	"github.com/gorags/sewa-lapangan/internal/http/response"
	"github.com/gorags/sewa-lapangan/internal/http/views"
	"github.com/gorags/sewa-lapangan/internal/validation"
	"github.com/gorags/sewa-lapangan/pkg/logger"
)

const internalErrorMessage = "internal server error"

func decodeSewa(r *http.Request) (domain.SewaRequest, error) {
	var req domain.SewaRequest
	err := decode(r, &req, func(get func(string) string) {
		req = domain.SewaRequest{
			Nama:         get("nama"),
			Tanggal:      get("tanggal"),
			JamMasuk:     get("jamMasuk"),
			JamKeluar:    get("jamKeluar"),
			NomorTelepon: get("nomorTelepon"),
		}
	})
	return req, err
}

func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.PageIndex, views.PageData{})
}

// CreateSewa answers {success, message}: 200 on save, 400 on the first
// invalid field, 409 when the phone already booked that date.
func (h *Handlers) CreateSewa(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSewa(r)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := h.bookings.Create(r.Context(), req)
	var fe *validation.FieldError
	switch {
	case err == nil:
		logger.InfoContext(r.Context(), "Booking created", "sewa_id", b.ID, "tanggal", b.TanggalString())
		response.OK(w, "Booking saved")
	case errors.As(err, &fe):
		response.Fail(w, http.StatusBadRequest, fe.Message)
	case errors.Is(err, domain.ErrDuplicateBooking):
		response.Fail(w, http.StatusConflict, domain.ErrDuplicateBooking.Error())
	default:
		logger.ErrorContext(r.Context(), "Failed to create booking", "error", err)
		response.Fail(w, http.StatusInternalServerError, internalErrorMessage)
	}
}

func (h *Handlers) Jadwal(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.PageJadwal, views.PageData{Title: "Schedule"})
}

func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	tanggal := r.URL.Query().Get("tanggal")
	data := views.PageData{Title: "Schedule", Tanggal: tanggal}

	list, err := h.bookings.ListByDate(r.Context(), tanggal)
	var fe *validation.FieldError
	switch {
	case err == nil:
		data.Bookings = list
		h.render(w, r, http.StatusOK, views.PageJadwal, data)
	case errors.As(err, &fe):
		data.Error = fe.Message
		h.render(w, r, http.StatusBadRequest, views.PageJadwal, data)
	default:
		logger.ErrorContext(r.Context(), "Failed to search bookings", "error", err)
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
	}
}

func (h *Handlers) DeleteSewa(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSewa(r)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	n, err := h.bookings.Delete(r.Context(), req.NomorTelepon, req.Tanggal, req.JamMasuk, req.JamKeluar)
	var fe *validation.FieldError
	switch {
	case err == nil:
		logger.InfoContext(r.Context(), "Booking deleted", "rows", n)
		response.OK(w, "")
	case errors.As(err, &fe):
		response.Fail(w, http.StatusBadRequest, fe.Message)
	case errors.Is(err, domain.ErrNotFound):
		response.Fail(w, http.StatusNotFound, domain.ErrNotFound.Error())
	default:
		logger.ErrorContext(r.Context(), "Failed to delete booking", "error", err)
		response.Fail(w, http.StatusInternalServerError, internalErrorMessage)
	}
}

type verifyResponse struct {
	Valid bool `json:"valid"`
}

func (h *Handlers) VerifyPhoneDate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ok, err := h.bookings.Exists(r.Context(), q.Get("nomorTelepon"), q.Get("tanggal"))
	var fe *validation.FieldError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, verifyResponse{Valid: ok})
	case errors.As(err, &fe):
		writeJSON(w, http.StatusBadRequest, verifyResponse{})
	default:
		logger.ErrorContext(r.Context(), "Failed to verify phone and date", "error", err)
		writeJSON(w, http.StatusInternalServerError, verifyResponse{})
	}
}

func (h *Handlers) UpdateModal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return
	}
	b, err := h.bookings.GetByID(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		logger.ErrorContext(r.Context(), "Failed to load booking", "sewa_id", id, "error", err)
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
		return
	}
	h.render(w, r, http.StatusOK, views.PageUpdateModal, views.PageData{Title: "Edit booking", Booking: b})
}

// UpdateSewa redirects to the schedule for the booking's date on success.
func (h *Handlers) UpdateSewa(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSewa(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.bookings.Update(r.Context(), req)
	var fe *validation.FieldError
	switch {
	case err == nil:
		target := "/search?" + url.Values{"tanggal": {b.TanggalString()}}.Encode()
		http.Redirect(w, r, target, http.StatusSeeOther)
	case errors.As(err, &fe):
		http.Error(w, fe.Message, http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotRegistered):
		http.Error(w, domain.ErrNotRegistered.Error(), http.StatusBadRequest)
	default:
		logger.ErrorContext(r.Context(), "Failed to update booking", "error", err)
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
	}
}
