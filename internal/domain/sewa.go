package domain

import "time"

// DateLayout is the ISO-8601 calendar date format used by forms and queries.
const DateLayout = "2006-01-02"

// Sewa is one court rental booking. NomorTelepon and Tanggal together are
// the lookup key; only Nama, JamMasuk and JamKeluar change after creation.
type Sewa struct {
	ID           int64     `json:"id"`
	Nama         string    `json:"nama"`
	Tanggal      time.Time `json:"tanggal"`
	JamMasuk     string    `json:"jam_masuk"`
	JamKeluar    string    `json:"jam_keluar"`
	NomorTelepon string    `json:"nomor_telepon"`
	CreatedAt    time.Time `json:"created_at"`
}

// TanggalString formats the rental date for display and form values.
func (s Sewa) TanggalString() string {
	return s.Tanggal.Format(DateLayout)
}

// SewaKey identifies the booking targeted by an update or delete. JamMasuk
// and JamKeluar are optional on delete and narrow the match when set.
type SewaKey struct {
	NomorTelepon string
	Tanggal      time.Time
	JamMasuk     string
	JamKeluar    string
}

type SewaPatch struct {
	Nama      string
	JamMasuk  string
	JamKeluar string
}

// SewaRequest carries the raw booking form.
type SewaRequest struct {
	Nama         string `json:"nama"`
	Tanggal      string `json:"tanggal"`
	JamMasuk     string `json:"jamMasuk"`
	JamKeluar    string `json:"jamKeluar"`
	NomorTelepon string `json:"nomorTelepon"`
}

type SewaResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
