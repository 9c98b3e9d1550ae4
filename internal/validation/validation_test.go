package validation

import (
	"errors"
	"testing"

	"github.com/gorags/sewa-lapangan/internal/domain"
)

func validSewa() domain.SewaRequest {
	return domain.SewaRequest{
		Nama:         "Agus",
		Tanggal:      "2024-05-01",
		JamMasuk:     "10:00",
		JamKeluar:    "11:00",
		NomorTelepon: "08123456789",
	}
}

func TestSewa_Valid(t *testing.T) {
	req := validSewa()
	req.Nama = "  Agus  "
	s, err := Sewa(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Nama != "Agus" {
		t.Errorf("name not trimmed: %q", s.Nama)
	}
	if s.TanggalString() != "2024-05-01" {
		t.Errorf("date = %s", s.TanggalString())
	}
}

func TestSewa_PhoneRules(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		ok    bool
	}{
		{"ten digits", "0812345678", true},
		{"thirteen digits", "0812345678901", true},
		{"nine digits", "081234567", false},
		{"fourteen digits", "08123456789012", false},
		{"letters", "08123abc789", false},
		{"plus prefix", "+6281234567", false},
		{"negative", "-0812345678", false},
		{"decimal", "0812345.678", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSewa()
			req.NomorTelepon = tt.phone
			_, err := Sewa(req)
			if tt.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.ok {
				var fe *FieldError
				if !errors.As(err, &fe) {
					t.Fatalf("expected FieldError, got %v", err)
				}
				if fe.Field != "phone number" {
					t.Fatalf("field = %q, want phone number", fe.Field)
				}
			}
		})
	}
}

func TestSewa_DateRules(t *testing.T) {
	for _, d := range []string{"2024-02-30", "01-05-2024", "2024/05/01", "tomorrow"} {
		req := validSewa()
		req.Tanggal = d
		_, err := Sewa(req)
		var fe *FieldError
		if !errors.As(err, &fe) || fe.Field != "date" {
			t.Errorf("date %q: expected date error, got %v", d, err)
		}
	}
}

func TestSewa_FailFastInFormOrder(t *testing.T) {
	req := domain.SewaRequest{NomorTelepon: "x"}
	_, err := Sewa(req)
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldError, got %v", err)
	}
	if fe.Field != "name" || fe.Message != "name is required" {
		t.Fatalf("first error = %+v, want name is required", fe)
	}

	req = validSewa()
	req.JamMasuk = ""
	req.NomorTelepon = "1"
	_, err = Sewa(req)
	if !errors.As(err, &fe) || fe.Field != "start time" {
		t.Fatalf("first error = %v, want start time", err)
	}
}

func TestSewa_EndBeforeStartAccepted(t *testing.T) {
	req := validSewa()
	req.JamMasuk = "12:00"
	req.JamKeluar = "09:00"
	if _, err := Sewa(req); err != nil {
		t.Fatalf("time order is not checked, got %v", err)
	}
}

func TestKey(t *testing.T) {
	k, err := Key(" 08123456789 ", "2024-05-01", "", " 11:00 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k.NomorTelepon != "08123456789" || k.JamMasuk != "" || k.JamKeluar != "11:00" {
		t.Fatalf("unexpected key %+v", k)
	}
	if _, err := Key("08123456789", "", "", ""); err == nil {
		t.Fatal("expected error for missing date")
	}
}

func TestRegisterAndCredentials(t *testing.T) {
	if _, err := Register(domain.RegisterRequest{NoTelp: "08123456789", Password: "secret", NamaPelanggan: "Budi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Register(domain.RegisterRequest{NoTelp: "08123456789", NamaPelanggan: "Budi"}); err == nil {
		t.Fatal("expected missing password error")
	}
	if _, err := Credentials("  ", "secret"); err == nil {
		t.Fatal("expected missing identifier error")
	}
	id, err := Credentials(" Agu ", "agung")
	if err != nil || id != "Agu" {
		t.Fatalf("Credentials = %q, %v", id, err)
	}
}

func TestSewa_RejectsInvalidUTF8(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*domain.SewaRequest)
		field string
	}{
		{"name", func(r *domain.SewaRequest) { r.Nama = "Ag\xffus" }, "name"},
		{"start time", func(r *domain.SewaRequest) { r.JamMasuk = "10\xc3" }, "start time"},
		{"end time", func(r *domain.SewaRequest) { r.JamKeluar = "\xfe\xfe" }, "end time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSewa()
			tt.edit(&req)
			_, err := Sewa(req)
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("expected FieldError, got %v", err)
			}
			if fe.Field != tt.field {
				t.Fatalf("field = %q, want %q", fe.Field, tt.field)
			}
			if fe.Message != tt.field+" must be valid UTF-8 text" {
				t.Fatalf("message = %q", fe.Message)
			}
		})
	}

	// Multi-byte text is fine.
	req := validSewa()
	req.Nama = "Agüs Śantoso"
	if _, err := Sewa(req); err != nil {
		t.Fatalf("valid UTF-8 rejected: %v", err)
	}
}

func TestKeyRegisterCredentials_RejectInvalidUTF8(t *testing.T) {
	if _, err := Key("08123456789", "2024-05-01", "\xff", ""); err == nil {
		t.Error("Key accepted invalid start time")
	}
	if _, err := Register(domain.RegisterRequest{NoTelp: "08123456789", Password: "secret", NamaPelanggan: "B\xffudi"}); err == nil {
		t.Error("Register accepted invalid name")
	}
	if _, err := Credentials("Ag\xffu", "agung"); err == nil {
		t.Error("Credentials accepted invalid identifier")
	}
}
