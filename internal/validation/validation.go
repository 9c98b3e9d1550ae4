// Package validation checks raw form input before anything is written. Every
// function stops at the first failing field, in form order.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/gorags/sewa-lapangan/internal/domain"
)

const (
	PhoneMinDigits = 10
	PhoneMaxDigits = 13
)

// FieldError names the first field that failed validation.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	if err := v.RegisterValidation("utf8", func(fl validator.FieldLevel) bool {
		return utf8.ValidString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

type sewaForm struct {
	Nama         string `label:"name" validate:"required,utf8,max=100"`
	Tanggal      string `label:"date" validate:"required,datetime=2006-01-02"`
	JamMasuk     string `label:"start time" validate:"required,utf8,max=16"`
	JamKeluar    string `label:"end time" validate:"required,utf8,max=16"`
	NomorTelepon string `label:"phone number" validate:"required,number,min=10,max=13"`
}

type keyForm struct {
	NomorTelepon string `label:"phone number" validate:"required,number,min=10,max=13"`
	Tanggal      string `label:"date" validate:"required,datetime=2006-01-02"`
	JamMasuk     string `label:"start time" validate:"omitempty,utf8,max=16"`
	JamKeluar    string `label:"end time" validate:"omitempty,utf8,max=16"`
}

type dateForm struct {
	Tanggal string `label:"date" validate:"required,datetime=2006-01-02"`
}

type registerForm struct {
	NoTelp        string `label:"phone number" validate:"required,number,min=10,max=13"`
	Password      string `label:"password" validate:"required,utf8"`
	NamaPelanggan string `label:"name" validate:"required,utf8,max=100"`
}

type credentialsForm struct {
	Identifier string `label:"identifier" validate:"required,utf8"`
	Password   string `label:"password" validate:"required,utf8"`
}

// Sewa validates a booking form and returns the normalized record. Time
// fields are only checked for presence; their order is not compared.
func Sewa(req domain.SewaRequest) (domain.Sewa, error) {
	form := sewaForm{
		Nama:         strings.TrimSpace(req.Nama),
		Tanggal:      strings.TrimSpace(req.Tanggal),
		JamMasuk:     strings.TrimSpace(req.JamMasuk),
		JamKeluar:    strings.TrimSpace(req.JamKeluar),
		NomorTelepon: strings.TrimSpace(req.NomorTelepon),
	}
	if err := check(form); err != nil {
		return domain.Sewa{}, err
	}
	tanggal, _ := time.Parse(domain.DateLayout, form.Tanggal)
	return domain.Sewa{
		Nama:         form.Nama,
		Tanggal:      tanggal,
		JamMasuk:     form.JamMasuk,
		JamKeluar:    form.JamKeluar,
		NomorTelepon: form.NomorTelepon,
	}, nil
}

// Key validates the (phone, date) lookup pair. jamMasuk and jamKeluar may be
// empty.
func Key(nomorTelepon, tanggal, jamMasuk, jamKeluar string) (domain.SewaKey, error) {
	form := keyForm{
		NomorTelepon: strings.TrimSpace(nomorTelepon),
		Tanggal:      strings.TrimSpace(tanggal),
		JamMasuk:     strings.TrimSpace(jamMasuk),
		JamKeluar:    strings.TrimSpace(jamKeluar),
	}
	if err := check(form); err != nil {
		return domain.SewaKey{}, err
	}
	t, _ := time.Parse(domain.DateLayout, form.Tanggal)
	return domain.SewaKey{
		NomorTelepon: form.NomorTelepon,
		Tanggal:      t,
		JamMasuk:     form.JamMasuk,
		JamKeluar:    form.JamKeluar,
	}, nil
}

// Date parses a search date.
func Date(tanggal string) (time.Time, error) {
	form := dateForm{Tanggal: strings.TrimSpace(tanggal)}
	if err := check(form); err != nil {
		return time.Time{}, err
	}
	t, _ := time.Parse(domain.DateLayout, form.Tanggal)
	return t, nil
}

func Register(req domain.RegisterRequest) (domain.RegisterRequest, error) {
	form := registerForm{
		NoTelp:        strings.TrimSpace(req.NoTelp),
		Password:      req.Password,
		NamaPelanggan: strings.TrimSpace(req.NamaPelanggan),
	}
	if err := check(form); err != nil {
		return domain.RegisterRequest{}, err
	}
	return domain.RegisterRequest{
		NoTelp:        form.NoTelp,
		Password:      form.Password,
		NamaPelanggan: form.NamaPelanggan,
	}, nil
}

// Credentials checks that both login fields are present.
func Credentials(identifier, password string) (string, error) {
	form := credentialsForm{Identifier: strings.TrimSpace(identifier), Password: password}
	if err := check(form); err != nil {
		return "", err
	}
	return form.Identifier, nil
}

func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return toFieldError(verrs[0])
}

func toFieldError(fe validator.FieldError) *FieldError {
	label := fe.Field()
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", label)
	case "datetime":
		msg = fmt.Sprintf("%s must be a valid date (YYYY-MM-DD)", label)
	case "utf8":
		msg = fmt.Sprintf("%s must be valid UTF-8 text", label)
	case "number":
		msg = fmt.Sprintf("%s must contain digits only", label)
	case "min", "max":
		if label == "phone number" {
			msg = fmt.Sprintf("%s must be %d to %d digits", label, PhoneMinDigits, PhoneMaxDigits)
		} else {
			msg = fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
		}
	default:
		msg = fmt.Sprintf("%s is invalid", label)
	}
	return &FieldError{Field: label, Message: msg}
}
