package domain

import "time"

// Session is the server-held state behind the session cookie.
type Session struct {
	Token           string    `json:"-"`
	IsAuthenticated bool      `json:"is_authenticated"`
	AdminID         int64     `json:"admin_id,omitempty"`
	AdminName       string    `json:"admin_name,omitempty"`
	CustomerPhone   string    `json:"customer_phone,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// IsAdmin reports whether the session belongs to an authenticated admin.
func (s *Session) IsAdmin() bool {
	return s != nil && s.IsAuthenticated && s.AdminID != 0
}

// IsCustomer reports whether the session belongs to a logged-in pelanggan.
func (s *Session) IsCustomer() bool {
	return s != nil && s.CustomerPhone != ""
}
