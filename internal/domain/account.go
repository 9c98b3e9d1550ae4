package domain

type Admin struct {
	ID           int64
	Nama         string
	NomorTelepon string
	PasswordHash string
}

type Pelanggan struct {
	NoTelp        string
	PasswordHash  string
	NamaPelanggan string
}

type RegisterRequest struct {
	NoTelp        string `json:"no_telp"`
	Password      string `json:"password"`
	NamaPelanggan string `json:"nama_pelanggan"`
}

type CustomerLoginRequest struct {
	NoTelp   string `json:"no_telp"`
	Password string `json:"password"`
}

type AdminLoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}
