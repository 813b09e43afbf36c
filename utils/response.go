package utils

// APIResponse adalah format standar JSON yang diterima frontend.
// Contoh sukses : { "status": true,  "message": "Nominasi dibuat", "data": { ... } }
// Contoh gagal  : { "status": false, "message": "Nominasi tidak ditemukan", "errors": "..." }
type APIResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`   // omitempty: kalau data nil, field ini tidak dimunculkan
	Errors  interface{} `json:"errors,omitempty"` // bisa string / map tergantung kebutuhan
}

// BuildResponseSuccess digunakan saat request berhasil (HTTP 200/201).
func BuildResponseSuccess(message string, data interface{}) APIResponse {
	return APIResponse{
		Status:  true,
		Message: message,
		Data:    data,
	}
}

// BuildResponseFailed digunakan saat terjadi error (HTTP 400, 403, 404, 409, 500).
func BuildResponseFailed(message string, err interface{}, data interface{}) APIResponse {
	return APIResponse{
		Status:  false,
		Message: message,
		Errors:  err,
		Data:    data,
	}
}
