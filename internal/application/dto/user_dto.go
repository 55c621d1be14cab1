package dto

// LoginRequest entrada para login: persona del hogar y contraseña.
type LoginRequest struct {
	Person   string `json:"person" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token     string `json:"token"`
	Person    string `json:"person"`
	ExpiresIn int    `json:"expires_in"` // segundos
}
