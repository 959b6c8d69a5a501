package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UsuarioResponse struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Nombre     string  `json:"nombre"`
	Rol        string  `json:"rol"`
	SucursalID *string `json:"id_sucursal"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         UsuarioResponse `json:"user"`
}
