package dto

// Thin CRUD surfaces: clientes, sucursales, categorías, proveedores.

type CrearClienteRequest struct {
	NombreCompleto string `json:"nombre_completo" validate:"required"`
	CI             string `json:"ci"              validate:"required"`
}

type ClienteResponse struct {
	ID             string `json:"id"`
	NombreCompleto string `json:"nombre_completo"`
	CI             string `json:"ci"`
	CreatedAt      string `json:"created_at"`
}

type CrearSucursalRequest struct {
	Nombre    string  `json:"nombre"    validate:"required"`
	Direccion string  `json:"direccion" validate:"required"`
	Telefono  *string `json:"telefono"`
}

type SucursalResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Direccion string  `json:"direccion"`
	Telefono  *string `json:"telefono"`
	Activo    bool    `json:"activo"`
}

type CrearCategoriaRequest struct {
	Nombre      string  `json:"nombre" validate:"required"`
	Descripcion *string `json:"descripcion"`
}

type CategoriaResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}

type CrearProveedorRequest struct {
	Nombre    string  `json:"nombre" validate:"required"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Direccion *string `json:"direccion"`
}

type ProveedorResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email"`
	Direccion *string `json:"direccion"`
	Activo    bool    `json:"activo"`
}
