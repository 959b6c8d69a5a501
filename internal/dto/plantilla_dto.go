package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearPlantillaRequest struct {
	Titulo          string  `json:"titulo"          validate:"required"`
	ColorTema       string  `json:"color_tema"      validate:"required"`
	Logo            *string `json:"logo"`
	LogoSize        int     `json:"logo_size"       validate:"min=0"`
	LogoPosition    string  `json:"logo_position"   validate:"omitempty,oneof=left center right"`
	Terminos        string  `json:"terminos"        validate:"required"`
	MetodosPago     string  `json:"metodos_pago"    validate:"required"`
	Notas           *string `json:"notas"`
	CamposIncluidos string  `json:"campos_incluidos" validate:"required,json"`
}

// ActualizarPlantillaRequest: nil = keep stored value.
type ActualizarPlantillaRequest struct {
	Titulo          *string `json:"titulo"`
	ColorTema       *string `json:"color_tema"`
	Logo            *string `json:"logo"`
	LogoSize        *int    `json:"logo_size"`
	LogoPosition    *string `json:"logo_position" validate:"omitempty,oneof=left center right"`
	Terminos        *string `json:"terminos"`
	MetodosPago     *string `json:"metodos_pago"`
	Notas           *string `json:"notas"`
	CamposIncluidos *string `json:"campos_incluidos" validate:"omitempty,json"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PlantillaResponse struct {
	ID              string  `json:"id"`
	Titulo          string  `json:"titulo"`
	ColorTema       string  `json:"color_tema"`
	Logo            *string `json:"logo"`
	LogoSize        int     `json:"logo_size"`
	LogoPosition    string  `json:"logo_position"`
	Terminos        string  `json:"terminos"`
	MetodosPago     string  `json:"metodos_pago"`
	Notas           *string `json:"notas"`
	CamposIncluidos string  `json:"campos_incluidos"`
	CreatedAt       string  `json:"created_at"`
}
