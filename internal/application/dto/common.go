package dto

// PageRequest paginación para listados. Page es 1-indexado.
type PageRequest struct {
	Page     int `query:"page"`
	PageSize int `query:"page_size"`
}

// MaxPageSize tope de tamaño de página en listados.
const MaxPageSize = 100

// DefaultPage aplica valores por defecto si Page/PageSize son cero.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 10
	}
}

// Valid verifica los límites de la página. Una página fuera de rango NO es
// inválida: devuelve slice vacío con el total correcto.
func (p PageRequest) Valid() bool {
	return p.Page >= 1 && p.PageSize >= 1 && p.PageSize <= MaxPageSize
}

// Offset calcula el desplazamiento SQL de la página.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
