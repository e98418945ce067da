package dto

// PageRequest paginación para listados. Las etiquetas validate las aplica
// el validador de requests en la capa HTTP.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// DateRangeRequest rango de fechas opcional para listados (YYYY-MM-DD).
type DateRangeRequest struct {
	From string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Line y Field solo se llenan en errores de validación de línea.
	Line  *int   `json:"line,omitempty"`
	Field string `json:"field,omitempty"`
}
