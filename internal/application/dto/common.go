package dto

// ErrorResponse cuerpo de error HTTP. Code distingue "tu entrada está mal"
// de "el sistema/colaborador falló" para que la UI decida si reintentar.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse confirmación simple.
type MessageResponse struct {
	Message string `json:"message"`
}
