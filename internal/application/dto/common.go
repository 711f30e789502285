package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// OkResponse respuesta mínima de confirmación.
type OkResponse struct {
	Ok bool `json:"ok"`
}
