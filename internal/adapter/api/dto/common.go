package dto

// ErrorResponse representa a estrutura de resposta para erros
type ErrorResponse struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Details  string `json:"details,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// SuccessResponse representa a estrutura de resposta para operações bem-sucedidas
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewErrorResponse cria uma nova resposta de erro
func NewErrorResponse(code int, message, details string) ErrorResponse {
	return ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewForbiddenResponse cria a resposta de acesso negado com a tela inicial do usuário
func NewForbiddenResponse(code int, details, redirect string) ErrorResponse {
	return ErrorResponse{
		Code:     code,
		Message:  "Acesso negado",
		Details:  details,
		Redirect: redirect,
	}
}

// NewSuccessResponse cria uma nova resposta de sucesso
func NewSuccessResponse(message string, data interface{}) SuccessResponse {
	return SuccessResponse{
		Message: message,
		Data:    data,
	}
}
