package dto

import (
	"time"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/user"
)

// LoginRequest representa os dados para login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse representa a resposta de login bem-sucedido
type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	Redirect    string       `json:"redirect"`
}

// PolicyResponse informa as áreas liberadas para o papel do usuário
type PolicyResponse struct {
	Role     string   `json:"role"`
	Areas    []string `json:"areas"`
	Redirect string   `json:"redirect"`
}

// ToPolicyResponse monta a política de acesso do papel
func ToPolicyResponse(role user.Role) PolicyResponse {
	areas := role.Areas()
	out := make([]string, len(areas))
	for i, a := range areas {
		out[i] = string(a)
	}
	return PolicyResponse{
		Role:     string(role),
		Areas:    out,
		Redirect: role.HomePath(),
	}
}
