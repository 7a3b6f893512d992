package dto

import (
	"time"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/user"
)

// UserRequest representa os dados de um usuário para criação ou atualização
type UserRequest struct {
	Name     string `json:"nome" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"required"`
}

// UserStatusRequest ativa ou desativa um usuário
type UserStatusRequest struct {
	Active *bool `json:"ativo" binding:"required"`
}

// UserResponse representa a resposta com dados de um usuário
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToUserResponse converte um perfil do domínio para DTO de resposta
func ToUserResponse(p *user.Profile) UserResponse {
	return UserResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Role:      string(p.Role),
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToUserListResponse converte uma lista de perfis
func ToUserListResponse(profiles []*user.Profile) []UserResponse {
	data := make([]UserResponse, len(profiles))
	for i, p := range profiles {
		data[i] = ToUserResponse(p)
	}
	return data
}
