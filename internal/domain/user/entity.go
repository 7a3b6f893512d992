package user

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pdv-restaurante/pkg/apperror"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound           = apperror.New(apperror.KindNotFound, "usuário não encontrado")
	ErrDuplicateEmail     = apperror.New(apperror.KindConflict, "email já cadastrado")
	ErrInvalidEmail       = apperror.New(apperror.KindValidation, "email inválido")
	ErrEmptyName          = apperror.New(apperror.KindValidation, "informe o nome do usuário")
	ErrInvalidRole        = apperror.New(apperror.KindValidation, "perfil de acesso inválido")
	ErrWeakPassword       = apperror.New(apperror.KindValidation, "senha deve ter ao menos 6 caracteres")
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, "email ou senha inválidos")
	ErrInactive           = apperror.New(apperror.KindForbidden, "usuário inativo")
)

// MinPasswordLength é o tamanho mínimo de senha
const MinPasswordLength = 6

// Role representa o papel do usuário no restaurante
type Role string

// Constantes para Role
const (
	RoleAdmin   Role = "admin"   // Administrador, acesso total
	RoleCashier Role = "caixa"   // Operador de caixa
	RoleKitchen Role = "cozinha" // Cozinha
	RoleWaiter  Role = "garcom"  // Garçom
)

// Roles lista os papéis conhecidos
var Roles = []Role{RoleAdmin, RoleCashier, RoleKitchen, RoleWaiter}

// IsValid verifica se o papel é conhecido
func (r Role) IsValid() bool {
	for _, v := range Roles {
		if v == r {
			return true
		}
	}
	return false
}

// Profile representa um usuário do sistema
type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"nome"`
	Role         Role      `json:"role"`
	Active       bool      `json:"ativo"`
	PasswordHash string    `json:"-"` // O hash nunca é retornado nas respostas JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewProfile cria um perfil ativo com a senha informada
func NewProfile(email, name string, role Role, password string) (*Profile, error) {
	now := time.Now()
	p := &Profile{
		ID:        uuid.New().String(),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.Update(email, name, role); err != nil {
		return nil, err
	}
	if err := p.SetPassword(password); err != nil {
		return nil, err
	}
	return p, nil
}

// Update altera os dados cadastrais do perfil
func (p *Profile) Update(email, name string, role Role) error {
	email = NormalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if !role.IsValid() {
		return ErrInvalidRole
	}
	p.Email = email
	p.Name = name
	p.Role = role
	p.UpdatedAt = time.Now()
	return nil
}

// NormalizeEmail padroniza o email para busca e unicidade
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetPassword configura a senha do usuário com hash
func (p *Profile) SetPassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.PasswordHash = string(hashed)
	return nil
}

// CheckPassword verifica se a senha fornecida é válida
func (p *Profile) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) == nil
}

// SetActive ativa ou desativa o perfil
func (p *Profile) SetActive(active bool) {
	p.Active = active
	p.UpdatedAt = time.Now()
}

// IsAdmin verifica se o usuário é um administrador
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
