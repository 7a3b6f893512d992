package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/user"
)

// EventType identifica uma mudança de sessão
type EventType string

const (
	EventSignedIn  EventType = "signed_in"
	EventSignedOut EventType = "signed_out"
)

// Event é entregue aos observadores de sessão
type Event struct {
	Type   EventType
	UserID string
	Role   user.Role
	At     time.Time
}

// Session é o resultado de um login
type Session struct {
	Token     string
	ExpiresAt time.Time
	Profile   *user.Profile
}

// SessionService autentica perfis e avisa os observadores de login e logout
type SessionService struct {
	users user.Repository
	jwt   *JWTService

	mu        sync.RWMutex
	observers []func(Event)
}

// NewSessionService cria o serviço de sessão
func NewSessionService(users user.Repository, jwtService *JWTService) *SessionService {
	return &SessionService{users: users, jwt: jwtService}
}

// JWT retorna o serviço de tokens usado pelas sessões
func (s *SessionService) JWT() *JWTService {
	return s.jwt
}

// OnChange registra um observador de login e logout
func (s *SessionService) OnChange(fn func(Event)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

func (s *SessionService) notify(evt Event) {
	s.mu.RLock()
	observers := append([]func(Event){}, s.observers...)
	s.mu.RUnlock()
	for _, fn := range observers {
		fn(evt)
	}
}

// SignIn valida email e senha e emite um token
func (s *SessionService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	p, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, user.ErrNotFound) {
		return nil, user.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !p.CheckPassword(password) {
		return nil, user.ErrInvalidCredentials
	}
	if !p.Active {
		return nil, user.ErrInactive
	}

	token, expiresAt, err := s.jwt.GenerateToken(p)
	if err != nil {
		return nil, err
	}
	s.notify(Event{Type: EventSignedIn, UserID: p.ID, Role: p.Role, At: s.jwt.now()})
	return &Session{Token: token, ExpiresAt: expiresAt, Profile: p}, nil
}

// GetSession retorna o perfil atual do token. Perfis desativados perdem a sessão.
func (s *SessionService) GetSession(ctx context.Context, claims *JWTClaims) (*user.Profile, error) {
	p, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, user.ErrInactive
	}
	return p, nil
}

// Authenticate valida o token e confere o perfil atual no repositório.
// Perfis desativados, removidos ou com papel diferente do token perdem o acesso.
func (s *SessionService) Authenticate(ctx context.Context, tokenString string) (*JWTClaims, error) {
	claims, err := s.jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	p, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, user.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, user.ErrInactive
	}
	if string(p.Role) != claims.Role {
		return nil, ErrRoleChanged
	}
	return claims, nil
}

// Refresh troca um token válido por um novo
func (s *SessionService) Refresh(ctx context.Context, tokenString string, claims *JWTClaims) (*Session, error) {
	p, err := s.GetSession(ctx, claims)
	if err != nil {
		return nil, err
	}
	token, expiresAt, err := s.jwt.RefreshToken(tokenString, p)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expiresAt, Profile: p}, nil
}

// SignOut encerra a sessão do token
func (s *SessionService) SignOut(_ context.Context, claims *JWTClaims) {
	s.jwt.Revoke(claims)
	s.notify(Event{Type: EventSignedOut, UserID: claims.UserID, Role: user.Role(claims.Role), At: s.jwt.now()})
}
