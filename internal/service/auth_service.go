package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/apperrors"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/auth"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/models"
	"github.com/GaneshArihanth/Doctor-Patient-ChatApp/internal/repository"
)

type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

type RegisterInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
	Language string      `json:"language"`
}

type AuthResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	switch {
	case in.Name == "":
		return nil, apperrors.Validation("name", "name required")
	case in.Email == "" || !strings.Contains(in.Email, "@"):
		return nil, apperrors.Validation("email", "valid email required")
	case len(in.Password) < 6:
		return nil, apperrors.Validation("password", "password must be at least 6 characters")
	case !in.Role.Valid():
		return nil, apperrors.Validation("role", "role must be doctor or patient")
	}
	if in.Language == "" {
		in.Language = "en"
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.Validation("email", "email already registered")
	} else if err != apperrors.ErrNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u, err := s.users.Insert(ctx, &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Language:     in.Language,
		IsAvailable:  in.Role == models.RoleDoctor,
		LastSeen:     time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == apperrors.ErrNotFound {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.ErrUnauthorized
	}
	return s.issue(u)
}

func (s *AuthService) issue(u *models.User) (*AuthResult, error) {
	token, exp, err := s.tokens.Generate(u.ID.Hex(), u.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: exp, User: u}, nil
}
