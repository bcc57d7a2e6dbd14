package usecase

import (
	authdomain "mailsort-backend/internal/auth/domain"
	authdto "mailsort-backend/internal/auth/dto"
)

// AuthUsecase defines the interface for authentication operations
type AuthUsecase interface {
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	ValidateToken(token string) (*authdomain.User, error)
}
