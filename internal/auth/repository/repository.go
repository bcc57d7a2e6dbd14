package repository

import authdomain "mailsort-backend/internal/auth/domain"

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(user *authdomain.User) error
	// FindByEmail returns (nil, nil) when no user exists with that email
	FindByEmail(email string) (*authdomain.User, error)
	// FindByID returns (nil, nil) when no user exists with that id
	FindByID(id string) (*authdomain.User, error)
}
