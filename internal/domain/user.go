// Package domain defines the business logic for the fitness journal service.
package domain

import "context"

// User is the account record backing authentication. PasswordHash never
// leaves the domain layer.
type User struct {
	ID           int64
	Email        string
	FullName     *string
	PasswordHash string
}

// UserRepository captures persistence operations over users.
//
// Lookup methods return (nil, nil) when no row matches; callers translate
// absence into the appropriate domain error.
type UserRepository interface {
	Create(ctx context.Context, user User) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
}
