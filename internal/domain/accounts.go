package domain

import (
	"context"
	"fmt"
)

// PasswordHasher abstracts one-way password hashing.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Verify reports whether plain matches the stored hash. Malformed hashes
	// yield false, never an error.
	Verify(plain, hash string) bool
}

// TokenIssuer mints bearer tokens for an authenticated user id.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// Accounts orchestrates registration and login.
type Accounts struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewAccounts constructs an Accounts service.
func NewAccounts(users UserRepository, hasher PasswordHasher, tokens TokenIssuer) *Accounts {
	return &Accounts{users: users, hasher: hasher, tokens: tokens}
}

// Register creates a user with a hashed credential. Email comparison is
// case-sensitive, exactly as stored.
func (a *Accounts) Register(ctx context.Context, email, password string, fullName *string) (*User, error) {
	existing, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// The unique index on email closes the race between the lookup above and
	// the insert; the repository maps that violation to ErrEmailTaken.
	user, err := a.users.Create(ctx, User{Email: email, FullName: fullName, PasswordHash: hash})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and mints an access token. Unknown email and
// wrong password collapse into the same ErrInvalidCredentials.
func (a *Accounts) Login(ctx context.Context, email, password string) (string, error) {
	user, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if user == nil || !a.hasher.Verify(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := a.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
