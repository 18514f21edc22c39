package auth

import (
	"context"
	"regexp"
	"time"
	"unicode/utf8"
)

const (
	MinPasswordLength = 8
	// argon2id is fed the whole password, keep it bounded.
	MaxPasswordLength = 128
)

var usernameFormat = regexp.MustCompile(`^[a-z0-9_]{3,20}$`)

type service struct {
	userRepo       UserRepo
	passwordHasher PasswordHasher
	tokenManager   TokenManager
	now            func() time.Time
}

func NewService(userRepo UserRepo, passwordHasher PasswordHasher, tokenManager TokenManager) *service {
	return &service{userRepo: userRepo, passwordHasher: passwordHasher, tokenManager: tokenManager, now: time.Now}
}

func (as *service) Signup(ctx context.Context, username, password string) (string, error) {
	if !usernameFormat.MatchString(username) {
		return "", ErrInvalidUsernameFormat
	}
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength {
		return "", ErrWeakPassword
	}
	if n > MaxPasswordLength {
		return "", ErrPasswordTooLong
	}

	passwordHash, err := as.passwordHasher.Hash(password)
	if err != nil {
		return "", err
	}

	id, err := as.userRepo.CreateUser(ctx, username, passwordHash)
	if err != nil {
		return "", err
	}

	return as.tokenManager.Generate(id, as.now())
}

func (as *service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := as.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	match, err := as.passwordHasher.Compare(user.PasswordHash, password)
	if err != nil {
		return "", err
	}
	if !match {
		return "", ErrIncorrectPassword
	}

	return as.tokenManager.Generate(user.Id, as.now())
}

// VerifyToken returns the user id carried by a valid token.
func (as *service) VerifyToken(token string) (string, error) {
	return as.tokenManager.Verify(token)
}

func (as *service) GenerateToken(id string) (string, error) {
	return as.tokenManager.Generate(id, as.now())
}
