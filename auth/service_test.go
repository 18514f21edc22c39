package auth_test

import (
	"context"
	"drawbattle/auth"
	"drawbattle/domain"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users []domain.User
}

func (r *fakeUserRepo) CreateUser(_ context.Context, username string, passwordHash string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return "", domain.ErrDuplicateUsername
		}
	}
	id := fmt.Sprintf("id-%d", len(r.users)+1)
	r.users = append(r.users, domain.User{Id: id, Username: username, PasswordHash: passwordHash})
	return id, nil
}

func (r *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetUserById(_ context.Context, id string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Id == id {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

type fakeHasher struct {
	err error
}

func (h fakeHasher) Hash(password string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	arr := []rune(password)
	for i := range arr {
		arr[i] = arr[i] ^ 7 + 5
	}
	return string(arr), nil
}

func (h fakeHasher) Compare(hash, password string) (bool, error) {
	hashed, err := h.Hash(password)
	if err != nil {
		return false, err
	}
	return hashed == hash, nil
}

type fakeTokenManager struct{}

func (fakeTokenManager) Generate(id string, _ time.Time) (string, error) {
	return "token." + id, nil
}

func (fakeTokenManager) Verify(token string) (string, error) {
	id, ok := strings.CutPrefix(token, "token.")
	if !ok {
		return "", domain.ErrCorruptedToken
	}
	return id, nil
}

func TestAuthService_Signup(t *testing.T) {
	t.Parallel()
	repo := &fakeUserRepo{}
	service := auth.NewService(repo, fakeHasher{}, fakeTokenManager{})
	ctx := t.Context()

	_, err := service.Signup(ctx, "oussama145", "12345678")
	require.NoError(t, err)

	testCases := []struct {
		description   string
		username      string
		password      string
		expectedError error
	}{
		{"with underscore", "oussama145_two", "12345678ermtrmt", nil},
		{"duplicate username", "oussama145", "12345678", domain.ErrDuplicateUsername},
		{"short password", "oussama", "1234567", auth.ErrWeakPassword},
		{"password too long", "oussama", strings.Repeat("a", auth.MaxPasswordLength+1), auth.ErrPasswordTooLong},
		{"username too short", "ou", "12345678", auth.ErrInvalidUsernameFormat},
		{"username too long", "oussamaermtermtermtermtrtmermterm", "12345678", auth.ErrInvalidUsernameFormat},
		{"username with space", "oussama_is the best", "12345678", auth.ErrInvalidUsernameFormat},
		{"uppercase", "Oussama", "12345678", auth.ErrInvalidUsernameFormat},
		{"with weird symbols", "oussama-remt!#$@#$%^^&&*(()_++++====ß´í¯ß)", "12345678", auth.ErrInvalidUsernameFormat},
		{"absent username", "", "12345678", auth.ErrInvalidUsernameFormat},
		{"absent password", "oussama", "", auth.ErrWeakPassword},
		{"absent username and password", "", "", auth.ErrInvalidUsernameFormat},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			token, err := service.Signup(ctx, tc.username, tc.password)
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			user, err := repo.GetUserByUsername(ctx, tc.username)
			require.NoError(t, err)
			assert.Equal(t, "token."+user.Id, token)
			assert.NotEqual(t, tc.password, user.PasswordHash, "passwords are stored hashed")
		})
	}
}

func TestAuthService_SignupHashingFails(t *testing.T) {
	t.Parallel()
	repo := &fakeUserRepo{}
	boom := fmt.Errorf("%w: out of memory", domain.UnexpectedPasswordHashingError)
	service := auth.NewService(repo, fakeHasher{err: boom}, fakeTokenManager{})

	_, err := service.Signup(t.Context(), "oussama", "12345678")
	assert.ErrorIs(t, err, domain.UnexpectedPasswordHashingError)
	assert.Empty(t, repo.users, "nothing is stored without a hash")
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()
	repo := &fakeUserRepo{}
	service := auth.NewService(repo, fakeHasher{}, fakeTokenManager{})
	ctx := t.Context()
	_, err := service.Signup(ctx, "naruto", "rasengan")
	require.NoError(t, err)

	testCases := []struct {
		description   string
		username      string
		password      string
		expectedToken string
		expectedError error
	}{
		{"good credentials", "naruto", "rasengan", "token.id-1", nil},
		{"wrong password", "naruto", "chidori!", "", auth.ErrIncorrectPassword},
		{"unknown user", "sasuke", "rasengan", "", domain.ErrUserNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()
			token, err := service.Login(ctx, tc.username, tc.password)
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expectedToken, token)
		})
	}
}

func TestAuthService_Tokens(t *testing.T) {
	t.Parallel()
	service := auth.NewService(&fakeUserRepo{}, fakeHasher{}, fakeTokenManager{})

	token, err := service.GenerateToken("user-7")
	require.NoError(t, err)
	id, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-7", id)

	_, err = service.VerifyToken("garbage")
	assert.True(t, errors.Is(err, domain.ErrCorruptedToken))
}
