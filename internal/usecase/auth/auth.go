package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	userDomain "prodtrack/internal/domain/user"
	errs "prodtrack/internal/errors"
	"prodtrack/internal/random"
)

const sessionIDLength = 64

type UserStore interface {
	View(ctx context.Context, fn func(users userDomain.Users) error) error
	Update(ctx context.Context, fn func(users userDomain.Users) error) error
}

type SessionStorage interface {
	GetUserIdBySession(ctx context.Context, sessionID string) (email string, ok bool)
	StoreSession(ctx context.Context, sessionID string, email string) error
	DeleteSession(ctx context.Context, sessionID string) (ok bool)
}

type AuthUsecaseHandler struct {
	userStorage    UserStore
	sessionStorage SessionStorage
	now            func() time.Time
}

func NewUserUsecaseHandler(u UserStore, s SessionStorage, now func() time.Time) *AuthUsecaseHandler {
	return &AuthUsecaseHandler{
		userStorage:    u,
		sessionStorage: s,
		now:            now,
	}
}

func (a *AuthUsecaseHandler) RegisterUser(ctx context.Context, email, password, name string) (sessionID string, err error) {
	email = userDomain.NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") || password == "" {
		return "", errs.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	err = a.userStorage.Update(ctx, func(users userDomain.Users) error {
		if _, exists := users[email]; exists {
			return errs.ErrUserExists
		}
		u := userDomain.New(email, string(hash), strings.TrimSpace(name))
		seen := a.now()
		u.Data.LastSeen = &seen
		users[email] = u
		return nil
	})
	if err != nil {
		return "", err
	}
	return a.startSession(ctx, email)
}

func (a *AuthUsecaseHandler) LoginUser(ctx context.Context, email string, password string) (sessionID string, err error) {
	email = userDomain.NormalizeEmail(email)

	err = a.userStorage.Update(ctx, func(users userDomain.Users) error {
		u, ok := users[email]
		if !ok {
			return errs.ErrUserNotFound
		}
		// accounts created through federated sign-in carry no password
		if u.Password == "" {
			return errs.ErrWrongPassword
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return errs.ErrWrongPassword
			}
			return err
		}
		seen := a.now()
		u.Data.LastSeen = &seen
		return nil
	})
	if err != nil {
		return "", err
	}
	return a.startSession(ctx, email)
}

// LogoutUser returns nil or ErrSessionNotFound.
func (a *AuthUsecaseHandler) LogoutUser(ctx context.Context, sessionID string) error {
	if _, ok := a.sessionStorage.GetUserIdBySession(ctx, sessionID); !ok {
		return errs.ErrSessionNotFound
	}
	if ok := a.sessionStorage.DeleteSession(ctx, sessionID); !ok {
		return errs.ErrSessionNotFound
	}
	return nil
}

func (a *AuthUsecaseHandler) GetUserIdFromSession(ctx context.Context, sessionID string) (string, error) {
	email, ok := a.sessionStorage.GetUserIdBySession(ctx, sessionID)
	if !ok {
		return "", errs.ErrSessionNotFound
	}
	return email, nil
}

func (a *AuthUsecaseHandler) UserExists(ctx context.Context, email string) bool {
	found := false
	_ = a.userStorage.View(ctx, func(users userDomain.Users) error {
		_, found = users[userDomain.NormalizeEmail(email)]
		return nil
	})
	return found
}

func (a *AuthUsecaseHandler) startSession(ctx context.Context, email string) (string, error) {
	sessionID := random.RandString(sessionIDLength)
	if err := a.sessionStorage.StoreSession(ctx, sessionID, email); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return sessionID, nil
}
