// Package auth manages accounts and bearer-token sessions on top of the
// key-value store. Signing up also seeds the user's five record lists,
// including the fixed default category set.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"studentmoney/internal/core"
	"studentmoney/internal/kv"
)

const MinPasswordLength = 6

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrEmailRequired      = errors.New("email is required")
	ErrNameRequired       = errors.New("name is required")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
)

// Account is the stored identity record. The password hash never leaves
// this package.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Signup is the payload for account creation.
type Signup struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (s Signup) Validate() error {
	email := strings.TrimSpace(s.Email)
	if email == "" || !strings.Contains(email, "@") {
		return ErrEmailRequired
	}
	if strings.TrimSpace(s.Name) == "" {
		return ErrNameRequired
	}
	if len(s.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// Service performs account and session operations.
type Service struct {
	store kv.Store
}

func NewService(store kv.Store) *Service {
	return &Service{store: store}
}

func accountKey(email string) string { return "auth:user:" + strings.ToLower(strings.TrimSpace(email)) }
func idKey(userID string) string     { return "auth:id:" + userID }
func sessionKey(token string) string { return "session:" + token }
func listKey(userID string, kind core.Kind) string {
	return fmt.Sprintf("user:%s:%s", userID, kind)
}

// CreateAccount registers a new user, auto-confirms it and seeds the five
// record lists. The default category set is written under the new user's id.
func (s *Service) CreateAccount(ctx context.Context, req Signup) (core.UserProfile, error) {
	if err := req.Validate(); err != nil {
		return core.UserProfile{}, err
	}

	key := accountKey(req.Email)
	if _, exists, err := s.store.Get(ctx, key); err != nil {
		return core.UserProfile{}, fmt.Errorf("check existing account: %w", err)
	} else if exists {
		return core.UserProfile{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return core.UserProfile{}, fmt.Errorf("hash password: %w", err)
	}

	acct := Account{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.putAccount(ctx, acct); err != nil {
		return core.UserProfile{}, err
	}
	if err := s.store.Set(ctx, idKey(acct.ID), []byte(acct.Email)); err != nil {
		return core.UserProfile{}, fmt.Errorf("store id lookup: %w", err)
	}

	if err := s.seedLists(ctx, acct.ID); err != nil {
		return core.UserProfile{}, err
	}

	slog.InfoContext(ctx, "Account created", "user_id", acct.ID, "email", acct.Email)
	return acct.Profile(), nil
}

func (s *Service) seedLists(ctx context.Context, userID string) error {
	cats := core.DefaultCategories(userID)
	now := time.Now().UTC()
	for i := range cats {
		cats[i].CreatedAt = now
	}
	seeded, err := json.Marshal(cats)
	if err != nil {
		return fmt.Errorf("encode default categories: %w", err)
	}

	empty := []byte("[]")
	for _, kind := range core.Kinds() {
		value := empty
		if kind == core.KindCategories {
			value = seeded
		}
		if err := s.store.Set(ctx, listKey(userID, kind), value); err != nil {
			return fmt.Errorf("seed %s list: %w", kind, err)
		}
	}
	return nil
}

// Login verifies credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (string, core.UserProfile, error) {
	acct, found, err := s.getAccount(ctx, email)
	if err != nil {
		return "", core.UserProfile{}, err
	}
	if !found {
		return "", core.UserProfile{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return "", core.UserProfile{}, ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := s.store.Set(ctx, sessionKey(token), []byte(acct.ID)); err != nil {
		return "", core.UserProfile{}, fmt.Errorf("store session: %w", err)
	}
	return token, acct.Profile(), nil
}

// Verify resolves a bearer token to the owning user's profile.
func (s *Service) Verify(ctx context.Context, token string) (core.UserProfile, error) {
	if token == "" {
		return core.UserProfile{}, ErrInvalidToken
	}
	userID, found, err := s.store.Get(ctx, sessionKey(token))
	if err != nil {
		return core.UserProfile{}, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return core.UserProfile{}, ErrInvalidToken
	}
	return s.ProfileByID(ctx, string(userID))
}

// Logout invalidates a bearer token. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.Delete(ctx, sessionKey(token))
}

// ProfileByID loads the profile for a known user id.
func (s *Service) ProfileByID(ctx context.Context, userID string) (core.UserProfile, error) {
	email, found, err := s.store.Get(ctx, idKey(userID))
	if err != nil {
		return core.UserProfile{}, fmt.Errorf("resolve user id: %w", err)
	}
	if !found {
		return core.UserProfile{}, ErrInvalidToken
	}
	acct, found, err := s.getAccount(ctx, string(email))
	if err != nil {
		return core.UserProfile{}, err
	}
	if !found {
		return core.UserProfile{}, ErrInvalidToken
	}
	return acct.Profile(), nil
}

// UpdateProfile changes name and/or email for the given user. An email
// change re-keys the account record; the new address must be free.
func (s *Service) UpdateProfile(ctx context.Context, userID, name, email string) (core.UserProfile, error) {
	oldEmail, found, err := s.store.Get(ctx, idKey(userID))
	if err != nil {
		return core.UserProfile{}, fmt.Errorf("resolve user id: %w", err)
	}
	if !found {
		return core.UserProfile{}, ErrInvalidToken
	}
	acct, found, err := s.getAccount(ctx, string(oldEmail))
	if err != nil {
		return core.UserProfile{}, err
	}
	if !found {
		return core.UserProfile{}, ErrInvalidToken
	}

	if name = strings.TrimSpace(name); name != "" {
		acct.Name = name
	}

	newEmail := strings.ToLower(strings.TrimSpace(email))
	if newEmail != "" && newEmail != acct.Email {
		if _, exists, err := s.store.Get(ctx, accountKey(newEmail)); err != nil {
			return core.UserProfile{}, fmt.Errorf("check new email: %w", err)
		} else if exists {
			return core.UserProfile{}, ErrEmailTaken
		}
		prev := acct.Email
		acct.Email = newEmail
		if err := s.putAccount(ctx, acct); err != nil {
			return core.UserProfile{}, err
		}
		if err := s.store.Delete(ctx, accountKey(prev)); err != nil {
			return core.UserProfile{}, fmt.Errorf("remove old account key: %w", err)
		}
		if err := s.store.Set(ctx, idKey(acct.ID), []byte(acct.Email)); err != nil {
			return core.UserProfile{}, fmt.Errorf("update id lookup: %w", err)
		}
		return acct.Profile(), nil
	}

	if err := s.putAccount(ctx, acct); err != nil {
		return core.UserProfile{}, err
	}
	return acct.Profile(), nil
}

func (a Account) Profile() core.UserProfile {
	return core.UserProfile{ID: a.ID, Email: a.Email, Name: a.Name}
}

func (s *Service) getAccount(ctx context.Context, email string) (Account, bool, error) {
	raw, found, err := s.store.Get(ctx, accountKey(email))
	if err != nil {
		return Account{}, false, fmt.Errorf("load account: %w", err)
	}
	if !found {
		return Account{}, false, nil
	}
	var acct Account
	if err := json.Unmarshal(raw, &acct); err != nil {
		return Account{}, false, fmt.Errorf("decode account: %w", err)
	}
	return acct, true, nil
}

func (s *Service) putAccount(ctx context.Context, acct Account) error {
	raw, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("encode account: %w", err)
	}
	if err := s.store.Set(ctx, accountKey(acct.Email), raw); err != nil {
		return fmt.Errorf("store account: %w", err)
	}
	return nil
}
