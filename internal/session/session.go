// Package session resolves who the CLI is acting as. Without a valid
// token every command runs as the local guest; signing in switches the
// data source to the sync server until logout.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"studentmoney/internal/auth"
	"studentmoney/internal/core"
	"studentmoney/internal/store"
)

// GuestID scopes local files for the signed-out user.
const GuestID = "guest"

// Identity is the resolved acting user.
type Identity struct {
	ID      string
	Email   string
	Name    string
	IsGuest bool
}

// Guest is the identity used when no valid session exists.
func Guest() Identity {
	return Identity{ID: GuestID, Email: "guest@local", Name: "Khách", IsGuest: true}
}

func identityFrom(p core.UserProfile) Identity {
	return Identity{ID: p.ID, Email: p.Email, Name: p.Name}
}

// Prefs are the locally persisted preferences and session token.
type Prefs struct {
	Token    string `json:"token,omitempty"`
	Theme    string `json:"theme"`
	Language string `json:"language"`
}

func defaultPrefs() Prefs {
	return Prefs{Theme: "light", Language: "vi"}
}

// Manager owns the prefs file and the API client token.
type Manager struct {
	dir    string
	client *store.Client
	prefs  Prefs
}

// NewManager loads prefs from dir and installs any saved token on the
// client. A missing or unreadable prefs file falls back to defaults.
func NewManager(dir string, client *store.Client) (*Manager, error) {
	m := &Manager{dir: dir, client: client, prefs: defaultPrefs()}

	raw, err := os.ReadFile(m.path())
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading prefs: %w", err)
	default:
		if err := json.Unmarshal(raw, &m.prefs); err != nil {
			slog.Warn("prefs file unreadable, using defaults", "path", m.path(), "error", err)
			m.prefs = defaultPrefs()
		}
	}
	if m.prefs.Theme == "" {
		m.prefs.Theme = "light"
	}
	if m.prefs.Language == "" {
		m.prefs.Language = "vi"
	}
	client.SetToken(m.prefs.Token)
	return m, nil
}

func (m *Manager) path() string { return filepath.Join(m.dir, "prefs.json") }

func (m *Manager) save() error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	raw, err := json.MarshalIndent(m.prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding prefs: %w", err)
	}
	if err := os.WriteFile(m.path(), raw, 0o600); err != nil {
		return fmt.Errorf("writing prefs: %w", err)
	}
	return nil
}

// Prefs returns a copy of the current preferences.
func (m *Manager) Prefs() Prefs { return m.prefs }

// SetPref updates theme or language and persists the change.
func (m *Manager) SetPref(key, value string) error {
	switch key {
	case "theme":
		m.prefs.Theme = value
	case "language":
		m.prefs.Language = value
	default:
		return fmt.Errorf("unknown preference %q", key)
	}
	return m.save()
}

// Resolve checks the saved token against the server. An absent or
// rejected token resolves to the guest identity; the server being
// unreachable does too, so the CLI still works offline.
func (m *Manager) Resolve(ctx context.Context) Identity {
	if m.prefs.Token == "" {
		return Guest()
	}
	var payload struct {
		User core.UserProfile `json:"user"`
	}
	if err := m.client.Do(ctx, http.MethodGet, "/auth/session", nil, &payload); err != nil {
		slog.Warn("session check failed, continuing as guest", "error", err)
		return Guest()
	}
	return identityFrom(payload.User)
}

// Login exchanges credentials for a token and persists it.
func (m *Manager) Login(ctx context.Context, email, password string) (Identity, error) {
	var payload struct {
		Token string           `json:"token"`
		User  core.UserProfile `json:"user"`
	}
	err := m.client.Do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &payload)
	if err != nil {
		return Identity{}, err
	}
	m.prefs.Token = payload.Token
	m.client.SetToken(payload.Token)
	if err := m.save(); err != nil {
		return Identity{}, err
	}
	return identityFrom(payload.User), nil
}

// Register creates an account and signs it in.
func (m *Manager) Register(ctx context.Context, req auth.Signup) (Identity, error) {
	if err := m.client.Do(ctx, http.MethodPost, "/auth/signup", req, nil); err != nil {
		return Identity{}, err
	}
	return m.Login(ctx, req.Email, req.Password)
}

// Logout revokes the server session and clears the saved token. The
// local token is cleared even when the server call fails.
func (m *Manager) Logout(ctx context.Context) error {
	var revokeErr error
	if m.prefs.Token != "" {
		if err := m.client.Do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
			slog.Warn("server logout failed, clearing local session anyway", "error", err)
			revokeErr = err
		}
	}
	m.prefs.Token = ""
	m.client.SetToken("")
	if err := m.save(); err != nil {
		return err
	}
	return revokeErr
}
