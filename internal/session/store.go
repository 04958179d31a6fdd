// ABOUTME: Persists the session credential in the XDG config directory
// ABOUTME: Single opaque token, read at startup and cleared on auth failure

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Store manages the one persisted credential.
type Store struct {
	configDir string
}

type credentialData struct {
	Token string `json:"token"`
}

// NewStore creates a credential store rooted at the given config directory.
func NewStore(configDir string) *Store {
	return &Store{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bloodscript")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bloodscript")
}

func (s *Store) credentialFile() string {
	return filepath.Join(s.configDir, "credential.json")
}

// Load reads the stored credential. A missing or unreadable file yields
// an empty token, not an error; the resolver treats both the same way.
func (s *Store) Load() string {
	data, err := os.ReadFile(s.credentialFile())
	if err != nil {
		return ""
	}
	var cred credentialData
	if err := json.Unmarshal(data, &cred); err != nil {
		return ""
	}
	return cred.Token
}

// Save writes the credential, creating the config directory if needed.
// The file is user-only: it is a login-equivalent secret.
func (s *Store) Save(token string) error {
	if s.configDir == "" {
		return nil
	}
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(credentialData{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.credentialFile(), data, 0600)
}

// Clear removes the stored credential. Missing file is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.credentialFile())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
