package browser

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// authCookieName is the cookie x.com sets on a logged-in session. Without
// it every search view renders as logged out.
const authCookieName = "auth_token"

//Cookie represents a single browser cookie inside the storage state file
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"sameSite"`
}

// Session mirrors playwright's storageState JSON: cookies plus per-origin
// local storage. Origins are kept opaque, we only read cookies.
type Session struct {
	Cookies []Cookie          `json:"cookies"`
	Origins []json.RawMessage `json:"origins"`
}

// LoadSession reads and parses the storage state file at path.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("malformed session file %s: %w", path, err)
	}
	return &s, nil
}

// HasAuthCookie reports whether the session carries the login cookie.
func (s *Session) HasAuthCookie() bool {
	for _, c := range s.Cookies {
		if c.Name == authCookieName && c.Value != "" {
			return true
		}
	}
	return false
}

// Save writes the session back as indented JSON, creating parent dirs.
func (s *Session) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
