package client

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/Ouarghii/evento/internal/filex"
)

const sessionFileName = "session.json"

// Session is what the CLI remembers between runs.
type Session struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

// SessionStore keeps the session in a private file under dir.
type SessionStore struct {
	dir string
}

func NewSessionStore(dir string) *SessionStore {
	return &SessionStore{dir: dir}
}

func (s *SessionStore) path() string { return filepath.Join(s.dir, sessionFileName) }

func (s *SessionStore) Save(sess *Session) error {
	dir, err := filex.EnsureDir(s.dir)
	if err != nil {
		return err
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return filex.WritePrivate(filepath.Join(dir, sessionFileName), b)
}

// Load returns the saved session, or nil when there is none.
func (s *SessionStore) Load() (*Session, error) {
	b, err := filex.ReadIfExists(s.path())
	if err != nil || b == nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("corrupt session file %s: %w", s.path(), err)
	}
	return &sess, nil
}

func (s *SessionStore) Clear() error {
	return filex.RemoveIfExists(s.path())
}
