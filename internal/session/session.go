package session

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/talecraft/internal/config"
	"github.com/yourusername/talecraft/internal/modes"
)

// Session remembers what the user typed into each mode's form, so switching
// modes and coming back keeps the inputs. Generated text is held in memory
// only and never written to disk.
type Session struct {
	ID        string                           `json:"id"`
	Mode      modes.Mode                       `json:"mode"`
	Drafts    map[modes.Mode]map[string]string `json:"drafts"`
	CreatedAt time.Time                        `json:"created_at"`
	UpdatedAt time.Time                        `json:"updated_at"`

	lastText string
	lastMode modes.Mode
}

// New creates a new session
func New() *Session {
	return &Session{
		ID:        uuid.NewString(),
		Drafts:    map[modes.Mode]map[string]string{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// SetMode sets the current mode
func (s *Session) SetMode(mode modes.Mode) {
	s.Mode = mode
	s.UpdatedAt = time.Now()
}

// SaveDraft stores a copy of the field values entered for mode
func (s *Session) SaveDraft(mode modes.Mode, fields map[string]string) {
	s.Drafts[mode] = maps.Clone(fields)
	s.UpdatedAt = time.Now()
}

// Draft returns a copy of the last values entered for mode, or an empty map
func (s *Session) Draft(mode modes.Mode) map[string]string {
	if d, ok := s.Drafts[mode]; ok {
		return maps.Clone(d)
	}
	return map[string]string{}
}

// ClearDrafts forgets every draft
func (s *Session) ClearDrafts() {
	s.Drafts = map[modes.Mode]map[string]string{}
	s.UpdatedAt = time.Now()
}

// SetLast records the most recent successful generation
func (s *Session) SetLast(mode modes.Mode, text string) {
	s.lastMode = mode
	s.lastText = text
}

// Last returns the most recent successful generation, if any
func (s *Session) Last() (modes.Mode, string, bool) {
	return s.lastMode, s.lastText, s.lastMode != ""
}

func sessionFile() (string, error) {
	configDir, err := config.GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config dir: %w", err)
	}
	return filepath.Join(configDir, "drafts.json"), nil
}

// Save saves the session drafts to disk
func (s *Session) Save() error {
	path, err := sessionFile()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Load loads the session drafts from disk, or returns a new session
func Load() (*Session, error) {
	path, err := sessionFile()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No session exists, create a new one
			return New(), nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if session.Drafts == nil {
		session.Drafts = map[modes.Mode]map[string]string{}
	}
	for m := range session.Drafts {
		if !m.Valid() {
			delete(session.Drafts, m)
		}
	}

	return &session, nil
}
