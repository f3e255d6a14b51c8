package vault

import (
	"context"
	"log/slog"
)

// Session binds a profile name to an unlocked database. It is the only owner
// of the derived key: Logout erases the key and no session method ever keeps
// a decrypted secret around after returning it.
type Session struct {
	profile string
	db      *Database
}

// Login opens the database backing a profile. The password buffer still
// belongs to the caller and should be zeroed after the call returns.
func Login(ctx context.Context, profile, path string, password []byte) (*Session, error) {
	db, err := Open(ctx, path, password)
	if err != nil {
		slog.Warn("login failed", "profile", profile)
		return nil, err
	}
	slog.Info("session opened", "profile", profile, "records", db.Len())
	return &Session{profile: profile, db: db}, nil
}

// Profile returns the profile name this session is bound to.
func (s *Session) Profile() string {
	return s.profile
}

// Add stores a new secret under label.
func (s *Session) Add(label string, secret []byte) error {
	if s.db == nil {
		return ErrNoSession
	}
	if err := s.db.Add(label, secret); err != nil {
		return err
	}
	slog.Info("record added", "profile", s.profile, "label", label)
	return nil
}

// Reveal decrypts one secret. Each call returns a fresh copy straight off the
// ciphertext; nothing is cached, and the caller must Zero the result once it
// has been handed to its destination.
func (s *Session) Reveal(label string) ([]byte, error) {
	if s.db == nil {
		return nil, ErrNoSession
	}
	secret, err := s.db.Get(label)
	if err != nil {
		return nil, err
	}
	slog.Info("record revealed", "profile", s.profile, "label", label)
	return secret, nil
}

// Labels lists stored labels in insertion order, for an external picker.
func (s *Session) Labels() ([]string, error) {
	if s.db == nil {
		return nil, ErrNoSession
	}
	return s.db.Labels()
}

// Remove deletes a secret.
func (s *Session) Remove(label string) error {
	if s.db == nil {
		return ErrNoSession
	}
	if err := s.db.Remove(label); err != nil {
		return err
	}
	slog.Info("record removed", "profile", s.profile, "label", label)
	return nil
}

// Logout erases the derived key and releases the database. It always
// succeeds and is safe to call on an already logged-out session.
func (s *Session) Logout() {
	if s.db == nil {
		return
	}
	if err := s.db.Close(); err != nil {
		slog.Warn("session close", "profile", s.profile, "error", err)
	}
	s.db = nil
	slog.Info("session closed", "profile", s.profile)
}
