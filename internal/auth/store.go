// Package auth keeps the local credential store: a single account held
// in a JSON file with a bcrypt password hash.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/bcrypt"

	apperrors "go-nutriscan/internal/errors"
)

// ErrNoAccount is returned by Login when nothing has been registered yet.
var ErrNoAccount = errors.New("no account registered")

// Store reads and writes the credential file.
type Store struct {
	path string
}

type credentialRecord struct {
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Register hashes the password and writes the credential file,
// replacing any previous registration.
func (s *Store) Register(email, password string) error {
	if email == "" || password == "" {
		return apperrors.NewValidationError("email and password must not be empty", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.NewInternalError("failed to hash password", err)
	}

	data, err := json.MarshalIndent(credentialRecord{
		Email:        email,
		PasswordHash: string(hash),
	}, "", "  ")
	if err != nil {
		return apperrors.NewInternalError("failed to encode credentials", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return apperrors.NewInternalError("failed to create credentials directory", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return apperrors.NewInternalError("failed to write credentials", err)
	}
	return nil
}

// Login checks the supplied credentials against the store. A wrong email
// or password returns false with a nil error; only store-level problems
// are errors.
func (s *Store) Login(email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, apperrors.NewValidationError("email and password must not be empty", nil)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, ErrNoAccount
		}
		return false, apperrors.NewInternalError("failed to read credentials", err)
	}

	var record credentialRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return false, apperrors.NewInternalError(fmt.Sprintf("corrupt credentials file %s", s.path), err)
	}

	if record.Email != email {
		return false, nil
	}
	return bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)) == nil, nil
}
