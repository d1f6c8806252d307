package credentials

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// SecretKeyName is the key the secret is stored under in the key file
const SecretKeyName = "SECRET_KEY"

// ErrMissingSecret is returned when a privileged action is attempted without a stored key
var ErrMissingSecret = errors.New("secret key is required for this action")

// Source provides the league secret key. Implementations are read-only.
type Source interface {
	SecretKey() (string, bool)
}

// FileStore reads the secret key from a dotenv-style file on every call, so a
// key written by an administrator is picked up without a restart.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the file at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// SecretKey returns the stored key. A missing or unreadable file means no key.
func (s *FileStore) SecretKey() (string, bool) {
	if s == nil || s.path == "" {
		return "", false
	}
	if _, err := os.Stat(s.path); err != nil {
		return "", false
	}
	values, err := godotenv.Read(s.path)
	if err != nil {
		return "", false
	}
	key := strings.TrimSpace(values[SecretKeyName])
	return key, key != ""
}

// Path returns the file the store reads from
func (s *FileStore) Path() string {
	return s.path
}

// Static is a fixed in-memory key, mainly for tests and one-off tools
type Static string

func (s Static) SecretKey() (string, bool) {
	key := strings.TrimSpace(string(s))
	return key, key != ""
}

// Require returns the key from src or ErrMissingSecret
func Require(src Source) (string, error) {
	if src == nil {
		return "", ErrMissingSecret
	}
	key, ok := src.SecretKey()
	if !ok {
		return "", ErrMissingSecret
	}
	return key, nil
}

// Privileged reports whether src currently holds a key
func Privileged(src Source) bool {
	_, err := Require(src)
	return err == nil
}
