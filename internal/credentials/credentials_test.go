package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreReadsKeyOnDemand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret.env")
	store := NewFileStore(path)

	if _, ok := store.SecretKey(); ok {
		t.Fatalf("expected no key before file exists")
	}
	if Privileged(store) {
		t.Fatalf("expected unprivileged mode without a key")
	}

	if err := os.WriteFile(path, []byte("SECRET_KEY=league-key\n"), 0600); err != nil {
		t.Fatalf("write key file: %v", err)
	}

	key, ok := store.SecretKey()
	if !ok || key != "league-key" {
		t.Fatalf("expected key to be picked up, got %q %v", key, ok)
	}
	if !Privileged(store) {
		t.Fatalf("expected privileged mode with a key")
	}
}

func TestFileStoreIgnoresBlankKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret.env")
	if err := os.WriteFile(path, []byte("SECRET_KEY=\nOTHER=x\n"), 0600); err != nil {
		t.Fatalf("write key file: %v", err)
	}

	if _, ok := NewFileStore(path).SecretKey(); ok {
		t.Fatalf("expected blank key to count as missing")
	}
}

func TestRequire(t *testing.T) {
	if _, err := Require(Static("")); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
	if _, err := Require(nil); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret for nil source, got %v", err)
	}
	key, err := Require(Static(" abc "))
	if err != nil || key != "abc" {
		t.Fatalf("expected trimmed key, got %q %v", key, err)
	}
}
