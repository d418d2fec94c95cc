package localstate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := Open(path)
	if err != nil {
		t.Fatal("Open of missing file should succeed:", err)
	}

	if _, ok := s.Get(KeyCurrentUserID); ok {
		t.Error("Fresh store should be empty")
	}
}

func TestSetGetDeletePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := Open(path)
	if err != nil {
		t.Fatal("Failed to open store:", err)
	}

	if err := s.Set(KeyCurrentUserID, "42"); err != nil {
		t.Fatal("Failed to set value:", err)
	}

	// Values survive a reopen.
	s2, err := Open(path)
	if err != nil {
		t.Fatal("Failed to reopen store:", err)
	}
	if v, ok := s2.Get(KeyCurrentUserID); !ok || v != "42" {
		t.Errorf("Got (%q, %v), want (\"42\", true)", v, ok)
	}

	if err := s2.Delete(KeyCurrentUserID); err != nil {
		t.Fatal("Failed to delete value:", err)
	}

	s3, err := Open(path)
	if err != nil {
		t.Fatal("Failed to reopen store:", err)
	}
	if _, ok := s3.Get(KeyCurrentUserID); ok {
		t.Error("Deleted value survived a reopen")
	}
}

func TestDeleteAbsentKeyIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := Open(path)
	if err != nil {
		t.Fatal("Failed to open store:", err)
	}

	if err := s.Delete("never-set"); err != nil {
		t.Error("Delete of absent key should be a no-op:", err)
	}
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal("Failed to write corrupt file:", err)
	}

	if _, err := Open(path); err == nil {
		t.Error("Open of corrupt file should fail")
	}
}
