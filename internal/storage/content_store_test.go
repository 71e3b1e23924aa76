package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStoreWritesFileWithGeneratedName(t *testing.T) {
	store := NewContentStore(t.TempDir())

	path, filename, err := store.Store("coll-1", "report.pdf", []byte("hello"))
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	if !strings.HasSuffix(filename, ".pdf") {
		t.Errorf("Expected generated filename to keep extension, got %s", filename)
	}
	if filename == "report.pdf" {
		t.Error("Generated filename must not equal the original name")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read stored file: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("Stored content mismatch: %q", data)
	}

	// No temp files left behind
	entries, _ := os.ReadDir(filepath.Dir(path))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".upload-") {
			t.Errorf("Leftover temp file: %s", e.Name())
		}
	}
}

func TestStoreSameOriginalNameNeverCollides(t *testing.T) {
	store := NewContentStore(t.TempDir())

	p1, f1, err := store.Store("coll-1", "guide.txt", []byte("one"))
	if err != nil {
		t.Fatalf("First store failed: %v", err)
	}
	p2, f2, err := store.Store("coll-1", "guide.txt", []byte("two"))
	if err != nil {
		t.Fatalf("Second store failed: %v", err)
	}

	if f1 == f2 || p1 == p2 {
		t.Fatalf("Stored filenames collided: %s vs %s", f1, f2)
	}
}

func TestGenerateFilenameUniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		name := GenerateFilename("../../../etc/passwd.txt")
		if strings.ContainsAny(name, "/\\") {
			t.Fatalf("Generated filename contains path separators: %s", name)
		}
		if _, ok := seen[name]; ok {
			t.Fatalf("Duplicate generated filename after %d generations: %s", i, name)
		}
		seen[name] = struct{}{}
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	store := NewContentStore(t.TempDir())

	if _, _, err := store.Store("coll-1", "a.txt", []byte("x")); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	if err := store.Remove("coll-1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(store.CollectionDir("coll-1")); !os.IsNotExist(err) {
		t.Error("Collection directory still exists after Remove")
	}

	// Second removal of an absent subtree must succeed
	if err := store.Remove("coll-1"); err != nil {
		t.Fatalf("Second Remove failed: %v", err)
	}
}
