package runner

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverPomskyFilesFindsNestedFiles(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "a.pomsky"), `'a'`)
	mustWrite(t, filepath.Join(dir, "sub", "b.pomsky"), `'b'`)
	mustWrite(t, filepath.Join(dir, "ignore.txt"), `not pomsky`)

	files, err := discoverPomskyFiles(dir)
	if err != nil {
		t.Fatalf("discoverPomskyFiles(%q) error: %v", dir, err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2: %v", len(files), files)
	}
}

func TestDiscoverPomskyFilesRejectsMissingDir(t *testing.T) {
	if _, err := discoverPomskyFiles(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func mustWrite(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll(%q): %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile(%q): %v", path, err)
	}
}
