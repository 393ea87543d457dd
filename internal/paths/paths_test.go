package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "icon.png")
	if err := AtomicWrite(path, []byte("hello")); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello" {
		t.Errorf("content = %q, want %q", got, "hello")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}

func TestAtomicWriteReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	if err := AtomicWrite(path, []byte("one")); err != nil {
		t.Fatal(err)
	}
	if err := AtomicWrite(path, []byte("two")); err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "two" {
		t.Errorf("content = %q, want %q", got, "two")
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x")

	ok, err := Exists(path)
	if err != nil || ok {
		t.Fatalf("Exists(missing) = %v, %v", ok, err)
	}
	os.WriteFile(path, nil, 0644)
	ok, err = Exists(path)
	if err != nil || !ok {
		t.Fatalf("Exists(present) = %v, %v", ok, err)
	}
}

// Directories carrying the Windows read-only attribute must still pass;
// see TestWritableReadOnlyAttributeDir.
func TestWritable(t *testing.T) {
	if err := Writable(t.TempDir()); err != nil {
		t.Errorf("Writable(tempdir) = %v", err)
	}
	if err := Writable(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestDataDirUsesAPPDATA(t *testing.T) {
	t.Setenv("APPDATA", "/fake/appdata")
	got := DataDir()
	want := filepath.Join("/fake/appdata", AppDirName)
	if got != want {
		t.Errorf("DataDir() = %q, want %q", got, want)
	}
}

func TestDataDirFallsBackWithoutAPPDATA(t *testing.T) {
	t.Setenv("APPDATA", "")
	got := DataDir()

	// Should use ~/.config/appicon or temp dir; either way must end with "appicon".
	if filepath.Base(got) != AppDirName {
		t.Errorf("DataDir() = %q, expected base dir %q", got, AppDirName)
	}
}
