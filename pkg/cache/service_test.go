package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew_RequiresDir(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected an error without a directory")
	}
}

func TestKey_ChangesWithContent(t *testing.T) {
	apk := filepath.Join(t.TempDir(), "app.apk")
	if err := os.WriteFile(apk, []byte("v1"), 0644); err != nil {
		t.Fatal(err)
	}
	k1, err := Key(apk)
	if err != nil {
		t.Fatalf("Key: %v", err)
	}

	if err := os.WriteFile(apk, []byte("version 2"), 0644); err != nil {
		t.Fatal(err)
	}
	k2, err := Key(apk)
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if k1 == k2 {
		t.Error("a rewritten APK should get a new key")
	}

	if _, err := Key(filepath.Join(t.TempDir(), "missing.apk")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestService_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	s, err := New(Config{Dir: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Put("a", "Package: com.example.a")
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := New(Config{Dir: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if report, ok := reopened.Get("a"); !ok || report != "Package: com.example.a" {
		t.Errorf("Get = %q, %v", report, ok)
	}
}

func TestService_SaveSkipsUnchanged(t *testing.T) {
	s, err := New(Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Error("an untouched cache should not be written")
	}
}

func TestService_EvictsOldest(t *testing.T) {
	s, err := New(Config{Dir: t.TempDir(), MaxEntries: 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 5; i++ {
		s.Put(fmt.Sprintf("k%d", i), "report")
		time.Sleep(time.Millisecond)
	}

	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	for _, gone := range []string{"k0", "k1"} {
		if _, ok := s.Get(gone); ok {
			t.Errorf("%s should have been evicted", gone)
		}
	}
	if _, ok := s.Get("k4"); !ok {
		t.Error("newest entry missing")
	}
}

func TestService_Clear(t *testing.T) {
	s, err := New(Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Put("a", "x")
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len = %d after Clear", s.Len())
	}
}

func TestService_IgnoresCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "aapt_cache.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := New(Config{Dir: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
	s.Put("a", "x")
}
