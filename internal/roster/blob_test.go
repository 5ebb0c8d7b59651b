package roster

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileBlobStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "store")
	blob, err := NewFileBlobStore(dir)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if _, err := blob.Get("slot"); !errors.Is(err, ErrSlotEmpty) {
		t.Errorf("expected ErrSlotEmpty, got %v", err)
	}

	if err := blob.Put("slot", []byte("first")); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := blob.Put("slot", []byte("second")); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	data, err := blob.Get("slot")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("expected overwritten value, got %q", data)
	}

	if _, err := os.Stat(blob.SlotPath("slot")); err != nil {
		t.Errorf("expected slot file on disk: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestFileBlobStoreRequiresDir(t *testing.T) {
	if _, err := NewFileBlobStore(""); err == nil {
		t.Error("expected error for empty directory")
	}
}

func TestSQLiteBlobStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onboard.db")
	blob, err := OpenSQLiteBlobStore(path)
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	defer blob.Close()

	if _, err := blob.Get("slot"); !errors.Is(err, ErrSlotEmpty) {
		t.Errorf("expected ErrSlotEmpty, got %v", err)
	}
	if err := blob.Put("slot", []byte(`[]`)); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := blob.Put("slot", []byte(`[{"email":"a"}]`)); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	data, err := blob.Get("slot")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(data) != `[{"email":"a"}]` {
		t.Errorf("unexpected value %q", data)
	}
}

func TestStoreOverFileBlobSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	blob, err := NewFileBlobStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	store := NewStore(blob, "")
	store.Initialize()
	store.Append(sample("new@x.com"))
	store.SetStatus("new@x.com", StatusHidden)

	reopened := NewStore(blob, "")
	reopened.Initialize()

	if reopened.Len() != 3 {
		t.Fatalf("expected 3 records after restart, got %d", reopened.Len())
	}
	e, err := reopened.Find("new@x.com")
	if err != nil {
		t.Fatal(err)
	}
	if e.Status != StatusHidden {
		t.Errorf("expected Hidden after restart, got %s", e.Status)
	}
}
