package snapshotstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	fs := FileStore{Path: filepath.Join(dir, "snapshot.bin")}

	want := []byte("TBST-fake-snapshot-bytes")
	if err := fs.Save(want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := fs.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("round trip mismatch: got %q want %q", got, want)
	}
}

func TestFileStoreLoadMissing(t *testing.T) {
	dir := t.TempDir()
	fs := FileStore{Path: filepath.Join(dir, "missing.bin")}

	if _, err := fs.Load(); err == nil {
		t.Fatalf("expected error loading a missing file")
	} else if !os.IsNotExist(unwrapNotExist(err)) {
		t.Fatalf("expected a wrapped ErrNotExist, got %v", err)
	}
}

func unwrapNotExist(err error) error {
	type unwrapper interface{ Unwrap() error }
	for err != nil {
		if os.IsNotExist(err) {
			return err
		}
		u, ok := err.(unwrapper)
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return err
}
