package local

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"resume-generator/internal/shared/storage/object"
)

func TestStoreSaveAndOpen(t *testing.T) {
	store := New(t.TempDir())
	payload := append([]byte("PK\x03\x04"), bytes.Repeat([]byte{0x01}, 2048)...)

	key, size, mimeType, err := store.Save(context.Background(), "user-1", "resume.docx", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != int64(len(payload)) {
		t.Fatalf("size = %d, want %d", size, len(payload))
	}
	if mimeType != object.DocxMimeType {
		t.Fatalf("mime type = %q", mimeType)
	}

	rc, err := store.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if !bytes.Equal(got, payload) {
		t.Fatalf("stored bytes differ")
	}
}

func TestStoreOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	for _, key := range []string{"../secret", "/etc/passwd"} {
		if _, err := store.Open(context.Background(), key); !errors.Is(err, object.ErrInvalidKey) {
			t.Fatalf("Open(%q): expected ErrInvalidKey, got %v", key, err)
		}
	}
	if _, err := store.Open(context.Background(), "missing/file.docx"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not exist, got %v", err)
	}
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestStoreSaveRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	body := io.MultiReader(bytes.NewReader(bytes.Repeat([]byte{0x01}, 1024)), brokenReader{})

	if _, _, _, err := store.Save(context.Background(), "user-1", "resume.docx", body); err == nil {
		t.Fatalf("expected write error")
	}

	var leftovers []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			leftovers = append(leftovers, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if len(leftovers) != 0 {
		t.Fatalf("expected no partial files, found %v", leftovers)
	}
}
