package local

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPutAndOpen(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	n, err := store.Put(ctx, "owner/resume.txt", "text/plain", strings.NewReader("Go engineer"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if n != int64(len("Go engineer")) {
		t.Fatalf("unexpected size %d", n)
	}

	rc, err := store.Open(ctx, "owner/resume.txt")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "Go engineer" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestRejectsEscapingKeys(t *testing.T) {
	store := New(t.TempDir())
	for _, key := range []string{"../outside.txt", "/etc/passwd", ""} {
		if _, err := store.Put(context.Background(), key, "text/plain", strings.NewReader("x")); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}

func TestPutReplacesAndLeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	store := New(root)
	ctx := context.Background()

	for _, body := range []string{"first draft", "final"} {
		if _, err := store.Put(ctx, "owner/cv.txt", "text/plain", strings.NewReader(body)); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}
	data, err := os.ReadFile(filepath.Join(root, "owner", "cv.txt"))
	if err != nil || string(data) != "final" {
		t.Fatalf("unexpected content %q, %v", data, err)
	}
	entries, _ := os.ReadDir(filepath.Join(root, "owner"))
	if len(entries) != 1 {
		t.Fatalf("expected only the object, got %d entries", len(entries))
	}
}

func TestOpenMissing(t *testing.T) {
	store := New(t.TempDir())
	_, err := store.Open(context.Background(), "owner/missing.txt")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
