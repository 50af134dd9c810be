package object

import (
	"strings"
	"testing"
)

func TestNewKey(t *testing.T) {
	key, err := NewKey("demo_user", "my resume.pdf")
	if err != nil {
		t.Fatalf("NewKey: %v", err)
	}
	parts := strings.Split(key, "/")
	if len(parts) != 2 {
		t.Fatalf("expected owner/name key, got %q", key)
	}
	if len(parts[0]) != 32 {
		t.Fatalf("expected hashed owner, got %q", parts[0])
	}
	if !strings.HasSuffix(parts[1], "_my resume.pdf") {
		t.Fatalf("expected file name suffix, got %q", parts[1])
	}

	other, _ := NewKey("demo_user", "my resume.pdf")
	if other == key {
		t.Fatalf("expected unique keys")
	}
	anon, _ := NewKey("", "cv.txt")
	if !strings.HasPrefix(anon, "anonymous/") {
		t.Fatalf("expected anonymous prefix, got %q", anon)
	}
	if ExtractedKey(key) != key+".extracted.txt" {
		t.Fatalf("unexpected extracted key %q", ExtractedKey(key))
	}
}

func TestNewKeyRejectsTraversal(t *testing.T) {
	if _, err := NewKey("u", "../../etc/passwd"); err == nil {
		t.Fatalf("expected error for traversal")
	}
	if _, err := NewKey("u", "   "); err == nil {
		t.Fatalf("expected error for blank name")
	}
}
