package util

import (
	"strings"
	"testing"
)

func TestOwnerDir(t *testing.T) {
	got := OwnerDir("user_5b2f0c1e")
	if got != OwnerDir("user_5b2f0c1e") {
		t.Fatalf("expected stable dir, got %s", got)
	}
	if len(got) != 32 {
		t.Fatalf("expected 32 hex characters, got %d", len(got))
	}
	if strings.Contains(got, "user") {
		t.Fatalf("dir leaks the owner id: %s", got)
	}
	if OwnerDir("  ") != "anonymous" {
		t.Fatalf("expected anonymous dir for blank owner")
	}
}

func TestCleanFileName(t *testing.T) {
	cases := map[string]string{
		" resume.pdf ":    "resume.pdf",
		"dir/resume.docx": "dir_resume.docx",
		`c:\cv.txt`:       "c:_cv.txt",
		"cv\x00\x07.md":   "cv.md",
	}
	for in, want := range cases {
		got, err := CleanFileName(in)
		if err != nil || got != want {
			t.Fatalf("CleanFileName(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	for _, bad := range []string{"../x", "", "   "} {
		if _, err := CleanFileName(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestCleanFileNameKeepsExtensionWhenTruncating(t *testing.T) {
	got, err := CleanFileName(strings.Repeat("a", 300) + ".docx")
	if err != nil {
		t.Fatalf("CleanFileName: %v", err)
	}
	if len(got) != maxFileNameLen || !strings.HasSuffix(got, ".docx") {
		t.Fatalf("unexpected truncation %q (%d)", got, len(got))
	}
}
