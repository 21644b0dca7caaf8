package attach

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCollectGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes/a.md", []byte("# a"))
	writeFile(t, dir, "notes/deep/b.md", []byte("# b"))
	writeFile(t, dir, "notes/c.txt", []byte("plain"))

	attachments, err := Collect([]string{filepath.Join(dir, "notes/**/*.md")})
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if len(attachments) != 2 {
		t.Fatalf("expected 2 attachments, got %v", attachments)
	}
	// sorted by path
	if !strings.HasSuffix(attachments[0].Path, "a.md") || !strings.HasSuffix(attachments[1].Path, "b.md") {
		t.Fatalf("unexpected order: %v", attachments)
	}
}

func TestCollectSkipsBinary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.txt", []byte("hello"))
	writeFile(t, dir, "blob.bin", []byte{0x00, 0x01, 0x02, 0xff, 0xfe, 0x00})

	attachments, err := Collect([]string{filepath.Join(dir, "*")})
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if len(attachments) != 1 || !strings.HasSuffix(attachments[0].Path, "ok.txt") {
		t.Fatalf("expected only the text file, got %v", attachments)
	}
}

func TestCollectNoMatch(t *testing.T) {
	dir := t.TempDir()
	if _, err := Collect([]string{filepath.Join(dir, "*.md")}); err == nil {
		t.Fatal("expected an error for a pattern matching nothing")
	}
}

func TestRender(t *testing.T) {
	out := Render("look at this", []Attachment{
		{Path: "a.txt", MIME: "text/plain; charset=utf-8", Content: "hello\n"},
	})
	if !strings.Contains(out, "look at this") || !strings.Contains(out, "File: a.txt") {
		t.Fatalf("unexpected render: %q", out)
	}
	if !strings.Contains(out, "```\nhello\n```") {
		t.Fatalf("missing fenced content: %q", out)
	}
}
