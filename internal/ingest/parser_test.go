package ingest

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseDOCX(t *testing.T) {
	raw := buildDOCX(t, `<w:document><w:body><w:p><w:r><w:t>Chapter 1</w:t></w:r></w:p><w:p><w:r><w:t>Hello</w:t></w:r><w:r><w:tab/><w:t>world.</w:t></w:r></w:p></w:body></w:document>`)
	got, err := parseDOCX(raw)
	if err != nil {
		t.Fatalf("parseDOCX failed: %v", err)
	}
	if got := normalizeWhitespace(got); got != "Chapter 1\n\nHello world." {
		t.Fatalf("unexpected docx text: %q", got)
	}
}

func TestParseDOCXMissingDocument(t *testing.T) {
	var b bytes.Buffer
	zw := zip.NewWriter(&b)
	if _, err := zw.Create("word/styles.xml"); err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if _, err := parseDOCX(b.Bytes()); err == nil {
		t.Fatal("expected error for docx without document.xml")
	}
}

func TestParseFilePlainText(t *testing.T) {
	path := writeFile(t, "essay.txt", "\xef\xbb\xbfFirst   line here.\r\n\r\n\r\nSecond paragraph.\n")
	parsed, err := ParseFile(path)
	if err != nil {
		t.Fatalf("parse txt: %v", err)
	}
	if parsed.Title != "essay" || parsed.Format != "txt" {
		t.Fatalf("unexpected metadata: %+v", parsed)
	}
	if parsed.Text != "First line here.\n\nSecond paragraph." {
		t.Fatalf("unexpected text: %q", parsed.Text)
	}
}

func TestParseFileMarkdown(t *testing.T) {
	src := "# Title\n\nSome *emphasised* text with a [link](https://example.com).\n\n" +
		"- one\n- two\n- three\n\n```go\nfmt.Println(\"code\")\n```\n\n> Quoted words here.\n"
	parsed, err := ParseFile(writeFile(t, "notes.md", src))
	if err != nil {
		t.Fatalf("parse md: %v", err)
	}
	want := "Some emphasised text with a link.\n\n- one\n- two\n- three\n\nQuoted words here."
	if parsed.Text != want {
		t.Fatalf("unexpected markdown text:\n%q\nwant\n%q", parsed.Text, want)
	}
}

func TestParseFileEmpty(t *testing.T) {
	_, err := ParseFile(writeFile(t, "blank.txt", "  \n\n\t"))
	if !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
}

func TestParseFileUnsupported(t *testing.T) {
	_, err := ParseFile(writeFile(t, "sample.rtf", "hello"))
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported file type error, got %v", err)
	}
}

func TestParseReaderTooLarge(t *testing.T) {
	r := bytes.NewReader(bytes.Repeat([]byte("a"), MaxFileBytes+1))
	if _, err := ParseReader(r, "stdin"); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	parsed, err := ParseReader(strings.NewReader("hello there"), "stdin")
	if err != nil || parsed.Text != "hello there" {
		t.Fatalf("unexpected reader result: %+v %v", parsed, err)
	}
}

func TestDecodePlainReplacesInvalidUTF8(t *testing.T) {
	if got := decodePlain([]byte("ok\xffok")); got != "ok�ok" {
		t.Fatalf("unexpected decode: %q", got)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func buildDOCX(t *testing.T, bodyXML string) []byte {
	t.Helper()
	var b bytes.Buffer
	zw := zip.NewWriter(&b)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	xml := `<?xml version="1.0" encoding="UTF-8"?>` + bodyXML
	if _, err := f.Write([]byte(xml)); err != nil {
		t.Fatalf("write xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return b.Bytes()
}
