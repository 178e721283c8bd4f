package extract

import (
	"errors"
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		file   string
		head   []byte
		expect Kind
	}{
		{name: "txt extension", file: "cv.TXT", expect: PlainText},
		{name: "pdf extension", file: "cv.pdf", expect: PDF},
		{name: "docx extension", file: "cv.docx", expect: DOCX},
		{name: "sniff text", file: "resume", head: []byte("Python developer with SQL"), expect: PlainText},
		{name: "sniff pdf", file: "upload", head: []byte("%PDF-1.7\n"), expect: PDF},
		{name: "sniff docx", file: "upload", head: []byte("PK\x03\x04\x14\x00\x06\x00word/document.xml"), expect: DOCX},
		{name: "binary", file: "photo", head: []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, expect: Unsupported},
		{name: "empty", file: "blob", expect: Unsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Detect(tt.file, tt.head); got != tt.expect {
				t.Fatalf("expected %s, got %s", tt.expect, got)
			}
		})
	}
}

func TestText(t *testing.T) {
	t.Parallel()

	got, err := Text(PlainText, strings.NewReader("\xef\xbb\xbfI know Go"))
	if err != nil || got != "I know Go" {
		t.Fatalf("unexpected result %q %v", got, err)
	}

	for _, kind := range []Kind{PDF, DOCX, Unsupported} {
		got, err := Text(kind, strings.NewReader("%PDF"))
		if got != "" || !errors.Is(err, ErrNoText) {
			t.Fatalf("%s: expected empty text and ErrNoText, got %q %v", kind, got, err)
		}
	}

	if _, err := Text(PlainText, strings.NewReader("\xff\xfe\xfd")); !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText for invalid utf-8, got %v", err)
	}
}

func TestRead(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("python sql ", 100)
	text, kind, err := Read("cv", strings.NewReader(long))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != PlainText || text != long {
		t.Fatalf("expected full text back, got kind %s and %d bytes", kind, len(text))
	}

	text, kind, err = Read("cv.pdf", strings.NewReader("%PDF-1.4"))
	if kind != PDF || text != "" || !errors.Is(err, ErrNoText) {
		t.Fatalf("unexpected pdf result %q %s %v", text, kind, err)
	}
}
