package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Kind is the closed set of upload formats the service recognises.
type Kind int

const (
	Unsupported Kind = iota
	PlainText
	PDF
	DOCX
)

// SniffLen is how many leading bytes Detect looks at.
const SniffLen = 512

// ErrNoText is returned when no plain text can be obtained from an upload.
// Callers treat it as an empty document, not as a failure.
var ErrNoText = errors.New("no text extracted")

func (k Kind) String() string {
	switch k {
	case PlainText:
		return "text"
	case PDF:
		return "pdf"
	case DOCX:
		return "docx"
	default:
		return "unsupported"
	}
}

// Detect picks the kind from the file extension and falls back to content sniffing.
func Detect(name string, head []byte) Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".text", ".md":
		return PlainText
	case ".pdf":
		return PDF
	case ".docx":
		return DOCX
	}

	if len(head) > SniffLen {
		head = head[:SniffLen]
	}
	if len(head) == 0 {
		return Unsupported
	}

	contentType := http.DetectContentType(head)
	switch {
	case strings.HasPrefix(contentType, "text/plain"):
		return PlainText
	case contentType == "application/pdf":
		return PDF
	case contentType == "application/zip" && bytes.Contains(head, []byte("word/")):
		return DOCX
	default:
		return Unsupported
	}
}

// Text reads the document as plain text. Only PlainText yields content; every other
// kind returns an empty string and ErrNoText.
func Text(kind Kind, r io.Reader) (string, error) {
	if kind != PlainText {
		return "", fmt.Errorf("%s: %w", kind, ErrNoText)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}

	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return "", fmt.Errorf("invalid utf-8: %w", ErrNoText)
	}

	return string(data), nil
}

// Read detects the kind of r and extracts its text.
func Read(name string, r io.Reader) (string, Kind, error) {
	head := make([]byte, SniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", Unsupported, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	kind := Detect(name, head)
	text, err := Text(kind, io.MultiReader(bytes.NewReader(head), r))
	return text, kind, err
}
