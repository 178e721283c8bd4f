package model

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
)

var errClose = errors.New("disk full")

type closeFailer struct {
	bytes.Buffer
	closed bool
}

func (c *closeFailer) Close() error {
	c.closed = true
	return errClose
}

func TestEncodeAndCloseReportsCloseError(t *testing.T) {
	t.Parallel()

	w := &closeFailer{}
	err := encodeAndClose(w, map[string]int{"a": 1})
	if !errors.Is(err, errClose) {
		t.Fatalf("expected close error, got %v", err)
	}
	if !w.closed {
		t.Fatalf("writer must be closed")
	}
	if w.Len() == 0 {
		t.Fatalf("payload must be written before close")
	}
}

func TestEncodeAndCloseClosesOnEncodeError(t *testing.T) {
	t.Parallel()

	w := &closeFailer{}
	err := encodeAndClose(w, func() {})
	if err == nil || !errors.Is(err, errClose) {
		t.Fatalf("expected joined encode and close errors, got %v", err)
	}
	if !w.closed {
		t.Fatalf("writer must be closed after a failed encode")
	}
}

func TestSaveIntoMissingDirectory(t *testing.T) {
	t.Parallel()

	vec, clf := fitToy(t)
	dir := filepath.Join(t.TempDir(), "missing")

	if err := SaveVectorizer(filepath.Join(dir, "vectorizer.json"), vec); err == nil {
		t.Fatalf("expected error saving vectorizer into a missing directory")
	}
	if err := SaveClassifier(filepath.Join(dir, "classifier.json"), clf); err == nil {
		t.Fatalf("expected error saving classifier into a missing directory")
	}
}
