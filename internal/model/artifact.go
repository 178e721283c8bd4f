package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	artifactVersion = 1

	kindVectorizer = "tfidf-vectorizer"
	kindClassifier = "logistic-regression"
)

type vectorizerArtifact struct {
	Kind      string    `json:"kind"`
	Version   int       `json:"version"`
	StopWords bool      `json:"stop_words"`
	Terms     []string  `json:"terms"`
	IDF       []float64 `json:"idf"`
}

type classifierArtifact struct {
	Kind                  string      `json:"kind"`
	Version               int         `json:"version"`
	Labels                []string    `json:"labels"`
	Features              int         `json:"features"`
	Weights               [][]float64 `json:"weights"`
	Bias                  []float64   `json:"bias"`
	VocabularyFingerprint string      `json:"vocabulary_fingerprint,omitempty"`
	Iterations            int         `json:"iterations,omitempty"`
}

// SaveVectorizer writes the fitted vectorizer to path.
func SaveVectorizer(path string, v *Vectorizer) error {
	return writeJSON(path, vectorizerArtifact{
		Kind:      kindVectorizer,
		Version:   artifactVersion,
		StopWords: v.stopWords,
		Terms:     v.terms,
		IDF:       v.idf,
	})
}

// LoadVectorizer reads a vectorizer written by SaveVectorizer.
func LoadVectorizer(path string) (*Vectorizer, error) {
	var a vectorizerArtifact
	if err := readJSON(path, &a); err != nil {
		return nil, err
	}
	if err := checkHeader(a.Kind, a.Version, kindVectorizer); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(a.Terms) == 0 {
		return nil, fmt.Errorf("%s: vectorizer has empty vocabulary", path)
	}

	v, err := newVectorizer(a.Terms, a.IDF, a.StopWords)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// SaveClassifier writes the fitted classifier to path.
func SaveClassifier(path string, c *Classifier) error {
	return writeJSON(path, classifierArtifact{
		Kind:                  kindClassifier,
		Version:               artifactVersion,
		Labels:                c.labels,
		Features:              c.features,
		Weights:               c.weights,
		Bias:                  c.bias,
		VocabularyFingerprint: c.VocabularyFingerprint,
		Iterations:            c.Iterations,
	})
}

// LoadClassifier reads a classifier written by SaveClassifier.
func LoadClassifier(path string) (*Classifier, error) {
	var a classifierArtifact
	if err := readJSON(path, &a); err != nil {
		return nil, err
	}
	if err := checkHeader(a.Kind, a.Version, kindClassifier); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(a.Labels) < 2 {
		return nil, fmt.Errorf("%s: classifier needs at least two labels, got %d", path, len(a.Labels))
	}
	if len(a.Weights) != len(a.Labels) || len(a.Bias) != len(a.Labels) {
		return nil, fmt.Errorf("%s: weights or bias do not match %d labels", path, len(a.Labels))
	}
	for i, row := range a.Weights {
		if len(row) != a.Features {
			return nil, fmt.Errorf("%s: weight row %d: %w: expected %d, got %d", path, i, ErrDimensionMismatch, a.Features, len(row))
		}
	}

	return &Classifier{
		labels:                a.Labels,
		features:              a.Features,
		weights:               a.Weights,
		bias:                  a.Bias,
		VocabularyFingerprint: a.VocabularyFingerprint,
		Iterations:            a.Iterations,
	}, nil
}

func checkHeader(kind string, version int, want string) error {
	if kind != want {
		return fmt.Errorf("%w: expected %q, got %q", ErrArtifactKind, want, kind)
	}
	if version != artifactVersion {
		return fmt.Errorf("unsupported artifact version %d", version)
	}
	return nil
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	if err := encodeAndClose(file, v); err != nil {
		return fmt.Errorf("write artifact %s: %w", path, err)
	}
	return nil
}

// encodeAndClose reports a failed Close, since buffered data may only be flushed there.
func encodeAndClose(w io.WriteCloser, v any) (err error) {
	defer func() {
		err = errors.Join(err, w.Close())
	}()
	return json.NewEncoder(w).Encode(v)
}

func readJSON(path string, v any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open artifact: %w", err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(v); err != nil {
		return fmt.Errorf("decode artifact %s: %w", path, err)
	}
	return nil
}
