package model

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/spigell/skillgap/internal/vector"
)

var (
	trainDocs = []string{
		"python django flask apis",
		"python flask rest apis backend",
		"html css javascript react",
		"javascript react css frontend",
		"statistics machine learning pandas",
		"deep learning statistics models",
	}
	trainLabels = []string{
		"Python Developer",
		"Python Developer",
		"Web Developer",
		"Web Developer",
		"Data Scientist",
		"Data Scientist",
	}
)

func fitToy(t *testing.T) (*Vectorizer, *Classifier) {
	t.Helper()

	vec, err := FitVectorizer(trainDocs, DefaultVectorizerOptions())
	if err != nil {
		t.Fatalf("fit vectorizer: %v", err)
	}

	clf, err := FitClassifier(vec.TransformAll(trainDocs), trainLabels, DefaultClassifierOptions())
	if err != nil {
		t.Fatalf("fit classifier: %v", err)
	}

	return vec, clf
}

func TestClassifierPredict(t *testing.T) {
	t.Parallel()

	vec, clf := fitToy(t)

	tests := []struct {
		text   string
		expect string
	}{
		{text: "django apis", expect: "Python Developer"},
		{text: "react frontend", expect: "Web Developer"},
		{text: "machine learning", expect: "Data Scientist"},
	}

	for _, tt := range tests {
		got, err := clf.Predict(vec.Transform(tt.text))
		if err != nil {
			t.Fatalf("predict %q: %v", tt.text, err)
		}
		if got != tt.expect {
			t.Fatalf("predict %q: expected %q, got %q", tt.text, tt.expect, got)
		}
	}

	acc, err := clf.Score(vec.TransformAll(trainDocs), trainLabels)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if acc != 1 {
		t.Fatalf("expected training accuracy 1, got %v", acc)
	}
}

func TestClassifierLabelsSorted(t *testing.T) {
	t.Parallel()

	_, clf := fitToy(t)
	labels := clf.Labels()
	expected := []string{"Data Scientist", "Python Developer", "Web Developer"}
	for i := range expected {
		if labels[i] != expected[i] {
			t.Fatalf("expected labels %v, got %v", expected, labels)
		}
	}
}

func TestClassifierProbabilities(t *testing.T) {
	t.Parallel()

	vec, clf := fitToy(t)
	probs, err := clf.Probabilities(vec.Transform("python flask"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sum float64
	for _, p := range probs {
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("probabilities must sum to 1, got %v", sum)
	}
}

func TestClassifierZeroVector(t *testing.T) {
	t.Parallel()

	vec, clf := fitToy(t)
	if _, err := clf.Predict(vec.Transform("")); err != nil {
		t.Fatalf("zero vector must be valid input: %v", err)
	}
}

func TestClassifierDimensionMismatch(t *testing.T) {
	t.Parallel()

	_, clf := fitToy(t)

	for _, dim := range []int{0, clf.Features() - 1, clf.Features() + 1} {
		_, err := clf.Predict(vector.Zero(dim))
		if !errors.Is(err, ErrDimensionMismatch) {
			t.Fatalf("dim %d: expected ErrDimensionMismatch, got %v", dim, err)
		}
		if _, err := clf.Probabilities(vector.Zero(dim)); !errors.Is(err, ErrDimensionMismatch) {
			t.Fatalf("dim %d: expected ErrDimensionMismatch from probabilities, got %v", dim, err)
		}
	}
}

func TestClassifierIndexOutOfRange(t *testing.T) {
	t.Parallel()

	_, clf := fitToy(t)
	f := clf.Features()

	tests := []struct {
		name string
		v    vector.Vector
	}{
		{name: "index past dim", v: vector.Vector{Dim: f, Indices: []int{f + 3}, Values: []float64{1}}},
		{name: "negative index", v: vector.Vector{Dim: f, Indices: []int{-1}, Values: []float64{1}}},
		{name: "length mismatch", v: vector.Vector{Dim: f, Indices: []int{0, 1}, Values: []float64{1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := clf.Predict(tt.v); !errors.Is(err, ErrDimensionMismatch) {
				t.Fatalf("expected ErrDimensionMismatch, got %v", err)
			}
		})
	}
}

func TestFitClassifierErrors(t *testing.T) {
	t.Parallel()

	one := []vector.Vector{vector.FromDense([]float64{1, 0})}

	tests := []struct {
		name string
		X    []vector.Vector
		y    []string
	}{
		{name: "empty", X: nil, y: nil},
		{name: "length mismatch", X: one, y: []string{"a", "b"}},
		{name: "single class", X: append(one, vector.FromDense([]float64{0, 1})), y: []string{"a", "a"}},
		{name: "mixed dimensions", X: append(one, vector.FromDense([]float64{0, 1, 1})), y: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := FitClassifier(tt.X, tt.y, DefaultClassifierOptions()); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestClassifierRoundTrip(t *testing.T) {
	t.Parallel()

	vec, clf := fitToy(t)
	clf.VocabularyFingerprint = vec.Fingerprint()

	path := filepath.Join(t.TempDir(), "classifier.json")
	if err := SaveClassifier(path, clf); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadClassifier(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Features() != clf.Features() {
		t.Fatalf("features changed: %d != %d", loaded.Features(), clf.Features())
	}
	if loaded.VocabularyFingerprint != vec.Fingerprint() {
		t.Fatalf("fingerprint not persisted")
	}

	for _, doc := range trainDocs {
		x := vec.Transform(doc)
		want, _ := clf.Probabilities(x)
		got, err := loaded.Probabilities(x)
		if err != nil {
			t.Fatalf("probabilities: %v", err)
		}
		for i := range want {
			if want[i] != got[i] {
				t.Fatalf("probabilities differ after round trip: %v != %v", got, want)
			}
		}
	}
}
