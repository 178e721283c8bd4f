package model

import (
	"math"
	"path/filepath"
	"reflect"
	"testing"
)

var toyCorpus = []string{
	"python django flask apis backend services",
	"python pandas statistics machine learning models",
	"html css javascript react frontend pages",
	"java spring boot hibernate backend",
}

func TestFitVectorizerVocabulary(t *testing.T) {
	t.Parallel()

	v, err := FitVectorizer([]string{"the python and the sql", "python is great"}, DefaultVectorizerOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"great", "python", "sql"}
	if got := v.Vocabulary(); !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected vocabulary %v, got %v", expected, got)
	}
	if v.Dim() != 3 {
		t.Fatalf("expected dim 3, got %d", v.Dim())
	}

	// python appears in both documents, so it gets the minimum idf of 1.
	idf, ok := v.IDF("python")
	if !ok || math.Abs(idf-1) > 1e-12 {
		t.Fatalf("unexpected python idf %v (known=%v)", idf, ok)
	}
	sqlIDF, _ := v.IDF("sql")
	if want := math.Log(3.0/2.0) + 1; math.Abs(sqlIDF-want) > 1e-12 {
		t.Fatalf("expected sql idf %v, got %v", want, sqlIDF)
	}
}

func TestFitVectorizerMaxFeatures(t *testing.T) {
	t.Parallel()

	docs := []string{"go go go rust rust zig", "go rust", "java"}
	v, err := FitVectorizer(docs, VectorizerOptions{MaxFeatures: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"go", "rust"}
	if got := v.Vocabulary(); !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected vocabulary %v, got %v", expected, got)
	}
}

func TestFitVectorizerErrors(t *testing.T) {
	t.Parallel()

	if _, err := FitVectorizer(nil, DefaultVectorizerOptions()); err == nil {
		t.Fatalf("expected error for empty corpus")
	}
	if _, err := FitVectorizer([]string{"the and of", "a"}, DefaultVectorizerOptions()); err == nil {
		t.Fatalf("expected error for stop-word only corpus")
	}
}

func TestTransform(t *testing.T) {
	t.Parallel()

	v, err := FitVectorizer(toyCorpus, DefaultVectorizerOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vec := v.Transform("python python kubernetes")
	if vec.Dim != v.Dim() {
		t.Fatalf("expected dim %d, got %d", v.Dim(), vec.Dim)
	}
	if vec.NNZ() != 1 {
		t.Fatalf("unknown tokens must be ignored, got %d entries", vec.NNZ())
	}
	if math.Abs(vec.Norm()-1) > 1e-12 {
		t.Fatalf("expected unit norm, got %v", vec.Norm())
	}
	if err := vec.Validate(); err != nil {
		t.Fatalf("invalid vector: %v", err)
	}

	empty := v.Transform("")
	if !empty.IsZero() || empty.Dim != v.Dim() {
		t.Fatalf("expected zero vector of dim %d, got %+v", v.Dim(), empty)
	}

	again := v.Transform("python python kubernetes")
	if !reflect.DeepEqual(vec, again) {
		t.Fatalf("transform must be deterministic")
	}
}

func TestVectorizerRoundTrip(t *testing.T) {
	t.Parallel()

	v, err := FitVectorizer(toyCorpus, DefaultVectorizerOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "vectorizer.json")
	if err := SaveVectorizer(path, v); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadVectorizer(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Fingerprint() != v.Fingerprint() {
		t.Fatalf("fingerprint changed after round trip")
	}

	doc := "react javascript frontend with python"
	if !reflect.DeepEqual(loaded.Transform(doc), v.Transform(doc)) {
		t.Fatalf("loaded vectorizer transforms differently")
	}
}

func TestLoadVectorizerWrongKind(t *testing.T) {
	t.Parallel()

	vec, err := FitVectorizer(toyCorpus, DefaultVectorizerOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	X := vec.TransformAll(toyCorpus)
	clf, err := FitClassifier(X, []string{"py", "ds", "web", "java"}, ClassifierOptions{MaxIter: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "classifier.json")
	if err := SaveClassifier(path, clf); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := LoadVectorizer(path); err == nil {
		t.Fatalf("expected kind error")
	}
	if _, err := LoadVectorizer(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
