package model

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/spigell/skillgap/internal/vector"
)

const defaultMaxFeatures = 5000

var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// VectorizerOptions controls vocabulary selection during fitting.
type VectorizerOptions struct {
	// MaxFeatures keeps only the most frequent terms. Zero means the default.
	MaxFeatures int `mapstructure:"max-features"`
	// StopWords drops common English words from the vocabulary.
	StopWords bool `mapstructure:"stop-words"`
}

// DefaultVectorizerOptions mirrors the settings the artifacts are trained with by default.
func DefaultVectorizerOptions() VectorizerOptions {
	return VectorizerOptions{MaxFeatures: defaultMaxFeatures, StopWords: true}
}

// Vectorizer maps text onto TF-IDF weighted vectors over a fixed vocabulary.
// It is immutable after fitting or loading.
type Vectorizer struct {
	terms     []string
	index     map[string]int
	idf       []float64
	stopWords bool
}

// FitVectorizer learns the vocabulary and inverse document frequencies from docs.
func FitVectorizer(docs []string, opts VectorizerOptions) (*Vectorizer, error) {
	if len(docs) == 0 {
		return nil, errors.New("cannot fit vectorizer on empty corpus")
	}

	maxFeatures := opts.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = defaultMaxFeatures
	}

	termFreq := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range tokenize(doc, opts.StopWords) {
			termFreq[tok]++
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				docFreq[tok]++
			}
		}
	}

	if len(termFreq) == 0 {
		return nil, errors.New("empty vocabulary; documents contain only stop words or no tokens")
	}

	terms := make([]string, 0, len(termFreq))
	for term := range termFreq {
		terms = append(terms, term)
	}

	if len(terms) > maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if termFreq[terms[i]] != termFreq[terms[j]] {
				return termFreq[terms[i]] > termFreq[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(docs))
	idf := make([]float64, len(terms))
	for i, term := range terms {
		idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	return newVectorizer(terms, idf, opts.StopWords)
}

func newVectorizer(terms []string, idf []float64, stopWords bool) (*Vectorizer, error) {
	if len(terms) != len(idf) {
		return nil, fmt.Errorf("vocabulary has %d terms but %d idf weights", len(terms), len(idf))
	}

	index := make(map[string]int, len(terms))
	for i, term := range terms {
		if _, dup := index[term]; dup {
			return nil, fmt.Errorf("duplicate vocabulary term %q", term)
		}
		index[term] = i
	}

	return &Vectorizer{terms: terms, index: index, idf: idf, stopWords: stopWords}, nil
}

// Transform converts text into an L2-normalized TF-IDF vector.
// Tokens outside the vocabulary are ignored.
func (v *Vectorizer) Transform(text string) vector.Vector {
	counts := make(map[int]float64)
	for _, tok := range tokenize(text, v.stopWords) {
		if idx, ok := v.index[tok]; ok {
			counts[idx]++
		}
	}

	out := vector.Vector{Dim: len(v.terms)}
	if len(counts) == 0 {
		return out
	}

	out.Indices = make([]int, 0, len(counts))
	for idx := range counts {
		out.Indices = append(out.Indices, idx)
	}
	sort.Ints(out.Indices)

	out.Values = make([]float64, len(out.Indices))
	for i, idx := range out.Indices {
		out.Values[i] = counts[idx] * v.idf[idx]
	}

	return out.Normalized()
}

// TransformAll vectorizes every document.
func (v *Vectorizer) TransformAll(docs []string) []vector.Vector {
	out := make([]vector.Vector, len(docs))
	for i, doc := range docs {
		out[i] = v.Transform(doc)
	}
	return out
}

// Dim returns the vocabulary size.
func (v *Vectorizer) Dim() int {
	return len(v.terms)
}

// Vocabulary returns a copy of the terms in index order.
func (v *Vectorizer) Vocabulary() []string {
	return append([]string(nil), v.terms...)
}

// IDF returns the weight of a term and whether it is known.
func (v *Vectorizer) IDF(term string) (float64, bool) {
	idx, ok := v.index[term]
	if !ok {
		return 0, false
	}
	return v.idf[idx], true
}

// Fingerprint identifies the vocabulary so that a classifier can be matched to it.
func (v *Vectorizer) Fingerprint() string {
	h := sha256.New()
	for _, term := range v.terms {
		h.Write([]byte(term))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

func tokenize(text string, stopWords bool) []string {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if !stopWords {
		return tokens
	}

	kept := tokens[:0]
	for _, tok := range tokens {
		if _, stop := englishStopWords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}
