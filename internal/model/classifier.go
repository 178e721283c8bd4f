package model

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/spigell/skillgap/internal/vector"
)

// ClassifierOptions tunes logistic regression training.
type ClassifierOptions struct {
	// C is the inverse L2 regularization strength.
	C            float64 `mapstructure:"c"`
	LearningRate float64 `mapstructure:"learning-rate"`
	MaxIter      int     `mapstructure:"max-iter"`
	// Tol stops training once the largest gradient component falls below it.
	Tol float64 `mapstructure:"tol"`
}

// DefaultClassifierOptions returns the training defaults.
func DefaultClassifierOptions() ClassifierOptions {
	return ClassifierOptions{C: 1.0, LearningRate: 1.0, MaxIter: 1000, Tol: 1e-4}
}

func (o ClassifierOptions) withDefaults() ClassifierOptions {
	d := DefaultClassifierOptions()
	if o.C <= 0 {
		o.C = d.C
	}
	if o.LearningRate <= 0 {
		o.LearningRate = d.LearningRate
	}
	if o.MaxIter <= 0 {
		o.MaxIter = d.MaxIter
	}
	if o.Tol <= 0 {
		o.Tol = d.Tol
	}
	return o
}

// Classifier is a multinomial logistic regression over TF-IDF vectors.
// It is immutable after fitting or loading.
type Classifier struct {
	labels   []string
	features int
	weights  [][]float64
	bias     []float64

	// VocabularyFingerprint records the vectorizer the classifier was trained against.
	VocabularyFingerprint string
	// Iterations is the number of gradient steps taken during fitting.
	Iterations int
}

// FitClassifier trains a softmax regression on X with labels y.
func FitClassifier(X []vector.Vector, y []string, opts ClassifierOptions) (*Classifier, error) {
	if len(X) == 0 {
		return nil, errors.New("cannot fit classifier on empty training set")
	}
	if len(X) != len(y) {
		return nil, fmt.Errorf("got %d samples but %d labels", len(X), len(y))
	}

	opts = opts.withDefaults()
	dim := X[0].Dim
	for i, x := range X {
		if x.Dim != dim {
			return nil, fmt.Errorf("sample %d: %w: expected %d, got %d", i, ErrDimensionMismatch, dim, x.Dim)
		}
	}

	labels := uniqueSorted(y)
	if len(labels) < 2 {
		return nil, fmt.Errorf("need at least two classes, got %d", len(labels))
	}

	classOf := make(map[string]int, len(labels))
	for i, l := range labels {
		classOf[l] = i
	}
	targets := make([]int, len(y))
	for i, l := range y {
		targets[i] = classOf[l]
	}

	k := len(labels)
	c := &Classifier{
		labels:   labels,
		features: dim,
		weights:  newMatrix(k, dim),
		bias:     make([]float64, k),
	}

	n := float64(len(X))
	gradW := newMatrix(k, dim)
	gradB := make([]float64, k)
	probs := make([]float64, k)

	for iter := 0; iter < opts.MaxIter; iter++ {
		for j := range gradW {
			clear(gradW[j])
		}
		clear(gradB)

		for i, x := range X {
			c.softmax(x, probs)
			for j := 0; j < k; j++ {
				g := probs[j]
				if j == targets[i] {
					g--
				}
				gradB[j] += g
				if g == 0 {
					continue
				}
				row := gradW[j]
				for p, idx := range x.Indices {
					row[idx] += g * x.Values[p]
				}
			}
		}

		maxGrad := 0.0
		for j := 0; j < k; j++ {
			for d := 0; d < dim; d++ {
				g := gradW[j][d]/n + c.weights[j][d]/(opts.C*n)
				c.weights[j][d] -= opts.LearningRate * g
				maxGrad = math.Max(maxGrad, math.Abs(g))
			}
			g := gradB[j] / n
			c.bias[j] -= opts.LearningRate * g
			maxGrad = math.Max(maxGrad, math.Abs(g))
		}

		c.Iterations = iter + 1
		if maxGrad < opts.Tol {
			break
		}
	}

	return c, nil
}

// Predict returns the most probable role label for v.
func (c *Classifier) Predict(v vector.Vector) (string, error) {
	if err := c.check(v); err != nil {
		return "", err
	}

	best, bestScore := 0, math.Inf(-1)
	for j := range c.labels {
		if s := c.decision(v, j); s > bestScore {
			best, bestScore = j, s
		}
	}
	return c.labels[best], nil
}

// Probabilities returns per-label probabilities in Labels order.
func (c *Classifier) Probabilities(v vector.Vector) ([]float64, error) {
	if err := c.check(v); err != nil {
		return nil, err
	}
	out := make([]float64, len(c.labels))
	c.softmax(v, out)
	return out, nil
}

// Score returns the accuracy of the classifier on X and y.
func (c *Classifier) Score(X []vector.Vector, y []string) (float64, error) {
	if len(X) != len(y) {
		return 0, fmt.Errorf("got %d samples but %d labels", len(X), len(y))
	}
	if len(X) == 0 {
		return 0, errors.New("cannot score an empty set")
	}

	correct := 0
	for i, x := range X {
		label, err := c.Predict(x)
		if err != nil {
			return 0, fmt.Errorf("sample %d: %w", i, err)
		}
		if label == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(X)), nil
}

// Labels returns the known role labels in sorted order.
func (c *Classifier) Labels() []string {
	return append([]string(nil), c.labels...)
}

// Features returns the input dimension the classifier was trained on.
func (c *Classifier) Features() int {
	return c.features
}

func (c *Classifier) check(v vector.Vector) error {
	if v.Dim != c.features {
		return fmt.Errorf("%w: classifier expects %d features, got %d", ErrDimensionMismatch, c.features, v.Dim)
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrDimensionMismatch, err)
	}
	return nil
}

func (c *Classifier) decision(v vector.Vector, class int) float64 {
	return v.DotDense(c.weights[class]) + c.bias[class]
}

func (c *Classifier) softmax(v vector.Vector, out []float64) {
	maxScore := math.Inf(-1)
	for j := range out {
		out[j] = c.decision(v, j)
		maxScore = math.Max(maxScore, out[j])
	}
	var sum float64
	for j := range out {
		out[j] = math.Exp(out[j] - maxScore)
		sum += out[j]
	}
	for j := range out {
		out[j] /= sum
	}
}

func newMatrix(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

func uniqueSorted(values []string) []string {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
