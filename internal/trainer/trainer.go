package trainer

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/spigell/skillgap/internal/dataset"
	"github.com/spigell/skillgap/internal/model"
)

const (
	defaultTestSize = 0.2
	defaultSeed     = 42

	VectorizerFile = "vectorizer.json"
	ClassifierFile = "classifier.json"
)

// Options configures a training run.
type Options struct {
	TestSize   float64                 `mapstructure:"test-size"`
	Seed       uint64                  `mapstructure:"seed"`
	Vectorizer model.VectorizerOptions `mapstructure:"vectorizer"`
	Classifier model.ClassifierOptions `mapstructure:"classifier"`
}

// DefaultOptions matches the settings the bundled artifacts are produced with.
func DefaultOptions() Options {
	return Options{
		TestSize:   defaultTestSize,
		Seed:       defaultSeed,
		Vectorizer: model.DefaultVectorizerOptions(),
		Classifier: model.DefaultClassifierOptions(),
	}
}

// Result holds the fitted artifacts and the held-out accuracy.
type Result struct {
	Vectorizer *model.Vectorizer
	Classifier *model.Classifier
	Accuracy   float64
	Train      int
	Test       int
}

// Train fits the vectorizer on every sample, then fits the classifier on the training split
// and scores it on the held-out split.
func Train(samples []dataset.Sample, opts Options, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.TestSize == 0 {
		opts.TestSize = defaultTestSize
	}

	vec, err := model.FitVectorizer(dataset.Texts(samples), opts.Vectorizer)
	if err != nil {
		return nil, fmt.Errorf("fit vectorizer: %w", err)
	}
	log.Debug("vectorizer fitted", zap.Int("samples", len(samples)), zap.Int("features", vec.Dim()))

	train, test, err := dataset.Split(samples, opts.TestSize, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("split dataset: %w", err)
	}

	clf, err := model.FitClassifier(vec.TransformAll(dataset.Texts(train)), dataset.Roles(train), opts.Classifier)
	if err != nil {
		return nil, fmt.Errorf("fit classifier: %w", err)
	}
	clf.VocabularyFingerprint = vec.Fingerprint()
	log.Debug("classifier fitted",
		zap.Int("train", len(train)),
		zap.Strings("labels", clf.Labels()),
		zap.Int("iterations", clf.Iterations),
	)

	acc, err := clf.Score(vec.TransformAll(dataset.Texts(test)), dataset.Roles(test))
	if err != nil {
		return nil, fmt.Errorf("score classifier: %w", err)
	}

	return &Result{
		Vectorizer: vec,
		Classifier: clf,
		Accuracy:   acc,
		Train:      len(train),
		Test:       len(test),
	}, nil
}

// Save writes both artifacts into dir and returns their paths.
func Save(res *Result, dir string) (vectorizerPath, classifierPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create output dir: %w", err)
	}

	vectorizerPath = filepath.Join(dir, VectorizerFile)
	classifierPath = filepath.Join(dir, ClassifierFile)

	if err := model.SaveVectorizer(vectorizerPath, res.Vectorizer); err != nil {
		return "", "", fmt.Errorf("save vectorizer: %w", err)
	}
	if err := model.SaveClassifier(classifierPath, res.Classifier); err != nil {
		return "", "", fmt.Errorf("save classifier: %w", err)
	}

	return vectorizerPath, classifierPath, nil
}
