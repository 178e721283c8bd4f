package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/skillgap/internal/ai"
	"github.com/spigell/skillgap/internal/logger"
	"github.com/spigell/skillgap/internal/model"
	"github.com/spigell/skillgap/internal/preprocess"
	"github.com/spigell/skillgap/internal/similarity"
	"github.com/spigell/skillgap/internal/skills"
)

const defaultPreviewLength = 500

// ErrArtifactMismatch means the classifier was trained against a different vocabulary
// than the loaded vectorizer, even though the dimensions agree.
var ErrArtifactMismatch = errors.New("classifier was trained with a different vectorizer")

// Analyzer runs the matching pipeline. It holds read-only artifacts and is safe for concurrent use.
type Analyzer struct {
	vec     *model.Vectorizer
	clf     *model.Classifier
	catalog *skills.Catalog
	advisor ai.Advisor
	logger  *zap.Logger

	previewLen int
	now        func() time.Time
	newID      func() string
}

type Option func(*Analyzer)

// WithAdvisor enables AI advice for gaps the catalog has no advice for.
func WithAdvisor(advisor ai.Advisor) Option {
	return func(a *Analyzer) { a.advisor = advisor }
}

// WithPreviewLength sets how many runes of the resume go into the report preview.
func WithPreviewLength(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.previewLen = n
		}
	}
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

func New(vec *model.Vectorizer, clf *model.Classifier, catalog *skills.Catalog, log *zap.Logger, opts ...Option) (*Analyzer, error) {
	if vec == nil || clf == nil {
		return nil, errors.New("vectorizer and classifier are required")
	}
	if vec.Dim() != clf.Features() {
		return nil, fmt.Errorf("%w: vectorizer has %d features, classifier expects %d",
			model.ErrDimensionMismatch, vec.Dim(), clf.Features())
	}
	if fp := clf.VocabularyFingerprint; fp != "" && fp != vec.Fingerprint() {
		return nil, ErrArtifactMismatch
	}
	if catalog == nil {
		catalog = skills.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}

	a := &Analyzer{
		vec:        vec,
		clf:        clf,
		catalog:    catalog,
		logger:     log,
		previewLen: defaultPreviewLength,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// Load reads both artifacts from disk and builds an Analyzer.
func Load(vectorizerPath, classifierPath string, catalog *skills.Catalog, log *zap.Logger, opts ...Option) (*Analyzer, error) {
	vec, err := model.LoadVectorizer(vectorizerPath)
	if err != nil {
		return nil, fmt.Errorf("load vectorizer: %w", err)
	}
	clf, err := model.LoadClassifier(classifierPath)
	if err != nil {
		return nil, fmt.Errorf("load classifier: %w", err)
	}

	a, err := New(vec, clf, catalog, log, opts...)
	if err != nil {
		return nil, err
	}

	a.logger.Info("artifacts loaded", logger.ArtifactFields(vectorizerPath, classifierPath, vec.Dim())...)
	return a, nil
}

// Analyze predicts the role of the resume, scores it against the target and lists missing skills.
// An empty resume is valid input.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Report, error) {
	resume := preprocess.Normalize(req.Resume)
	resumeVec := a.vec.Transform(resume)

	predicted, err := a.clf.Predict(resumeVec)
	if err != nil {
		return nil, fmt.Errorf("predict role: %w", err)
	}

	target, err := a.resolveTarget(req, predicted)
	if err != nil {
		return nil, err
	}

	score := similarity.Score(resumeVec, a.vec.Transform(target.text))
	gaps := a.catalog.Resolve(resume, target.vocabulary)
	a.advise(ctx, target.Label, gaps)

	report := &Report{
		ID:            a.newID(),
		PredictedRole: predicted,
		Target:        target.Target,
		MatchScore:    score,
		MatchPercent:  similarity.Percent(score),
		MissingSkills: gaps,
		ResumePreview: logger.TruncateForLog(req.Resume, a.previewLen),
		CreatedAt:     a.now(),
	}

	a.logger.Info("resume analyzed", append(
		logger.ReportFields(report.ID, predicted, report.MatchPercent, len(gaps)),
		zap.String("target_kind", string(target.Kind)),
		zap.String("target", target.Label),
	)...)

	return report, nil
}

// Predict returns the role label for raw text.
func (a *Analyzer) Predict(text string) (string, error) {
	return a.clf.Predict(a.vec.Transform(preprocess.Normalize(text)))
}

// Similarity scores two raw texts in the shared feature space.
func (a *Analyzer) Similarity(x, y string) float64 {
	return similarity.Score(
		a.vec.Transform(preprocess.Normalize(x)),
		a.vec.Transform(preprocess.Normalize(y)),
	)
}

// Roles returns the catalog roles.
func (a *Analyzer) Roles() []skills.Role {
	return a.catalog.Roles()
}

// Labels returns the roles the classifier can predict.
func (a *Analyzer) Labels() []string {
	return a.clf.Labels()
}

type resolvedTarget struct {
	Target
	text       string
	vocabulary []string
}

func (a *Analyzer) resolveTarget(req Request, predicted string) (resolvedTarget, error) {
	role, known := a.catalog.Lookup(req.TargetRole)
	roleName := strings.TrimSpace(req.TargetRole)
	if known {
		roleName = role.Name
	}

	if jd := preprocess.Normalize(req.JobDescription); strings.TrimSpace(jd) != "" {
		t := resolvedTarget{Target: Target{Kind: TargetJobDescription, Label: roleName}, text: jd}

		switch {
		case known:
			t.vocabulary = a.catalog.RoleSkills(role.Name)
		default:
			t.vocabulary = a.catalog.MentionedSkills(jd)
		}

		if t.Label == "" || len(t.vocabulary) == 0 {
			jdRole, err := a.clf.Predict(a.vec.Transform(jd))
			if err != nil {
				return resolvedTarget{}, fmt.Errorf("predict job description role: %w", err)
			}
			if t.Label == "" {
				t.Label = jdRole
			}
			if len(t.vocabulary) == 0 {
				t.vocabulary = a.catalog.RoleSkills(jdRole)
			}
		}
		return t, nil
	}

	if roleName != "" {
		skillsOf := a.catalog.RoleSkills(roleName)
		return resolvedTarget{
			Target:     Target{Kind: TargetRole, Label: roleName},
			text:       roleText(roleName, skillsOf),
			vocabulary: skillsOf,
		}, nil
	}

	skillsOf := a.catalog.RoleSkills(predicted)
	return resolvedTarget{
		Target:     Target{Kind: TargetPredictedRole, Label: predicted},
		text:       roleText(predicted, skillsOf),
		vocabulary: skillsOf,
	}, nil
}

func roleText(role string, skillsOf []string) string {
	return preprocess.Normalize(role + " " + strings.Join(skillsOf, " "))
}

func (a *Analyzer) advise(ctx context.Context, role string, gaps []skills.Gap) {
	if a.advisor == nil {
		return
	}

	missing := skills.Unadvised(gaps)
	if len(missing) == 0 {
		return
	}

	advice, err := a.advisor.Advise(ctx, role, missing)
	if err != nil {
		a.logger.Warn("advisor failed, keeping gaps without advice",
			append(logger.AdvisorFields(a.advisor.Provider(), a.advisor.Model()), zap.Error(err))...)
		return
	}

	for i := range gaps {
		if gaps[i].Advice != "" {
			continue
		}
		if text, ok := advice[gaps[i].Skill]; ok && text != "" {
			gaps[i].Advice = text
			gaps[i].AdviceSource = skills.SourceAI
		}
	}
}
