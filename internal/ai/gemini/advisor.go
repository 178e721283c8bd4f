package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/skillgap/internal/logger"
)

const providerName = "gemini"

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Advisor asks Gemini for advice on skills the static catalog does not cover.
type Advisor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

func NewAdvisor(generator contentGenerator, log *zap.Logger, maxLogLength int) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Advisor{
		generator: generator,
		logger:    logger.WithFields(log, logger.AdvisorFields(providerName, generator.Model())...),
		maxLogLen: maxLogLength,
	}
}

func (a *Advisor) Provider() string { return providerName }

func (a *Advisor) Model() string { return a.generator.Model() }

// Advise returns advice keyed by the requested skill names. Skills the model skipped are absent.
func (a *Advisor) Advise(ctx context.Context, role string, skills []string) (map[string]string, error) {
	if len(skills) == 0 {
		return map[string]string{}, nil
	}

	prompt := buildPrompt(role, skills)

	a.logger.Debug("gemini generate content request",
		zap.String("role", role),
		zap.Int("skills", len(skills)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, a.maxLogLen)),
	)

	advice, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	return matchSkills(skills, advice), nil
}

func buildPrompt(role string, skills []string) string {
	role = strings.TrimSpace(role)
	if role == "" {
		role = "not specified"
	}

	var list strings.Builder
	for _, s := range skills {
		list.WriteString("- ")
		list.WriteString(s)
		list.WriteString("\n")
	}

	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Role: {{ROLE}}\nSkills:\n{{SKILLS}}\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{ROLE}}", role)
	prompt = strings.ReplaceAll(prompt, "{{SKILLS}}", strings.TrimRight(list.String(), "\n"))
	return prompt
}

func parseResponse(raw string) (map[string]string, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	payload, ok := data["advice"].(map[string]any)
	if !ok {
		return nil, errors.New("parse gemini response: missing advice object")
	}

	advice := make(map[string]string, len(payload))
	for skill, v := range payload {
		text := coerceString(v)
		if text == "" {
			continue
		}
		advice[strings.ToLower(strings.TrimSpace(skill))] = text
	}

	return advice, nil
}

// matchSkills maps the model's keys back onto the requested skill names, ignoring case.
func matchSkills(skills []string, advice map[string]string) map[string]string {
	out := make(map[string]string, len(skills))
	for _, s := range skills {
		if text, ok := advice[strings.ToLower(strings.TrimSpace(s))]; ok {
			out[s] = text
		}
	}
	return out
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case nil:
		return ""
	default:
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
