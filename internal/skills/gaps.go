package skills

import "strings"

// AdviceSource tells where the advice of a gap came from.
type AdviceSource string

const (
	SourceNone    AdviceSource = ""
	SourceCatalog AdviceSource = "catalog"
	SourceAI      AdviceSource = "ai"
)

// Gap is a skill missing from a resume, with optional advice.
type Gap struct {
	Skill        string       `json:"skill"`
	Advice       string       `json:"advice,omitempty"`
	AdviceSource AdviceSource `json:"advice_source,omitempty"`
}

// FindGaps returns the skills whose lowercase name is not a substring of the normalized resume.
// Matching is plain substring containment, so "java" is found inside "javascript"
// and skills with punctuation such as "node.js" never match normalized text.
// The result keeps the vocabulary order.
func FindGaps(normalizedResume string, vocabulary []string) []string {
	var missing []string
	for _, skill := range vocabulary {
		if !contains(normalizedResume, skill) {
			missing = append(missing, skill)
		}
	}
	return missing
}

// Resolve finds the gaps and attaches catalog advice where it exists.
func (c *Catalog) Resolve(normalizedResume string, vocabulary []string) []Gap {
	missing := FindGaps(normalizedResume, vocabulary)
	gaps := make([]Gap, 0, len(missing))
	for _, skill := range missing {
		gap := Gap{Skill: skill}
		if advice, ok := c.Advice(skill); ok {
			gap.Advice = advice
			gap.AdviceSource = SourceCatalog
		}
		gaps = append(gaps, gap)
	}
	return gaps
}

// Unadvised returns the skills of gaps that have no advice yet.
func Unadvised(gaps []Gap) []string {
	var out []string
	for _, g := range gaps {
		if g.Advice == "" {
			out = append(out, g.Skill)
		}
	}
	return out
}

func contains(text, skill string) bool {
	return strings.Contains(text, strings.ToLower(skill))
}
