package ai

import "context"

// Advisor suggests how to close skill gaps for a role.
// The returned map is keyed by the skill names passed in; skills without advice are omitted.
type Advisor interface {
	Advise(ctx context.Context, role string, skills []string) (map[string]string, error)
	Provider() string
	Model() string
}
