package skills

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Role is a job role with the skills it is expected to cover.
type Role struct {
	Name   string   `mapstructure:"name" json:"name"`
	Skills []string `mapstructure:"skills" json:"skills"`
}

// Entry pairs a skill with its remediation advice.
type Entry struct {
	Name   string `mapstructure:"skill" json:"skill"`
	Advice string `mapstructure:"advice" json:"advice"`
}

// Catalog is the ordered list of known roles plus static advice keyed by lowercase skill name.
// It is read-only after construction.
type Catalog struct {
	roles  []Role
	advice map[string]string
}

// config is the shape accepted by Decode.
type config struct {
	Roles  []Role  `mapstructure:"roles"`
	Advice []Entry `mapstructure:"advice"`
}

// NewCatalog builds a catalog. Advice keys are lowercased.
func NewCatalog(roles []Role, advice map[string]string) (*Catalog, error) {
	seen := make(map[string]struct{}, len(roles))
	copied := make([]Role, 0, len(roles))

	for _, r := range roles {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, fmt.Errorf("role without name")
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("duplicate role %q", name)
		}
		seen[key] = struct{}{}
		copied = append(copied, Role{Name: name, Skills: append([]string(nil), r.Skills...)})
	}

	lowered := make(map[string]string, len(advice))
	for skill, text := range advice {
		lowered[strings.ToLower(strings.TrimSpace(skill))] = text
	}

	return &Catalog{roles: copied, advice: lowered}, nil
}

// Decode builds a catalog from a loosely typed config tree, such as a viper sub-tree.
// Unknown keys are rejected. When no roles are given, the default roles are used,
// and default advice fills skills missing from the supplied advice.
func Decode(raw any) (*Catalog, error) {
	var cfg config

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("create catalog decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if len(cfg.Roles) == 0 {
		cfg.Roles = defaultRoles
	}

	advice := make(map[string]string, len(defaultAdvice)+len(cfg.Advice))
	for k, v := range defaultAdvice {
		advice[k] = v
	}
	for _, e := range cfg.Advice {
		skill := strings.TrimSpace(e.Name)
		if skill == "" {
			return nil, fmt.Errorf("advice entry without skill")
		}
		advice[strings.ToLower(skill)] = e.Advice
	}

	return NewCatalog(cfg.Roles, advice)
}

// Roles returns the catalog roles in order.
func (c *Catalog) Roles() []Role {
	out := make([]Role, len(c.roles))
	for i, r := range c.roles {
		out[i] = Role{Name: r.Name, Skills: append([]string(nil), r.Skills...)}
	}
	return out
}

// Lookup finds a role by name, ignoring case and surrounding spaces.
func (c *Catalog) Lookup(name string) (Role, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, r := range c.roles {
		if strings.ToLower(r.Name) == key {
			return r, true
		}
	}
	return Role{}, false
}

// RoleSkills returns the skills of the named role, or nil for an unknown role.
func (c *Catalog) RoleSkills(name string) []string {
	r, ok := c.Lookup(name)
	if !ok {
		return nil
	}
	return append([]string(nil), r.Skills...)
}

// Advice returns the static advice for a skill.
func (c *Catalog) Advice(skill string) (string, bool) {
	text, ok := c.advice[strings.ToLower(skill)]
	return text, ok && text != ""
}

// AllSkills returns every catalog skill once, in role then skill order.
func (c *Catalog) AllSkills() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, r := range c.roles {
		for _, s := range r.Skills {
			key := strings.ToLower(s)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// MentionedSkills returns catalog skills that occur in the normalized text,
// using the same substring test as FindGaps.
func (c *Catalog) MentionedSkills(normalized string) []string {
	var out []string
	for _, s := range c.AllSkills() {
		if contains(normalized, s) {
			out = append(out, s)
		}
	}
	return out
}
