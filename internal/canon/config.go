// Package canon maps raw surface names onto canonical entity names.
// Resolution runs in three tiers: a fixed hand-curated table where the
// first matching pattern wins, user-editable config rules where the
// longest matching span wins, and a generic cleaning fallback. The
// first-wins/longest-wins asymmetry between the tiers is part of the
// observed contract and must not be unified.
package canon

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category selects which rule set applies to a name
type Category string

const (
	CategoryComponent      Category = "components"
	CategoryNode           Category = "nodes"
	CategoryDevice         Category = "devices"
	CategoryEnvironment    Category = "environments"
	CategoryInterface      Category = "interfaces"
	CategoryExternalSystem Category = "external_systems"
)

// Config is the external normalization rule file. Its absence or
// malformed content is a fatal configuration error at startup:
// canonicalization correctness depends on it, and silently falling
// back would corrupt all downstream naming.
type Config struct {
	Enabled    *bool    `yaml:"enabled"`
	Strictness string   `yaml:"strictness"` // strict, moderate, minimal
	Policies   Policies `yaml:"policies"`

	ComponentRules      CategoryRules `yaml:"component_rules"`
	NodeRules           CategoryRules `yaml:"node_rules"`
	DeviceRules         CategoryRules `yaml:"device_rules"`
	EnvironmentRules    CategoryRules `yaml:"environment_rules"`
	InterfaceRules      CategoryRules `yaml:"interface_rules"`
	ExternalSystemRules CategoryRules `yaml:"external_system_rules"`

	Deduplication Deduplication `yaml:"deduplication"`
}

// Policies are global cleanup switches; unset values default to the
// permissive behavior except case sensitivity.
type Policies struct {
	RemoveArticles        *bool `yaml:"remove_articles"`
	NormalizeWhitespace   *bool `yaml:"normalize_whitespace"`
	ApplyTitleCase        *bool `yaml:"apply_title_case"`
	ApplyPatterns         *bool `yaml:"apply_patterns"`
	CaseSensitiveMatching *bool `yaml:"case_sensitive_matching"`
}

// CategoryRules define config-tier patterns for one category: a map
// from canonical key (snake_case) to the literal variants it covers.
type CategoryRules struct {
	Enabled  bool                `yaml:"enabled"`
	Patterns map[string][]string `yaml:"patterns"`
}

// Deduplication configures cross-collection entity merging
type Deduplication struct {
	Enabled         *bool                `yaml:"enabled"`
	CrossCollection CrossCollectionRules `yaml:"cross_collection"`
}

// CrossCollectionRules decide the single collection for an entity
// matching both node and device patterns
type CrossCollectionRules struct {
	Enabled *bool                 `yaml:"enabled"`
	Rules   []CrossCollectionRule `yaml:"rules"`
}

// CrossCollectionRule names a substring match and the collection that
// wins for it ("node" or "device")
type CrossCollectionRule struct {
	Name   string `yaml:"name"`
	Match  string `yaml:"match"`
	Prefer string `yaml:"prefer"`
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// IsEnabled reports whether normalization is globally enabled
func (c *Config) IsEnabled() bool { return boolOr(c.Enabled, true) }

// GetStrictness returns the strictness level, defaulting to moderate
func (c *Config) GetStrictness() string {
	if c.Strictness == "" {
		return "moderate"
	}
	return c.Strictness
}

func (c *Config) removeArticles() bool      { return boolOr(c.Policies.RemoveArticles, true) }
func (c *Config) normalizeWhitespace() bool { return boolOr(c.Policies.NormalizeWhitespace, true) }
func (c *Config) applyTitleCase() bool      { return boolOr(c.Policies.ApplyTitleCase, true) }
func (c *Config) applyPatterns() bool       { return boolOr(c.Policies.ApplyPatterns, true) }
func (c *Config) caseSensitive() bool       { return boolOr(c.Policies.CaseSensitiveMatching, false) }

// DedupEnabled reports whether deduplication is enabled
func (c *Config) DedupEnabled() bool { return boolOr(c.Deduplication.Enabled, true) }

// CrossCollectionEnabled reports whether cross-collection dedup is on
func (c *Config) CrossCollectionEnabled() bool {
	return c.DedupEnabled() && boolOr(c.Deduplication.CrossCollection.Enabled, true)
}

// CrossCollectionRules returns the configured preference rules
func (c *Config) CrossCollectionRules() []CrossCollectionRule {
	if !c.CrossCollectionEnabled() {
		return nil
	}
	return c.Deduplication.CrossCollection.Rules
}

func (c *Config) rulesFor(cat Category) *CategoryRules {
	switch cat {
	case CategoryComponent:
		return &c.ComponentRules
	case CategoryNode:
		return &c.NodeRules
	case CategoryDevice:
		return &c.DeviceRules
	case CategoryEnvironment:
		return &c.EnvironmentRules
	case CategoryInterface:
		return &c.InterfaceRules
	case CategoryExternalSystem:
		return &c.ExternalSystemRules
	}
	return nil
}

// configRule is one compiled config-tier pattern
type configRule struct {
	re        *regexp.Regexp
	canonical string
}

// compiled holds a parsed config plus its pre-compiled pattern cache
type compiled struct {
	cfg   *Config
	rules map[Category][]configRule
}

// loadFile reads and compiles the rule file. Any failure here is
// fatal to the caller.
func loadFile(path string) (*compiled, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("normalization config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("normalization config %s: %w", path, err)
	}

	cc := &compiled{cfg: &cfg, rules: make(map[Category][]configRule)}
	if !cfg.IsEnabled() {
		return cc, nil
	}
	for _, cat := range []Category{
		CategoryComponent, CategoryNode, CategoryDevice,
		CategoryEnvironment, CategoryInterface, CategoryExternalSystem,
	} {
		rules, err := compileCategory(&cfg, cat)
		if err != nil {
			return nil, err
		}
		cc.rules[cat] = rules
	}
	return cc, nil
}

// compileCategory builds the pattern cache for one category. Keys are
// sorted so ties between equal-length matches break deterministically.
func compileCategory(cfg *Config, cat Category) ([]configRule, error) {
	cr := cfg.rulesFor(cat)
	if cr == nil || !cr.Enabled {
		return nil, nil
	}
	keys := make([]string, 0, len(cr.Patterns))
	for k := range cr.Patterns {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var rules []configRule
	for _, key := range keys {
		variants := cr.Patterns[key]
		if len(variants) == 0 {
			continue
		}
		escaped := make([]string, len(variants))
		for i, v := range variants {
			escaped[i] = regexp.QuoteMeta(strings.ToLower(v))
		}
		expr := `\b(?:` + strings.Join(escaped, "|") + `)\b`
		if !cfg.caseSensitive() {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("normalization config: category %s key %s: %w", cat, key, err)
		}
		rules = append(rules, configRule{re: re, canonical: canonicalFromKey(cat, key)})
	}
	return rules, nil
}

// canonicalFromKey turns a snake_case config key into a display name.
// Known brands and acronym-style environment keys keep their casing.
func canonicalFromKey(cat Category, key string) string {
	switch key {
	case "stripe", "paypal", "twilio", "sendgrid":
		return pyTitle(key)
	case "aws_s3":
		return "AWS S3"
	case "aws_lambda":
		return "AWS Lambda"
	}
	if cat == CategoryEnvironment && !strings.Contains(key, "_") {
		return strings.ToUpper(key)
	}
	return pyTitle(strings.ReplaceAll(key, "_", " "))
}
