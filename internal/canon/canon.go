package canon

import (
	"regexp"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
)

// Canonicalizer resolves surface names to canonical names per entity
// category. The active rule set is swapped atomically on reload, so a
// Canonicalizer may be shared across runs.
type Canonicalizer struct {
	path    string
	log     *zap.SugaredLogger
	current atomic.Pointer[compiled]
}

// Load reads the normalization rule file. Missing or malformed
// configuration is an error the caller should treat as fatal.
func Load(path string, log *zap.SugaredLogger) (*Canonicalizer, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	cc, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	c := &Canonicalizer{path: path, log: log}
	c.current.Store(cc)
	return c, nil
}

// Reload re-reads the rule file and swaps the active rule set. On
// failure the previous rules stay in effect.
func (c *Canonicalizer) Reload() error {
	cc, err := loadFile(c.path)
	if err != nil {
		return err
	}
	c.current.Store(cc)
	c.log.Infow("normalization rules reloaded", "path", c.path)
	return nil
}

// Config returns the active parsed configuration
func (c *Canonicalizer) Config() *Config {
	return c.current.Load().cfg
}

// Normalize resolves a raw name for the given category:
//
//  1. fixed hand-curated table, first matching pattern wins;
//  2. config rules, longest matching span wins;
//  3. generic cleanup (articles, connectors, whitespace, title case).
func (c *Canonicalizer) Normalize(cat Category, name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}
	cc := c.current.Load()

	lower := strings.ToLower(strings.TrimSpace(name))
	for _, rule := range fixedTables[cat] {
		if rule.re.MatchString(lower) {
			return rule.canonical
		}
	}

	if cc.cfg.IsEnabled() && cc.cfg.applyPatterns() {
		rules := cc.rules[cat]
		// a name that already is a rule's canonical form stays as it
		// is; without this a canonical containing a shorter variant
		// ("Billing Platform" / "billing") would rewrite on a second
		// pass and Normalize would not be idempotent
		if canonical, ok := matchesCanonical(rules, name, cc.cfg.caseSensitive()); ok {
			return canonical
		}
		if canonical, ok := longestConfigMatch(rules, name, cc.cfg.caseSensitive()); ok {
			return canonical
		}
	}

	return c.clean(cc.cfg, name)
}

// matchesCanonical reports whether name already equals a config rule's
// canonical form for the category
func matchesCanonical(rules []configRule, name string, caseSensitive bool) (string, bool) {
	trimmed := strings.TrimSpace(name)
	for _, r := range rules {
		if caseSensitive && trimmed == r.canonical {
			return r.canonical, true
		}
		if !caseSensitive && strings.EqualFold(trimmed, r.canonical) {
			return r.canonical, true
		}
	}
	return "", false
}

// longestConfigMatch scores every matching config pattern by matched
// span length and returns the canonical name of the longest. Ties at
// the maximum length fall to the earlier (key-sorted) rule.
func longestConfigMatch(rules []configRule, name string, caseSensitive bool) (string, bool) {
	text := name
	if !caseSensitive {
		text = strings.ToLower(name)
	}
	best, bestLen := "", -1
	for _, r := range rules {
		loc := r.re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if l := loc[1] - loc[0]; l > bestLen {
			best, bestLen = r.canonical, l
		}
	}
	return best, bestLen >= 0
}

var (
	reLeadingArticle = regexp.MustCompile(`(?i)^(the|a|an)\s+`)
	reLeadingAnd     = regexp.MustCompile(`(?i)^and\s+`)
	reTrailingAnd    = regexp.MustCompile(`(?i)\s+and$`)
	reLeadingPrep    = regexp.MustCompile(`(?i)^(via|through|in|on)\s+`)
	reWhitespace     = regexp.MustCompile(`\s+`)
)

// clean is the tier-3 fallback honoring the configured policies
func (c *Canonicalizer) clean(cfg *Config, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if cfg.removeArticles() {
		text = reLeadingArticle.ReplaceAllString(text, "")
		text = reLeadingAnd.ReplaceAllString(text, "")
		text = reTrailingAnd.ReplaceAllString(text, "")
		text = reLeadingPrep.ReplaceAllString(text, "")
	}
	if cfg.normalizeWhitespace() {
		text = reWhitespace.ReplaceAllString(text, " ")
	}
	if cfg.applyTitleCase() {
		text = pyTitle(text)
	}
	return strings.TrimSpace(text)
}

// pyTitle uppercases the first letter of every alphabetic run and
// lowercases the rest, matching the casing the rule tables were
// written against.
func pyTitle(s string) string {
	var b strings.Builder
	prevAlpha := false
	for _, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		switch {
		case isAlpha && !prevAlpha:
			b.WriteRune(toUpper(r))
		case isAlpha:
			b.WriteRune(toLower(r))
		default:
			b.WriteRune(r)
		}
		prevAlpha = isAlpha
	}
	return b.String()
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 32
	}
	return r
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + 32
	}
	return r
}
