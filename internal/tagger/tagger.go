// Package tagger provides the trained entity tagger consumed by the
// extractors. The "model" is a lexicon of labeled phrases produced by
// the offline training pipeline and stored as a SQLite artifact; at
// inference time it is matched against raw text, longest phrase first.
package tagger

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/nlp"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/storage"
	"go.uber.org/zap"
)

// Labels the tagger may emit.
const (
	LabelActor          = "ACTOR"
	LabelClass          = "CLASS"
	LabelMethod         = "METHOD"
	LabelAttribute      = "ATTRIBUTE"
	LabelUseCase        = "USE_CASE"
	LabelRelationship   = "RELATIONSHIP"
	LabelComponent      = "COMPONENT"
	LabelExternalSystem = "EXTERNAL_SYSTEM"
	LabelInterface      = "INTERFACE"
	LabelNode           = "NODE"
	LabelDevice         = "DEVICE"
	LabelEnvironment    = "ENVIRONMENT"
	LabelArtifact       = "ARTIFACT"
	LabelTechnology     = "TECHNOLOGY"
)

// Tagger maps raw text to labeled character spans
type Tagger interface {
	Tag(text string) []nlp.Span
}

type entry struct {
	label string
	re    *regexp.Regexp
}

// Gazetteer is a lexicon-backed tagger. Entries are matched case-
// insensitively on word boundaries; entries loaded earlier (longer
// phrases) shadow overlapping later ones.
type Gazetteer struct {
	entries []entry
}

// Blank returns a tagger that emits no spans. The engine degrades to
// its regex fallbacks when running blank.
func Blank() *Gazetteer {
	return &Gazetteer{}
}

// Load opens the model artifact at path. A missing artifact is a
// warning, not an error: extraction continues with a blank tagger at
// reduced recall.
func Load(path string, log *zap.SugaredLogger) (*Gazetteer, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if _, err := os.Stat(path); err != nil {
		log.Warnw("tagger model not found, using blank tagger", "path", path)
		return Blank(), nil
	}
	db, err := storage.Open(path)
	if err != nil {
		log.Warnw("tagger model unreadable, using blank tagger", "path", path, "error", err)
		return Blank(), nil
	}
	defer db.Close()

	phrases, err := db.Phrases()
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	return FromPhrases(phrases)
}

// FromPhrases builds a gazetteer from lexicon entries. Entries must
// already be ordered longest phrase first (storage.Phrases does this).
func FromPhrases(phrases []storage.Phrase) (*Gazetteer, error) {
	g := &Gazetteer{}
	for _, p := range phrases {
		text := strings.TrimSpace(p.Phrase)
		if text == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(text) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("lexicon phrase %q: %w", p.Phrase, err)
		}
		g.entries = append(g.entries, entry{label: p.Label, re: re})
	}
	return g, nil
}

// Tag returns labeled spans for every lexicon match in text. A match
// overlapping an earlier (longer) match is skipped.
func (g *Gazetteer) Tag(text string) []nlp.Span {
	var spans []nlp.Span
	for _, e := range g.entries {
		for _, loc := range e.re.FindAllStringIndex(text, -1) {
			if overlapsAny(spans, loc[0], loc[1]) {
				continue
			}
			spans = append(spans, nlp.Span{Start: loc[0], End: loc[1], Label: e.label})
		}
	}
	sortSpans(spans)
	return spans
}

func overlapsAny(spans []nlp.Span, start, end int) bool {
	for _, s := range spans {
		if s.Start < end && start < s.End {
			return true
		}
	}
	return false
}

func sortSpans(spans []nlp.Span) {
	for i := 1; i < len(spans); i++ {
		for j := i; j > 0 && spans[j-1].Start > spans[j].Start; j-- {
			spans[j-1], spans[j] = spans[j], spans[j-1]
		}
	}
}
