package arch

import (
	"strings"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/canon"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/model"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/nlp"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/tagger"
	"go.uber.org/zap"
)

// ComponentExtractor mines a component diagram from one architecture
// narration. Not safe for concurrent runs; instantiate per request.
type ComponentExtractor struct {
	parser *nlp.Parser
	tag    tagger.Tagger
	log    *zap.SugaredLogger
	s      *session
}

func NewComponentExtractor(parser *nlp.Parser, tag tagger.Tagger, c *canon.Canonicalizer, log *zap.SugaredLogger) *ComponentExtractor {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if tag == nil {
		tag = tagger.Blank()
	}
	e := &ComponentExtractor{parser: parser, tag: tag, log: log}
	e.s = newSession(c)
	return e
}

// Extract runs the full component pipeline over the narration and
// returns the ordered element list. The session is reset at entry.
func (e *ComponentExtractor) Extract(narration string) []*model.Element {
	e.s = newSession(e.s.canon)

	doc, err := e.parser.Parse(narration)
	if err != nil {
		e.log.Errorw("component extraction error", "error", err)
		return e.s.list.Elements()
	}
	nlp.Overlay(doc, e.tag.Tag(narration))

	e.registerEntities(doc)
	e.fillServiceGaps(narration)
	e.minePatterns(doc, narration)
	e.mineDependencies(doc, 0)
	e.bindInterfaces(narration)

	return e.s.list.Elements()
}

// registerEntities seeds the registries from the tagger overlay
func (e *ComponentExtractor) registerEntities(doc *nlp.Doc) {
	for _, ent := range doc.Entities {
		switch ent.Label {
		case tagger.LabelComponent:
			e.s.addComponent(ent.Text, "", 0)
		case tagger.LabelExternalSystem:
			e.s.addExternal(ent.Text, 0)
		case tagger.LabelTechnology:
			e.s.technologies[key(ent.Text)] = true
			e.s.addComponent(ent.Text, "technology", 0)
		case tagger.LabelInterface:
			e.s.addInterface(ent.Text, "", 0)
		}
	}
}

// fillServiceGaps re-scans the raw text for "<X> Service" and "<X>
// API" phrases the tagger missed
func (e *ComponentExtractor) fillServiceGaps(text string) {
	for _, m := range reServicePhrase.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		canonical := e.s.canon.Normalize(canon.CategoryComponent, name)
		if canonical == "" || e.s.hasComponent(canonical) {
			continue
		}
		e.s.addComponent(name, "", 0)
	}
}

// minePatterns applies the verb-phrase table sentence by sentence so
// the database guard can inspect the surrounding sentence
func (e *ComponentExtractor) minePatterns(doc *nlp.Doc, text string) {
	for si := 0; si < doc.SentenceCount(); si++ {
		sentence := doc.SentenceText(si)
		for _, p := range relPatterns {
			for _, m := range p.re.FindAllStringSubmatch(sentence, -1) {
				e.applyPattern(doc, si, p, m)
			}
		}
	}
}

func (e *ComponentExtractor) applyPattern(doc *nlp.Doc, sentence int, p relPattern, m []string) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Errorw("pattern mining error", "pattern", p.name, "panic", r)
		}
	}()

	from := e.fuzzyEntity(m[1])
	to := e.fuzzyEntity(m[2])
	if from == "" || to == "" {
		return
	}
	e.addGuarded(doc, sentence, from, to, p.label, 0)
}

// bindInterfaces attaches providers and consumers to the registered
// interfaces from explicit exposes/calls phrasing. A mention with an
// unknown interface name registers it first.
func (e *ComponentExtractor) bindInterfaces(text string) {
	for _, m := range reProvidesInterface.FindAllStringSubmatch(text, -1) {
		comp := e.fuzzyEntity(m[1])
		if comp == "" {
			continue
		}
		e.s.addInterface(m[2], comp, 0)
	}
	for _, m := range reConsumesInterface.FindAllStringSubmatch(text, -1) {
		comp := e.fuzzyEntity(m[1])
		if comp == "" {
			continue
		}
		if data := e.s.addInterface(m[2], "", 0); data != nil {
			e.s.addInterfaceConsumer(data, comp)
		}
	}
}

// fuzzyEntity resolves a matched phrase against the known entities;
// an unmatched capitalized phrase synthesizes a new component.
func (e *ComponentExtractor) fuzzyEntity(phrase string) string {
	phrase = strings.TrimSpace(phrase)
	phrase = strings.TrimPrefix(phrase, "the ")
	phrase = strings.TrimPrefix(phrase, "The ")
	if phrase == "" {
		return ""
	}
	if name, ok := Resolve(phrase, e.s.knownNames()); ok {
		return name
	}
	if reCapitalized.MatchString(phrase) {
		return e.s.addComponent(phrase, "", 0)
	}
	return ""
}
