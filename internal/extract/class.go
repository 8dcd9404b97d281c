package extract

import (
	"regexp"
	"strings"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/model"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/nlp"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/tagger"
	"go.uber.org/zap"
)

var (
	reSoThat      = regexp.MustCompile(`(?i)so that`)
	reAsARole     = regexp.MustCompile(`(?i)As (?:an? )?(.*?)(?:,|$)`)
	reParenthetic = regexp.MustCompile(`\((.*?)\)`)
	reArticles    = regexp.MustCompile(`(?i)\b(my|the|a|an)\b`)
)

// ClassExtractor mines class diagram elements from user stories. One
// instance holds one run's registries; do not share across runs.
type ClassExtractor struct {
	parser *nlp.Parser
	tag    tagger.Tagger
	log    *zap.SugaredLogger
	s      *session
}

// NewClassExtractor creates a class extractor. A nil logger disables
// logging; a nil tagger runs blank.
func NewClassExtractor(parser *nlp.Parser, tag tagger.Tagger, log *zap.SugaredLogger) *ClassExtractor {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if tag == nil {
		tag = tagger.Blank()
	}
	return &ClassExtractor{parser: parser, tag: tag, log: log}
}

// Extract processes the batch and returns the ordered element list.
// A failing story is skipped and logged, never aborting the batch.
func (e *ClassExtractor) Extract(stories []Story) []*model.Element {
	e.s = newSession()
	for _, story := range stories {
		e.extractStory(story)
	}
	e.postProcess()
	return e.s.list.Elements()
}

func (e *ClassExtractor) extractStory(story Story) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Errorw("class extraction error", "story_id", story.ID, "panic", r)
		}
	}()

	doc, err := e.parseWithEntities(story.Text)
	if err != nil {
		e.log.Errorw("class extraction error", "story_id", story.ID, "error", err)
		return
	}

	// context split: "As a X, I want to Y [so that Z]"; classes come
	// mostly from the main clause, Z is background
	parts := reSoThat.Split(story.Text, 2)
	mainPart := parts[0]
	contextPart := ""
	if len(parts) > 1 {
		contextPart = parts[1]
	}

	actors := e.findActors(doc, story.Text, story.ID)
	classes := e.findClassCandidates(doc, mainPart, actors)

	mainDoc, err := e.parser.Parse(mainPart)
	if err != nil {
		e.log.Errorw("class extraction error", "story_id", story.ID, "error", err)
		return
	}

	classes = e.addFallbackClasses(mainDoc, classes, actors)
	actors = e.addInspectorFallback(mainDoc, contextPart, actors)
	classes = dropActorSubstrings(classes, actors)

	for _, actor := range actors {
		e.s.addClass(actor, "actor", story.ID)
	}
	for _, cls := range classes {
		e.s.addClass(cls, "", story.ID)
	}

	subject := e.resolveSubject(doc, mainDoc, actors)

	for _, tok := range mainDoc.Tokens {
		if tok.POS != "VERB" || ignoredVerbLemmas[strings.ToLower(tok.Lemma)] {
			continue
		}
		if subject == "" {
			continue
		}
		e.processVerb(&verbContext{
			doc:     doc,
			mainDoc: mainDoc,
			verb:    tok,
			subject: subject,
			actors:  actors,
			classes: classes,
			text:    story.Text,
			storyID: story.ID,
		})
	}
}

// parseWithEntities parses text and overlays the tagger's spans
func (e *ClassExtractor) parseWithEntities(text string) (*nlp.Doc, error) {
	doc, err := e.parser.Parse(text)
	if err != nil {
		return nil, err
	}
	nlp.Overlay(doc, e.tag.Tag(text))
	return doc, nil
}

// findActors collects actor names from tagger spans anywhere in the
// story plus the "As a <role>," regex fallback, which runs always to
// catch roles the tagger misses.
func (e *ClassExtractor) findActors(doc *nlp.Doc, text string, storyID int) []string {
	var actors []string
	for _, ent := range doc.EntitiesByLabel(tagger.LabelActor) {
		norm := normalizeName(ent.Text)
		if !containsFold(actors, norm) {
			actors = append(actors, norm)
		}
	}
	if m := reAsARole.FindStringSubmatch(text); m != nil {
		role := normalizeName(strings.TrimSpace(m[1]))
		if role != "" && !containsFold(actors, role) {
			actors = append(actors, role)
		}
	}
	return actors
}

// findClassCandidates keeps CLASS spans that pass the stop list and
// either appear in the main clause or are capitalized in the context
func (e *ClassExtractor) findClassCandidates(doc *nlp.Doc, mainPart string, actors []string) []string {
	var classes []string
	for _, ent := range doc.EntitiesByLabel(tagger.LabelClass) {
		if classStopList[strings.ToLower(ent.Text)] {
			continue
		}
		inMain := strings.Contains(mainPart, ent.Text)
		capitalized := ent.Text != "" && ent.Text[0] >= 'A' && ent.Text[0] <= 'Z'
		if inMain || capitalized {
			norm := normalizeName(ent.Text)
			if !containsFold(classes, norm) {
				classes = append(classes, norm)
			}
		}
	}
	return classes
}

// addFallbackClasses adds direct objects of main-clause verbs as class
// candidates, singularized via the lemma
func (e *ClassExtractor) addFallbackClasses(mainDoc *nlp.Doc, classes, actors []string) []string {
	for _, tok := range mainDoc.Tokens {
		if tok.Dep != "dobj" || mainDoc.Tokens[tok.Head].POS != "VERB" {
			continue
		}
		lower := strings.ToLower(tok.Text)
		if isAttributeWord(lower) {
			continue
		}
		if classStopList[lower] {
			continue
		}
		name := normalizeName(tok.Lemma)
		if !containsFold(classes, name) && !containsFold(actors, name) {
			classes = append(classes, name)
		}
	}
	return classes
}

// addInspectorFallback keeps the domain-specific Inspector catch from
// either clause when the tagger misses it
func (e *ClassExtractor) addInspectorFallback(mainDoc *nlp.Doc, contextPart string, actors []string) []string {
	found := false
	for _, tok := range mainDoc.Tokens {
		if strings.EqualFold(tok.Text, "inspector") {
			found = true
		}
	}
	if !found && contextPart != "" {
		ctxDoc, err := e.parser.Parse(contextPart)
		if err == nil {
			for _, tok := range ctxDoc.Tokens {
				if strings.EqualFold(tok.Text, "inspector") {
					found = true
				}
			}
		}
	}
	if found && !containsFold(actors, "Inspector") {
		actors = append(actors, "Inspector")
	}
	return actors
}

// dropActorSubstrings removes class candidates fully contained in a
// longer actor name ("Supervisor" inside "InspectionStaffSupervisor")
func dropActorSubstrings(classes, actors []string) []string {
	var out []string
	for _, c := range classes {
		dup := false
		for _, a := range actors {
			if strings.Contains(strings.ToLower(a), strings.ToLower(c)) && len(a) > len(c) {
				dup = true
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}

// resolveSubject maps the story's grammatical subject to an actor:
// first-person stories resolve to the first actor, otherwise an
// explicit nominal subject naming an actor wins.
func (e *ClassExtractor) resolveSubject(doc, mainDoc *nlp.Doc, actors []string) string {
	for _, tok := range doc.Tokens {
		if tok.Text == "I" || tok.Text == "i" {
			if len(actors) > 0 {
				return actors[0]
			}
			return ""
		}
	}
	for _, tok := range mainDoc.Tokens {
		if tok.Dep == "nsubj" && mainDoc.Tokens[tok.Head].POS == "VERB" {
			norm := normalizeName(tok.Text)
			if containsFold(actors, norm) {
				return norm
			}
		}
	}
	return ""
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func containsPattern(patterns []string, v string) bool {
	for _, p := range patterns {
		if p == v {
			return true
		}
	}
	return false
}

func isAttributeWord(lower string) bool {
	return containsPattern(attributePatterns, lower)
}
