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
	// the goal phrase is captured whole; cleanUseCaseName strips
	// parentheticals before it cuts at clause or sentence boundaries,
	// so a comma inside a parenthetical never truncates the name
	reWantToGoal = regexp.MustCompile(`(?i)want to\s+(.+)`)
	// purpose and qualifier clauses truncate the use case name
	reUseCaseCut = regexp.MustCompile(`(?i)\s+(?:so that|in order to|when|using|because)\b.*$`)
)

// UseCaseExtractor mines use cases and actor links from user stories
type UseCaseExtractor struct {
	parser *nlp.Parser
	tag    tagger.Tagger
	log    *zap.SugaredLogger
	s      *session
}

func NewUseCaseExtractor(parser *nlp.Parser, tag tagger.Tagger, log *zap.SugaredLogger) *UseCaseExtractor {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if tag == nil {
		tag = tagger.Blank()
	}
	return &UseCaseExtractor{parser: parser, tag: tag, log: log}
}

// Extract processes the batch and returns the ordered element list
func (e *UseCaseExtractor) Extract(stories []Story) []*model.Element {
	e.s = newSession()
	for _, story := range stories {
		e.extractStory(story)
	}
	return e.s.list.Elements()
}

func (e *UseCaseExtractor) extractStory(story Story) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Errorw("use case extraction error", "story_id", story.ID, "panic", r)
		}
	}()

	doc, err := e.parser.Parse(story.Text)
	if err != nil {
		e.log.Errorw("use case extraction error", "story_id", story.ID, "error", err)
		return
	}
	nlp.Overlay(doc, e.tag.Tag(story.Text))

	var actors []string
	for _, ent := range doc.EntitiesByLabel(tagger.LabelActor) {
		actors = append(actors, ent.Text)
		e.s.addClass(ent.Text, "actor", story.ID)
	}
	// the role phrase catches actors the tagger missed
	if m := reAsARole.FindStringSubmatch(story.Text); m != nil {
		role := strings.TrimSpace(m[1])
		if role != "" && !containsFold(actors, role) {
			actors = append(actors, role)
			e.s.addClass(role, "actor", story.ID)
		}
	}

	m := reWantToGoal.FindStringSubmatch(story.Text)
	if m == nil {
		return
	}
	name := cleanUseCaseName(m[1])
	if name == "" {
		return
	}

	e.s.list.Add(model.TypeUseCase, name, &model.UseCaseData{Name: name}, story.ID)
	for _, actor := range actors {
		e.s.addRelationship(actor, name, model.ActorLink, story.ID)
	}

	e.linkSecondaryActors(story, name, actors)
}

// linkSecondaryActors scans the raw text for common role words that
// are not already linked as primary actors
func (e *UseCaseExtractor) linkSecondaryActors(story Story, useCase string, primaries []string) {
	low := strings.ToLower(story.Text)
	for _, role := range commonActorVocabulary {
		if !strings.Contains(low, role) {
			continue
		}
		substringOfPrimary := false
		for _, p := range primaries {
			if strings.Contains(strings.ToLower(p), role) {
				substringOfPrimary = true
				break
			}
		}
		if substringOfPrimary {
			continue
		}
		e.s.addClass(role, "actor", story.ID)
		e.s.addRelationship(role, useCase, model.ActorLink, story.ID)
	}
}

// cleanUseCaseName strips parentheticals, cuts purpose clauses, stops
// at sentence punctuation and title-cases the remainder
func cleanUseCaseName(raw string) string {
	name := reParenthetic.ReplaceAllString(raw, "")
	name = reUseCaseCut.ReplaceAllString(name, "")
	if i := strings.IndexAny(name, ".,"); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(collapseSpaces(name))
	return titleWords(name)
}
