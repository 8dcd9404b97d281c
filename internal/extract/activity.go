package extract

import (
	"regexp"
	"strings"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/model"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/nlp"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/tagger"
	"go.uber.org/zap"
)

// each "want to" clause becomes one step, cut at the first comma or
// sentence boundary
var reWantToStep = regexp.MustCompile(`(?i)want to\s+(.*?)(?:,|$|\.)`)

// ActivityExtractor mines swimlane steps: one lane per story, one
// step per "want to" phrase.
type ActivityExtractor struct {
	parser *nlp.Parser
	tag    tagger.Tagger
	log    *zap.SugaredLogger
	s      *session
}

func NewActivityExtractor(parser *nlp.Parser, tag tagger.Tagger, log *zap.SugaredLogger) *ActivityExtractor {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if tag == nil {
		tag = tagger.Blank()
	}
	return &ActivityExtractor{parser: parser, tag: tag, log: log}
}

// Extract processes the batch and returns the ordered element list
func (e *ActivityExtractor) Extract(stories []Story) []*model.Element {
	e.s = newSession()
	for _, story := range stories {
		e.extractStory(story)
	}
	return e.s.list.Elements()
}

func (e *ActivityExtractor) extractStory(story Story) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Errorw("activity extraction error", "story_id", story.ID, "panic", r)
		}
	}()

	doc, err := e.parser.Parse(story.Text)
	if err != nil {
		e.log.Errorw("activity extraction error", "story_id", story.ID, "error", err)
		return
	}
	nlp.Overlay(doc, e.tag.Tag(story.Text))

	lane := "User"
	if actors := doc.EntitiesByLabel(tagger.LabelActor); len(actors) > 0 {
		lane = actors[0].Text
	}

	for _, m := range reWantToStep.FindAllStringSubmatch(story.Text, -1) {
		step := capitalize(strings.TrimSpace(m[1]))
		if step == "" {
			continue
		}
		key := lane + "\x00" + step
		e.s.list.Add(model.TypeActivityStep, key, &model.ActivityStepData{
			Lane: lane,
			Step: step,
		}, story.ID)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
