package extract

import (
	"regexp"
	"strings"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/model"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/nlp"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/tagger"
	"go.uber.org/zap"
)

var reWantToSplit = regexp.MustCompile(`(?i)want to`)

// SequenceExtractor mines one message per story: the first two tagged
// participants exchange the action phrase.
type SequenceExtractor struct {
	parser *nlp.Parser
	tag    tagger.Tagger
	log    *zap.SugaredLogger
	s      *session
}

func NewSequenceExtractor(parser *nlp.Parser, tag tagger.Tagger, log *zap.SugaredLogger) *SequenceExtractor {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if tag == nil {
		tag = tagger.Blank()
	}
	return &SequenceExtractor{parser: parser, tag: tag, log: log}
}

// Extract processes the batch and returns the ordered element list
func (e *SequenceExtractor) Extract(stories []Story) []*model.Element {
	e.s = newSession()
	for _, story := range stories {
		e.extractStory(story)
	}
	return e.s.list.Elements()
}

func (e *SequenceExtractor) extractStory(story Story) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Errorw("sequence extraction error", "story_id", story.ID, "panic", r)
		}
	}()

	doc, err := e.parser.Parse(story.Text)
	if err != nil {
		e.log.Errorw("sequence extraction error", "story_id", story.ID, "error", err)
		return
	}
	nlp.Overlay(doc, e.tag.Tag(story.Text))

	sender, receiver := "User", "System"
	participants := doc.EntitiesByLabel(tagger.LabelActor, tagger.LabelClass)
	if len(participants) > 0 {
		sender = participants[0].Text
		if len(participants) > 1 {
			receiver = participants[1].Text
		}
	}

	message := "process request"
	if parts := reWantToSplit.Split(story.Text, 2); len(parts) > 1 {
		m := parts[1]
		if i := strings.IndexAny(m, ".,"); i >= 0 {
			m = m[:i]
		}
		m = strings.TrimSpace(m)
		if m != "" {
			message = m
		}
	}

	key := sender + "\x00" + receiver + "\x00" + message
	e.s.list.Add(model.TypeSequenceMessage, key, &model.SequenceMessageData{
		Sender:   sender,
		Receiver: receiver,
		Message:  message,
	}, story.ID)
}
