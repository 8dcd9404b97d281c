package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/model"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/nlp"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/storage"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/tagger"
)

func messages(els []*model.Element) []*model.SequenceMessageData {
	var out []*model.SequenceMessageData
	for _, el := range els {
		if el.Type == model.TypeSequenceMessage {
			out = append(out, el.Data.(*model.SequenceMessageData))
		}
	}
	return out
}

func TestSequenceExtractorDefaultsToUserAndSystem(t *testing.T) {
	e := NewSequenceExtractor(nlp.NewParser(nil), nil, nil)

	els := e.Extract([]Story{
		{ID: 1, Text: "As a User, I want to export reports, so that I can share them."},
	})

	msgs := messages(els)
	require.Len(t, msgs, 1)
	assert.Equal(t, "User", msgs[0].Sender)
	assert.Equal(t, "System", msgs[0].Receiver)
	assert.Equal(t, "export reports", msgs[0].Message)
}

func TestSequenceExtractorUsesTaggedParticipants(t *testing.T) {
	tag, err := tagger.FromPhrases([]storage.Phrase{
		{Label: tagger.LabelActor, Phrase: "analyst"},
		{Label: tagger.LabelClass, Phrase: "dashboard"},
	})
	require.NoError(t, err)
	e := NewSequenceExtractor(nlp.NewParser(nil), tag, nil)

	els := e.Extract([]Story{
		{ID: 1, Text: "As an Analyst, I want to open the Dashboard."},
	})

	msgs := messages(els)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Analyst", msgs[0].Sender)
	assert.Equal(t, "Dashboard", msgs[0].Receiver)
	assert.Equal(t, "open the Dashboard", msgs[0].Message)
}

func TestSequenceExtractorFallbackMessage(t *testing.T) {
	e := NewSequenceExtractor(nlp.NewParser(nil), nil, nil)

	els := e.Extract([]Story{{ID: 1, Text: "The cache is warmed on boot."}})

	msgs := messages(els)
	require.Len(t, msgs, 1)
	assert.Equal(t, "process request", msgs[0].Message)
}

func TestSequenceExtractorDeduplicatesIdenticalMessages(t *testing.T) {
	e := NewSequenceExtractor(nlp.NewParser(nil), nil, nil)

	els := e.Extract([]Story{
		{ID: 1, Text: "As a User, I want to export reports."},
		{ID: 2, Text: "As a User, I want to export reports."},
	})

	assert.Len(t, messages(els), 1)
}
