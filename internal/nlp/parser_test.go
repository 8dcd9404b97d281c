package nlp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, text string) *Doc {
	t.Helper()
	doc, err := NewParser(nil).Parse(text)
	require.NoError(t, err)
	return doc
}

func findToken(t *testing.T, doc *Doc, text string) Token {
	t.Helper()
	for _, tok := range doc.Tokens {
		if tok.Text == text {
			return tok
		}
	}
	t.Fatalf("token %q not found", text)
	return Token{}
}

func TestParseAnnotatesCoreDependencies(t *testing.T) {
	doc := parse(t, "The customer sends a message to the server.")

	verb := findToken(t, doc, "sends")
	assert.Equal(t, "VERB", verb.POS)
	assert.Equal(t, "send", verb.Lemma)
	assert.Equal(t, "ROOT", verb.Dep)

	subj := findToken(t, doc, "customer")
	assert.Equal(t, "nsubj", subj.Dep)
	assert.Equal(t, verb.Index, subj.Head)

	obj := findToken(t, doc, "message")
	assert.Equal(t, "dobj", obj.Dep)
	assert.Equal(t, verb.Index, obj.Head)

	prep := findToken(t, doc, "to")
	assert.Equal(t, "prep", prep.Dep)
	assert.Equal(t, verb.Index, prep.Head)

	pobj := findToken(t, doc, "server")
	assert.Equal(t, "pobj", pobj.Dep)
	assert.Equal(t, prep.Index, pobj.Head)

	assert.Equal(t, 1, doc.SentenceCount())
}

func TestParseSplitsSentences(t *testing.T) {
	doc := parse(t, "The job runs nightly. The report is emailed.")
	assert.Equal(t, 2, doc.SentenceCount())
	assert.Equal(t, "The job runs nightly.", doc.SentenceText(0))
	assert.Equal(t, "The report is emailed.", doc.SentenceText(1))
}

func TestParseLemmatizesPluralObjects(t *testing.T) {
	doc := parse(t, "The manager reviews invoices.")
	obj := findToken(t, doc, "invoices")
	assert.Equal(t, "invoice", obj.Lemma)
}

func TestCompoundName(t *testing.T) {
	doc := parse(t, "The Payment Service handles billing.")
	head := findToken(t, doc, "Service")
	compound := findToken(t, doc, "Payment")

	assert.Equal(t, "compound", compound.Dep)
	assert.Equal(t, head.Index, compound.Head)
	assert.True(t, strings.EqualFold("payment service", doc.CompoundName(head.Index)),
		"got %q", doc.CompoundName(head.Index))
}

func TestOverlayAlignsSpansToTokens(t *testing.T) {
	text := "The Customer pays the Payment Service."
	doc := parse(t, text)

	custStart := strings.Index(text, "Customer")
	svcStart := strings.Index(text, "Payment Service")
	Overlay(doc, []Span{
		{Start: custStart, End: custStart + len("Customer"), Label: "ACTOR"},
		{Start: svcStart, End: svcStart + len("Payment Service"), Label: "COMPONENT"},
	})

	require.Len(t, doc.Entities, 2)
	assert.Equal(t, "Customer", doc.Entities[0].Text)
	assert.Equal(t, "ACTOR", doc.Entities[0].Label)
	assert.Equal(t, doc.Entities[0].FirstToken, doc.Entities[0].LastToken)

	svc := doc.Entities[1]
	assert.Equal(t, "Payment Service", svc.Text)
	assert.Equal(t, svc.FirstToken+1, svc.LastToken)

	actors := doc.EntitiesByLabel("ACTOR")
	require.Len(t, actors, 1)
	assert.Equal(t, "Customer", actors[0].Text)
}

func TestOverlayDropsMisalignedSpanOnly(t *testing.T) {
	text := "The Customer pays."
	doc := parse(t, text)

	start := strings.Index(text, "Customer")
	Overlay(doc, []Span{
		{Start: start, End: start + 4, Label: "ACTOR"}, // ends mid-token
		{Start: start, End: start + len("Customer"), Label: "ACTOR"},
	})

	require.Len(t, doc.Entities, 1)
	assert.Equal(t, "Customer", doc.Entities[0].Text)
}
