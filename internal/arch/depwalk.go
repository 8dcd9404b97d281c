package arch

import (
	"strings"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/nlp"
)

// interactionVerbs restrict the dependency walk to verbs that express
// an architectural relation
var interactionVerbs = map[string]bool{
	"communicate": true, "interact": true, "connect": true, "send": true,
	"use": true, "access": true, "integrate": true, "call": true,
	"require": true, "consume": true, "provide": true, "expose": true,
	"consist": true, "write": true, "publish": true, "subscribe": true,
	"store": true,
}

// verbLabels map an interaction verb lemma to the emitted edge label
var verbLabels = map[string]string{
	"communicate": "communicates with",
	"interact":    "communicates with",
	"connect":     "connects to",
	"send":        "sends to",
	"store":       "stores in",
	"write":       "writes to",
	"access":      "accesses",
	"call":        "calls",
	"require":     "depends on",
	"consume":     "consumes",
	"provide":     "provides",
	"expose":      "exposes",
	"publish":     "publishes to",
	"subscribe":   "subscribes to",
	"integrate":   "integrates with",
	"consist":     "consists of",
}

func verbLabel(lemma string) string {
	if l, ok := verbLabels[lemma]; ok {
		return l
	}
	return "uses"
}

// mineDependencies walks the parsed narration sentence by sentence,
// turning interaction verbs into labeled edges between resolved
// entities. Unresolved proper-noun endpoints become new components;
// preposition chains after the object add one hop per link.
func (e *ComponentExtractor) mineDependencies(doc *nlp.Doc, srcID int) {
	for _, tok := range doc.Tokens {
		if tok.POS != "VERB" || !interactionVerbs[strings.ToLower(tok.Lemma)] {
			continue
		}

		subject := e.resolveEndpoint(doc, subjectOf(doc, tok.Index), srcID)
		if subject == "" {
			continue
		}

		label := verbLabel(strings.ToLower(tok.Lemma))
		for _, objIdx := range objectsOf(doc, tok.Index) {
			target := e.resolveEndpoint(doc, objIdx, srcID)
			if target == "" {
				continue
			}
			e.addGuarded(doc, tok.Sentence, subject, target, label, srcID)
			e.followPrepChain(doc, objIdx, target, srcID)
		}
	}
}

// subjectOf returns the verb's nominal subject token index, or -1
func subjectOf(doc *nlp.Doc, verbIdx int) int {
	for _, ci := range doc.Children(verbIdx) {
		if doc.Tokens[ci].Dep == "nsubj" {
			return ci
		}
	}
	return -1
}

// objectsOf collects direct objects and first-level prepositional
// objects of the verb
func objectsOf(doc *nlp.Doc, verbIdx int) []int {
	var out []int
	for _, ci := range doc.Children(verbIdx) {
		c := doc.Tokens[ci]
		switch c.Dep {
		case "dobj":
			out = append(out, ci)
		case "prep":
			for _, gi := range doc.Children(ci) {
				if doc.Tokens[gi].Dep == "pobj" {
					out = append(out, gi)
				}
			}
		}
	}
	return out
}

// resolveEndpoint maps a token to a registered entity name via scored
// coreference; an unresolved proper noun is inferred as a brand-new
// component.
func (e *ComponentExtractor) resolveEndpoint(doc *nlp.Doc, idx, srcID int) string {
	if idx < 0 {
		return ""
	}
	mention := doc.CompoundName(idx)
	if mention == "" {
		return ""
	}
	if name, ok := Resolve(mention, e.s.knownNames()); ok {
		return name
	}
	// a compound like "PostgreSQL database" carries the proper noun
	// on a child, so the whole mention is checked
	tok := doc.Tokens[idx]
	if tok.POS == "PROPN" || reCapitalized.MatchString(mention) {
		return e.s.addComponent(mention, "", srcID)
	}
	return ""
}

// followPrepChain adds one extra hop per trailing preposition:
// "publishes events to Kafka via a consumer group" chains
// Kafka -> Consumer Group.
func (e *ComponentExtractor) followPrepChain(doc *nlp.Doc, objIdx int, from string, srcID int) {
	for _, ci := range doc.Children(objIdx) {
		c := doc.Tokens[ci]
		if c.Dep != "prep" {
			continue
		}
		for _, gi := range doc.Children(ci) {
			if doc.Tokens[gi].Dep != "pobj" {
				continue
			}
			target := e.resolveEndpoint(doc, gi, srcID)
			if target == "" || strings.EqualFold(target, from) {
				continue
			}
			e.s.addRelationship(from, target, "via", srcID)
			e.followPrepChain(doc, gi, target, srcID)
		}
	}
}

// addGuarded applies the database-to-database guard before recording
// the edge: two database endpoints need a service in the same
// sentence to take over as source, otherwise the relation is dropped.
func (e *ComponentExtractor) addGuarded(doc *nlp.Doc, sentence int, from, to, label string, srcID int) {
	if !isDatabaseLike(from) || !isDatabaseLike(to) {
		e.s.addRelationship(from, to, label, srcID)
		return
	}
	if svc := e.serviceInSentence(doc, sentence); svc != "" {
		e.s.addRelationship(svc, to, label, srcID)
		return
	}
	e.log.Debugw("dropping database-to-database relation", "from", from, "to", to)
}

// serviceInSentence finds a service-like known component mentioned in
// the given sentence
func (e *ComponentExtractor) serviceInSentence(doc *nlp.Doc, sentence int) string {
	text := strings.ToLower(doc.SentenceText(sentence))
	for _, name := range e.s.knownNames() {
		if !isServiceLike(name) {
			continue
		}
		if strings.Contains(text, strings.ToLower(name)) {
			return name
		}
	}
	return ""
}

func isDatabaseLike(name string) bool {
	low := strings.ToLower(name)
	for _, w := range databaseVocabulary {
		if low == w || strings.Contains(low, w+" ") || strings.Contains(low, " "+w) || strings.HasSuffix(low, w) {
			return true
		}
	}
	return false
}

func isServiceLike(name string) bool {
	low := strings.ToLower(name)
	for _, w := range serviceVocabulary {
		if strings.Contains(low, w) {
			return true
		}
	}
	return false
}
