// Package nlp wraps the tokenizer, tagger and lemmatizer behind a
// single Parse call and annotates the result with a shallow dependency
// layer sufficient for the extraction heuristics: subjects, objects,
// prepositional attachment, conjunctions and compounds.
package nlp

import (
	"fmt"
	"strings"
	"sync"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"
	"go.uber.org/zap"
)

// Parser turns raw text into annotated Docs. The underlying models are
// loaded once, lazily, and are read-only afterwards; a Parser is safe
// to share across runs.
type Parser struct {
	log     *zap.SugaredLogger
	initLem sync.Once
	lem     *golem.Lemmatizer
}

// NewParser creates a parser. A nil logger disables logging.
func NewParser(log *zap.SugaredLogger) *Parser {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Parser{log: log}
}

// Parse tokenizes, tags and annotates text. Lemmatizer load failure
// degrades to surface-form lemmas instead of failing the parse.
func (p *Parser) Parse(text string) (*Doc, error) {
	pd, err := prose.NewDocument(text,
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}

	p.initLem.Do(func() {
		lem, lerr := golem.New(en.New())
		if lerr != nil {
			p.log.Warnw("lemmatizer unavailable, falling back to surface forms", "error", lerr)
			return
		}
		p.lem = lem
	})

	doc := &Doc{Text: text}
	cursor := 0
	sentence := 0
	for i, pt := range pd.Tokens() {
		start, end := -1, -1
		if idx := strings.Index(text[cursor:], pt.Text); idx >= 0 {
			start = cursor + idx
			end = start + len(pt.Text)
			cursor = end
		}
		tok := Token{
			Index:    i,
			Text:     pt.Text,
			Tag:      pt.Tag,
			POS:      coarsePOS(pt.Tag),
			Lemma:    p.lemma(pt.Text, pt.Tag),
			Dep:      "dep",
			Head:     i,
			Start:    start,
			End:      end,
			Sentence: sentence,
		}
		doc.Tokens = append(doc.Tokens, tok)
		if pt.Text == "." || pt.Text == "!" || pt.Text == "?" {
			sentence++
		}
	}
	doc.sentences = sentence
	if len(doc.Tokens) > 0 && doc.Tokens[len(doc.Tokens)-1].Sentence == sentence {
		doc.sentences = sentence + 1
	}

	for s := 0; s < doc.sentences; s++ {
		annotateSentence(doc, s)
	}
	return doc, nil
}

// lemma returns the dictionary lemma, lowercased for nouns and verbs
// so plural objects singularize the way the extractors expect.
func (p *Parser) lemma(word, tag string) string {
	if p.lem == nil {
		return fallbackLemma(word, tag)
	}
	l := p.lem.Lemma(word)
	if l == "" {
		return fallbackLemma(word, tag)
	}
	return l
}

// fallbackLemma strips regular plural endings when no dictionary is
// available (reduced-recall blank mode).
func fallbackLemma(word, tag string) string {
	if tag == "NNS" || tag == "NNPS" {
		lower := strings.ToLower(word)
		switch {
		case strings.HasSuffix(lower, "ies") && len(word) > 3:
			return word[:len(word)-3] + "y"
		case strings.HasSuffix(lower, "ses") || strings.HasSuffix(lower, "xes") || strings.HasSuffix(lower, "hes"):
			return word[:len(word)-2]
		case strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss"):
			return word[:len(word)-1]
		}
	}
	return word
}

func coarsePOS(tag string) string {
	switch {
	case strings.HasPrefix(tag, "VB"):
		return "VERB"
	case tag == "NN" || tag == "NNS":
		return "NOUN"
	case tag == "NNP" || tag == "NNPS":
		return "PROPN"
	case strings.HasPrefix(tag, "JJ"):
		return "ADJ"
	case strings.HasPrefix(tag, "RB") || tag == "WRB":
		return "ADV"
	case tag == "IN":
		return "ADP"
	case tag == "TO":
		return "PART"
	case tag == "DT" || tag == "PDT" || tag == "WDT":
		return "DET"
	case tag == "PRP" || tag == "PRP$" || tag == "WP" || tag == "WP$":
		return "PRON"
	case tag == "CC":
		return "CCONJ"
	case tag == "CD":
		return "NUM"
	case tag == "MD":
		return "AUX"
	case tag == "POS":
		return "PART"
	case tag == "UH":
		return "INTJ"
	case tag == "FW" || tag == "SYM" || tag == "LS":
		return "X"
	case len(tag) > 0 && (tag[0] == '.' || tag[0] == ',' || tag[0] == ':' ||
		tag[0] == '(' || tag[0] == ')' || tag[0] == '"' || tag[0] == '\'' ||
		tag == "``" || tag == "''" || tag == "-LRB-" || tag == "-RRB-" ||
		tag == "HYPH" || tag == "NFP"):
		return "PUNCT"
	default:
		return "X"
	}
}

func isNominalPOS(pos, tag string) bool {
	switch pos {
	case "NOUN", "PROPN", "PRON", "NUM":
		return true
	}
	return tag == "PRP$"
}

func isChunkPOS(pos, tag string) bool {
	if isNominalPOS(pos, tag) {
		return true
	}
	return pos == "DET" || pos == "ADJ"
}

// annotateSentence assigns heads and dependency labels for one
// sentence: noun chunks first, then verbs, prepositions, conjunctions
// and appositions in a single left-to-right pass.
func annotateSentence(doc *Doc, s int) {
	var idx []int
	for _, t := range doc.Tokens {
		if t.Sentence == s {
			idx = append(idx, t.Index)
		}
	}
	if len(idx) == 0 {
		return
	}

	// 1. Noun chunks: maximal DET/ADJ/NOUN/PROPN/PRON runs, head = last
	// nominal. Earlier nominals become compounds; determiners and
	// adjectives modify the head.
	chunkOf := make(map[int]int) // token index -> head index of its chunk
	var heads []int
	for k := 0; k < len(idx); {
		t := doc.Tokens[idx[k]]
		if !isChunkPOS(t.POS, t.Tag) {
			k++
			continue
		}
		j := k
		for j < len(idx) && isChunkPOS(doc.Tokens[idx[j]].POS, doc.Tokens[idx[j]].Tag) {
			j++
		}
		head := -1
		for m := j - 1; m >= k; m-- {
			if isNominalPOS(doc.Tokens[idx[m]].POS, doc.Tokens[idx[m]].Tag) && doc.Tokens[idx[m]].Tag != "PRP$" {
				head = idx[m]
				break
			}
		}
		if head < 0 {
			head = idx[j-1]
		}
		first, last := idx[k], idx[j-1]
		for m := k; m < j; m++ {
			ti := idx[m]
			chunkOf[ti] = head
			if ti == head {
				continue
			}
			tok := &doc.Tokens[ti]
			switch {
			case isNominalPOS(tok.POS, tok.Tag) && tok.Tag != "PRP$" && ti < head:
				tok.Dep = "compound"
			case tok.POS == "ADJ":
				tok.Dep = "amod"
			default:
				tok.Dep = "det"
			}
			tok.Head = head
		}
		heads = append(heads, head)
		doc.NounChunks = append(doc.NounChunks, Chunk{
			Start: first,
			End:   last,
			Head:  head,
			Text:  chunkText(doc, first, last),
		})
		k = j
	}

	// 2. Root = first verb, or first token when the sentence is verbless.
	root := -1
	for _, i := range idx {
		if doc.Tokens[i].POS == "VERB" {
			root = i
			break
		}
	}
	if root < 0 {
		root = idx[0]
	}
	doc.Tokens[root].Dep = "ROOT"
	doc.Tokens[root].Head = root

	// 3. Left-to-right attachment.
	lastVerb := -1      // most recent verb or participle
	lastNominal := -1   // most recent chunk head
	pendingPrep := -1   // preposition waiting for its object
	pendingSubj := -1   // chunk head seen before any verb
	prevHeadDone := -1  // most recent attached chunk head (conj anchor)
	infinitive := false // previous token was infinitival "to"

	for _, i := range idx {
		tok := &doc.Tokens[i]
		switch {
		case tok.POS == "VERB":
			if tok.Tag == "VBN" && lastNominal >= 0 && adjacentChunk(doc, lastNominal, i) {
				// reduced relative clause: "contacts associated with ..."
				tok.Dep = "acl"
				tok.Head = lastNominal
			} else if i != root {
				if infinitive {
					tok.Dep = "xcomp"
				} else {
					tok.Dep = "conj"
				}
				if lastVerb >= 0 {
					tok.Head = lastVerb
				} else {
					tok.Head = root
				}
			}
			if pendingSubj >= 0 {
				doc.Tokens[pendingSubj].Dep = "nsubj"
				doc.Tokens[pendingSubj].Head = i
				pendingSubj = -1
			}
			lastVerb = i
			infinitive = false
			pendingPrep = -1

		case tok.Tag == "TO":
			// infinitival "to" precedes a verb; prepositional "to" precedes
			// a noun phrase
			if next, ok := nextMeaningful(doc, idx, i); ok && doc.Tokens[next].POS == "VERB" {
				tok.Dep = "aux"
				tok.Head = next
				infinitive = true
			} else {
				attachPrep(doc, tok, lastVerb, lastNominal, root)
				pendingPrep = i
			}

		case tok.POS == "ADP":
			attachPrep(doc, tok, lastVerb, lastNominal, root)
			pendingPrep = i

		case isChunkHead(chunkOf, i): // chunk head
			switch {
			case isApposition(doc, idx, i, prevHeadDone):
				tok.Dep = "appos"
				tok.Head = prevHeadDone
			case pendingPrep >= 0:
				tok.Dep = "pobj"
				tok.Head = pendingPrep
				pendingPrep = -1
			case lastVerb < 0:
				pendingSubj = i
			case followsConj(doc, idx, i, prevHeadDone):
				tok.Dep = "conj"
				tok.Head = prevHeadDone
			default:
				tok.Dep = "dobj"
				tok.Head = lastVerb
			}
			lastNominal = i
			prevHeadDone = i

		case tok.POS == "CCONJ":
			if prevHeadDone >= 0 {
				tok.Dep = "cc"
				tok.Head = prevHeadDone
			}

		case tok.POS == "PUNCT":
			tok.Dep = "punct"
			tok.Head = root

		default:
			if _, inChunk := chunkOf[i]; !inChunk && tok.Head == i && i != root {
				tok.Head = root
			}
		}
	}

	if pendingSubj >= 0 && pendingSubj != root {
		doc.Tokens[pendingSubj].Dep = "nsubj"
		doc.Tokens[pendingSubj].Head = root
	}
}

// attachPrep picks the governor of a preposition: "of" modifies the
// preceding noun, every other preposition attaches to the nearest
// preceding verb when one exists.
func attachPrep(doc *Doc, tok *Token, lastVerb, lastNominal, root int) {
	tok.Dep = "prep"
	lower := strings.ToLower(tok.Text)
	switch {
	case lower == "of" && lastNominal >= 0:
		tok.Head = lastNominal
	case lastVerb >= 0:
		tok.Head = lastVerb
	case lastNominal >= 0:
		tok.Head = lastNominal
	default:
		tok.Head = root
	}
}

// adjacentChunk reports whether token j directly follows the chunk
// headed at head (no intervening non-punct tokens).
func adjacentChunk(doc *Doc, head, j int) bool {
	for i := head + 1; i < j; i++ {
		if doc.Tokens[i].POS != "PUNCT" && doc.Tokens[i].Head != head {
			return false
		}
	}
	return true
}

func nextMeaningful(doc *Doc, idx []int, i int) (int, bool) {
	for _, j := range idx {
		if j > i && doc.Tokens[j].POS != "PUNCT" && doc.Tokens[j].POS != "ADV" {
			return j, true
		}
	}
	return 0, false
}

// followsConj reports whether a coordinating conjunction sits between
// the previous chunk head and token i.
func followsConj(doc *Doc, idx []int, i, prev int) bool {
	if prev < 0 {
		return false
	}
	for _, j := range idx {
		if j > prev && j < i && doc.Tokens[j].POS == "CCONJ" {
			return true
		}
		if j >= i {
			break
		}
	}
	return false
}

// isApposition reports whether chunk head i opens right after "(" and
// follows an attached chunk head: "company (Account)".
func isApposition(doc *Doc, idx []int, i, prev int) bool {
	if prev < 0 {
		return false
	}
	for _, j := range idx {
		if j < i && j > prev && (doc.Tokens[j].Text == "(" || doc.Tokens[j].Tag == "-LRB-") {
			return true
		}
	}
	return false
}

func isChunkHead(chunkOf map[int]int, i int) bool {
	h, ok := chunkOf[i]
	return ok && h == i
}

func chunkText(doc *Doc, first, last int) string {
	if doc.Tokens[first].Start < 0 || doc.Tokens[last].End < 0 {
		var parts []string
		for i := first; i <= last; i++ {
			parts = append(parts, doc.Tokens[i].Text)
		}
		return strings.Join(parts, " ")
	}
	return doc.Text[doc.Tokens[first].Start:doc.Tokens[last].End]
}
