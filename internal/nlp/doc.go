package nlp

import "strings"

// Token is one parsed token with its syntactic annotations.
// Head is the index of the governing token; the root points at itself.
type Token struct {
	Index    int
	Text     string
	Lemma    string
	POS      string // coarse tag: VERB, NOUN, PROPN, ADJ, ADP, DET, PRON, ...
	Tag      string // fine-grained Penn Treebank tag
	Dep      string // nsubj, dobj, pobj, prep, conj, compound, appos, ...
	Head     int
	Start    int // character offset in the source text
	End      int
	Sentence int
}

// Chunk is a noun chunk: a contiguous token range with a head noun
type Chunk struct {
	Start int // first token index
	End   int // last token index, inclusive
	Head  int // head token index
	Text  string
}

// Entity is a labeled span aligned onto token boundaries
type Entity struct {
	Text       string
	Label      string
	Start      int // character offset
	End        int
	FirstToken int
	LastToken  int
}

// Span is a raw labeled character range produced by a tagger
type Span struct {
	Start int
	End   int
	Label string
}

// Doc is a parsed text with optional overlaid entities
type Doc struct {
	Text       string
	Tokens     []Token
	NounChunks []Chunk
	Entities   []Entity
	sentences  int
}

// SentenceCount returns the number of sentences in the doc
func (d *Doc) SentenceCount() int {
	return d.sentences
}

// SentenceTokens returns the tokens of sentence n
func (d *Doc) SentenceTokens(n int) []Token {
	var out []Token
	for _, t := range d.Tokens {
		if t.Sentence == n {
			out = append(out, t)
		}
	}
	return out
}

// SentenceText returns the source text covered by sentence n
func (d *Doc) SentenceText(n int) string {
	start, end := -1, -1
	for _, t := range d.Tokens {
		if t.Sentence != n || t.Start < 0 {
			continue
		}
		if start < 0 {
			start = t.Start
		}
		end = t.End
	}
	if start < 0 {
		return ""
	}
	return d.Text[start:end]
}

// Children returns the indexes of tokens governed by token i
func (d *Doc) Children(i int) []int {
	var out []int
	for _, t := range d.Tokens {
		if t.Head == i && t.Index != i {
			out = append(out, t.Index)
		}
	}
	return out
}

// Subtree returns token i and all tokens transitively governed by it,
// in document order
func (d *Doc) Subtree(i int) []int {
	in := make(map[int]bool, len(d.Tokens))
	in[i] = true
	// tokens are attached left or right; iterate until fixpoint
	for changed := true; changed; {
		changed = false
		for _, t := range d.Tokens {
			if !in[t.Index] && in[t.Head] && t.Head != t.Index {
				in[t.Index] = true
				changed = true
			}
		}
	}
	var out []int
	for idx := range d.Tokens {
		if in[idx] {
			out = append(out, idx)
		}
	}
	return out
}

// SubtreeText returns the source text spanned by the subtree of token i
func (d *Doc) SubtreeText(i int) string {
	sub := d.Subtree(i)
	if len(sub) == 0 {
		return ""
	}
	start, end := -1, -1
	for _, idx := range sub {
		t := d.Tokens[idx]
		if t.Start < 0 {
			continue
		}
		if start < 0 || t.Start < start {
			start = t.Start
		}
		if t.End > end {
			end = t.End
		}
	}
	if start < 0 {
		return ""
	}
	return strings.TrimSpace(d.Text[start:end])
}

// CompoundName reconstructs a multi-word name for the noun headed at i:
// compound children in document order followed by the head lemma, so
// "profile picture" becomes "profile picture" with a singular head.
func (d *Doc) CompoundName(i int) string {
	var parts []string
	for _, c := range d.Children(i) {
		if d.Tokens[c].Dep == "compound" {
			parts = append(parts, d.Tokens[c].Text)
		}
	}
	parts = append(parts, d.Tokens[i].Lemma)
	return strings.Join(parts, " ")
}

// EntitiesByLabel returns overlaid entities carrying the given label
func (d *Doc) EntitiesByLabel(labels ...string) []Entity {
	var out []Entity
	for _, e := range d.Entities {
		for _, l := range labels {
			if e.Label == l {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
