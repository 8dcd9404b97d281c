package nlp

// Overlay aligns tagger spans onto the doc's token boundaries and
// records them as entities. Alignment is fallible per span: a span
// whose edges do not land on token boundaries is dropped on its own,
// never aborting the rest of the overlay. When spans overlap, the one
// applied last wins.
func Overlay(doc *Doc, spans []Span) {
	for _, sp := range spans {
		first, last := alignSpan(doc, sp)
		if first < 0 {
			continue // tokenization mismatch, drop this one entity
		}
		ent := Entity{
			Text:       doc.Text[sp.Start:sp.End],
			Label:      sp.Label,
			Start:      sp.Start,
			End:        sp.End,
			FirstToken: first,
			LastToken:  last,
		}
		doc.Entities = removeOverlapping(doc.Entities, ent)
		doc.Entities = append(doc.Entities, ent)
	}
	sortEntities(doc.Entities)
}

// alignSpan finds the token range matching the span's character
// offsets exactly. Returns (-1, -1) when no token boundary matches.
func alignSpan(doc *Doc, sp Span) (int, int) {
	first, last := -1, -1
	for _, t := range doc.Tokens {
		if t.Start == sp.Start {
			first = t.Index
		}
		if t.End == sp.End {
			last = t.Index
		}
	}
	if first < 0 || last < 0 || last < first {
		return -1, -1
	}
	return first, last
}

func removeOverlapping(ents []Entity, ent Entity) []Entity {
	out := ents[:0]
	for _, e := range ents {
		if e.Start < ent.End && ent.Start < e.End {
			continue
		}
		out = append(out, e)
	}
	return out
}

func sortEntities(ents []Entity) {
	for i := 1; i < len(ents); i++ {
		for j := i; j > 0 && ents[j-1].Start > ents[j].Start; j-- {
			ents[j-1], ents[j] = ents[j], ents[j-1]
		}
	}
}
