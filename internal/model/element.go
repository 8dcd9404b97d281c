package model

import "strings"

// ElementType identifies the kind of a model element
type ElementType string

const (
	TypeClass           ElementType = "Class"
	TypeRelationship    ElementType = "Relationship"
	TypeUseCase         ElementType = "UseCase"
	TypeSequenceMessage ElementType = "SequenceMessage"
	TypeActivityStep    ElementType = "ActivityStep"
	TypeComponent       ElementType = "Component"
	TypeInterface       ElementType = "Interface"
	TypeNode            ElementType = "Node"
	TypeDevice          ElementType = "Device"
	TypeArtifact        ElementType = "Artifact"
	TypeEnvironment     ElementType = "Environment"
)

// RelKind is the relationship type between two model elements
type RelKind string

const (
	Association RelKind = "Association"
	Aggregation RelKind = "Aggregation"
	Composition RelKind = "Composition"
	Dependency  RelKind = "Dependency"
	Inheritance RelKind = "Inheritance"
	Realization RelKind = "Realization"
	// ActorLink is the plain arrow connecting an actor to a use case
	ActorLink RelKind = "-->"
)

// Element is one typed unit of extracted output with source provenance
type Element struct {
	Type     ElementType `json:"type"`
	Data     any         `json:"data"`
	SourceID int         `json:"source_id"`
}

// List is an ordered, deduplicated collection of model elements.
// Identity is (type, canonical key); re-inserting an existing identity
// is a no-op and returns the element already held.
type List struct {
	elements []*Element
	index    map[string]*Element
}

// NewList creates an empty element list
func NewList() *List {
	return &List{index: make(map[string]*Element)}
}

func listKey(t ElementType, key string) string {
	return string(t) + "\x00" + strings.ToLower(key)
}

// Add appends an element unless (type, key) is already present.
// Returns the stored element and whether it was newly inserted.
func (l *List) Add(t ElementType, key string, data any, sourceID int) (*Element, bool) {
	k := listKey(t, key)
	if el, ok := l.index[k]; ok {
		return el, false
	}
	el := &Element{Type: t, Data: data, SourceID: sourceID}
	l.elements = append(l.elements, el)
	l.index[k] = el
	return el, true
}

// Get returns the element stored under (type, key), if any
func (l *List) Get(t ElementType, key string) (*Element, bool) {
	el, ok := l.index[listKey(t, key)]
	return el, ok
}

// Remove drops the element stored under (type, key), preserving the
// order of the remaining elements
func (l *List) Remove(t ElementType, key string) bool {
	k := listKey(t, key)
	el, ok := l.index[k]
	if !ok {
		return false
	}
	delete(l.index, k)
	for i, e := range l.elements {
		if e == el {
			l.elements = append(l.elements[:i], l.elements[i+1:]...)
			break
		}
	}
	return true
}

// Elements returns the ordered element slice
func (l *List) Elements() []*Element {
	return l.elements
}

// Len returns the number of elements
func (l *List) Len() int {
	return len(l.elements)
}
