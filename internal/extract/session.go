// Package extract implements the behavioral extractors: one user
// story at a time is parsed, overlaid with tagger entities and mined
// for classes, actors, attributes, methods and relationships (class
// diagrams) or for use cases, sequence messages and activity steps.
//
// All registries live on a per-run session. Extractor instances are
// not safe to share across concurrent runs; callers instantiate per
// request or serialize access externally.
package extract

import (
	"regexp"
	"strings"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/model"
)

// Story is one input requirement sentence
type Story struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

type relKey struct {
	from string
	to   string
	kind model.RelKind
}

// session owns the mutable registries of one extraction run. The
// class registry is the single source of truth: the ModelElement list
// holds pointers into it, so attribute and method additions show up
// on the already-emitted element instead of duplicating it.
type session struct {
	list    *model.List
	classes map[string]*model.ClassData // lowercased canonical name -> data
	rels    map[relKey]struct{}
}

func newSession() *session {
	return &session{
		list:    model.NewList(),
		classes: make(map[string]*model.ClassData),
		rels:    make(map[relKey]struct{}),
	}
}

var reCamelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// normalizeName maps a raw surface string to the canonical PascalCase
// class name used as registry key.
func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, "addresses") {
		return "Address"
	}
	if strings.HasSuffix(strings.ToLower(name), "esses") {
		trimmed := name[:len(name)-2]
		return strings.ToUpper(trimmed[:1]) + strings.ToLower(trimmed[1:])
	}
	spaced := reCamelBoundary.ReplaceAllString(name, "$1 $2")
	return strings.ReplaceAll(titleWords(spaced), " ", "")
}

// titleWords uppercases the first letter of each alphabetic run and
// lowercases the rest
func titleWords(s string) string {
	var b strings.Builder
	prevAlpha := false
	for _, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		switch {
		case isAlpha && !prevAlpha:
			if r >= 'a' && r <= 'z' {
				r -= 32
			}
			b.WriteRune(r)
		case isAlpha:
			if r >= 'A' && r <= 'Z' {
				r += 32
			}
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
		prevAlpha = isAlpha
	}
	return b.String()
}

// class looks up a registered class case-insensitively
func (s *session) class(name string) (*model.ClassData, bool) {
	c, ok := s.classes[strings.ToLower(name)]
	return c, ok
}

func (s *session) hasClass(name string) bool {
	_, ok := s.class(name)
	return ok
}

// addClass registers a class unless it already exists. Returns the
// canonical name.
func (s *session) addClass(name, stereotype string, sourceID int) string {
	canonical := normalizeName(name)
	if canonical == "" {
		return canonical
	}
	if _, ok := s.class(canonical); ok {
		return canonical
	}
	data := &model.ClassData{
		Name:       canonical,
		Stereotype: stereotype,
		Attributes: []model.Attribute{},
		Methods:    []model.Method{},
	}
	s.classes[strings.ToLower(canonical)] = data
	s.list.Add(model.TypeClass, canonical, data, sourceID)
	return canonical
}

// addAttribute appends an attribute to an existing class, skipping
// duplicates by name
func (s *session) addAttribute(className, attrName string, sourceID int, visibility, typeHint string) {
	className = normalizeName(className)
	attrName = strings.ToLower(attrName)
	data, ok := s.class(className)
	if !ok {
		return
	}
	for _, a := range data.Attributes {
		if a.Name == attrName {
			return
		}
	}
	data.Attributes = append(data.Attributes, model.Attribute{
		Name:       attrName,
		Visibility: visibility,
		Type:       typeHint,
	})
}

// addMethod appends a method to an existing class, skipping duplicates
// case-insensitively by name. CamelCase method names are kept as-is.
func (s *session) addMethod(className, methodName string, sourceID int, params []model.Param, visibility, returnType string) {
	className = normalizeName(className)
	data, ok := s.class(className)
	if !ok {
		return
	}
	for _, m := range data.Methods {
		if strings.EqualFold(m.Name, methodName) {
			return
		}
	}
	if params == nil {
		params = []model.Param{}
	}
	data.Methods = append(data.Methods, model.Method{
		Name:       methodName,
		Params:     params,
		Visibility: visibility,
		ReturnType: returnType,
	})
}

// appendMethodParams extends the parameter list of an already
// registered method
func (s *session) appendMethodParams(className, methodName string, params ...model.Param) {
	data, ok := s.class(normalizeName(className))
	if !ok {
		return
	}
	for i := range data.Methods {
		if strings.EqualFold(data.Methods[i].Name, methodName) {
			data.Methods[i].Params = append(data.Methods[i].Params, params...)
			return
		}
	}
}

// addRelationship records a typed edge; (from, to, kind) is unique
func (s *session) addRelationship(from, to string, kind model.RelKind, sourceID int) {
	from = normalizeName(from)
	to = normalizeName(to)
	key := relKey{from: from, to: to, kind: kind}
	if _, ok := s.rels[key]; ok {
		return
	}
	s.rels[key] = struct{}{}
	s.list.Add(model.TypeRelationship, from+"\x00"+to+"\x00"+string(kind), &model.RelationshipData{
		From: from,
		To:   to,
		Kind: kind,
	}, sourceID)
}
