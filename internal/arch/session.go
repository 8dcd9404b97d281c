// Package arch implements the structural extractors: one long
// architecture narration is mined for components, interfaces and
// deployment topology. Entity names pass through the canonicalization
// layer before registration, so near-duplicate surface forms collapse
// to one entry per category.
package arch

import (
	"strings"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/canon"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/model"
)

type relKey struct {
	from  string
	to    string
	label string
}

// session owns one run's registries. Registries are keyed by the
// lowercased canonical name; insertion order is preserved by the
// element list.
type session struct {
	list  *model.List
	canon *canon.Canonicalizer

	components   map[string]*model.ComponentData
	externals    map[string]bool
	technologies map[string]bool
	interfaces   map[string]*model.InterfaceData
	nodes        map[string]*model.NodeData
	devices      map[string]*model.NodeData
	environments map[string]bool
	artifacts    map[string]bool
	rels         map[relKey]struct{}
}

func newSession(c *canon.Canonicalizer) *session {
	return &session{
		list:         model.NewList(),
		canon:        c,
		components:   make(map[string]*model.ComponentData),
		externals:    make(map[string]bool),
		technologies: make(map[string]bool),
		interfaces:   make(map[string]*model.InterfaceData),
		nodes:        make(map[string]*model.NodeData),
		devices:      make(map[string]*model.NodeData),
		environments: make(map[string]bool),
		artifacts:    make(map[string]bool),
		rels:         make(map[relKey]struct{}),
	}
}

func key(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

// addComponent canonicalizes and registers a component. Returns the
// canonical name.
func (s *session) addComponent(name, stereotype string, sourceID int) string {
	canonical := s.canon.Normalize(canon.CategoryComponent, name)
	if canonical == "" {
		return ""
	}
	k := key(canonical)
	if _, ok := s.components[k]; ok {
		return canonical
	}
	data := &model.ComponentData{Name: canonical, Stereotype: stereotype}
	s.components[k] = data
	s.list.Add(model.TypeComponent, canonical, data, sourceID)
	return canonical
}

func (s *session) hasComponent(name string) bool {
	_, ok := s.components[key(name)]
	return ok
}

// addExternal registers an external system component with the
// matching stereotype
func (s *session) addExternal(name string, sourceID int) string {
	canonical := s.canon.Normalize(canon.CategoryExternalSystem, name)
	if canonical == "" {
		return ""
	}
	s.externals[key(canonical)] = true
	k := key(canonical)
	if _, ok := s.components[k]; ok {
		return canonical
	}
	data := &model.ComponentData{Name: canonical, Stereotype: "external"}
	s.components[k] = data
	s.list.Add(model.TypeComponent, canonical, data, sourceID)
	return canonical
}

func (s *session) isExternal(name string) bool {
	return s.externals[key(name)]
}

// addInterface registers a provided interface; the first provider
// wins, later mentions only add consumers
func (s *session) addInterface(name, provider string, sourceID int) *model.InterfaceData {
	canonical := s.canon.Normalize(canon.CategoryInterface, name)
	if canonical == "" {
		return nil
	}
	k := key(canonical)
	if data, ok := s.interfaces[k]; ok {
		if data.Provider == "" {
			data.Provider = provider
		}
		return data
	}
	data := &model.InterfaceData{Name: canonical, Provider: provider}
	s.interfaces[k] = data
	s.list.Add(model.TypeInterface, canonical, data, sourceID)
	return data
}

// addInterfaceConsumer records a consumer once; the provider never
// also appears as a consumer
func (s *session) addInterfaceConsumer(data *model.InterfaceData, consumer string) {
	if consumer == "" || strings.EqualFold(consumer, data.Provider) {
		return
	}
	for _, c := range data.Consumers {
		if strings.EqualFold(c, consumer) {
			return
		}
	}
	data.Consumers = append(data.Consumers, consumer)
}

func (s *session) addNode(name, stereotype string, sourceID int) string {
	canonical := s.canon.Normalize(canon.CategoryNode, name)
	if canonical == "" {
		return ""
	}
	k := key(canonical)
	if _, ok := s.nodes[k]; ok {
		return canonical
	}
	data := &model.NodeData{Name: canonical, Stereotype: stereotype}
	s.nodes[k] = data
	s.list.Add(model.TypeNode, canonical, data, sourceID)
	return canonical
}

func (s *session) addDevice(name string, sourceID int) string {
	canonical := s.canon.Normalize(canon.CategoryDevice, name)
	if canonical == "" {
		return ""
	}
	k := key(canonical)
	if _, ok := s.devices[k]; ok {
		return canonical
	}
	data := &model.NodeData{Name: canonical, Stereotype: "device"}
	s.devices[k] = data
	s.list.Add(model.TypeDevice, canonical, data, sourceID)
	return canonical
}

func (s *session) addEnvironment(name string, sourceID int) string {
	canonical := s.canon.Normalize(canon.CategoryEnvironment, name)
	if canonical == "" {
		return ""
	}
	k := key(canonical)
	if s.environments[k] {
		return canonical
	}
	s.environments[k] = true
	s.list.Add(model.TypeEnvironment, canonical, &model.EnvironmentData{Name: canonical}, sourceID)
	return canonical
}

func (s *session) addArtifact(name string, sourceID int) string {
	canonical := strings.TrimSpace(name)
	if canonical == "" {
		return ""
	}
	k := key(canonical)
	if s.artifacts[k] {
		return canonical
	}
	s.artifacts[k] = true
	s.list.Add(model.TypeArtifact, canonical, &model.ArtifactData{Name: canonical}, sourceID)
	return canonical
}

func (s *session) removeArtifact(name string) {
	k := key(name)
	if !s.artifacts[k] {
		return
	}
	delete(s.artifacts, k)
	s.list.Remove(model.TypeArtifact, name)
}

// addRelationship records a labeled edge; (from, to, label) is unique
func (s *session) addRelationship(from, to, label string, sourceID int) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" || to == "" || strings.EqualFold(from, to) {
		return
	}
	rk := relKey{from: key(from), to: key(to), label: label}
	if _, ok := s.rels[rk]; ok {
		return
	}
	s.rels[rk] = struct{}{}
	s.list.Add(model.TypeRelationship, from+"\x00"+to+"\x00"+label, &model.RelationshipData{
		From: from,
		To:   to,
		Kind: model.RelKind(label),
	}, sourceID)
}

// knownNames returns every registered component name in registration
// order, for coreference resolution
func (s *session) knownNames() []string {
	var names []string
	for _, el := range s.list.Elements() {
		if el.Type != model.TypeComponent {
			continue
		}
		if data, ok := el.Data.(*model.ComponentData); ok {
			names = append(names, data.Name)
		}
	}
	return names
}
