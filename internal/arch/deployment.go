package arch

import (
	"regexp"
	"strings"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/canon"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/model"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/nlp"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/tagger"
	"go.uber.org/zap"
)

var reContainment = regexp.MustCompile(`(?i)` + entityPhrase +
	`\s+(?:is\s+|are\s+)?(?:contained\s+in|hosted\s+on|deployed\s+(?:on|to|in)|runs?\s+on|lives?\s+(?:on|in))\s+(?:the\s+|an?\s+)?` + entityPhrase)

var reNodeLink = regexp.MustCompile(`(?i)` + entityPhrase +
	`\s+connects?\s+(?:to|with)\s+(?:the\s+|an?\s+)?` + entityPhrase)

// DeploymentExtractor mines deployment topology from one narration:
// nodes, devices, environments and artifacts, plus the containment
// tree between them. Not safe for concurrent runs.
type DeploymentExtractor struct {
	parser *nlp.Parser
	tag    tagger.Tagger
	log    *zap.SugaredLogger
	s      *session
}

func NewDeploymentExtractor(parser *nlp.Parser, tag tagger.Tagger, c *canon.Canonicalizer, log *zap.SugaredLogger) *DeploymentExtractor {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if tag == nil {
		tag = tagger.Blank()
	}
	e := &DeploymentExtractor{parser: parser, tag: tag, log: log}
	e.s = newSession(c)
	return e
}

// Extract runs the deployment pipeline over the narration and returns
// the ordered element list. The session is reset at entry.
func (e *DeploymentExtractor) Extract(narration string) []*model.Element {
	e.s = newSession(e.s.canon)

	doc, err := e.parser.Parse(narration)
	if err != nil {
		e.log.Errorw("deployment extraction error", "error", err)
		return e.s.list.Elements()
	}
	nlp.Overlay(doc, e.tag.Tag(narration))

	e.registerEntities(doc)
	e.crossCollectionDedupe()
	e.pruneArtifacts()
	e.resolveContainment(narration)
	e.hierarchyDefaults()
	e.mineNodeLinks(narration)

	return e.s.list.Elements()
}

func (e *DeploymentExtractor) registerEntities(doc *nlp.Doc) {
	for _, ent := range doc.Entities {
		switch ent.Label {
		case tagger.LabelNode:
			e.s.addNode(ent.Text, "", 0)
		case tagger.LabelDevice:
			e.s.addDevice(ent.Text, 0)
		case tagger.LabelEnvironment:
			e.s.addEnvironment(ent.Text, 0)
		case tagger.LabelArtifact:
			e.s.addArtifact(ent.Text, 0)
		}
	}
}

// crossCollectionDedupe forces an entity present as both node and
// device into the single collection the configuration prefers
func (e *DeploymentExtractor) crossCollectionDedupe() {
	for _, rule := range e.s.canon.Config().CrossCollectionRules() {
		match := strings.ToLower(rule.Match)
		if match == "" {
			continue
		}
		for k, data := range e.s.nodes {
			if !strings.Contains(k, match) {
				continue
			}
			dev, both := e.s.devices[k]
			if !both {
				continue
			}
			if strings.EqualFold(rule.Prefer, "device") {
				delete(e.s.nodes, k)
				e.s.list.Remove(model.TypeNode, data.Name)
			} else {
				delete(e.s.devices, k)
				e.s.list.Remove(model.TypeDevice, dev.Name)
			}
		}
	}
}

// pruneArtifacts drops naive plural duplicates of an existing
// singular artifact, and generic one-word names shadowed by a more
// specific sibling.
func (e *DeploymentExtractor) pruneArtifacts() {
	names := e.artifactNames()
	for _, name := range names {
		low := strings.ToLower(name)
		if strings.HasSuffix(low, "s") && e.s.artifacts[strings.TrimSuffix(low, "s")] {
			e.s.removeArtifact(name)
			continue
		}
		if !strings.Contains(name, " ") {
			for _, other := range names {
				if other == name {
					continue
				}
				if strings.Contains(strings.ToLower(other), low) {
					e.s.removeArtifact(name)
					break
				}
			}
		}
	}
}

func (e *DeploymentExtractor) artifactNames() []string {
	var out []string
	for _, el := range e.s.list.Elements() {
		if el.Type != model.TypeArtifact {
			continue
		}
		if data, ok := el.Data.(*model.ArtifactData); ok {
			out = append(out, data.Name)
		}
	}
	return out
}

// resolveContainment nests nodes from explicit hosted-on phrasing; a
// hosted artifact attaches to its node instead of nesting
func (e *DeploymentExtractor) resolveContainment(text string) {
	for _, m := range reContainment.FindAllStringSubmatch(text, -1) {
		parent := e.resolveNodeName(m[2])
		if parent == "" {
			continue
		}
		child := e.resolveNodeName(m[1])
		if child == "" {
			if art, ok := Resolve(strings.TrimSpace(m[1]), e.artifactNames()); ok {
				e.attachArtifact(parent, art)
			}
			continue
		}
		if strings.EqualFold(child, parent) {
			continue
		}
		e.nest(parent, child)
	}
}

// attachArtifact records an artifact on its hosting node or device
func (e *DeploymentExtractor) attachArtifact(parent, artifact string) {
	p, ok := e.s.nodes[key(parent)]
	if !ok {
		p, ok = e.s.devices[key(parent)]
	}
	if !ok {
		return
	}
	for _, a := range p.Artifacts {
		if strings.EqualFold(a, artifact) {
			return
		}
	}
	p.Artifacts = append(p.Artifacts, artifact)
}

// hierarchyDefaults applies the fixed infrastructure ordering when
// both tiers occur in the narration without explicit phrasing:
// containers sit on servers, databases sit inside the innermost tier
// present.
func (e *DeploymentExtractor) hierarchyDefaults() {
	server := e.nodeMatching("server")
	container := e.nodeMatching("container")
	database := e.nodeMatching("database")

	if container != "" && server != "" {
		e.nest(server, container)
	}
	if database != "" {
		switch {
		case container != "":
			e.nest(container, database)
		case server != "":
			e.nest(server, database)
		}
	}
}

func (e *DeploymentExtractor) nodeMatching(word string) string {
	for _, el := range e.s.list.Elements() {
		if el.Type != model.TypeNode {
			continue
		}
		data, ok := el.Data.(*model.NodeData)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(data.Name), word) {
			return data.Name
		}
	}
	return ""
}

// mineNodeLinks records communication paths between nodes or devices
func (e *DeploymentExtractor) mineNodeLinks(text string) {
	for _, m := range reNodeLink.FindAllStringSubmatch(text, -1) {
		from := e.resolveNodeName(m[1])
		to := e.resolveNodeName(m[2])
		if from == "" || to == "" {
			continue
		}
		e.s.addRelationship(from, to, "connects to", 0)
	}
}

// resolveNodeName matches a phrase against registered nodes and
// devices via scored coreference
func (e *DeploymentExtractor) resolveNodeName(phrase string) string {
	var known []string
	for _, el := range e.s.list.Elements() {
		switch el.Type {
		case model.TypeNode, model.TypeDevice:
			if data, ok := el.Data.(*model.NodeData); ok {
				known = append(known, data.Name)
			}
		}
	}
	name, ok := Resolve(strings.TrimSpace(phrase), known)
	if !ok {
		return ""
	}
	return name
}

// nest adds child under parent unless the edge would close a cycle
func (e *DeploymentExtractor) nest(parent, child string) {
	p, ok := e.s.nodes[key(parent)]
	if !ok {
		return
	}
	if e.isAncestor(child, parent) {
		e.log.Debugw("skipping containment cycle", "parent", parent, "child", child)
		return
	}
	for _, c := range p.Children {
		if strings.EqualFold(c, child) {
			return
		}
	}
	p.Children = append(p.Children, child)
}

// isAncestor reports whether candidate already contains node,
// directly or transitively
func (e *DeploymentExtractor) isAncestor(candidate, node string) bool {
	c, ok := e.s.nodes[key(candidate)]
	if !ok {
		return false
	}
	for _, child := range c.Children {
		if strings.EqualFold(child, node) || e.isAncestor(child, node) {
			return true
		}
	}
	return false
}
