package arch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/model"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/nlp"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/storage"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/tagger"
)

func deploymentTagger(t *testing.T) tagger.Tagger {
	t.Helper()
	// longest phrase first, as the lexicon store orders them
	g, err := tagger.FromPhrases([]storage.Phrase{
		{Label: tagger.LabelNode, Phrase: "postgresql database"},
		{Label: tagger.LabelNode, Phrase: "docker container"},
		{Label: tagger.LabelDevice, Phrase: "desktop browser"},
		{Label: tagger.LabelNode, Phrase: "linux server"},
		{Label: tagger.LabelDevice, Phrase: "web browser"},
		{Label: tagger.LabelEnvironment, Phrase: "kubernetes"},
	})
	require.NoError(t, err)
	return g
}

func nodeByName(t *testing.T, els []*model.Element, typ model.ElementType, name string) *model.NodeData {
	t.Helper()
	for _, el := range els {
		if el.Type != typ {
			continue
		}
		if data := el.Data.(*model.NodeData); data.Name == name {
			return data
		}
	}
	t.Fatalf("%s %q not extracted", typ, name)
	return nil
}

func TestDeploymentExtractorTopology(t *testing.T) {
	e := NewDeploymentExtractor(nlp.NewParser(nil), deploymentTagger(t), testCanon(t), nil)

	els := e.Extract("Users reach the app through a web browser or a desktop browser. " +
		"The Docker Container is hosted on the Linux Server. " +
		"The PostgreSQL database runs on the Docker Container. " +
		"The Web Browser connects to the Linux Server. " +
		"Everything ships to Kubernetes.")

	// both browser phrasings collapse into one canonical device
	var devices []string
	for _, el := range els {
		if el.Type == model.TypeDevice {
			devices = append(devices, el.Data.(*model.NodeData).Name)
		}
	}
	assert.Equal(t, []string{"Web Browser"}, devices)

	server := nodeByName(t, els, model.TypeNode, "Linux Server")
	assert.Contains(t, server.Children, "Docker Container")

	container := nodeByName(t, els, model.TypeNode, "Docker Container")
	assert.Contains(t, container.Children, "PostgreSQL")

	var envs []string
	for _, el := range els {
		if el.Type == model.TypeEnvironment {
			envs = append(envs, el.Data.(*model.EnvironmentData).Name)
		}
	}
	assert.Contains(t, envs, "Kubernetes")

	var linked bool
	for _, r := range relationships(els) {
		if r.From == "Web Browser" && r.To == "Linux Server" && r.Kind == "connects to" {
			linked = true
		}
	}
	assert.True(t, linked, "browser to server communication path missing")
}

func TestDeploymentExtractorAttachesArtifacts(t *testing.T) {
	g, err := tagger.FromPhrases([]storage.Phrase{
		{Label: tagger.LabelNode, Phrase: "docker container"},
		{Label: tagger.LabelArtifact, Phrase: "application jar"},
	})
	require.NoError(t, err)
	e := NewDeploymentExtractor(nlp.NewParser(nil), g, testCanon(t), nil)

	els := e.Extract("The application jar is deployed on the Docker Container.")

	container := nodeByName(t, els, model.TypeNode, "Docker Container")
	assert.Equal(t, []string{"application jar"}, container.Artifacts)
	assert.Empty(t, container.Children, "an artifact must not nest as a child node")
}

func TestCrossCollectionDedupePrefersDevice(t *testing.T) {
	e := NewDeploymentExtractor(nlp.NewParser(nil), nil, testCanon(t), nil)
	e.s.addNode("web browser", "", 0)
	e.s.addDevice("web browser", 0)

	e.crossCollectionDedupe()

	els := e.s.list.Elements()
	for _, el := range els {
		assert.NotEqual(t, model.TypeNode, el.Type, "browser node should yield to the device entry")
	}
	nodeByName(t, els, model.TypeDevice, "Web Browser")
}

func TestPruneArtifacts(t *testing.T) {
	e := NewDeploymentExtractor(nlp.NewParser(nil), nil, testCanon(t), nil)
	e.s.addArtifact("deployment package", 0)
	e.s.addArtifact("deployment packages", 0)
	e.s.addArtifact("application jar", 0)
	e.s.addArtifact("jar", 0)

	e.pruneArtifacts()

	assert.ElementsMatch(t, []string{"deployment package", "application jar"}, e.artifactNames())
}

func TestNestRefusesCycles(t *testing.T) {
	e := NewDeploymentExtractor(nlp.NewParser(nil), nil, testCanon(t), nil)
	e.s.addNode("docker container", "", 0)
	e.s.addNode("linux server", "", 0)

	e.nest("Linux Server", "Docker Container")
	e.nest("Docker Container", "Linux Server")

	server := nodeByName(t, e.s.list.Elements(), model.TypeNode, "Linux Server")
	assert.Equal(t, []string{"Docker Container"}, server.Children)
	container := nodeByName(t, e.s.list.Elements(), model.TypeNode, "Docker Container")
	assert.Empty(t, container.Children)
}
