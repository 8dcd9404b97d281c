package arch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/canon"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/model"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/nlp"
)

const archTestConfig = `
enabled: true
strictness: moderate
deduplication:
  enabled: true
  cross_collection:
    enabled: true
    rules:
      - name: browser
        match: browser
        prefer: device
      - name: server
        match: server
        prefer: node
`

func testCanon(t *testing.T) *canon.Canonicalizer {
	t.Helper()
	path := filepath.Join(t.TempDir(), "normalization.yaml")
	require.NoError(t, os.WriteFile(path, []byte(archTestConfig), 0o644))
	c, err := canon.Load(path, nil)
	require.NoError(t, err)
	return c
}

func componentNames(els []*model.Element) []string {
	var out []string
	for _, el := range els {
		if el.Type == model.TypeComponent {
			out = append(out, el.Data.(*model.ComponentData).Name)
		}
	}
	return out
}

func relationships(els []*model.Element) []*model.RelationshipData {
	var out []*model.RelationshipData
	for _, el := range els {
		if el.Type == model.TypeRelationship {
			out = append(out, el.Data.(*model.RelationshipData))
		}
	}
	return out
}

func TestComponentExtractorSingleEdgePerInteraction(t *testing.T) {
	e := NewComponentExtractor(nlp.NewParser(nil), nil, testCanon(t), nil)

	els := e.Extract("The Payment Service sends data to the PostgreSQL database.")

	names := componentNames(els)
	assert.Contains(t, names, "Payment Service")
	assert.Contains(t, names, "PostgreSQL")

	var edges []*model.RelationshipData
	for _, r := range relationships(els) {
		if r.From == "Payment Service" && r.To == "PostgreSQL" {
			edges = append(edges, r)
		}
	}
	require.Len(t, edges, 1, "pattern and dependency miners must deduplicate")
	assert.Equal(t, model.RelKind("sends to"), edges[0].Kind)
}

func TestComponentExtractorFillsServiceGaps(t *testing.T) {
	e := NewComponentExtractor(nlp.NewParser(nil), nil, testCanon(t), nil)

	els := e.Extract("The Notification Service is still being designed.")

	assert.Contains(t, componentNames(els), "Notification Service")
}

func TestComponentExtractorBindsInterfaces(t *testing.T) {
	e := NewComponentExtractor(nlp.NewParser(nil), nil, testCanon(t), nil)

	els := e.Extract("The Payment Service exposes a REST API. " +
		"The Checkout Service calls the REST API.")

	var iface *model.InterfaceData
	for _, el := range els {
		if el.Type == model.TypeInterface {
			iface = el.Data.(*model.InterfaceData)
		}
	}
	require.NotNil(t, iface)
	assert.Equal(t, "REST API", iface.Name)
	assert.Equal(t, "Payment Service", iface.Provider)
	assert.Equal(t, []string{"Checkout Service"}, iface.Consumers)
}

func TestAddInterfaceConsumerSkipsProviderAndDuplicates(t *testing.T) {
	e := NewComponentExtractor(nlp.NewParser(nil), nil, testCanon(t), nil)

	data := e.s.addInterface("rest api", "Payment Service", 0)
	require.NotNil(t, data)
	e.s.addInterfaceConsumer(data, "Payment Service")
	e.s.addInterfaceConsumer(data, "Checkout Service")
	e.s.addInterfaceConsumer(data, "checkout service")

	assert.Equal(t, []string{"Checkout Service"}, data.Consumers)
}

func TestFuzzyEntity(t *testing.T) {
	e := NewComponentExtractor(nlp.NewParser(nil), nil, testCanon(t), nil)
	e.s.addComponent("Payment Service", "", 0)

	assert.Equal(t, "Payment Service", e.fuzzyEntity("the payment service"))
	assert.Equal(t, "Invoicing Engine", e.fuzzyEntity("Invoicing Engine"),
		"unknown capitalized phrases synthesize a component")
	assert.Equal(t, "", e.fuzzyEntity("some lowercase thing"))
}

func TestDatabaseToDatabaseGuard(t *testing.T) {
	parser := nlp.NewParser(nil)
	e := NewComponentExtractor(parser, nil, testCanon(t), nil)
	e.s.addComponent("Payment Service", "", 0)
	e.s.addComponent("MongoDB", "", 0)
	e.s.addComponent("Redis", "", 0)

	doc, err := parser.Parse("The Payment Service syncs records nightly.")
	require.NoError(t, err)
	e.addGuarded(doc, 0, "MongoDB", "Redis", "uses", 0)

	rels := relationships(e.s.list.Elements())
	require.Len(t, rels, 1, "a service in the sentence replaces the database source")
	assert.Equal(t, "Payment Service", rels[0].From)
	assert.Equal(t, "Redis", rels[0].To)
}

func TestDatabaseToDatabaseGuardDropsWithoutService(t *testing.T) {
	parser := nlp.NewParser(nil)
	e := NewComponentExtractor(parser, nil, testCanon(t), nil)
	e.s.addComponent("MongoDB", "", 0)
	e.s.addComponent("Redis", "", 0)

	doc, err := parser.Parse("Records are mirrored nightly.")
	require.NoError(t, err)
	e.addGuarded(doc, 0, "MongoDB", "Redis", "uses", 0)

	assert.Empty(t, relationships(e.s.list.Elements()))
}
