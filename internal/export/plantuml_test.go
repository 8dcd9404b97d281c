package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/model"
)

func render(t *testing.T, d Diagram, els []*model.Element) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WritePlantUML(&buf, d, els))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "@startuml\n"))
	assert.True(t, strings.HasSuffix(out, "@enduml\n"))
	return out
}

func el(typ model.ElementType, data any) *model.Element {
	return &model.Element{Type: typ, Data: data}
}

func TestWriteClassDiagram(t *testing.T) {
	els := []*model.Element{
		el(model.TypeClass, &model.ClassData{
			Name:       "User",
			Stereotype: "actor",
			Attributes: []model.Attribute{{Name: "id", Visibility: "-"}},
			Methods: []model.Method{{
				Name:       "upload",
				Params:     []model.Param{{Name: "file", Type: "File"}},
				Visibility: "+",
			}},
		}),
		el(model.TypeClass, &model.ClassData{Name: "File"}),
		el(model.TypeClass, &model.ClassData{Name: "Folder"}),
		el(model.TypeRelationship, &model.RelationshipData{From: "User", To: "File", Kind: model.Association}),
		el(model.TypeRelationship, &model.RelationshipData{From: "Folder", To: "File", Kind: model.Aggregation}),
		el(model.TypeRelationship, &model.RelationshipData{From: "Admin", To: "User", Kind: model.Inheritance}),
	}

	out := render(t, DiagramClass, els)

	assert.Contains(t, out, `class "User" as User <<actor>>`)
	assert.Contains(t, out, "-id : int", "missing attribute types are guessed from the name")
	assert.Contains(t, out, `+upload(in "file" : File) : void`)
	assert.Contains(t, out, "User --> File")
	assert.Contains(t, out, "Folder o-- File")
	assert.Contains(t, out, "Admin --|> User")
}

func TestGuessType(t *testing.T) {
	assert.Equal(t, "int", guessType("itemCount"))
	assert.Equal(t, "Date", guessType("createdAt"))
	assert.Equal(t, "float", guessType("totalAmount"))
	assert.Equal(t, "String", guessType("note"))
}

func TestWriteUseCaseDiagramResolvesNormalizedEndpoints(t *testing.T) {
	els := []*model.Element{
		el(model.TypeClass, &model.ClassData{Name: "User", Stereotype: "actor"}),
		el(model.TypeUseCase, &model.UseCaseData{Name: "Upload Files"}),
		// endpoints were normalized at extraction time
		el(model.TypeRelationship, &model.RelationshipData{From: "User", To: "UploadFiles", Kind: model.ActorLink}),
	}

	out := render(t, DiagramUseCase, els)

	assert.Contains(t, out, `actor "User" as User`)
	assert.Contains(t, out, "rectangle System {")
	assert.Contains(t, out, `usecase "Upload Files" as UploadFiles`)
	assert.Contains(t, out, "User --> UploadFiles")
}

func TestWriteUseCaseDiagramSkipsUnresolvedEndpoints(t *testing.T) {
	els := []*model.Element{
		el(model.TypeClass, &model.ClassData{Name: "User", Stereotype: "actor"}),
		el(model.TypeRelationship, &model.RelationshipData{From: "User", To: "MissingGoal", Kind: model.ActorLink}),
	}

	out := render(t, DiagramUseCase, els)
	assert.NotContains(t, out, "MissingGoal")
}

func TestWriteSequenceDiagram(t *testing.T) {
	els := []*model.Element{
		el(model.TypeSequenceMessage, &model.SequenceMessageData{
			Sender:   "User",
			Receiver: "Billing System",
			Message:  `export the "monthly" report`,
		}),
	}

	out := render(t, DiagramSequence, els)

	assert.Contains(t, out, `participant "Billing System" as Billing_System`)
	assert.Contains(t, out, `participant "User" as User`)
	assert.Contains(t, out, "User -> Billing_System: export the 'monthly' report")
}

func TestWriteActivityDiagram(t *testing.T) {
	els := []*model.Element{
		el(model.TypeActivityStep, &model.ActivityStepData{Lane: "User", Step: "Upload files"}),
		el(model.TypeActivityStep, &model.ActivityStepData{Lane: "User", Step: "Share folder"}),
		el(model.TypeActivityStep, &model.ActivityStepData{Lane: "Admin", Step: "Review audit log"}),
	}

	out := render(t, DiagramActivity, els)

	assert.Contains(t, out, "partition Admin {")
	assert.Contains(t, out, "partition User {")
	assert.Contains(t, out, ":Upload files;")
	assert.Contains(t, out, ":Review audit log;")
	assert.Less(t, strings.Index(out, "partition Admin"), strings.Index(out, "partition User"),
		"lanes are emitted in sorted order")
}

func TestWriteComponentDiagram(t *testing.T) {
	els := []*model.Element{
		el(model.TypeComponent, &model.ComponentData{Name: "Payment Service"}),
		el(model.TypeComponent, &model.ComponentData{Name: "Stripe", Stereotype: "external"}),
		el(model.TypeInterface, &model.InterfaceData{
			Name:      "REST API",
			Provider:  "Payment Service",
			Consumers: []string{"Checkout"},
		}),
		el(model.TypeRelationship, &model.RelationshipData{From: "Payment Service", To: "Stripe", Kind: "calls"}),
	}

	out := render(t, DiagramComponent, els)

	assert.Contains(t, out, `component "Payment Service" as Payment_Service`)
	assert.Contains(t, out, `component "Stripe" as Stripe <<external>>`)
	assert.Contains(t, out, `interface "REST API" as REST_API`)
	assert.Contains(t, out, "Payment_Service -- REST_API")
	assert.Contains(t, out, "Checkout --( REST_API")
	assert.Contains(t, out, "Payment_Service --> Stripe : calls")
}

func TestWriteDeploymentDiagramNestsChildren(t *testing.T) {
	els := []*model.Element{
		el(model.TypeNode, &model.NodeData{Name: "Linux Server", Children: []string{"Docker Container"}}),
		el(model.TypeNode, &model.NodeData{Name: "Docker Container", Artifacts: []string{"app.jar"}}),
		el(model.TypeDevice, &model.NodeData{Name: "Web Browser", Stereotype: "device"}),
		el(model.TypeEnvironment, &model.EnvironmentData{Name: "Kubernetes"}),
		el(model.TypeArtifact, &model.ArtifactData{Name: "app.jar"}),
		el(model.TypeRelationship, &model.RelationshipData{From: "Web Browser", To: "Linux Server", Kind: "connects to"}),
	}

	out := render(t, DiagramDeployment, els)

	assert.Contains(t, out, `node "Linux Server" as Linux_Server {`)
	assert.Contains(t, out, `  node "Docker Container" as Docker_Container {`)
	assert.Contains(t, out, `  artifact "app.jar"`)
	assert.Contains(t, out, `node "Web Browser" as Web_Browser <<device>> {`)
	assert.Contains(t, out, `cloud "Kubernetes" as Kubernetes`)
	assert.Contains(t, out, "Web_Browser --> Linux_Server : connects to")

	// the nested container is not re-emitted at top level
	assert.NotContains(t, out, "\nnode \"Docker Container\"")
	// the artifact inside a node is not duplicated at top level
	assert.NotContains(t, out, `artifact "app.jar" as app_jar`)
}

func TestWriteJSONRoundTrips(t *testing.T) {
	els := []*model.Element{
		el(model.TypeClass, &model.ClassData{Name: "User", Stereotype: "actor"}),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, els))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Class", decoded[0]["type"])
}

func TestWritePlantUMLUnknownDiagram(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WritePlantUML(&buf, Diagram("mindmap"), nil))
}
