// Package export emits the extracted element list as JSON or as
// PlantUML source for the downstream renderer.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/model"
)

// Diagram selects the PlantUML writer
type Diagram string

const (
	DiagramClass      Diagram = "class"
	DiagramUseCase    Diagram = "usecase"
	DiagramSequence   Diagram = "sequence"
	DiagramActivity   Diagram = "activity"
	DiagramComponent  Diagram = "component"
	DiagramDeployment Diagram = "deployment"
)

// WriteJSON writes the element list as indented JSON
func WriteJSON(w io.Writer, elements []*model.Element) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(elements); err != nil {
		return fmt.Errorf("failed to encode elements: %w", err)
	}
	return nil
}

// WritePlantUML dispatches to the writer for the diagram type
func WritePlantUML(w io.Writer, d Diagram, elements []*model.Element) error {
	switch d {
	case DiagramClass:
		return writeClassDiagram(w, elements)
	case DiagramUseCase:
		return writeUseCaseDiagram(w, elements)
	case DiagramSequence:
		return writeSequenceDiagram(w, elements)
	case DiagramActivity:
		return writeActivityDiagram(w, elements)
	case DiagramComponent:
		return writeComponentDiagram(w, elements)
	case DiagramDeployment:
		return writeDeploymentDiagram(w, elements)
	default:
		return fmt.Errorf("unknown diagram type: %s", d)
	}
}

var (
	reNonAlias = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	reNonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// alias turns a display name into a PlantUML-safe identifier
func alias(name string) string {
	return reNonAlias.ReplaceAllString(name, "_")
}

// normalizeKey strips everything but letters and digits, lowercased.
// Relationship endpoints are registered under normalized names while
// use case elements keep their spacing, so lookups go through this.
func normalizeKey(text string) string {
	return strings.ToLower(reNonAlnum.ReplaceAllString(text, ""))
}

// makeID builds a safe PlantUML identifier from a display name
func makeID(text string) string {
	clean := reNonAlnum.ReplaceAllString(text, "")
	if clean == "" {
		return "Unknown"
	}
	return clean
}

// relArrows map relationship kinds to PlantUML arrows
var relArrows = map[model.RelKind]string{
	model.Association: "-->",
	model.Inheritance: "--|>",
	model.Realization: "..|>",
	model.Dependency:  "..>",
	model.Aggregation: "o--",
	model.Composition: "*--",
	model.ActorLink:   "-->",
}

func arrowFor(kind model.RelKind) string {
	if a, ok := relArrows[kind]; ok {
		return a
	}
	return "-->"
}

func classElements(elements []*model.Element) []*model.ClassData {
	var out []*model.ClassData
	for _, el := range elements {
		if el.Type != model.TypeClass {
			continue
		}
		if data, ok := el.Data.(*model.ClassData); ok {
			out = append(out, data)
		}
	}
	return out
}

func relationships(elements []*model.Element) []*model.RelationshipData {
	var out []*model.RelationshipData
	for _, el := range elements {
		if el.Type != model.TypeRelationship {
			continue
		}
		if data, ok := el.Data.(*model.RelationshipData); ok {
			out = append(out, data)
		}
	}
	return out
}
