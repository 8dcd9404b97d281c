package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/model"
)

func writeComponentDiagram(w io.Writer, elements []*model.Element) error {
	fmt.Fprintln(w, "@startuml")

	for _, el := range elements {
		switch el.Type {
		case model.TypeComponent:
			data, ok := el.Data.(*model.ComponentData)
			if !ok {
				continue
			}
			stereotype := ""
			if data.Stereotype != "" {
				stereotype = fmt.Sprintf(" <<%s>>", data.Stereotype)
			}
			fmt.Fprintf(w, "component %q as %s%s\n", data.Name, alias(data.Name), stereotype)
		case model.TypeInterface:
			data, ok := el.Data.(*model.InterfaceData)
			if !ok {
				continue
			}
			fmt.Fprintf(w, "interface %q as %s\n", data.Name, alias(data.Name))
			if data.Provider != "" {
				fmt.Fprintf(w, "%s -- %s\n", alias(data.Provider), alias(data.Name))
			}
			for _, c := range data.Consumers {
				fmt.Fprintf(w, "%s --( %s\n", alias(c), alias(data.Name))
			}
		}
	}

	for _, rel := range relationships(elements) {
		fmt.Fprintf(w, "%s --> %s : %s\n", alias(rel.From), alias(rel.To), rel.Kind)
	}

	fmt.Fprintln(w, "@enduml")
	return nil
}

// writeDeploymentDiagram nests child nodes and artifacts inside their
// parents; a node already drawn inside another is not re-emitted at
// top level.
func writeDeploymentDiagram(w io.Writer, elements []*model.Element) error {
	fmt.Fprintln(w, "@startuml")

	nodes := map[string]*model.NodeData{}
	var order []string
	nested := map[string]bool{}

	for _, el := range elements {
		if el.Type != model.TypeNode && el.Type != model.TypeDevice {
			continue
		}
		data, ok := el.Data.(*model.NodeData)
		if !ok {
			continue
		}
		k := strings.ToLower(data.Name)
		if _, seen := nodes[k]; seen {
			continue
		}
		nodes[k] = data
		order = append(order, k)
		for _, child := range data.Children {
			nested[strings.ToLower(child)] = true
		}
	}

	var emit func(w io.Writer, data *model.NodeData, depth int)
	emit = func(w io.Writer, data *model.NodeData, depth int) {
		indent := strings.Repeat("  ", depth)
		stereotype := ""
		if data.Stereotype != "" {
			stereotype = fmt.Sprintf(" <<%s>>", data.Stereotype)
		}
		fmt.Fprintf(w, "%snode %q as %s%s {\n", indent, data.Name, alias(data.Name), stereotype)
		for _, a := range data.Artifacts {
			fmt.Fprintf(w, "%s  artifact %q\n", indent, a)
		}
		for _, childName := range data.Children {
			if child, ok := nodes[strings.ToLower(childName)]; ok {
				emit(w, child, depth+1)
			} else {
				fmt.Fprintf(w, "%s  node %q\n", indent, childName)
			}
		}
		fmt.Fprintf(w, "%s}\n", indent)
	}

	for _, k := range order {
		if nested[k] {
			continue
		}
		emit(w, nodes[k], 0)
	}

	for _, el := range elements {
		switch el.Type {
		case model.TypeEnvironment:
			if data, ok := el.Data.(*model.EnvironmentData); ok {
				fmt.Fprintf(w, "cloud %q as %s\n", data.Name, alias(data.Name))
			}
		case model.TypeArtifact:
			if data, ok := el.Data.(*model.ArtifactData); ok && !artifactNested(nodes, data.Name) {
				fmt.Fprintf(w, "artifact %q as %s\n", data.Name, alias(data.Name))
			}
		}
	}

	for _, rel := range relationships(elements) {
		fmt.Fprintf(w, "%s --> %s : %s\n", alias(rel.From), alias(rel.To), rel.Kind)
	}

	fmt.Fprintln(w, "@enduml")
	return nil
}

func artifactNested(nodes map[string]*model.NodeData, name string) bool {
	for _, n := range nodes {
		for _, a := range n.Artifacts {
			if strings.EqualFold(a, name) {
				return true
			}
		}
	}
	return false
}
