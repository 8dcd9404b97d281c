package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/model"
)

func writeClassDiagram(w io.Writer, elements []*model.Element) error {
	fmt.Fprintln(w, "@startuml")
	fmt.Fprintln(w, "skinparam classAttributeIconSize 0")

	for _, data := range classElements(elements) {
		stereotype := ""
		if data.Stereotype != "" {
			stereotype = fmt.Sprintf(" <<%s>>", data.Stereotype)
		}
		fmt.Fprintf(w, "class %q as %s%s {\n", data.Name, alias(data.Name), stereotype)

		for _, attr := range data.Attributes {
			typ := attr.Type
			if typ == "" {
				typ = guessType(attr.Name)
			}
			fmt.Fprintf(w, "  %s%s : %s\n", attr.Visibility, attr.Name, typ)
		}
		fmt.Fprintln(w, "  ..")

		for _, m := range data.Methods {
			var params []string
			for _, p := range m.Params {
				dir := p.Direction
				if dir == "" {
					dir = "in"
				}
				params = append(params, fmt.Sprintf("%s %q : %s", dir, p.Name, p.Type))
			}
			ret := m.ReturnType
			if ret == "" {
				ret = "void"
			}
			fmt.Fprintf(w, "  %s%s(%s) : %s\n", m.Visibility, m.Name, strings.Join(params, ", "), ret)
		}
		fmt.Fprintln(w, "}")
	}

	for _, rel := range relationships(elements) {
		fmt.Fprintf(w, "%s %s %s\n", alias(rel.From), arrowFor(rel.Kind), alias(rel.To))
	}

	fmt.Fprintln(w, "@enduml")
	return nil
}

// guessType infers an attribute type from its name when extraction
// ran without one
func guessType(name string) string {
	low := strings.ToLower(name)
	switch {
	case containsAny(low, "id", "count", "num", "quantity"):
		return "int"
	case containsAny(low, "is", "has", "active", "valid"):
		return "boolean"
	case containsAny(low, "date", "time", "created"):
		return "Date"
	case containsAny(low, "price", "cost", "amount"):
		return "float"
	default:
		return "String"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// writeUseCaseDiagram keeps actor and use case display names intact
// and wires relationships through a normalized key lookup, since
// relationship endpoints were normalized at extraction time.
func writeUseCaseDiagram(w io.Writer, elements []*model.Element) error {
	fmt.Fprintln(w, "@startuml")
	fmt.Fprintln(w, "left to right direction")

	idLookup := map[string]string{}
	var actorIDs, useCaseIDs []string
	actorNames := map[string]string{}
	useCaseNames := map[string]string{}

	for _, el := range elements {
		switch el.Type {
		case model.TypeClass:
			data, ok := el.Data.(*model.ClassData)
			if !ok || data.Stereotype != "actor" {
				continue
			}
			id := makeID(data.Name)
			idLookup[normalizeKey(data.Name)] = id
			if _, seen := actorNames[id]; !seen {
				actorIDs = append(actorIDs, id)
				actorNames[id] = data.Name
			}
		case model.TypeUseCase:
			data, ok := el.Data.(*model.UseCaseData)
			if !ok {
				continue
			}
			id := makeID(data.Name)
			idLookup[normalizeKey(data.Name)] = id
			if _, seen := useCaseNames[id]; !seen {
				useCaseIDs = append(useCaseIDs, id)
				useCaseNames[id] = data.Name
			}
		}
	}

	for _, id := range actorIDs {
		fmt.Fprintf(w, "actor %q as %s\n", actorNames[id], id)
	}
	fmt.Fprintln(w, "rectangle System {")
	for _, id := range useCaseIDs {
		fmt.Fprintf(w, "usecase %q as %s\n", useCaseNames[id], id)
	}
	fmt.Fprintln(w, "}")

	for _, rel := range relationships(elements) {
		idA := idLookup[normalizeKey(rel.From)]
		idB := idLookup[normalizeKey(rel.To)]
		if idA == "" || idB == "" {
			continue
		}
		fmt.Fprintf(w, "%s --> %s\n", idA, idB)
	}

	fmt.Fprintln(w, "@enduml")
	return nil
}

func writeSequenceDiagram(w io.Writer, elements []*model.Element) error {
	fmt.Fprintln(w, "@startuml")

	seen := map[string]bool{}
	var participants []string
	for _, el := range elements {
		data, ok := el.Data.(*model.SequenceMessageData)
		if el.Type != model.TypeSequenceMessage || !ok {
			continue
		}
		for _, p := range []string{data.Sender, data.Receiver} {
			if !seen[p] {
				seen[p] = true
				participants = append(participants, p)
			}
		}
	}
	sort.Strings(participants)
	for _, p := range participants {
		fmt.Fprintf(w, "participant %q as %s\n", p, alias(p))
	}

	for _, el := range elements {
		data, ok := el.Data.(*model.SequenceMessageData)
		if el.Type != model.TypeSequenceMessage || !ok {
			continue
		}
		msg := strings.ReplaceAll(data.Message, `"`, "'")
		fmt.Fprintf(w, "%s -> %s: %s\n", alias(data.Sender), alias(data.Receiver), msg)
	}

	fmt.Fprintln(w, "@enduml")
	return nil
}

func writeActivityDiagram(w io.Writer, elements []*model.Element) error {
	fmt.Fprintln(w, "@startuml")

	laneSeen := map[string]bool{}
	var lanes []string
	for _, el := range elements {
		data, ok := el.Data.(*model.ActivityStepData)
		if el.Type != model.TypeActivityStep || !ok {
			continue
		}
		if !laneSeen[data.Lane] {
			laneSeen[data.Lane] = true
			lanes = append(lanes, data.Lane)
		}
	}
	sort.Strings(lanes)

	for _, lane := range lanes {
		fmt.Fprintf(w, "partition %s {\n", lane)
		for _, el := range elements {
			data, ok := el.Data.(*model.ActivityStepData)
			if el.Type != model.TypeActivityStep || !ok || data.Lane != lane {
				continue
			}
			fmt.Fprintf(w, ":%s;\n", data.Step)
		}
		fmt.Fprintln(w, "}")
	}

	fmt.Fprintln(w, "@enduml")
	return nil
}
