package extract

import (
	"strings"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/model"
)

// classDefault maps a class-name fragment to the attribute and
// operation defaults injected when extraction found none. First
// matching row wins.
type classDefault struct {
	fragment string
	attrs    []string
	ops      []string
}

var passiveDefaults = []classDefault{
	{"version", []string{"versionNumber", "changeLog", "releaseDate"}, nil},
	{"report", []string{"title", "content", "publishedDate", "author"}, nil},
	{"article", []string{"title", "content", "publishedDate", "author"}, nil},
	{"inspection", []string{"status", "scheduledDate", "result", "location"}, nil},
	{"file", []string{"name", "size", "type", "path"}, nil},
	{"folder", []string{"name", "path", "itemCount"}, nil},
	{"link", []string{"url", "expiryDate", "permissions"}, nil},
	{"contact", []string{"name", "phone", "email", "company"}, nil},
	{"opportunity", []string{"stage", "value", "closeDate", "probability"}, nil},
	{"lead", []string{"stage", "value", "closeDate", "probability"}, nil},
	{"account", nil, nil}, // attrs depend on CRM context, resolved below
	{"activity", []string{"type", "date", "notes", "duration"}, nil},
	{"reminder", []string{"date", "time", "note", "status"}, nil},
	{"campaign", []string{"name", "budget", "startDate", "endDate", "type"}, nil},
	{"email", []string{"subject", "body", "recipient", "sender", "date"}, nil},
}

var passiveOps = []classDefault{
	{fragment: "version", ops: []string{"download", "restore", "diff"}},
	{fragment: "inspection", ops: []string{"complete", "cancel", "updateResult"}},
	{fragment: "report", ops: []string{"publish", "archive", "export", "save", "delete"}},
	{fragment: "file", ops: []string{"open", "edit", "share", "download"}},
	{fragment: "folder", ops: []string{"addFile", "removeFile", "listContents"}},
}

// postProcess runs after all stories: actor inheritance plus domain
// defaults for classes that came out of extraction empty.
func (e *ClassExtractor) postProcess() {
	ordered := e.orderedClasses()

	// every non-System actor specializes User, but only when a User
	// actor actually occurred in the input
	if e.s.hasClass("User") {
		for _, data := range ordered {
			if data.Stereotype == "actor" && data.Name != "User" && data.Name != "System" {
				e.s.addRelationship(data.Name, "User", model.Inheritance, 0)
			}
		}
	}

	for _, data := range ordered {
		if len(data.Attributes) > 0 {
			continue
		}
		if data.Stereotype == "actor" {
			e.injectActorDefaults(data)
		} else {
			e.injectPassiveDefaults(data)
		}
	}
}

func (e *ClassExtractor) orderedClasses() []*model.ClassData {
	var out []*model.ClassData
	for _, el := range e.s.list.Elements() {
		if el.Type != model.TypeClass {
			continue
		}
		if data, ok := el.Data.(*model.ClassData); ok {
			out = append(out, data)
		}
	}
	return out
}

func (e *ClassExtractor) injectActorDefaults(data *model.ClassData) {
	for _, d := range []string{"id", "name", "email"} {
		e.s.addAttribute(data.Name, d, 0, "-", "String")
	}
	if len(data.Methods) > 0 {
		return
	}
	low := strings.ToLower(data.Name)
	switch {
	case strings.Contains(low, "inspector"):
		e.s.addMethod(data.Name, "receiveWork", 0, []model.Param{
			{Name: "assignment", Type: "Inspection", Direction: "in"},
		}, "+", "void")
		e.s.addMethod(data.Name, "updateStatus", 0, nil, "+", "void")
	case strings.Contains(low, "researcher"):
		e.s.addMethod(data.Name, "login", 0, nil, "+", "void")
	case data.Name == "User":
		e.s.addMethod(data.Name, "login", 0, nil, "+", "void")
		e.s.addMethod(data.Name, "logout", 0, nil, "+", "void")
	}
}

func (e *ClassExtractor) injectPassiveDefaults(data *model.ClassData) {
	low := strings.ToLower(data.Name)

	attrs := []string{"id", "description"}
	for _, row := range passiveDefaults {
		if !strings.Contains(low, row.fragment) {
			continue
		}
		if row.fragment == "account" {
			// CRM context gives Account business fields, otherwise it
			// is a login account
			if e.hasCRMContext() {
				attrs = []string{"name", "industry", "location"}
			} else {
				attrs = []string{"username", "password", "email"}
			}
		} else {
			attrs = row.attrs
		}
		break
	}
	for _, d := range attrs {
		e.s.addAttribute(data.Name, d, 0, "-", "String")
	}

	ops := []string{"save", "delete"}
	for _, row := range passiveOps {
		if strings.Contains(low, row.fragment) {
			ops = row.ops
			break
		}
	}
	for _, op := range ops {
		e.s.addMethod(data.Name, op, 0, nil, "+", "void")
	}
}

func (e *ClassExtractor) hasCRMContext() bool {
	for name := range e.s.classes {
		if strings.Contains(name, "lead") || strings.Contains(name, "opportunity") {
			return true
		}
	}
	return false
}
