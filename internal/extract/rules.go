package extract

import (
	"strings"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/model"
)

// verbRule is one entry of the ordered special-case table applied
// after object classification. Rules run top to bottom; a terminal
// rule stops the chain.
type verbRule struct {
	name     string
	terminal bool
	when     func(*ClassExtractor, *verbContext) bool
	apply    func(*ClassExtractor, *verbContext)
}

func methodLower(ctx *verbContext) string { return strings.ToLower(ctx.methodName) }

var verbRules = []verbRule{
	{
		// search verbs yield a query method with a typed List return
		// instead of the default void method
		name:     "search",
		terminal: true,
		when: func(_ *ClassExtractor, ctx *verbContext) bool {
			m := methodLower(ctx)
			return m == "search" || m == "locate" || m == "find"
		},
		apply: (*ClassExtractor).applySearch,
	},
	{
		name: "permissions",
		when: func(_ *ClassExtractor, ctx *verbContext) bool {
			return strings.Contains(strings.ToLower(ctx.lastObjText), "permission") || methodLower(ctx) == "control"
		},
		apply: func(e *ClassExtractor, ctx *verbContext) {
			// parenthetical lists enumerate the permission levels:
			// "permissions (Viewer, Editor)"
			if m := reParenthetic.FindStringSubmatch(ctx.text); m != nil {
				ctx.params = append(ctx.params, model.Param{
					Name:      "permissions",
					Type:      "Enum{" + m[1] + "}",
					Direction: "in",
				})
			}
		},
	},
	{
		name: "default method",
		when: func(_ *ClassExtractor, _ *verbContext) bool { return true },
		apply: func(e *ClassExtractor, ctx *verbContext) {
			e.s.addMethod(ctx.subject, ctx.methodName, ctx.storyID, ctx.params, "+", "void")
		},
	},
	{
		name: "version history",
		when: func(_ *ClassExtractor, ctx *verbContext) bool {
			return methodLower(ctx) == "track" && strings.Contains(strings.ToLower(ctx.lastObjText), "history")
		},
		apply: (*ClassExtractor).applyVersionHistory,
	},
	{
		name: "trash",
		when: func(_ *ClassExtractor, ctx *verbContext) bool {
			low := strings.ToLower(ctx.text)
			return strings.Contains(low, "trash") || strings.Contains(low, "recycle bin")
		},
		apply: (*ClassExtractor).applyTrash,
	},
	{
		name: "move",
		when: func(_ *ClassExtractor, ctx *verbContext) bool { return methodLower(ctx) == "move" },
		apply: func(e *ClassExtractor, ctx *verbContext) {
			e.s.addRelationship(ctx.subject, "Folder", model.Dependency, ctx.storyID)
			if !e.s.hasClass("Folder") {
				e.s.addClass("Folder", "", ctx.storyID)
			}
		},
	},
	{
		name: "alert",
		when: func(_ *ClassExtractor, ctx *verbContext) bool { return methodLower(ctx) == "alert" },
		apply: (*ClassExtractor).applyAlert,
	},
	{
		name: "manage",
		when: func(_ *ClassExtractor, ctx *verbContext) bool { return methodLower(ctx) == "manage" },
		apply: (*ClassExtractor).applyManage,
	},
	{
		name: "activity log",
		when: func(_ *ClassExtractor, ctx *verbContext) bool {
			return strings.Contains(strings.ToLower(ctx.text), "activity") || methodLower(ctx) == "log"
		},
		apply: (*ClassExtractor).applyActivityLog,
	},
	{
		name: "dashboard",
		when: func(_ *ClassExtractor, ctx *verbContext) bool {
			return strings.Contains(strings.ToLower(ctx.text), "dashboard") && methodLower(ctx) == "view"
		},
		apply: func(e *ClassExtractor, ctx *verbContext) {
			e.s.addClass("Dashboard", "", ctx.storyID)
			e.s.addRelationship(ctx.subject, "Dashboard", model.Dependency, ctx.storyID)
		},
	},
}

// applySearch builds the query method: the "for" object names the
// element type of the returned list, the "by" objects become the
// search parameters.
func (e *ClassExtractor) applySearch(ctx *verbContext) {
	mainDoc := ctx.mainDoc
	returnType := "List<String>"
	target := ""
	for _, ci := range mainDoc.Children(ctx.verb.Index) {
		c := mainDoc.Tokens[ci]
		if c.Dep == "prep" && c.Text == "for" {
			for _, gi := range mainDoc.Children(ci) {
				if mainDoc.Tokens[gi].Dep == "pobj" {
					target = normalizeName(mainDoc.Tokens[gi].Text)
					returnType = "List<" + target + ">"
				}
			}
		}
	}

	var searchParams []model.Param
	for _, ci := range mainDoc.Children(ctx.verb.Index) {
		c := mainDoc.Tokens[ci]
		if c.Dep != "prep" || c.Text != "by" {
			continue
		}
		for _, gi := range mainDoc.Children(ci) {
			g := mainDoc.Tokens[gi]
			if g.Dep != "pobj" && g.Dep != "conj" && g.Dep != "dobj" {
				continue
			}
			searchParams = append(searchParams, model.Param{Name: g.Text, Type: "String", Direction: "in"})
			for _, ggi := range mainDoc.Children(gi) {
				if mainDoc.Tokens[ggi].Dep == "conj" {
					searchParams = append(searchParams, model.Param{Name: mainDoc.Tokens[ggi].Text, Type: "String", Direction: "in"})
				}
			}
		}
	}
	if len(searchParams) > 0 {
		ctx.params = searchParams
	}

	e.s.addMethod(ctx.subject, ctx.methodName, ctx.storyID, ctx.params, "+", returnType)
	if target != "" && target != "String" && target != "Int" && target != "Void" {
		e.s.addRelationship(ctx.subject, target, model.Dependency, ctx.storyID)
	}
}

// applyVersionHistory models "track the version history for X": a
// Version class composed into the tracked file class, plus restore
// and optional revert operations on the subject.
func (e *ClassExtractor) applyVersionHistory(ctx *verbContext) {
	mainDoc := ctx.mainDoc
	e.s.addClass("Version", "", ctx.storyID)
	e.s.addAttribute("Version", "timestamp", ctx.storyID, "-", "String")
	e.s.addAttribute("Version", "author", ctx.storyID, "-", "String")
	e.s.addAttribute("Version", "changeLog", ctx.storyID, "-", "String")

	for _, ci := range mainDoc.Children(ctx.verb.Index) {
		for _, gi := range mainDoc.Children(ci) {
			g := mainDoc.Tokens[gi]
			if g.Dep != "pobj" || mainDoc.Tokens[g.Head].Text != "for" {
				continue
			}
			fileClass := normalizeName(g.Text)
			e.s.addClass(fileClass, "", ctx.storyID)
			e.s.addRelationship(fileClass, "Version", model.Composition, ctx.storyID)
			e.s.addRelationship(ctx.subject, fileClass, model.Dependency, ctx.storyID)
		}
	}

	e.s.addMethod("Version", "getDetails", ctx.storyID, nil, "+", "String")
	e.s.addMethod("Version", "restore", ctx.storyID, nil, "+", "void")
	e.s.addRelationship(ctx.subject, "Version", model.Association, ctx.storyID)

	if strings.Contains(strings.ToLower(ctx.text), "revert") {
		e.s.addMethod(ctx.subject, "revert", ctx.storyID, []model.Param{
			{Name: "toVersion", Type: "Version"},
		}, "+", "void")
	}
}

func (e *ClassExtractor) applyTrash(ctx *verbContext) {
	name := "Trash"
	if strings.Contains(strings.ToLower(ctx.text), "recycle bin") {
		name = "RecycleBin"
	}
	e.s.addClass(name, "", ctx.storyID)
	e.s.addRelationship(ctx.subject, name, model.Dependency, ctx.storyID)
	if strings.Contains(methodLower(ctx), "recover") {
		e.s.addMethod(ctx.subject, "recover", ctx.storyID, []model.Param{
			{Name: "files", Type: "File"},
			{Name: "from", Type: name},
		}, "+", "void")
		e.s.addMethod(name, "restore", ctx.storyID, []model.Param{
			{Name: "file", Type: "File"},
		}, "+", "void")
	}
}

// applyAlert wires System notifications to every other actor and adds
// the notified user as a parameter of the alert method.
func (e *ClassExtractor) applyAlert(ctx *verbContext) {
	if ctx.subject != "System" {
		return
	}
	for _, actor := range ctx.actors {
		if actor == "System" {
			continue
		}
		e.s.addRelationship("System", actor, model.Dependency, ctx.storyID)
		e.s.appendMethodParams(ctx.subject, ctx.methodName, model.Param{Name: "user", Type: actor, Direction: "in"})
	}
	if strings.Contains(strings.ToLower(ctx.text), "capacity") {
		e.s.appendMethodParams(ctx.subject, ctx.methodName, model.Param{Name: "condition", Type: "String", Direction: "in"})
	}
}

// applyManage expands "manage X" into a managed class with create,
// update and delete lifecycle methods
func (e *ClassExtractor) applyManage(ctx *verbContext) {
	for i, t := range ctx.doc.Tokens {
		if t.Text != "manage" {
			continue
		}
		for _, ci := range ctx.doc.Children(i) {
			c := ctx.doc.Tokens[ci]
			if c.Dep != "dobj" {
				continue
			}
			target := normalizeName(c.Text)
			if classStopList[strings.ToLower(target)] {
				continue
			}
			e.s.addClass(target, "", ctx.storyID)
			e.s.addRelationship(ctx.subject, target, model.Dependency, ctx.storyID)
			e.s.addMethod(target, "create", ctx.storyID, nil, "+", "void")
			e.s.addMethod(target, "update", ctx.storyID, nil, "+", "void")
			e.s.addMethod(target, "delete", ctx.storyID, nil, "+", "void")
		}
	}
}

// applyActivityLog models CRM activity logging: an Activity class
// associated to the subject and to whatever the activity is logged
// against.
func (e *ClassExtractor) applyActivityLog(ctx *verbContext) {
	e.s.addClass("Activity", "", ctx.storyID)
	e.s.addRelationship(ctx.subject, "Activity", model.Association, ctx.storyID)
	for i, t := range ctx.doc.Tokens {
		low := strings.ToLower(t.Text)
		if low != "log" && low != "activity" {
			continue
		}
		for _, ci := range ctx.doc.Children(i) {
			c := ctx.doc.Tokens[ci]
			if c.Dep != "prep" || c.Text != "against" {
				continue
			}
			for _, gi := range ctx.doc.Children(ci) {
				g := ctx.doc.Tokens[gi]
				if g.Dep != "pobj" && g.Dep != "dobj" {
					continue
				}
				targets := []int{gi}
				for _, ggi := range ctx.doc.Children(gi) {
					if ctx.doc.Tokens[ggi].Dep == "conj" {
						targets = append(targets, ggi)
					}
				}
				for _, ti := range targets {
					target := normalizeName(ctx.doc.Tokens[ti].Lemma)
					if classStopList[strings.ToLower(target)] {
						continue
					}
					e.s.addRelationship("Activity", target, model.Association, ctx.storyID)
					if !e.s.hasClass(target) {
						e.s.addClass(target, "", ctx.storyID)
					}
				}
			}
		}
	}
}
