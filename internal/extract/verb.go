package extract

import (
	"regexp"
	"strings"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/model"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/nlp"
)

// verbContext carries the state of one verb analysis through object
// classification and the special-case rule table.
type verbContext struct {
	doc     *nlp.Doc // full story parse with overlaid entities
	mainDoc *nlp.Doc // main-clause parse
	verb    nlp.Token
	subject string
	actors  []string
	classes []string
	text    string
	storyID int

	methodName  string
	finalMethod string
	params      []model.Param
	lastObjText string // subtree text of the most recent object
}

// processVerb classifies every object of the verb and then runs the
// ordered special-case rules. Verbs without objects are skipped.
func (e *ClassExtractor) processVerb(ctx *verbContext) {
	objects := collectObjects(ctx.mainDoc, ctx.verb.Index)
	if len(objects) == 0 {
		return
	}

	ctx.methodName = ctx.verb.Text
	ctx.finalMethod = ctx.verb.Text

	for _, objIdx := range objects {
		e.classifyObject(ctx, objIdx)
	}
	ctx.methodName = ctx.finalMethod

	// "mark as <status>" collapses into one method name
	if strings.EqualFold(ctx.methodName, "mark") {
		for _, ci := range ctx.mainDoc.Children(ctx.verb.Index) {
			c := ctx.mainDoc.Tokens[ci]
			if c.Dep == "prep" && c.Text == "as" {
				for _, gi := range ctx.mainDoc.Children(ci) {
					if ctx.mainDoc.Tokens[gi].Dep == "pobj" {
						ctx.methodName = "markAs" + normalizeName(ctx.mainDoc.Tokens[gi].Text)
					}
				}
			}
		}
	}

	for _, rule := range verbRules {
		if !rule.when(e, ctx) {
			continue
		}
		rule.apply(e, ctx)
		if rule.terminal {
			return
		}
	}
}

// collectObjects gathers the verb's direct objects plus coordinated
// conjuncts ("files and folders")
func collectObjects(doc *nlp.Doc, verbIdx int) []int {
	var objects []int
	for _, ci := range doc.Children(verbIdx) {
		if doc.Tokens[ci].Dep != "dobj" && doc.Tokens[ci].Dep != "attr" {
			continue
		}
		objects = append(objects, ci)
		cur := ci
		for {
			next := -1
			for _, gi := range doc.Children(cur) {
				if doc.Tokens[gi].Dep == "conj" {
					objects = append(objects, gi)
					next = gi
					break
				}
			}
			if next < 0 {
				break
			}
			cur = next
		}
	}
	return objects
}

// classifyObject routes one object of the verb to an attribute, a
// class reference with a typed relationship, or a plain parameter.
func (e *ClassExtractor) classifyObject(ctx *verbContext, objIdx int) {
	mainDoc := ctx.mainDoc
	subObj := mainDoc.CompoundName(objIdx)
	objText := mainDoc.SubtreeText(objIdx)
	lowSub := strings.ToLower(subObj)
	lowObjText := strings.ToLower(objText)
	method := strings.ToLower(ctx.verb.Text)
	ctx.lastObjText = objText

	// refine the method name from its object
	switch {
	case method == "set" && strings.Contains(lowSub, "reminder"):
		ctx.finalMethod = "setReminder"
	case method == "assign" && strings.Contains(lowSub, "ownership"):
		ctx.finalMethod = "assignOwnership"
	case method == "send" && strings.Contains(lowSub, "email"):
		ctx.finalMethod = "sendEmail"
	case method == "export" && (strings.Contains(lowSub, "lead") || strings.Contains(lowObjText, "lead")):
		ctx.finalMethod = "exportLeads"
	}

	if e.checkAttribute(ctx, subObj, lowSub, lowObjText, method) {
		return
	}

	e.classReference(ctx, objIdx, subObj, lowObjText, method)
}

// checkAttribute matches the object phrase against the attribute
// keyword table, honoring the overrides that reroute specific
// verb/keyword pairs to relationships instead.
func (e *ClassExtractor) checkAttribute(ctx *verbContext, subObj, lowSub, lowObjText, method string) bool {
	for _, attr := range attributePatterns {
		if !strings.Contains(lowSub, attr) || attributeExempt[lowSub] {
			continue
		}
		// "track version" is a relationship, not an attribute
		if attr == "version" && method == "track" {
			return false
		}
		// "send email" is a method, not an attribute
		if attr == "email" && strings.Contains(method, "send") {
			return false
		}
		// "versions of report" references the ReportVersion class
		if attr == "version" && strings.Contains(lowObjText, "report") {
			if !e.s.hasClass("ReportVersion") {
				e.s.addClass("ReportVersion", "", ctx.storyID)
			}
			ctx.params = append(ctx.params, model.Param{Name: subObj, Type: "ReportVersion", Direction: "in"})
			e.s.addRelationship(ctx.subject, "ReportVersion", model.Dependency, ctx.storyID)
			// a report is composed of its versions
			if e.s.hasClass("Report") {
				e.s.addRelationship("Report", "ReportVersion", model.Composition, ctx.storyID)
			}
			return false
		}
		clean := strings.TrimSpace(collapseSpaces(reArticles.ReplaceAllString(subObj, "")))
		e.s.addAttribute(ctx.subject, clean, ctx.storyID, "-", "String")
		return true
	}
	return false
}

// classReference links the object as a class reference, choosing the
// relationship kind from the governing verb and surrounding phrasing.
func (e *ClassExtractor) classReference(ctx *verbContext, objIdx int, subObj, lowObjText, method string) {
	relType := model.Dependency // default weak link

	e.mineAssociatedWith(ctx, objIdx, subObj)

	if associationVerbs[method] {
		relType = model.Association
		e.resolveAssociationTargets(ctx, objIdx, method)
	}

	e.mineContainment(ctx, subObj)

	if strings.Contains(lowObjText, "list of") || strings.Contains(lowObjText, "collection of") {
		relType = model.Aggregation
	}

	singular := normalizeName(subObj)
	found := ""
	for _, c := range ctx.classes {
		if strings.Contains(strings.ToLower(subObj), strings.ToLower(c)) || strings.EqualFold(c, singular) {
			found = c
			break
		}
	}
	if found != "" {
		ctx.params = append(ctx.params, model.Param{Name: subObj, Type: found, Direction: "in"})
		e.s.addRelationship(ctx.subject, found, relType, ctx.storyID)
		return
	}

	// synthesize a class when a strong verb governs a plausible noun
	lowSing := strings.ToLower(singular)
	isPotential := false
	if singular != "" && !isAttributeWord(lowSing) && !classStopList[lowSing] {
		if classCreationVerbs[method] {
			isPotential = true
		}
		relType = model.Association
		if weakVerbs[method] {
			relType = model.Dependency
		}
	}
	if isPotential {
		if !e.s.hasClass(singular) {
			e.s.addClass(singular, "", ctx.storyID)
		}
		ctx.params = append(ctx.params, model.Param{Name: subObj, Type: singular, Direction: "in"})
		e.s.addRelationship(ctx.subject, singular, relType, ctx.storyID)
		return
	}
	ctx.params = append(ctx.params, model.Param{Name: subObj, Type: "String", Direction: "in"})
}

// mineAssociatedWith links "X associated with Y" phrases found inside
// the object's subtree: Contact --> Account
func (e *ClassExtractor) mineAssociatedWith(ctx *verbContext, objIdx int, subObj string) {
	mainDoc := ctx.mainDoc
	for _, ti := range mainDoc.Subtree(objIdx) {
		t := mainDoc.Tokens[ti]
		if !strings.EqualFold(t.Lemma, "associate") && t.Text != "associated" {
			continue
		}
		for _, ci := range mainDoc.Children(ti) {
			c := mainDoc.Tokens[ci]
			if c.Dep != "prep" || c.Text != "with" {
				continue
			}
			for _, gi := range mainDoc.Children(ci) {
				if mainDoc.Tokens[gi].Dep != "pobj" {
					continue
				}
				target := normalizeName(mainDoc.CompoundName(gi))
				// a parenthetical apposition names the real target:
				// "company (Account)"
				for _, ai := range mainDoc.Children(gi) {
					if mainDoc.Tokens[ai].Dep == "appos" {
						target = normalizeName(mainDoc.Tokens[ai].Lemma)
					}
				}
				e.s.addRelationship(normalizeName(subObj), target, model.Association, ctx.storyID)
				if !e.s.hasClass(target) {
					e.s.addClass(target, "", ctx.storyID)
				}
			}
		}
	}
}

// resolveAssociationTargets finds who the object is assigned/sent to:
// dative or "to"-prepositional children of the verb, a recursive "to"
// search inside the object subtree for assign/send, and finally every
// other actor mentioned in the story.
func (e *ClassExtractor) resolveAssociationTargets(ctx *verbContext, objIdx int, method string) {
	mainDoc := ctx.mainDoc
	for _, ci := range mainDoc.Children(ctx.verb.Index) {
		c := mainDoc.Tokens[ci]
		if c.Dep != "dative" && !(c.Dep == "prep" && c.Text == "to") {
			continue
		}
		target := ""
		if c.Dep == "dative" {
			target = c.Text
		} else {
			for _, pi := range mainDoc.Children(ci) {
				if mainDoc.Tokens[pi].Dep == "pobj" {
					target = mainDoc.Tokens[pi].Lemma
				}
			}
		}
		if target != "" {
			norm := normalizeName(target)
			e.s.addRelationship(ctx.subject, norm, model.Association, ctx.storyID)
			if !e.s.hasClass(norm) {
				e.s.addClass(norm, "", ctx.storyID)
			}
		}
	}

	if method == "assign" || method == "send" {
		if ti, ok := findPrepToObject(mainDoc, objIdx); ok {
			target := normalizeName(mainDoc.CompoundName(ti))
			e.s.addRelationship(ctx.subject, target, model.Association, ctx.storyID)
			if !e.s.hasClass(target) {
				e.s.addClass(target, "", ctx.storyID)
			}
		}
	}

	for _, actor := range ctx.actors {
		if !strings.EqualFold(actor, ctx.subject) && actor != "User" {
			e.s.addRelationship(ctx.subject, actor, model.Association, ctx.storyID)
			if !e.s.hasClass(actor) {
				e.s.addClass(actor, "", ctx.storyID)
			}
		}
	}
}

// findPrepToObject searches the object's subtree breadth-first for a
// "to" preposition and returns its object token
func findPrepToObject(doc *nlp.Doc, objIdx int) (int, bool) {
	queue := []int{objIdx}
	visited := map[int]bool{objIdx: true}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		t := doc.Tokens[cur]
		if t.Dep == "prep" && t.Text == "to" {
			for _, pi := range doc.Children(cur) {
				if doc.Tokens[pi].Dep == "pobj" {
					return pi, true
				}
			}
		}
		for _, ci := range doc.Children(cur) {
			if !visited[ci] {
				visited[ci] = true
				queue = append(queue, ci)
			}
		}
	}
	return 0, false
}

// mineContainment reads spatial prepositions governed by the current
// verb as container phrasing: "upload files into a Folder" aggregates
// File inside Folder.
func (e *ClassExtractor) mineContainment(ctx *verbContext, subObj string) {
	doc := ctx.doc
	for _, t := range doc.Tokens {
		if t.Dep != "prep" || !spatialPreps[strings.ToLower(t.Text)] {
			continue
		}
		if t.Head == t.Index || doc.Tokens[t.Head].Text != ctx.verb.Text {
			continue
		}
		for _, gi := range doc.Children(t.Index) {
			g := doc.Tokens[gi]
			if g.Dep != "pobj" {
				continue
			}
			container := normalizeName(g.Lemma)
			if strings.EqualFold(container, ctx.subject) || classStopList[strings.ToLower(container)] {
				continue
			}
			e.s.addClass(container, "", ctx.storyID)
			e.s.addRelationship(container, normalizeName(subObj), model.Aggregation, ctx.storyID)
		}
	}
}

var reMultiSpace = regexp.MustCompile(`\s+`)

func collapseSpaces(s string) string {
	return reMultiSpace.ReplaceAllString(s, " ")
}
