package extract

// attributePatterns are object keywords routed to attributes instead
// of class references. Matched as substrings of the object phrase, in
// order.
var attributePatterns = []string{
	"name", "address", "date", "id", "email", "type", "status", "number", "code",
	"password", "username", "price", "description", "quantity", "totalamount",
	"orderdate", "shippingaddress", "picture", "image", "version",
}

// attributeExempt are object phrases that look like attributes by
// substring but stay entity references
var attributeExempt = map[string]bool{
	"contact": true, "structure": true, "communication": true, "account": true,
	"ownership": true, "reminder": true, "opportunity": true, "lead": true,
}

// classStopList filters generic concepts out of class candidates
var classStopList = map[string]bool{
	"work": true, "talks": true, "articles": true, "information": true,
	"time": true, "future": true, "immediate": true, "teammates": true,
	"me": true, "dataset": true, "version": true, "versions": true, "it": true,
	"them": true, "data": true, "storage": true, "access": true,
	"content": true, "history": true, "system": true, "%": true, "space": true,
	"mistake": true, "mistakes": true, "interface": true, "organization": true,
	"capacity": true, "drag-and-drop": true, "performance": true,
	"revenue": true, "forecast": true, "value": true, "pipeline": true,
	"interaction": true, "stage": true, "potential": true,
}

// ignoredVerbLemmas never become methods
var ignoredVerbLemmas = map[string]bool{
	"want": true, "be": true, "have": true, "can": true, "use": true, "make": true,
}

// associationVerbs govern objects with Association strength
var associationVerbs = map[string]bool{
	"assign": true, "manage": true, "create": true, "have": true,
	"owns": true, "upload": true, "share": true, "send": true,
}

// classCreationVerbs may synthesize a class for an unmatched object
var classCreationVerbs = map[string]bool{
	"assign": true, "manage": true, "create": true, "upload": true,
	"download": true, "share": true, "view": true,
}

// weakVerbs downgrade a synthesized reference to a Dependency
var weakVerbs = map[string]bool{
	"view": true, "download": true,
}

// spatialPreps mark container phrasing: the prepositional object
// aggregates the verb's direct object
var spatialPreps = map[string]bool{
	"into": true, "within": true, "inside": true, "in": true,
}

// commonActorVocabulary is scanned for secondary use case actors
var commonActorVocabulary = []string{
	"administrator", "admin", "manager", "supervisor", "inspector",
	"customer", "system", "user",
}
