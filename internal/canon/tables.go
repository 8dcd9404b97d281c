package canon

import "regexp"

// fixedRule is one hand-curated canonical mapping. The fixed tables
// are ordered: the first matching pattern wins, regardless of match
// length. Generic catch-alls therefore sit at the bottom.
type fixedRule struct {
	re        *regexp.Regexp
	canonical string
}

func fixed(expr, canonical string) fixedRule {
	return fixedRule{re: regexp.MustCompile(`(?i)` + expr), canonical: canonical}
}

var fixedComponents = []fixedRule{
	// payment gateways
	fixed(`\b(external\s+)?stripe(\s+payment)?(\s+gateway)?\b`, "Stripe Gateway"),
	fixed(`\b(external\s+)?paypal(\s+payment)?(\s+gateway)?\b`, "PayPal"),

	// databases
	fixed(`\b(a\s+|the\s+)?postgresql(\s+database|\s+db)?\b`, "PostgreSQL"),
	fixed(`\b(a\s+|the\s+)?postgres(\s+database|\s+db)?\b`, "PostgreSQL"),
	fixed(`\b(a\s+|the\s+)?mysql(\s+database|\s+db)?\b`, "MySQL"),
	fixed(`\b(a\s+|the\s+)?mongo(db)?(\s+database|\s+db)?\b`, "MongoDB"),
	fixed(`\bredis(\s+cache|\s+db)?\b`, "Redis"),

	// services
	fixed(`\bbackend(\s+service(s)?|\s+api)?\b`, "Backend Service"),
	fixed(`\b(rest|restful)(\s+api)?\b`, "REST API"),
	fixed(`\bgraphql(\s+api)?\b`, "GraphQL API"),
}

var fixedNodes = []fixedRule{
	// database servers used as deployment nodes sit above the generic
	// "server" catch-all
	fixed(`\b(a\s+|the\s+)?postgresql(\s+database|\s+db|\s+server)?\b`, "PostgreSQL"),
	fixed(`\b(a\s+|the\s+)?postgres(\s+database|\s+db|\s+server)?\b`, "PostgreSQL"),
	fixed(`\b(a\s+|the\s+)?mysql(\s+database|\s+db|\s+server)?\b`, "MySQL"),
	fixed(`\b(a\s+|the\s+)?mongo(db)?(\s+database|\s+db|\s+server)?\b`, "MongoDB"),

	// containers
	fixed(`\b(in\s+|on\s+)?docker\s+container(s)?\b`, "Docker Container"),
	fixed(`\bkubernetes(\s+pod(s)?|\s+cluster)?\b`, "Kubernetes"),

	fixed(`\blinux\s+server(s)?\b`, "Linux Server"),

	// generic server catches anything not matched above; keep last
	fixed(`\bserver(\s+instance)?(s)?\b`, "Server"),
}

var fixedDevices = []fixedRule{
	fixed(`\b(via\s+|through\s+)?web\s+browser(s)?\b`, "Web Browser"),
	fixed(`\b(via\s+|through\s+)?mobile\s+browser(s)?\b`, "Mobile Browser"),
	fixed(`\b(via\s+|through\s+)?desktop\s+browser(s)?\b`, "Web Browser"),
	fixed(`\bbrowser(s)?\b`, "Web Browser"),

	fixed(`\b(and\s+|via\s+)?mobile\s+(device(s)?|application(s)?|phone(s)?)\b`, "Mobile Device"),
	fixed(`\bsmartphone(s)?\b`, "Smartphone"),
	fixed(`\bdesktop\s+(client(s)?|computer(s)?)\b`, "Desktop"),
}

var fixedEnvironments = []fixedRule{
	fixed(`\bdocker(\s+container)?\b`, "Docker"),
	fixed(`\bkubernetes\b`, "Kubernetes"),
	fixed(`\bk8s\b`, "Kubernetes"),
}

var fixedInterfaces = []fixedRule{
	fixed(`\brest(\s+api|\s+endpoint(s)?)?\b`, "REST API"),
	fixed(`\bgraphql(\s+api|\s+endpoint)?\b`, "GraphQL API"),
	fixed(`\bgrpc(\s+service)?\b`, "gRPC"),
}

var fixedExternalSystems = []fixedRule{
	fixed(`\bstripe\b`, "Stripe"),
	fixed(`\bpaypal\b`, "PayPal"),
	fixed(`\btwilio\b`, "Twilio"),
}

var fixedTables = map[Category][]fixedRule{
	CategoryComponent:      fixedComponents,
	CategoryNode:           fixedNodes,
	CategoryDevice:         fixedDevices,
	CategoryEnvironment:    fixedEnvironments,
	CategoryInterface:      fixedInterfaces,
	CategoryExternalSystem: fixedExternalSystems,
}
