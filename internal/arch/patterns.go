package arch

import "regexp"

// relPattern is one verb-phrase rule of the pattern miner. Group 1
// captures the source phrase, group 2 the target phrase; a pattern
// with three groups ("uses Y to Z") captures an intermediary.
type relPattern struct {
	name  string
	label string
	re    *regexp.Regexp
}

// entityPhrase matches a multi-word entity mention without crossing
// clause punctuation
const entityPhrase = `([A-Za-z][\w-]*(?:\s+[A-Za-z][\w-]*){0,4}?)`

var relPatterns = []relPattern{
	{
		name:  "sends to",
		label: "sends to",
		re:    regexp.MustCompile(entityPhrase + `\s+(?:sends?|transmits?|forwards?)\s+(?:\w+\s+){0,3}?to\s+(?:the\s+|an?\s+)?` + entityPhrase),
	},
	{
		name:  "stores in",
		label: "stores in",
		re:    regexp.MustCompile(entityPhrase + `\s+(?:stores?|saves?|persists?)\s+(?:\w+\s+){0,3}?(?:in|into|on)\s+(?:the\s+|an?\s+)?` + entityPhrase),
	},
	{
		name:  "reads writes",
		label: "reads/writes",
		re:    regexp.MustCompile(entityPhrase + `\s+(?:reads?(?:\s+from)?(?:\s+and)?|writes?(?:\s+to)?)\s+(?:and\s+(?:reads?|writes?)\s+)?(?:from\s+|to\s+)?(?:the\s+|an?\s+)?` + entityPhrase),
	},
	{
		name:  "communicates with",
		label: "communicates with",
		re:    regexp.MustCompile(entityPhrase + `\s+(?:communicates?|interacts?|talks?)\s+with\s+(?:the\s+|an?\s+)?` + entityPhrase),
	},
	{
		name:  "uses to",
		label: "uses",
		re:    regexp.MustCompile(entityPhrase + `\s+uses?\s+(?:the\s+|an?\s+)?` + entityPhrase + `\s+to\s+(\w+)`),
	},
	{
		name:  "uses",
		label: "uses",
		re:    regexp.MustCompile(entityPhrase + `\s+(?:uses?|utilizes?|leverages?)\s+(?:the\s+|an?\s+)?` + entityPhrase),
	},
	{
		name:  "depends on",
		label: "depends on",
		re:    regexp.MustCompile(entityPhrase + `\s+(?:depends?\s+on|relies?\s+on|requires?)\s+(?:the\s+|an?\s+)?` + entityPhrase),
	},
	{
		name:  "connects to",
		label: "connects to",
		re:    regexp.MustCompile(entityPhrase + `\s+connects?\s+(?:to|with)\s+(?:the\s+|an?\s+)?` + entityPhrase),
	},
	{
		name:  "accesses",
		label: "accesses",
		re:    regexp.MustCompile(entityPhrase + `\s+(?:accesses?|queries?|calls?)\s+(?:the\s+|an?\s+)?` + entityPhrase),
	},
	{
		name:  "via",
		label: "via",
		re:    regexp.MustCompile(entityPhrase + `\s+(?:reaches?|routes?\s+(?:\w+\s+)?to)?\s*via\s+(?:the\s+|an?\s+)?` + entityPhrase),
	},
}

// gap-fill patterns for entities the tagger missed
var (
	reServicePhrase = regexp.MustCompile(`\b([A-Z][\w-]*(?:\s+[A-Z][\w-]*)*\s+(?:Service|service|API))\b`)
	reCapitalized   = regexp.MustCompile(`^[A-Z]`)
)

// interface binding: who provides an interface and who calls it
const ifacePhrase = `((?:[\w-]+\s+){0,2}(?:api|interface|endpoint)s?)`

var (
	reProvidesInterface = regexp.MustCompile(`(?i)` + entityPhrase +
		`\s+(?:provides?|exposes?|offers?|implements?)\s+(?:the\s+|an?\s+)?` + ifacePhrase + `\b`)
	reConsumesInterface = regexp.MustCompile(`(?i)` + entityPhrase +
		`\s+(?:consumes?|calls?|invokes?)\s+(?:the\s+|an?\s+)?` + ifacePhrase + `\b`)
)

// databaseVocabulary flags database-like entity names for the
// database-to-database relation guard
var databaseVocabulary = []string{
	"database", "postgres", "postgresql", "mysql", "mongodb", "mongo",
	"redis", "cassandra", "dynamodb", "sqlite", "elasticsearch", "db",
}

// serviceVocabulary flags service-like names eligible to replace a
// database source
var serviceVocabulary = []string{
	"service", "api", "gateway", "server", "backend", "frontend",
	"application", "app", "worker", "engine",
}
