package parsing

import (
	"regexp"
	"sort"
	"strings"
)

// toolVocabulary lists recognized tool and platform tokens. Keys are lower-case phrases
// matched on word boundaries; values are canonical display names.
var toolVocabulary = map[string]string{
	"golang":           "Go",
	"python":           "Python",
	"java":             "Java",
	"javascript":       "JavaScript",
	"typescript":       "TypeScript",
	"sql":              "SQL",
	"postgresql":       "PostgreSQL",
	"postgres":         "PostgreSQL",
	"mysql":            "MySQL",
	"mongodb":          "MongoDB",
	"redis":            "Redis",
	"kafka":            "Kafka",
	"kubernetes":       "Kubernetes",
	"k8s":              "Kubernetes",
	"docker":           "Docker",
	"terraform":        "Terraform",
	"aws":              "AWS",
	"gcp":              "GCP",
	"google cloud":     "GCP",
	"azure":            "Azure",
	"react":            "React",
	"node.js":          "Node.js",
	"nodejs":           "Node.js",
	"graphql":          "GraphQL",
	"airflow":          "Airflow",
	"snowflake":        "Snowflake",
	"dbt":              "dbt",
	"tableau":          "Tableau",
	"looker":           "Looker",
	"power bi":         "Power BI",
	"microsoft excel":  "Excel",
	"apache spark":     "Spark",
	"figma":            "Figma",
	"jira":             "Jira",
	"salesforce":       "Salesforce",
	"hubspot":          "HubSpot",
	"marketo":          "Marketo",
	"google analytics": "Google Analytics",
	"ga4":              "Google Analytics",
	"google ads":       "Google Ads",
	"meta ads":         "Meta Ads",
	"facebook ads":     "Meta Ads",
	"amplitude":        "Amplitude",
	"mixpanel":         "Mixpanel",
	"git":              "Git",
	"github":           "GitHub",
	"linux":            "Linux",
	"asana":            "Asana",
	"zapier":           "Zapier",
	"wordpress":        "WordPress",
	"shopify":          "Shopify",
}

type vocabEntry struct {
	phrase    string
	canonical string
	pattern   *regexp.Regexp
}

// vocabEntries is toolVocabulary compiled once, longest phrase first so that
// "google analytics" wins over shorter overlapping tokens.
var vocabEntries = compileVocabulary(toolVocabulary)

func compileVocabulary(vocab map[string]string) []vocabEntry {
	entries := make([]vocabEntry, 0, len(vocab))
	for phrase, canonical := range vocab {
		entries = append(entries, vocabEntry{
			phrase:    phrase,
			canonical: canonical,
			pattern:   regexp.MustCompile(`(?i)(?:^|[^a-z0-9])` + regexp.QuoteMeta(phrase) + `(?:$|[^a-z0-9+#])`),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if len(entries[i].phrase) != len(entries[j].phrase) {
			return len(entries[i].phrase) > len(entries[j].phrase)
		}
		return entries[i].phrase < entries[j].phrase
	})
	return entries
}

// FindTools returns the canonical names of every vocabulary tool mentioned in text,
// ordered by first position in the text.
func FindTools(text string) []string {
	type hit struct {
		pos  int
		name string
	}
	var hits []hit
	seen := make(map[string]bool)
	for _, e := range vocabEntries {
		loc := e.pattern.FindStringIndex(text)
		if loc == nil || seen[e.canonical] {
			continue
		}
		seen[e.canonical] = true
		hits = append(hits, hit{pos: loc[0], name: e.canonical})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	tools := make([]string, 0, len(hits))
	for _, h := range hits {
		tools = append(tools, h.name)
	}
	return tools
}

// CanonicalTool returns the canonical vocabulary name for a tool string, or "" if the
// string is not a recognized tool.
func CanonicalTool(name string) string {
	return toolVocabulary[strings.ToLower(strings.TrimSpace(name))]
}
