package graph

// MaxNodes is the node budget of every extracted graph.
const MaxNodes = 20

const (
	defaultCategory = "other"
	defaultColor    = "#888888"
	edgeLabel       = "related to"
	minKeyLength    = 2
)

// junkTypes are numeric and temporal labels that carry no graph value.
var junkTypes = map[string]struct{}{
	"CARDINAL": {},
	"ORDINAL":  {},
	"QUANTITY": {},
	"PERCENT":  {},
	"MONEY":    {},
	"TIME":     {},
}

var labelCategories = map[string]string{
	"PERSON":      "person",
	"GPE":         "place",
	"LOC":         "place",
	"ORG":         "organization",
	"EVENT":       "event",
	"WORK_OF_ART": "work",
	"DATE":        "date",
	"NORP":        "group",
}

var categoryColors = map[string]string{
	"person":       "#ff6b6b",
	"place":        "#00d4ff",
	"organization": "#ffd93d",
	"event":        "#6bcb77",
	"work":         "#c77dff",
	"group":        "#ff9a3c",
	"other":        defaultColor,
}

// IsJunk reports whether a recognizer label is excluded from the graph.
func IsJunk(label string) bool {
	_, ok := junkTypes[label]
	return ok
}

// CategoryFor maps a recognizer label to a display category.
func CategoryFor(label string) string {
	if c, ok := labelCategories[label]; ok {
		return c
	}
	return defaultCategory
}

// ColorFor returns the hex color of a category. Unknown categories, "date"
// included, render grey.
func ColorFor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return defaultColor
}
