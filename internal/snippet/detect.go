package snippet

import "strings"

var mermaidKeywords = []string{
	"graph ",
	"flowchart",
	"sequenceDiagram",
	"classDiagram",
	"stateDiagram",
	"erDiagram",
	"gantt",
	"journey",
	"pie",
}

// DetectSnippetType guesses the diagram language of code.
// Anything not recognizably PlantUML is Mermaid.
func DetectSnippetType(code string) Type {
	text := strings.TrimSpace(code)
	if text == "" {
		return TypeMermaid
	}

	lower := strings.ToLower(text)
	if strings.Contains(lower, "@startuml") || strings.HasPrefix(lower, "@start") {
		return TypePlantUML
	}

	// keywords are matched case-sensitively on the original text
	for _, kw := range mermaidKeywords {
		if strings.Contains(text, kw) {
			return TypeMermaid
		}
	}

	return TypeMermaid
}
