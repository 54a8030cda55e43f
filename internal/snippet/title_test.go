package snippet

import (
	"testing"
	"time"
	_ "time/tzdata"
)

func TestGenerateSnippetTitle(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	tests := []struct {
		name      string
		typ       Type
		createdAt int64
		loc       *time.Location
		want      string
	}{
		{"evening mermaid", TypeMermaid, 1700000000000, time.UTC, "Mermaid - Nov 14, 2023, 10:13 PM"},
		{"morning pads hour", TypePlantUML, 1699952700000, time.UTC, "PlantUML - Nov 14, 2023, 09:05 AM"},
		{"midnight", TypeMermaid, 1704067200000, time.UTC, "Mermaid - Jan 1, 2024, 12:00 AM"},
		{"noon", TypeMermaid, 1688473800000, time.UTC, "Mermaid - Jul 4, 2023, 12:30 PM"},
		{"other zone", TypeMermaid, 1700000000000, rome, "Mermaid - Nov 14, 2023, 11:13 PM"},
		{"unknown type uses PlantUML label", Type("graphviz"), 1700000000000, time.UTC, "PlantUML - Nov 14, 2023, 10:13 PM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateSnippetTitle(tt.typ, tt.createdAt, tt.loc); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateSnippetTitle_NilLocation(t *testing.T) {
	want := GenerateSnippetTitle(TypeMermaid, 1700000000000, time.Local)
	if got := GenerateSnippetTitle(TypeMermaid, 1700000000000, nil); got != want {
		t.Errorf("nil location should render in time.Local: got %q, want %q", got, want)
	}
}
