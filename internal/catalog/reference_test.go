package catalog

import (
	"strings"
	"testing"
)

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect string
	}{
		{input: "AE", expect: "AE"},
		{input: " ae ", expect: "AE"},
		{input: "AE (Artysta-Przedsiębiorca)", expect: "AE"},
		{input: "D (Dominant)  ", expect: "D"},
		{input: "(tylko notatka)", expect: ""},
		{input: "", expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeKey(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

const careerCSV = `Kod Hybrydy;Archetyp (Klasa);Twoja Supermoc (Skillset);Motto (Vibe)
AE (Wizjoner);Wizjoner;Sprzedaje marzenia; Tworzę i sprzedaję
AE;Duplikat;ignorowany;x
RI;Inżynier;Rozkłada świat na części;Jak to działa?
`

func TestReadArchetypesCSV(t *testing.T) {
	table, err := ReadArchetypesCSV(strings.NewReader(careerCSV), CareerColumns, LoadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("expected duplicate key to be dropped, got %d rows (%v)", table.Len(), table.Keys())
	}

	row, ok := table.Lookup("ae")
	if !ok {
		t.Fatalf("expected AE row")
	}
	if row.Title != "Wizjoner" || row.Description != "Sprzedaje marzenia" || row.Tagline != "Tworzę i sprzedaję" {
		t.Fatalf("unexpected row: %+v", row)
	}

	if _, ok := table.Lookup("SC"); ok {
		t.Fatalf("did not expect a row for SC")
	}
}

func TestLookupOnNilTable(t *testing.T) {
	var table *Archetypes
	if _, ok := table.Lookup("AE"); ok {
		t.Fatalf("expected miss on nil table")
	}
	if table.Len() != 0 || len(table.Keys()) != 0 {
		t.Fatalf("expected empty nil table")
	}
}

func TestReadStyleTable(t *testing.T) {
	input := "Kod Stylu;Archetyp (Klasa);ULTIMATE (Stres / Rage Mode)\nD;Dowódca;Przejmuje stery. Potem przeprasza.\n"
	table, err := ReadArchetypesCSV(strings.NewReader(input), StyleColumns, LoadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	row, ok := table.Lookup("D")
	if !ok {
		t.Fatalf("expected D row")
	}
	if row.Tagline != "" {
		t.Fatalf("expected missing tagline column to decode empty, got %q", row.Tagline)
	}
	if row.Description != "Przejmuje stery. Potem przeprasza." {
		t.Fatalf("unexpected description %q", row.Description)
	}
}
