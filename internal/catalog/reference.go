package catalog

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// Columns names the source headers of a reference table.
type Columns struct {
	Key         string
	Title       string
	Tagline     string
	Description string
}

var (
	// CareerColumns describes the career archetype table keyed by interest code.
	CareerColumns = Columns{
		Key:         "Kod Hybrydy",
		Title:       "Archetyp (Klasa)",
		Tagline:     "Motto (Vibe)",
		Description: "Twoja Supermoc (Skillset)",
	}
	// StyleColumns describes the communication archetype table keyed by style code.
	StyleColumns = Columns{
		Key:         "Kod Stylu",
		Title:       "Archetyp (Klasa)",
		Tagline:     "Motto (Vibe)",
		Description: "ULTIMATE (Stres / Rage Mode)",
	}
)

// trailingNote matches a parenthetical annotation at the end of a key, as in
// "AE (Artysta-Przedsiębiorca)".
var trailingNote = regexp.MustCompile(`\s*\([^()]*\)\s*$`)

// NormalizeKey reduces a reference-table key to its bare upper-case code.
func NormalizeKey(key string) string {
	key = strings.TrimSpace(key)
	key = trailingNote.ReplaceAllString(key, "")
	return strings.ToUpper(strings.TrimSpace(key))
}

type Archetype struct {
	Key         string `mapstructure:"key" json:"key"`
	Title       string `mapstructure:"title" json:"title"`
	Tagline     string `mapstructure:"tagline" json:"tagline,omitempty"`
	Description string `mapstructure:"description" json:"description,omitempty"`
}

// Archetypes is an immutable reference table indexed by normalized key.
type Archetypes struct {
	items []Archetype
	byKey map[string]int
}

func NewArchetypes(items []Archetype) *Archetypes {
	a := &Archetypes{byKey: make(map[string]int, len(items))}
	for _, item := range items {
		item.Key = NormalizeKey(item.Key)
		if item.Key == "" {
			continue
		}
		// the first row for a key wins
		if _, ok := a.byKey[item.Key]; ok {
			continue
		}
		a.byKey[item.Key] = len(a.items)
		a.items = append(a.items, item)
	}
	return a
}

// Lookup finds the archetype for a code. A miss is a regular outcome.
func (a *Archetypes) Lookup(code string) (Archetype, bool) {
	if a == nil {
		return Archetype{}, false
	}
	idx, ok := a.byKey[NormalizeKey(code)]
	if !ok {
		return Archetype{}, false
	}
	return a.items[idx], true
}

func (a *Archetypes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.items)
}

func (a *Archetypes) Keys() []string {
	keys := make([]string, 0, a.Len())
	if a == nil {
		return keys
	}
	for _, item := range a.items {
		keys = append(keys, item.Key)
	}
	return keys
}

// LoadArchetypesCSV reads a reference table from a CSV file.
func LoadArchetypesCSV(path string, cols Columns, opts LoadOptions) (*Archetypes, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reference table: %w", err)
	}
	defer file.Close()

	table, err := ReadArchetypesCSV(file, cols, opts)
	if err != nil {
		return nil, fmt.Errorf("reading reference table %q: %w", path, err)
	}

	opts.logger().Debug("reference table loaded",
		zap.String("path", path),
		zap.Int("count", table.Len()),
		zap.Strings("keys", table.Keys()),
	)
	return table, nil
}

// ReadArchetypesCSV decodes a reference table. The default separator is ';'.
func ReadArchetypesCSV(r io.Reader, cols Columns, opts LoadOptions) (*Archetypes, error) {
	headers := map[string]string{}
	for header, field := range map[string]string{
		cols.Key:         "key",
		cols.Title:       "title",
		cols.Tagline:     "tagline",
		cols.Description: "description",
	} {
		if header != "" {
			headers[strings.ToLower(header)] = field
		}
	}

	rows, err := readRows(r, opts.separator(DefaultReferenceSeparator), func(header string) string {
		return headers[strings.ToLower(header)]
	})
	if err != nil {
		return nil, err
	}

	items := make([]Archetype, 0, len(rows))
	for idx, row := range rows {
		var item Archetype
		if err := mapstructure.Decode(row, &item); err != nil {
			return nil, fmt.Errorf("decoding row %d: %w", idx+1, err)
		}
		item.Title = strings.TrimSpace(item.Title)
		item.Tagline = strings.TrimSpace(item.Tagline)
		item.Description = strings.TrimSpace(item.Description)
		items = append(items, item)
	}

	return NewArchetypes(items), nil
}
