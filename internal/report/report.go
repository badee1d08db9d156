// Package report assembles the outcome of one questionnaire submission.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spigell/whoami-engine/internal/catalog"
	"github.com/spigell/whoami-engine/internal/matching"
	"github.com/spigell/whoami-engine/internal/questionnaire"
	"github.com/spigell/whoami-engine/internal/riasec"
	"github.com/spigell/whoami-engine/internal/tagger"
)

// NoDescription is shown for codes missing from a reference table.
const NoDescription = "no description available"

// References are the archetype tables used to describe codes.
type References struct {
	Career *catalog.Archetypes
	Style  *catalog.Archetypes
}

// Lookup is the result of finding a code in a reference table.
type Lookup struct {
	Code      string            `json:"code"`
	Found     bool              `json:"found"`
	Archetype catalog.Archetype `json:"archetype"`
	// StressMode is the first sentence of a style description. Career
	// lookups leave it empty.
	StressMode string `json:"stress_mode,omitempty"`
}

func lookup(table *catalog.Archetypes, code string) Lookup {
	archetype, ok := table.Lookup(code)
	if !ok {
		return Lookup{Code: code}
	}
	return Lookup{Code: code, Found: true, Archetype: archetype}
}

func lookupStyle(table *catalog.Archetypes, code string) Lookup {
	l := lookup(table, code)
	if l.Found {
		l.StressMode = firstSentence(l.Archetype.Description)
	}
	return l
}

// Title returns the archetype title or NoDescription.
func (l Lookup) Title() string {
	if !l.Found || l.Archetype.Title == "" {
		return NoDescription
	}
	return l.Archetype.Title
}

func firstSentence(s string) string {
	head, _, _ := strings.Cut(s, ".")
	return strings.TrimSpace(head)
}

type Report struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Profile      questionnaire.Profile   `json:"profile"`
	InterestCode riasec.Code             `json:"interest_code"`
	StyleCode    questionnaire.StyleCode `json:"style_code"`

	Career Lookup `json:"career"`
	Style  Lookup `json:"style"`
	Spikes []Spike `json:"spikes"`

	Recommendations []matching.Recommendation `json:"recommendations"`
	Rules           []matching.Status         `json:"rules"`
}

// Build derives the codes of the profile, describes them and matches them
// against the tagged table.
func Build(profile questionnaire.Profile, tagged []tagger.TaggedJob, refs References, matcher *matching.Matcher) (*Report, error) {
	if matcher == nil {
		return nil, errors.New("matcher is required")
	}

	code := profile.InterestCode()
	style := profile.Style()

	recs, err := matcher.Match(code.String(), tagged, profile.Traits)
	if err != nil {
		return nil, fmt.Errorf("matching %s: %w", code, err)
	}

	return &Report{
		ID:              uuid.NewString(),
		CreatedAt:       time.Now().UTC(),
		Profile:         profile,
		InterestCode:    code,
		StyleCode:       style,
		Career:          lookup(refs.Career, code.String()),
		Style:           lookupStyle(refs.Style, string(style)),
		Spikes:          Spikes(profile.Traits),
		Recommendations: recs,
		Rules:           matcher.Describe(),
	}, nil
}

// Safe reports whether none of the recommendations carries a risk.
func (r *Report) Safe() bool {
	for _, rec := range r.Recommendations {
		if !rec.Safe() {
			return false
		}
	}
	return true
}

func (r *Report) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "report_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
