package report

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/spigell/whoami-engine/internal/catalog"
	"github.com/spigell/whoami-engine/internal/lexicon"
	"github.com/spigell/whoami-engine/internal/matching"
	"github.com/spigell/whoami-engine/internal/questionnaire"
	"github.com/spigell/whoami-engine/internal/riasec"
	"github.com/spigell/whoami-engine/internal/tagger"
)

func testProfile() questionnaire.Profile {
	return questionnaire.Profile{
		Traits: questionnaire.Traits{
			questionnaire.Neuroticism:       {Sum: 9, Count: 2, Percent: 90},
			questionnaire.Conscientiousness: {Sum: 4, Count: 2, Percent: 40},
			questionnaire.Focus:             {Sum: 1, Count: 1, Percent: 20},
		},
		Interests: riasec.Scores{
			riasec.Realistic: 3, riasec.Investigative: 4, riasec.Artistic: 12,
			riasec.Social: 5, riasec.Enterprising: 9, riasec.Conventional: 2,
		},
		Communication: questionnaire.Communication{Assertiveness: 80, Responsiveness: 30},
	}
}

func testReferences() References {
	return References{
		Career: catalog.NewArchetypes([]catalog.Archetype{
			{Key: "AE (Artysta-Przedsiębiorca)", Title: "Wizjoner", Tagline: "Sprzedam każdą wizję", Description: "Łączy sztukę z biznesem."},
		}),
		Style: catalog.NewArchetypes([]catalog.Archetype{
			{Key: "D", Title: "Dominator", Description: "Przejmuje dowodzenie. Krzyczy na wszystkich."},
		}),
	}
}

func testTagged() []tagger.TaggedJob {
	return []tagger.TaggedJob{
		{JobRecord: &catalog.JobRecord{Name: "Grafik reklamowy", URL: "https://example.test/grafik"}, InterestCode: "AE", HighStress: true},
		{JobRecord: &catalog.JobRecord{Name: "Menedżer marki", Requirements: "organizacja"}, InterestCode: "EA"},
		{JobRecord: &catalog.JobRecord{Name: "Księgowy"}, InterestCode: "CI"},
	}
}

func TestBuild(t *testing.T) {
	matcher := matching.New(matching.Options{}, matching.DefaultRules(lexicon.Default())...)

	r, err := Build(testProfile(), testTagged(), testReferences(), matcher)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := uuid.Parse(r.ID); err != nil {
		t.Fatalf("expected uuid id, got %q", r.ID)
	}
	if r.InterestCode != "AE" || r.StyleCode != questionnaire.StyleDominant {
		t.Fatalf("unexpected codes: %s %s", r.InterestCode, r.StyleCode)
	}
	if !r.Career.Found || r.Career.Title() != "Wizjoner" {
		t.Fatalf("unexpected career lookup: %+v", r.Career)
	}
	if r.Style.StressMode != "Przejmuje dowodzenie" {
		t.Fatalf("expected first sentence as stress mode, got %q", r.Style.StressMode)
	}
	if r.Career.StressMode != "" {
		t.Fatalf("expected no stress mode on career lookup, got %q", r.Career.StressMode)
	}

	if len(r.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(r.Recommendations))
	}
	if r.Recommendations[0].Kind != matching.KindPerfect || r.Recommendations[1].Kind != matching.KindReverse {
		t.Fatalf("unexpected kinds: %s %s", r.Recommendations[0].Kind, r.Recommendations[1].Kind)
	}
	if r.Recommendations[0].Risks[0].Rule != matching.BurnoutRule {
		t.Fatalf("expected burnout risk, got %+v", r.Recommendations[0].Risks)
	}
	if r.Safe() {
		t.Fatalf("expected report with risks to be unsafe")
	}
	if len(r.Rules) != 3 {
		t.Fatalf("expected 3 rule statuses, got %d", len(r.Rules))
	}
}

func TestBuildMissingReferences(t *testing.T) {
	r, err := Build(testProfile(), nil, References{}, matching.New(matching.Options{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Career.Found || r.Style.Found {
		t.Fatalf("expected missing lookups")
	}
	if r.Career.Title() != NoDescription {
		t.Fatalf("expected %q, got %q", NoDescription, r.Career.Title())
	}
	if len(r.Recommendations) != 0 || !r.Safe() {
		t.Fatalf("expected no recommendations for an empty table")
	}
}

func TestBuildRequiresMatcher(t *testing.T) {
	if _, err := Build(testProfile(), nil, References{}, nil); err == nil {
		t.Fatalf("expected error without matcher")
	}
}

func TestSpikes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		traits questionnaire.Traits
		expect []string
	}{
		{
			name: "high neuroticism and low conscientiousness",
			traits: questionnaire.Traits{
				questionnaire.Neuroticism:       {Count: 2, Percent: 90},
				questionnaire.Conscientiousness: {Count: 2, Percent: 20},
			},
			expect: []string{"Symulator Katastrof", "Improwizator"},
		},
		{
			name: "low neuroticism and high conscientiousness",
			traits: questionnaire.Traits{
				questionnaire.Neuroticism:       {Count: 2, Percent: 30},
				questionnaire.Conscientiousness: {Count: 2, Percent: 70},
			},
			expect: []string{"Iceman", "Strateg"},
		},
		{
			name: "mid levels have no spikes",
			traits: questionnaire.Traits{
				questionnaire.Neuroticism: {Count: 2, Percent: 50},
				questionnaire.Focus:       {Count: 2, Percent: 64},
			},
		},
		{
			name:   "unanswered scales are skipped",
			traits: questionnaire.Traits{questionnaire.Competence: {}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			spikes := Spikes(tt.traits)
			if len(spikes) != len(tt.expect) {
				t.Fatalf("expected %d spikes, got %+v", len(tt.expect), spikes)
			}
			for i, want := range tt.expect {
				if !strings.Contains(spikes[i].Label, want) {
					t.Fatalf("spike %d: expected %q in %q", i, want, spikes[i].Label)
				}
			}
		})
	}
}

func TestRender(t *testing.T) {
	matcher := matching.New(matching.Options{Limit: 1}, matching.DefaultRules(nil)...)
	r, err := Build(testProfile(), testTagged(), testReferences(), matcher)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		t.Fatalf("rendering: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Karta Postaci: AE",
		"Wizjoner",
		"Rage Mode: Przejmuje dowodzenie",
		"#1 Grafik reklamowy [AE] perfect",
		"https://example.test/grafik",
		"Ryzyko Wypalenia",
		"Symulator Katastrof",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Menedżer marki") {
		t.Fatalf("expected limit to drop the second recommendation:\n%s", out)
	}
}

func TestRenderEmpty(t *testing.T) {
	r, err := Build(questionnaire.Profile{}, nil, References{}, matching.New(matching.Options{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		t.Fatalf("rendering: %v", err)
	}
	if !strings.Contains(buf.String(), "Brak dopasowań.") || !strings.Contains(buf.String(), NoDescription) {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestDumpToTmpFile(t *testing.T) {
	r, err := Build(testProfile(), testTagged(), testReferences(), matching.New(matching.Options{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path, err := r.DumpToTmpFile()
	if err != nil {
		t.Fatalf("dumping: %v", err)
	}
	t.Cleanup(func() { os.Remove(path) })

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading dump: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding dump: %v", err)
	}
	if decoded["id"] != r.ID || decoded["interest_code"] != "AE" {
		t.Fatalf("unexpected dump: %v", decoded)
	}
}

func TestBuildPartialAnswersRaiseNoUnfoundedRisks(t *testing.T) {
	bank, err := questionnaire.DefaultBank()
	if err != nil {
		t.Fatalf("loading bank: %v", err)
	}
	profile, err := questionnaire.Aggregate(questionnaire.Answers{"n1": 5, "n2": 1, "ar1": 5, "ar2": 5, "en1": 5}, bank)
	if err != nil {
		t.Fatalf("scoring: %v", err)
	}

	tagged := []tagger.TaggedJob{{
		JobRecord: &catalog.JobRecord{
			Name:             "Analityk kampanii",
			ShortDescription: "analiza wyników",
			Requirements:     "organizacja pracy",
		},
		InterestCode: "AE",
	}}

	r, err := Build(profile, tagged, References{}, matching.New(matching.Options{}, matching.DefaultRules(lexicon.Default())...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.Recommendations) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(r.Recommendations))
	}
	if !r.Recommendations[0].Safe() {
		t.Fatalf("expected no risks from unanswered scales, got %+v", r.Recommendations[0].Risks)
	}
	for _, spike := range r.Spikes {
		if spike.Trait != questionnaire.Neuroticism {
			t.Fatalf("unexpected spike for an unanswered scale: %+v", spike)
		}
	}
}
