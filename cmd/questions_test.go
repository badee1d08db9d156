package cmd

import (
	"testing"

	"github.com/spigell/whoami-engine/internal/questionnaire"
)

func TestQuestionMarkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		question questionnaire.Question
		expect   string
	}{
		{name: "plain", question: questionnaire.Question{ID: "n1"}, expect: ""},
		{name: "reversed", question: questionnaire.Question{ID: "n2", Reversed: true}, expect: " (reversed)"},
		{name: "negative", question: questionnaire.Question{ID: "as1", Direction: -1}, expect: " (negative)"},
		{name: "positive direction", question: questionnaire.Question{ID: "as2", Direction: 1}, expect: ""},
		{name: "reversed and negative", question: questionnaire.Question{ID: "as3", Reversed: true, Direction: -1}, expect: " (reversed) (negative)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := questionMarkers(tt.question); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
