package matching

import (
	"strings"

	"github.com/spigell/whoami-engine/internal/questionnaire"
	"github.com/spigell/whoami-engine/internal/tagger"
)

const FocusRule = "focus"

type focusRule struct {
	toggle
	keywords []string
}

// NewFocus flags analytic jobs for people with a low focus score. The rule
// is disabled when no keywords are given.
func NewFocus(keywords []string) Rule {
	r := &focusRule{}
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			r.keywords = append(r.keywords, kw)
		}
	}
	if len(r.keywords) == 0 {
		r.Disable("focus keywords are not configured")
	}
	return r
}

func (r *focusRule) Name() string { return FocusRule }

func (r *focusRule) Evaluate(job *tagger.TaggedJob, traits questionnaire.Traits) (Risk, bool) {
	if job.JobRecord == nil || !traits.Answered(questionnaire.Focus) || traits.Level(questionnaire.Focus) != questionnaire.LevelLow {
		return Risk{}, false
	}

	text := strings.ToLower(job.Text())
	for _, kw := range r.keywords {
		if strings.Contains(text, kw) {
			return Risk{
				Rule:  FocusRule,
				Label: "Wymagana Koncentracja: Praca analityczna vs Niski poziom skupienia.",
			}, true
		}
	}
	return Risk{}, false
}

func (r *focusRule) Status() Status {
	return Status{
		Name:    r.Name(),
		Enabled: r.IsEnabled(),
		Reason:  r.reason,
		Details: map[string]string{
			"trait":    questionnaire.Focus,
			"level":    string(questionnaire.LevelLow),
			"keywords": strings.Join(r.keywords, ","),
		},
	}
}
