package matching

import (
	"strings"

	"github.com/spigell/whoami-engine/internal/questionnaire"
	"github.com/spigell/whoami-engine/internal/tagger"
)

const DisciplineRule = "discipline"

type disciplineRule struct {
	toggle
	keyword string
}

// NewDiscipline flags jobs whose requirements mention the organization
// keyword for people with low conscientiousness. An empty keyword disables
// the rule.
func NewDiscipline(keyword string) Rule {
	r := &disciplineRule{keyword: strings.ToLower(strings.TrimSpace(keyword))}
	if r.keyword == "" {
		r.Disable("organization keyword is not configured")
	}
	return r
}

func (r *disciplineRule) Name() string { return DisciplineRule }

func (r *disciplineRule) Evaluate(job *tagger.TaggedJob, traits questionnaire.Traits) (Risk, bool) {
	if job.JobRecord == nil || r.keyword == "" {
		return Risk{}, false
	}
	if !strings.Contains(strings.ToLower(job.Requirements), r.keyword) {
		return Risk{}, false
	}
	if !traits.Answered(questionnaire.Conscientiousness) || traits.Level(questionnaire.Conscientiousness) != questionnaire.LevelLow {
		return Risk{}, false
	}
	return Risk{
		Rule:  DisciplineRule,
		Label: "Wymagana Dyscyplina: Uwaga na niską sumienność.",
	}, true
}

func (r *disciplineRule) Status() Status {
	return Status{
		Name:    r.Name(),
		Enabled: r.IsEnabled(),
		Reason:  r.reason,
		Details: map[string]string{
			"trait":   questionnaire.Conscientiousness,
			"level":   string(questionnaire.LevelLow),
			"keyword": r.keyword,
		},
	}
}
