package matching

import (
	"github.com/spigell/whoami-engine/internal/questionnaire"
	"github.com/spigell/whoami-engine/internal/tagger"
)

const BurnoutRule = "burnout"

type burnoutRule struct {
	toggle
}

// NewBurnout flags high-stress jobs for people with high neuroticism.
func NewBurnout() Rule {
	return &burnoutRule{}
}

func (r *burnoutRule) Name() string { return BurnoutRule }

func (r *burnoutRule) Evaluate(job *tagger.TaggedJob, traits questionnaire.Traits) (Risk, bool) {
	if !job.HighStress || !traits.Answered(questionnaire.Neuroticism) || traits.Level(questionnaire.Neuroticism) != questionnaire.LevelHigh {
		return Risk{}, false
	}
	return Risk{
		Rule:  BurnoutRule,
		Label: "Ryzyko Wypalenia: Wysoki stres vs Wysoka Neurotyczność.",
	}, true
}

func (r *burnoutRule) Status() Status {
	return Status{
		Name:    r.Name(),
		Enabled: r.IsEnabled(),
		Reason:  r.reason,
		Details: map[string]string{
			"trait": questionnaire.Neuroticism,
			"level": string(questionnaire.LevelHigh),
			"job":   "high_stress",
		},
	}
}
