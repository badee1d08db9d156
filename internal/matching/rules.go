package matching

import (
	"github.com/spigell/whoami-engine/internal/lexicon"
	"github.com/spigell/whoami-engine/internal/questionnaire"
	"github.com/spigell/whoami-engine/internal/tagger"
)

// Rule flags a risk on a recommended job for a given trait profile.
type Rule interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	// Evaluate returns a risk when the rule antecedent holds.
	Evaluate(job *tagger.TaggedJob, traits questionnaire.Traits) (Risk, bool)
}

// Risk is a labeled annotation attached to a recommendation.
type Risk struct {
	Rule  string `json:"rule"`
	Label string `json:"label"`
}

// Status represents runtime information about a rule.
type Status struct {
	Name    string            `json:"name"`
	Enabled bool              `json:"enabled"`
	Reason  string            `json:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// statusProvider is implemented by rules that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// toggle holds the enabled state shared by all rules.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

// DefaultRules returns the burnout, discipline and focus rules wired to the
// lexicon keywords.
func DefaultRules(lx *lexicon.Lexicon) []Rule {
	if lx == nil {
		lx = lexicon.Default()
	}
	return []Rule{
		NewBurnout(),
		NewDiscipline(lx.Organization),
		NewFocus(lx.Focus),
	}
}

// DisableByName marks a rule with the provided name as disabled while keeping it in the list.
// It reports whether a rule with that name exists.
func DisableByName(rules []Rule, name, reason string) bool {
	found := false
	for _, rule := range rules {
		if rule.Name() == name {
			rule.Disable(reason)
			found = true
		}
	}
	return found
}

// Describe returns status entries for the provided rules.
func Describe(rules []Rule) []Status {
	statuses := make([]Status, 0, len(rules))
	for _, rule := range rules {
		if reporter, ok := rule.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    rule.Name(),
			Enabled: rule.IsEnabled(),
		})
	}
	return statuses
}

// Evaluate runs every enabled rule against the job in list order.
func Evaluate(rules []Rule, job *tagger.TaggedJob, traits questionnaire.Traits) []Risk {
	var risks []Risk
	for _, rule := range rules {
		if !rule.IsEnabled() {
			continue
		}
		if risk, ok := rule.Evaluate(job, traits); ok {
			risks = append(risks, risk)
		}
	}
	return risks
}
