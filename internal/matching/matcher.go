// Package matching pairs an interest code with tagged jobs and annotates the
// recommendations with risk rules.
package matching

import (
	"go.uber.org/zap"

	"github.com/spigell/whoami-engine/internal/logger"
	"github.com/spigell/whoami-engine/internal/questionnaire"
	"github.com/spigell/whoami-engine/internal/riasec"
	"github.com/spigell/whoami-engine/internal/tagger"
)

type Kind string

const (
	KindPerfect Kind = "perfect"
	KindReverse Kind = "reverse"
	KindPartial Kind = "partial"
)

// Recommendation is a tagged job classified by match tier.
type Recommendation struct {
	tagger.TaggedJob

	Kind  Kind   `json:"kind"`
	Risks []Risk `json:"risks"`
}

// Safe reports whether no rule flagged the recommendation.
func (r Recommendation) Safe() bool {
	return len(r.Risks) == 0
}

type Options struct {
	// Limit caps the number of recommendations. Zero or negative means all.
	Limit  int
	Logger *zap.Logger
}

type Matcher struct {
	limit  int
	rules  []Rule
	logger *zap.Logger
}

func New(opts Options, rules ...Rule) *Matcher {
	return &Matcher{
		limit:  max(opts.Limit, 0),
		rules:  rules,
		logger: logger.WithFields(opts.Logger),
	}
}

func (m *Matcher) Limit() int { return m.limit }

// SetLimit changes the cap for subsequent calls.
func (m *Matcher) SetLimit(limit int) { m.limit = max(limit, 0) }

// Describe reports the status of the configured rules.
func (m *Matcher) Describe() []Status { return Describe(m.rules) }

// Match returns jobs whose code equals the given code, then those with the
// reversed code, then those sharing the primary letter. A job is listed once,
// under its first qualifying tier, and the table order is kept within a tier.
func (m *Matcher) Match(code string, tagged []tagger.TaggedJob, traits questionnaire.Traits) ([]Recommendation, error) {
	parsed, err := riasec.ParseCode(code)
	if err != nil {
		return nil, err
	}

	reverse := parsed.Reverse()
	tiers := []struct {
		kind  Kind
		match func(riasec.Code) bool
	}{
		{KindPerfect, func(c riasec.Code) bool { return c == parsed }},
		{KindReverse, func(c riasec.Code) bool { return c == reverse }},
		{KindPartial, func(c riasec.Code) bool { return c.Primary() == parsed.Primary() }},
	}

	seen := make([]bool, len(tagged))
	counts := make(map[Kind]int, len(tiers))
	out := make([]Recommendation, 0)

	for _, tier := range tiers {
		for i := range tagged {
			if seen[i] || !tier.match(tagged[i].InterestCode) {
				continue
			}
			seen[i] = true
			counts[tier.kind]++
			out = append(out, Recommendation{TaggedJob: tagged[i], Kind: tier.kind})
		}
	}

	total := len(out)
	if m.limit > 0 && len(out) > m.limit {
		out = out[:m.limit]
	}

	risky := 0
	for i := range out {
		out[i].Risks = Evaluate(m.rules, &out[i].TaggedJob, traits)
		if !out[i].Safe() {
			risky++
		}
	}

	m.logger.Info("match step",
		zap.String(logger.FieldInterestCode, parsed.String()),
		zap.Int("initial", len(tagged)),
		zap.Int(string(KindPerfect), counts[KindPerfect]),
		zap.Int(string(KindReverse), counts[KindReverse]),
		zap.Int(string(KindPartial), counts[KindPartial]),
		zap.Int("dropped_by_limit", total-len(out)),
		zap.Int("left", len(out)),
		zap.Int("risky", risky),
	)

	return out, nil
}
