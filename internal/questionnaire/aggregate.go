package questionnaire

import (
	"errors"
	"fmt"

	"github.com/spigell/whoami-engine/internal/riasec"
)

const (
	MinAnswer = 1
	MaxAnswer = 5

	// axisStart is the neutral value of both communication axes.
	axisStart = 50
	axisStep  = 10
)

var (
	ErrUnknownQuestion  = errors.New("unknown question")
	ErrAnswerOutOfRange = errors.New("answer out of range")
)

// Answers maps question ids to Likert values.
type Answers map[string]int

type Level string

const (
	LevelLow  Level = "Low"
	LevelMid  Level = "Mid"
	LevelHigh Level = "High"
)

// LevelOf maps a percentage to a level: 35 and below is Low, 65 and above is High.
func LevelOf(percent int) Level {
	if percent >= 65 {
		return LevelHigh
	}
	if percent <= 35 {
		return LevelLow
	}
	return LevelMid
}

// TraitScore holds the accumulated answers of one trait domain.
type TraitScore struct {
	Sum     int `json:"sum"`
	Count   int `json:"count"`
	Percent int `json:"percent"`
}

func (s TraitScore) Level() Level {
	return LevelOf(s.Percent)
}

// Traits maps a trait domain to its score. Unknown domains read as zero.
type Traits map[string]TraitScore

func (t Traits) Percent(domain string) int {
	return t[domain].Percent
}

// Answered reports whether the domain received at least one answer. An
// unanswered domain scores 0 but carries no evidence.
func (t Traits) Answered(domain string) bool {
	return t[domain].Count > 0
}

func (t Traits) Level(domain string) Level {
	return t[domain].Level()
}

type StyleCode string

const (
	StyleDominant  StyleCode = "D"
	StyleInfluence StyleCode = "I"
	StyleCautious  StyleCode = "C"
	StyleSteady    StyleCode = "S"
)

// Style derives the communication style from the two axes.
func Style(assertiveness, responsiveness int) StyleCode {
	if assertiveness > 50 {
		if responsiveness < 50 {
			return StyleDominant
		}
		return StyleInfluence
	}
	if responsiveness < 50 {
		return StyleCautious
	}
	return StyleSteady
}

type Communication struct {
	Assertiveness  int `json:"assertiveness"`
	Responsiveness int `json:"responsiveness"`
}

func (c Communication) Style() StyleCode {
	return Style(c.Assertiveness, c.Responsiveness)
}

// Profile is the outcome of one questionnaire submission.
type Profile struct {
	BankVersion   string        `json:"bank_version"`
	Answered      int           `json:"answered"`
	Traits        Traits        `json:"traits"`
	Interests     riasec.Scores `json:"interests"`
	Communication Communication `json:"communication"`
}

func (p Profile) InterestCode() riasec.Code {
	return p.Interests.Code()
}

func (p Profile) Style() StyleCode {
	return p.Communication.Style()
}

// Validate checks that every answer refers to a known question and lies in
// the Likert range.
func (a Answers) Validate(bank *Bank) error {
	for id, value := range a {
		if _, ok := bank.Question(id); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownQuestion, id)
		}
		if value < MinAnswer || value > MaxAnswer {
			return fmt.Errorf("%w: question %q has %d, expected %d..%d", ErrAnswerOutOfRange, id, value, MinAnswer, MaxAnswer)
		}
	}
	return nil
}

// Aggregate scores the answers against the bank. Unanswered questions are
// skipped; a domain without answers scores 0.
func Aggregate(answers Answers, bank *Bank) (Profile, error) {
	if bank == nil {
		return Profile{}, errors.New("question bank is required")
	}
	if err := answers.Validate(bank); err != nil {
		return Profile{}, err
	}

	normalized := make(Answers, len(answers))
	for id, value := range answers {
		normalized[normalizeID(id)] = value
	}

	profile := Profile{
		BankVersion: bank.Version,
		Traits:      make(Traits, len(BigFive)+len(ExtraScales)),
		Interests:   make(riasec.Scores, 6),
	}
	for _, domain := range append(append([]string(nil), BigFive...), ExtraScales...) {
		profile.Traits[domain] = TraitScore{}
	}
	for _, category := range riasec.Categories() {
		profile.Interests[category] = 0
	}

	axes := map[string]int{Assertiveness: axisStart, Responsiveness: axisStart}

	for _, q := range bank.Questions {
		value, ok := normalized[q.ID]
		if !ok {
			continue
		}
		profile.Answered++

		switch q.Section {
		case SectionTraits:
			if q.Reversed {
				value = MinAnswer + MaxAnswer - value
			}
			score := profile.Traits[q.Domain]
			score.Sum += value
			score.Count++
			profile.Traits[q.Domain] = score
		case SectionInterests:
			profile.Interests[riasec.Category(q.Domain)] += value
		case SectionCommunication:
			axes[q.Domain] += (value - 3) * axisStep * q.Direction
		}
	}

	for domain, score := range profile.Traits {
		score.Percent = percent(score.Sum, score.Count)
		profile.Traits[domain] = score
	}

	profile.Communication = Communication{
		Assertiveness:  clamp(axes[Assertiveness], 0, 100),
		Responsiveness: clamp(axes[Responsiveness], 0, 100),
	}

	return profile, nil
}

// percent returns floor(100*sum/(count*MaxAnswer)), or 0 without answers.
func percent(sum, count int) int {
	if count == 0 {
		return 0
	}
	return 100 * sum / (count * MaxAnswer)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
