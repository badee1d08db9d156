// Package questionnaire turns Likert answers into trait, interest and
// communication profiles.
package questionnaire

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/spigell/whoami-engine/internal/riasec"
)

//go:embed bank.yaml
var defaultBank []byte

type Section string

const (
	SectionTraits        Section = "traits"
	SectionInterests     Section = "interests"
	SectionCommunication Section = "communication"
)

// Trait domains.
const (
	Neuroticism       = "neuroticism"
	Extraversion      = "extraversion"
	Openness          = "openness"
	Agreeableness     = "agreeableness"
	Conscientiousness = "conscientiousness"
	// Focus is the executive-function concentration scale.
	Focus = "focus"
	// Competence is the motivation scale for the sense of competence.
	Competence = "competence"
)

// Communication axes.
const (
	Assertiveness  = "assertiveness"
	Responsiveness = "responsiveness"
)

var (
	BigFive     = []string{Neuroticism, Extraversion, Openness, Agreeableness, Conscientiousness}
	ExtraScales = []string{Focus, Competence}
	Axes        = []string{Assertiveness, Responsiveness}
)

var ErrInvalidBank = errors.New("invalid question bank")

type Question struct {
	ID      string  `mapstructure:"id" json:"id"`
	Text    string  `mapstructure:"text" json:"text"`
	Section Section `mapstructure:"section" json:"section"`
	// Domain is a trait name, a RIASEC letter or a communication axis.
	Domain   string `mapstructure:"domain" json:"domain"`
	Reversed bool   `mapstructure:"reversed" json:"reversed,omitempty"`
	// Direction applies to communication questions. Zero means +1.
	Direction int `mapstructure:"direction" json:"direction,omitempty"`
}

// Bank is a versioned, ordered set of questions with stable ids.
type Bank struct {
	Version   string     `mapstructure:"version" json:"version"`
	Questions []Question `mapstructure:"questions" json:"questions"`

	byID map[string]int
}

// DefaultBank returns the built-in question bank.
func DefaultBank() (*Bank, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaultBank)); err != nil {
		return nil, fmt.Errorf("reading built-in question bank: %w", err)
	}
	return decodeBank(v, "built-in")
}

// LoadBank reads a question bank from a YAML or JSON file.
func LoadBank(path string) (*Bank, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading question bank %q: %w", path, err)
	}
	return decodeBank(v, path)
}

func decodeBank(v *viper.Viper, source string) (*Bank, error) {
	var bank Bank
	if err := v.Unmarshal(&bank); err != nil {
		return nil, fmt.Errorf("decoding question bank %s: %w", source, err)
	}
	if err := bank.init(); err != nil {
		return nil, fmt.Errorf("question bank %s: %w", source, err)
	}
	return &bank, nil
}

// NewBank builds a bank from questions, validating them.
func NewBank(version string, questions []Question) (*Bank, error) {
	bank := &Bank{Version: version, Questions: questions}
	if err := bank.init(); err != nil {
		return nil, err
	}
	return bank, nil
}

func (b *Bank) init() error {
	if strings.TrimSpace(b.Version) == "" {
		return fmt.Errorf("%w: version is required", ErrInvalidBank)
	}

	b.byID = make(map[string]int, len(b.Questions))
	for i := range b.Questions {
		q := &b.Questions[i]
		q.ID = normalizeID(q.ID)
		q.Domain = strings.TrimSpace(q.Domain)
		if q.ID == "" {
			return fmt.Errorf("%w: question %d has no id", ErrInvalidBank, i+1)
		}
		if _, ok := b.byID[q.ID]; ok {
			return fmt.Errorf("%w: duplicated question id %q", ErrInvalidBank, q.ID)
		}
		if err := q.validate(); err != nil {
			return fmt.Errorf("%w: question %q: %v", ErrInvalidBank, q.ID, err)
		}
		b.byID[q.ID] = i
	}
	return nil
}

func (q *Question) validate() error {
	switch q.Section {
	case SectionTraits:
		q.Domain = strings.ToLower(q.Domain)
		if !slices.Contains(BigFive, q.Domain) && !slices.Contains(ExtraScales, q.Domain) {
			return fmt.Errorf("unknown trait %q", q.Domain)
		}
	case SectionInterests:
		category, ok := riasec.ParseCategory(q.Domain)
		if !ok {
			return fmt.Errorf("unknown interest category %q", q.Domain)
		}
		q.Domain = string(category)
	case SectionCommunication:
		q.Domain = strings.ToLower(q.Domain)
		if !slices.Contains(Axes, q.Domain) {
			return fmt.Errorf("unknown communication axis %q", q.Domain)
		}
		if q.Direction == 0 {
			q.Direction = 1
		}
		if q.Direction != 1 && q.Direction != -1 {
			return fmt.Errorf("direction must be 1 or -1, got %d", q.Direction)
		}
	default:
		return fmt.Errorf("unknown section %q", q.Section)
	}
	return nil
}

func (b *Bank) Question(id string) (Question, bool) {
	idx, ok := b.byID[normalizeID(id)]
	if !ok {
		return Question{}, false
	}
	return b.Questions[idx], true
}

func (b *Bank) Len() int {
	return len(b.Questions)
}

// Section returns the questions of one section in bank order.
func (b *Bank) Section(s Section) []Question {
	var out []Question
	for _, q := range b.Questions {
		if q.Section == s {
			out = append(out, q)
		}
	}
	return out
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
