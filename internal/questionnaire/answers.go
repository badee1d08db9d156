package questionnaire

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/viper"
)

var ErrInvalidAnswer = errors.New("answer is not an integer")

// LoadAnswers reads answers from a YAML or JSON file shaped as
//
//	answers:
//	  n1: 4
//	  r1: 5
//
// Values must be integers; strings and fractions are rejected.
func LoadAnswers(path string) (Answers, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading answers %q: %w", path, err)
	}

	raw := v.Get("answers")
	if raw == nil {
		return Answers{}, nil
	}
	values, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("decoding answers %q: expected a map of question ids, got %T", path, raw)
	}

	answers := make(Answers, len(values))
	for id, value := range values {
		n, err := answerValue(value)
		if err != nil {
			return nil, fmt.Errorf("decoding answers %q: question %q: %w", path, id, err)
		}
		answers[normalizeID(id)] = n
	}
	return answers, nil
}

// answerValue accepts the integer shapes produced by the YAML and JSON
// decoders. JSON numbers arrive as float64 and must be integral.
func answerValue(value any) (int, error) {
	switch n := value.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("%w: %v", ErrInvalidAnswer, n)
		}
		if math.Abs(n) > math.MaxInt32 {
			return 0, fmt.Errorf("%w: %v", ErrAnswerOutOfRange, n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%w: %v (%T)", ErrInvalidAnswer, value, value)
	}
}
