package questionnaire

import (
	"fmt"

	"github.com/manifoldco/promptui"
)

// likertLabels are shown in order for values 1..5.
var likertLabels = []string{
	"1 - zdecydowanie się nie zgadzam",
	"2 - raczej się nie zgadzam",
	"3 - trudno powiedzieć",
	"4 - raczej się zgadzam",
	"5 - zdecydowanie się zgadzam",
}

// Prompter asks a single question and returns a Likert value.
type Prompter interface {
	Ask(q Question, position, total int) (int, error)
}

// SelectPrompter asks questions with an interactive terminal select.
type SelectPrompter struct{}

func (SelectPrompter) Ask(q Question, position, total int) (int, error) {
	prompt := promptui.Select{
		Label:     fmt.Sprintf("[%d/%d] %s", position, total, q.Text),
		Items:     likertLabels,
		CursorPos: 2,
		Size:      len(likertLabels),
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	return idx + MinAnswer, nil
}

// Collect asks every question of the bank in order. Questions already present
// in prefilled are skipped.
func Collect(bank *Bank, prompter Prompter, prefilled Answers) (Answers, error) {
	answers := make(Answers, bank.Len())
	for id, value := range prefilled {
		answers[normalizeID(id)] = value
	}

	for i, q := range bank.Questions {
		if _, ok := answers[q.ID]; ok {
			continue
		}
		value, err := prompter.Ask(q, i+1, bank.Len())
		if err != nil {
			return nil, fmt.Errorf("asking question %q: %w", q.ID, err)
		}
		answers[q.ID] = value
	}

	if err := answers.Validate(bank); err != nil {
		return nil, err
	}
	return answers, nil
}
