package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/whoami-engine/internal/questionnaire"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print the question bank",
	Run: func(cmd *cobra.Command, _ []string) {
		questions(cmd)
	},
}

func init() {
	rootCmd.AddCommand(questionsCmd)

	questionsCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
}

func questions(cmd *cobra.Command) {
	lg := newLogger(cmd)

	bank, err := loadBank(viper.GetString("question-bank"))
	if err != nil {
		lg.Fatal("loading the question bank", zap.Error(err))
	}

	out := cmd.OutOrStdout()
	if output, _ := cmd.Flags().GetString("output"); output == outputJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(bank); err != nil {
			lg.Fatal("printing the question bank", zap.Error(err))
		}
		return
	}

	fmt.Fprintf(out, "question bank %s, %d questions\n", bank.Version, bank.Len())
	for _, section := range []questionnaire.Section{
		questionnaire.SectionTraits,
		questionnaire.SectionInterests,
		questionnaire.SectionCommunication,
	} {
		fmt.Fprintf(out, "\n%s\n", section)
		for _, q := range bank.Section(section) {
			fmt.Fprintf(out, "  %-5s %-18s %s%s\n", q.ID, q.Domain, q.Text, questionMarkers(q))
		}
	}
}

// questionMarkers lists every scoring modifier of a question.
func questionMarkers(q questionnaire.Question) string {
	var b strings.Builder
	if q.Reversed {
		b.WriteString(" (reversed)")
	}
	if q.Direction < 0 {
		b.WriteString(" (negative)")
	}
	return b.String()
}
