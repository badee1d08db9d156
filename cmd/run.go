package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/whoami-engine/internal/logger"
	"github.com/spigell/whoami-engine/internal/questionnaire"
	"github.com/spigell/whoami-engine/internal/report"
)

const (
	PromptShow        = "Show the report again"
	PromptChangeLimit = "Change the recommendations limit"
	PromptExcludeJob  = "Exclude a recommended job"
	PromptReportFile  = "Dump report to file"
	PromptExit        = "Exit"
	PromptBack        = "back"

	outputText = "text"
	outputJSON = "json"
)

var errExit = errors.New("exit requested")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Score the answers and print the profile with matching jobs",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("answers", "a", "", "a YAML or JSON file with answers")
	runCmd.Flags().BoolP("interactive", "i", false, "ask the unanswered questions in the terminal")
	runCmd.Flags().BoolP("menu", "m", false, "show the interactive menu after the report")
	runCmd.Flags().IntP("limit", "l", 0, "maximum number of recommendations, 0 means all")
	runCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
	runCmd.Flags().StringP("exclude-file", "e", "", "a file with jobs to exclude from recommendations")

	viper.BindPFlag("answers", runCmd.Flags().Lookup("answers"))
	viper.BindPFlag("match.limit", runCmd.Flags().Lookup("limit"))
	viper.BindPFlag("jobs.exclude-file", runCmd.Flags().Lookup("exclude-file"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	lg := newLogger(cmd)

	config, err := getConfig()
	if err != nil {
		lg.Fatal("getting a config", zap.Error(err))
	}

	output, _ := cmd.Flags().GetString("output")
	if output != outputText && output != outputJSON {
		lg.Fatal("unsupported output format", zap.String("output", output))
	}

	lg.Info("starting the whoami-engine", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	lg.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	e, err := newEngine(ctx, config, lg)
	if err != nil {
		lg.Fatal("preparing the engine", zap.Error(err))
	}

	answers, err := getAnswers(cmd, config, e.bank)
	if err != nil {
		lg.Fatal("getting answers", zap.Error(err))
	}

	profile, err := questionnaire.Aggregate(answers, e.bank)
	if err != nil {
		lg.Fatal("scoring answers", zap.Error(err))
	}

	lg.Info("profile computed",
		append(logger.ProfileFields(profile.InterestCode().String(), string(profile.Style())),
			zap.Int("answered", profile.Answered),
			zap.Int("questions", e.bank.Len()),
			zap.String("bank_version", profile.BankVersion),
		)...,
	)

	r, err := e.build(profile)
	if err != nil {
		lg.Fatal("building the report", zap.Error(err))
	}

	out := cmd.OutOrStdout()
	if err := printReport(out, r, output); err != nil {
		lg.Fatal("printing the report", zap.Error(err))
	}

	if menu, _ := cmd.Flags().GetBool("menu"); !menu {
		return
	}

	for {
		items := []string{PromptShow, PromptChangeLimit}
		if config.Jobs.ExcludeFile != "" && len(r.Recommendations) > 0 {
			items = append(items, PromptExcludeJob)
		}
		items = append(items, PromptReportFile, PromptExit)

		prompt := promptui.Select{Label: "What next?", Items: items}
		_, action, err := prompt.Run()
		if err != nil {
			lg.Fatal("exiting", zap.Error(err))
		}

		next, err := handleAction(action, e, r, profile, out, output)
		if err != nil {
			if errors.Is(err, errExit) {
				return
			}
			lg.Fatal("exiting", zap.Error(err))
		}
		r = next
	}
}

func handleAction(action string, e *engine, r *report.Report, profile questionnaire.Profile, out io.Writer, output string) (*report.Report, error) {
	switch action {
	case PromptShow:
		return r, printReport(out, r, output)
	case PromptChangeLimit:
		limit, err := promptLimit(e.matcher.Limit())
		if err != nil {
			return r, err
		}
		e.matcher.SetLimit(limit)
		e.logger.Info("recommendations limit changed", zap.Int("limit", limit))
		return rebuild(e, profile, out, output)
	case PromptExcludeJob:
		changed, err := excludeFromReport(e, r)
		if err != nil || !changed {
			return r, err
		}
		return rebuild(e, profile, out, output)
	case PromptReportFile:
		filename, err := r.DumpToTmpFile()
		if err != nil {
			return r, fmt.Errorf("dump report to file: %w", err)
		}
		e.logger.Info("dumping report to file", zap.String("filename", filename), zap.String(logger.FieldReport, r.ID))
		return r, nil
	case PromptExit:
		e.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return r, errExit
	default:
		return r, fmt.Errorf("invalid action: %s", action)
	}
}

func rebuild(e *engine, profile questionnaire.Profile, out io.Writer, output string) (*report.Report, error) {
	r, err := e.build(profile)
	if err != nil {
		return nil, err
	}
	return r, printReport(out, r, output)
}

func promptLimit(current int) (int, error) {
	prompt := promptui.Prompt{
		Label:   "Limit (0 means all)",
		Default: strconv.Itoa(current),
		Validate: func(input string) error {
			n, err := strconv.Atoi(input)
			if err != nil {
				return errors.New("limit must be a number")
			}
			if n < 0 {
				return errors.New("limit must not be negative")
			}
			return nil
		},
	}

	input, err := prompt.Run()
	if err != nil {
		return current, err
	}
	return strconv.Atoi(input)
}

func excludeFromReport(e *engine, r *report.Report) (bool, error) {
	items := make([]string, 0, len(r.Recommendations)+1)
	for _, rec := range r.Recommendations {
		items = append(items, fmt.Sprintf("%s [%s] %s", rec.Name, rec.InterestCode, rec.Kind))
	}

	jobPrompt := promptui.Select{
		Label: "Choose a job and press ENTER",
		Items: append(items, PromptBack),
	}

	idx, selected, err := jobPrompt.Run()
	if err != nil {
		return false, err
	}
	if selected == PromptBack {
		return false, nil
	}

	return true, e.excludeJob(r.Recommendations[idx].JobRecord, "excluded from report "+r.ID)
}

func getAnswers(cmd *cobra.Command, config *Config, bank *questionnaire.Bank) (questionnaire.Answers, error) {
	answers := questionnaire.Answers{}
	if config.Answers != "" {
		loaded, err := questionnaire.LoadAnswers(config.Answers)
		if err != nil {
			return nil, err
		}
		answers = loaded
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		return questionnaire.Collect(bank, questionnaire.SelectPrompter{}, answers)
	}

	if config.Answers == "" {
		return nil, errors.New("no answers given: set answers in the config, pass --answers or use --interactive")
	}
	return answers, nil
}

func printReport(w io.Writer, r *report.Report, output string) error {
	if output == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	return r.Render(w)
}
