package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/whoami-engine/internal/riasec"
	"github.com/spigell/whoami-engine/internal/tagger"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Print the job table with interest codes and stress flags",
	Run: func(cmd *cobra.Command, _ []string) {
		tag(cmd)
	},
}

func init() {
	rootCmd.AddCommand(tagCmd)

	tagCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
	tagCmd.Flags().Bool("dump", false, "dump the loaded job table to a temporary file")
	tagCmd.Flags().String("job", "", "print the per-category scores of a single job")
}

func tag(cmd *cobra.Command) {
	lg := newLogger(cmd)

	config, err := getConfig()
	if err != nil {
		lg.Fatal("getting a config", zap.Error(err))
	}

	e, err := newEngine(context.Background(), config, lg)
	if err != nil {
		lg.Fatal("preparing the engine", zap.Error(err))
	}

	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		filename, err := e.jobs.DumpToTmpFile()
		if err != nil {
			lg.Fatal("dump jobs to file", zap.Error(err))
		}
		lg.Info("dumping jobs to file", zap.String("filename", filename))
	}

	if name, _ := cmd.Flags().GetString("job"); name != "" {
		job := e.jobs.FindByID(name)
		if job == nil {
			lg.Fatal("job not found", zap.String("job", name), zap.Strings("existed jobs", e.jobs.Names()))
		}
		printJobScores(cmd.OutOrStdout(), e.tagger.TagRecord(job))
		return
	}

	tagged := e.tagged()
	lg.Info("jobs tagged", zap.Int("count", len(tagged)), zap.Any("by_primary", tagger.Summary(tagged)))

	out := cmd.OutOrStdout()
	if output, _ := cmd.Flags().GetString("output"); output == outputJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tagged); err != nil {
			lg.Fatal("printing tagged jobs", zap.Error(err))
		}
		return
	}

	for _, job := range tagged {
		stress := ""
		if job.HighStress {
			stress = fmt.Sprintf(" high stress (%d)", job.StressHits)
		}
		fmt.Fprintf(out, "%s%s\n", job, stress)
	}
}

func printJobScores(w io.Writer, job tagger.TaggedJob) {
	fmt.Fprintf(w, "%s\n", job)
	for _, category := range riasec.Categories() {
		fmt.Fprintf(w, "  %s %-14s %d\n", category, category.Name(), job.Scores[category])
	}
	fmt.Fprintf(w, "  stress hits: %d, high stress: %t\n", job.StressHits, job.HighStress)
}
