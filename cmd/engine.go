package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/whoami-engine/internal/catalog"
	"github.com/spigell/whoami-engine/internal/lexicon"
	"github.com/spigell/whoami-engine/internal/matching"
	"github.com/spigell/whoami-engine/internal/questionnaire"
	"github.com/spigell/whoami-engine/internal/report"
	"github.com/spigell/whoami-engine/internal/tagger"
)

// engine holds everything loaded once per command invocation.
type engine struct {
	config *Config
	logger *zap.Logger

	lexicon *lexicon.Lexicon
	bank    *questionnaire.Bank
	refs    report.References
	jobs    *catalog.Jobs

	tagger  *tagger.Tagger
	cache   *tagger.Cache
	matcher *matching.Matcher
}

func newEngine(ctx context.Context, config *Config, logger *zap.Logger) (*engine, error) {
	e := &engine{config: config, logger: logger, cache: tagger.NewCache()}

	var err error
	if e.lexicon, err = loadLexicon(config.Lexicon); err != nil {
		return nil, err
	}
	logger.Info("lexicon loaded",
		zap.String("version", e.lexicon.Version),
		zap.String("fingerprint", e.lexicon.Fingerprint()),
		zap.Any("keywords", e.lexicon.Summary()),
	)

	if e.bank, err = loadBank(config.QuestionBank); err != nil {
		return nil, err
	}

	if e.refs, err = loadReferences(config.References, logger); err != nil {
		return nil, err
	}

	if e.jobs, err = loadJobs(ctx, config.Jobs, logger); err != nil {
		return nil, err
	}

	if err := e.applyExcludeFile(); err != nil {
		return nil, err
	}

	e.tagger, err = tagger.New(e.lexicon, tagger.Options{
		StressThreshold: config.Tagger.StressThreshold,
		Logger:          logger,
	})
	if err != nil {
		return nil, fmt.Errorf("building tagger: %w", err)
	}

	rules := matching.DefaultRules(e.lexicon)
	for _, disabled := range config.Risks.Disabled {
		reason := disabled.Reason
		if reason == "" {
			reason = "disabled in config"
		}
		if !matching.DisableByName(rules, strings.ToLower(strings.TrimSpace(disabled.Name)), reason) {
			logger.Warn("unknown risk rule in config", zap.String("name", disabled.Name))
		}
	}

	e.matcher = matching.New(matching.Options{Limit: config.Match.Limit, Logger: logger}, rules...)
	for _, status := range e.matcher.Describe() {
		logger.Debug("risk rule",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	return e, nil
}

// tagged returns the tagged job table, computing it only once per table.
func (e *engine) tagged() []tagger.TaggedJob {
	tagged := e.cache.Tag(e.tagger, e.jobs)
	hits, misses := e.cache.Stats()
	e.logger.Debug("tagged job table",
		zap.Int("count", len(tagged)),
		zap.Int("stress_threshold", e.tagger.StressThreshold()),
		zap.Int64("cache_hits", hits),
		zap.Int64("cache_misses", misses),
	)
	return tagged
}

func (e *engine) build(profile questionnaire.Profile) (*report.Report, error) {
	return report.Build(profile, e.tagged(), e.refs, e.matcher)
}

func (e *engine) applyExcludeFile() error {
	path := strings.TrimSpace(e.config.Jobs.ExcludeFile)
	if path == "" {
		return nil
	}

	excluded, err := catalog.LoadExcludedJobs(path)
	if err != nil {
		return fmt.Errorf("getting excluded jobs from file: %w", err)
	}

	removed := e.jobs.Exclude(excluded.Names())
	if len(removed) > 0 {
		e.logger.Info("excluding jobs based on exclude file",
			zap.String("path", path),
			zap.Strings("excluded_jobs", removed),
			zap.Int("jobs_left", e.jobs.Len()),
		)
	}
	return nil
}

// excludeJob hides a job from later reports and records it in the exclude file.
func (e *engine) excludeJob(job *catalog.JobRecord, reason string) error {
	path := strings.TrimSpace(e.config.Jobs.ExcludeFile)
	if path == "" {
		return errors.New("jobs.exclude-file is not configured")
	}

	excluded, err := catalog.LoadExcludedJobs(path)
	if err != nil {
		return err
	}
	excluded.Append(catalog.Exclude(job, reason))
	if err := excluded.ToFile(path); err != nil {
		return err
	}

	e.jobs.Exclude([]string{job.ID()})
	e.logger.Info("appended to exclude file", zap.String("filename", path), zap.String("job", job.ID()))
	return nil
}

func loadLexicon(path string) (*lexicon.Lexicon, error) {
	if strings.TrimSpace(path) == "" {
		return lexicon.Default(), nil
	}
	lx, err := lexicon.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading lexicon: %w", err)
	}
	return lx, nil
}

func loadBank(path string) (*questionnaire.Bank, error) {
	if strings.TrimSpace(path) == "" {
		return questionnaire.DefaultBank()
	}
	bank, err := questionnaire.LoadBank(path)
	if err != nil {
		return nil, fmt.Errorf("loading question bank: %w", err)
	}
	return bank, nil
}

// loadJobs reads the job table. A missing or unconfigured table is an empty
// one; a table that exists but cannot be read is an error.
func loadJobs(ctx context.Context, cfg *JobsConfig, logger *zap.Logger) (*catalog.Jobs, error) {
	sep, err := parseSeparator(cfg.Separator)
	if err != nil {
		return nil, fmt.Errorf("jobs.separator: %w", err)
	}
	opts := catalog.LoadOptions{Separator: sep, HTML: cfg.HTML, Logger: logger}

	var (
		jobs   *catalog.Jobs
		source string
	)
	switch {
	case cfg.SQLite != "":
		source = cfg.SQLite
		if cfg.CSV != "" {
			logger.Info("both job sources configured, using sqlite", zap.String("ignored", cfg.CSV))
		}
		jobs, err = catalog.LoadJobsSQLite(ctx, cfg.SQLite, opts)
	case cfg.CSV != "":
		source = cfg.CSV
		jobs, err = catalog.LoadJobsCSV(cfg.CSV, opts)
	default:
		logger.Warn("job table is empty", zap.String("reason", "no job source configured"))
		return &catalog.Jobs{}, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("job table is empty", zap.String("reason", "file not found"), zap.String("path", source))
		return &catalog.Jobs{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading job table: %w", err)
	}

	if jobs.Len() == 0 {
		logger.Warn("job table is empty", zap.String("reason", "no rows"), zap.String("path", source))
	} else {
		logger.Info("job table loaded", zap.String("path", source), zap.Int("count", jobs.Len()))
	}
	return jobs, nil
}

func loadReferences(cfg *ReferencesConfig, logger *zap.Logger) (report.References, error) {
	var refs report.References

	sep, err := parseSeparator(cfg.Separator)
	if err != nil {
		return refs, fmt.Errorf("references.separator: %w", err)
	}
	opts := catalog.LoadOptions{Separator: sep, Logger: logger}

	if refs.Career, err = loadReference(cfg.Career, catalog.CareerColumns, opts); err != nil {
		return refs, fmt.Errorf("career table: %w", err)
	}
	if refs.Style, err = loadReference(cfg.Communication, catalog.StyleColumns, opts); err != nil {
		return refs, fmt.Errorf("communication table: %w", err)
	}
	return refs, nil
}

func loadReference(path string, cols catalog.Columns, opts catalog.LoadOptions) (*catalog.Archetypes, error) {
	if strings.TrimSpace(path) == "" {
		return catalog.NewArchetypes(nil), nil
	}
	table, err := catalog.LoadArchetypesCSV(path, cols, opts)
	if errors.Is(err, fs.ErrNotExist) {
		opts.Logger.Warn("reference table not found", zap.String("path", path))
		return catalog.NewArchetypes(nil), nil
	}
	return table, err
}

func parseSeparator(s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	if s == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) {
		return 0, fmt.Errorf("separator must be a single character, got %q", s)
	}
	return r, nil
}
