// Package tagger assigns an interest code and a stress flag to job records by
// counting keyword presence in their descriptions.
package tagger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/whoami-engine/internal/catalog"
	"github.com/spigell/whoami-engine/internal/lexicon"
	"github.com/spigell/whoami-engine/internal/logger"
	"github.com/spigell/whoami-engine/internal/riasec"
)

// DefaultStressThreshold is the number of distinct stress words a description
// needs to be flagged as high stress.
const DefaultStressThreshold = 2

type Options struct {
	// StressThreshold values below 1 fall back to DefaultStressThreshold.
	StressThreshold int
	Logger          *zap.Logger
}

// TaggedJob is a job record with its derived classification.
type TaggedJob struct {
	*catalog.JobRecord

	InterestCode riasec.Code   `json:"interest_code"`
	HighStress   bool          `json:"high_stress"`
	Scores       riasec.Scores `json:"scores"`
	StressHits   int           `json:"stress_hits"`
}

type Tagger struct {
	lexicon   *lexicon.Lexicon
	threshold int
	logger    *zap.Logger
}

func New(lx *lexicon.Lexicon, opts Options) (*Tagger, error) {
	if lx == nil {
		return nil, errors.New("lexicon is required")
	}
	if err := lx.Validate(); err != nil {
		return nil, err
	}

	threshold := opts.StressThreshold
	if threshold < 1 {
		threshold = DefaultStressThreshold
	}

	return &Tagger{
		lexicon:   lx,
		threshold: threshold,
		logger:    logger.WithFields(opts.Logger, zap.String("lexicon", lx.Version)),
	}, nil
}

func (t *Tagger) StressThreshold() int {
	return t.threshold
}

// Key identifies the output of Tag for a table.
func (t *Tagger) Key(jobs *catalog.Jobs) string {
	return strings.Join([]string{jobs.Fingerprint(), t.lexicon.Fingerprint(), strconv.Itoa(t.threshold)}, "|")
}

// Tag classifies every record of the table. An empty or nil table yields an
// empty result.
func (t *Tagger) Tag(jobs *catalog.Jobs) []TaggedJob {
	tagged := make([]TaggedJob, 0, jobs.Len())
	if jobs == nil {
		return tagged
	}
	for _, job := range jobs.Items {
		tagged = append(tagged, t.TagRecord(job))
	}
	return tagged
}

// TagRecord classifies a single record.
func (t *Tagger) TagRecord(job *catalog.JobRecord) TaggedJob {
	text := strings.ToLower(job.Text())

	scores := make(riasec.Scores, 6)
	for _, category := range riasec.Categories() {
		scores[category] = countPresent(text, t.lexicon.Keywords(category))
	}

	code := scores.Code()
	hits := countPresent(text, t.lexicon.Stress)

	t.logger.Debug("job tagged",
		append(logger.JobFields(job.ID(), code.String()),
			zap.Int("stress_hits", hits),
			zap.String("text_preview", logger.TruncateForLog(text, 80)),
		)...,
	)

	return TaggedJob{
		JobRecord:    job,
		InterestCode: code,
		HighStress:   hits >= t.threshold,
		Scores:       scores,
		StressHits:   hits,
	}
}

// countPresent counts keywords occurring at least once in text.
func countPresent(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

// Summary counts tagged jobs per primary category.
func Summary(tagged []TaggedJob) map[string]int {
	summary := make(map[string]int)
	for _, job := range tagged {
		summary[string(job.InterestCode.Primary())]++
	}
	return summary
}

func (j TaggedJob) String() string {
	return fmt.Sprintf("%s [%s]", j.ID(), j.InterestCode)
}
