package catalog

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"go.uber.org/zap"
)

// cleanRecord trims fields and, when requested, converts scraped HTML to text.
func cleanRecord(job *JobRecord, opts LoadOptions) {
	job.Name = strings.TrimSpace(job.Name)
	job.URL = strings.TrimSpace(job.URL)

	if !opts.HTML {
		return
	}

	job.ShortDescription = htmlToText(job.ShortDescription, job, opts.logger())
	job.FullDescription = htmlToText(job.FullDescription, job, opts.logger())
	job.Requirements = htmlToText(job.Requirements, job, opts.logger())
}

// htmlToText returns the markdown rendering of s. The input is returned
// unchanged when it does not look like HTML or fails to convert.
func htmlToText(s string, job *JobRecord, logger *zap.Logger) string {
	if !strings.Contains(s, "<") {
		return s
	}

	md, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		logger.Debug("html conversion failed, keeping raw text",
			zap.String("job", job.ID()),
			zap.Error(err),
		)
		return s
	}
	return strings.TrimSpace(md)
}
