package catalog

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"slices"
	"time"
)

// ExcludedJob is a job the user asked to hide from recommendations.
type ExcludedJob struct {
	Name       string    `json:"name"`
	URL        string    `json:"url,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	ExcludedAt time.Time `json:"excluded_at"`
}

type ExcludedJobs struct {
	Items []*ExcludedJob `json:"items"`
}

// LoadExcludedJobs reads an exclusion list. A missing or empty file is an
// empty list.
func LoadExcludedJobs(path string) (*ExcludedJobs, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &ExcludedJobs{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedJobs{}, nil
	}

	var excluded ExcludedJobs
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

// Exclude builds an exclusion entry for a record.
func Exclude(job *JobRecord, reason string) *ExcludedJob {
	return &ExcludedJob{
		Name:       job.ID(),
		URL:        job.URL,
		Reason:     reason,
		ExcludedAt: time.Now().UTC(),
	}
}

func (e *ExcludedJobs) Append(items ...*ExcludedJob) {
	e.Items = append(e.Items, items...)
}

func (e *ExcludedJobs) Names() []string {
	names := make([]string, 0, len(e.Items))
	for _, job := range e.Items {
		names = append(names, job.Name)
	}
	return names
}

func (e *ExcludedJobs) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// Exclude removes the records whose id is listed and returns the removed ids.
// The order of the remaining records is kept.
func (j *Jobs) Exclude(ids []string) []string {
	if j == nil || len(ids) == 0 {
		return nil
	}

	var excluded []string
	j.Items = slices.DeleteFunc(j.Items, func(job *JobRecord) bool {
		if slices.Contains(ids, job.ID()) {
			excluded = append(excluded, job.ID())
			return true
		}
		return false
	})
	return excluded
}
