// Package catalog loads the input tables consumed by the engine: the job
// catalog and the archetype reference tables.
package catalog

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	JobNameField             = "name"
	JobURLField              = "url"
	JobShortDescriptionField = "short_description"
	JobFullDescriptionField  = "full_description"
	JobRequirementsField     = "requirements"
)

// jobAliases maps accepted column headers to record fields. Headers are
// compared case-insensitively.
var jobAliases = map[string]string{
	"nazwa_zawodu":      JobNameField,
	"nazwa":             JobNameField,
	"link":              JobURLField,
	"krotki_opis":       JobShortDescriptionField,
	"pelny_opis":        JobFullDescriptionField,
	"wymagania":         JobRequirementsField,
	"name":              JobNameField,
	"url":               JobURLField,
	"short_description": JobShortDescriptionField,
	"full_description":  JobFullDescriptionField,
	"requirements":      JobRequirementsField,
}

type Jobs struct {
	Items []*JobRecord
}

type JobRecord struct {
	// Row is the zero-based position in the source table.
	Row              int    `mapstructure:"-" json:"row"`
	Name             string `mapstructure:"name" json:"name"`
	URL              string `mapstructure:"url" json:"url,omitempty"`
	ShortDescription string `mapstructure:"short_description" json:"short_description,omitempty"`
	FullDescription  string `mapstructure:"full_description" json:"full_description,omitempty"`
	Requirements     string `mapstructure:"requirements" json:"requirements,omitempty"`
}

// ID identifies the record inside its table.
func (j *JobRecord) ID() string {
	if name := strings.TrimSpace(j.Name); name != "" {
		return name
	}
	return "#" + strconv.Itoa(j.Row)
}

// Text joins the descriptive fields the way the tagger reads them.
func (j *JobRecord) Text() string {
	return j.ShortDescription + " " + j.FullDescription + " " + j.Requirements
}

func (j *Jobs) Len() int {
	if j == nil {
		return 0
	}
	return len(j.Items)
}

func (j *Jobs) Names() []string {
	names := make([]string, 0, j.Len())
	if j == nil {
		return names
	}
	for _, job := range j.Items {
		names = append(names, job.ID())
	}
	return names
}

func (j *Jobs) FindByID(id string) *JobRecord {
	if j == nil {
		return nil
	}
	for _, job := range j.Items {
		if job.ID() == id {
			return job
		}
	}
	return nil
}

// Fingerprint identifies the table contents.
func (j *Jobs) Fingerprint() string {
	h := sha256.New()
	if j != nil {
		for _, job := range j.Items {
			for _, field := range []string{job.Name, job.URL, job.ShortDescription, job.FullDescription, job.Requirements} {
				h.Write([]byte(field))
				h.Write([]byte{0x1f})
			}
			h.Write([]byte{0x1e})
		}
	}
	return fmt.Sprintf("jobs:%x", h.Sum(nil)[:12])
}

func (j *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j); err != nil {
		return "", err
	}
	return file.Name(), nil
}
