package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	DefaultJobsSeparator      = ','
	DefaultReferenceSeparator = ';'
)

// LoadOptions control how tables are read.
type LoadOptions struct {
	Separator rune
	// HTML converts field contents from HTML to plain markdown text.
	HTML   bool
	Logger *zap.Logger
}

func (o LoadOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o LoadOptions) separator(fallback rune) rune {
	if o.Separator == 0 {
		return fallback
	}
	return o.Separator
}

// LoadJobsCSV reads the job catalog from a CSV file.
func LoadJobsCSV(path string, opts LoadOptions) (*Jobs, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening jobs table: %w", err)
	}
	defer file.Close()

	jobs, err := ReadJobsCSV(file, opts)
	if err != nil {
		return nil, fmt.Errorf("reading jobs table %q: %w", path, err)
	}

	opts.logger().Debug("jobs table loaded", zap.String("path", path), zap.Int("count", jobs.Len()))
	return jobs, nil
}

// ReadJobsCSV decodes job records from CSV. Unknown columns are ignored and
// missing columns decode as empty strings.
func ReadJobsCSV(r io.Reader, opts LoadOptions) (*Jobs, error) {
	rows, err := readRows(r, opts.separator(DefaultJobsSeparator), func(header string) string {
		return jobAliases[strings.ToLower(header)]
	})
	if err != nil {
		return nil, err
	}

	jobs := &Jobs{Items: make([]*JobRecord, 0, len(rows))}
	for idx, row := range rows {
		record := &JobRecord{}
		if err := mapstructure.Decode(row, record); err != nil {
			return nil, fmt.Errorf("decoding row %d: %w", idx+1, err)
		}
		record.Row = idx
		cleanRecord(record, opts)
		jobs.Items = append(jobs.Items, record)
	}

	return jobs, nil
}

// readRows returns every data row as a map of canonical field name to value.
// Headers the mapper does not recognise are dropped.
func readRows(r io.Reader, sep rune, mapper func(header string) string) ([]map[string]any, error) {
	reader := csv.NewReader(r)
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	fields := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		fields[i] = mapper(h)
	}

	var rows []map[string]any
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(rows)+1, err)
		}

		row := make(map[string]any, len(fields))
		for i, field := range fields {
			if field == "" {
				continue
			}
			if _, ok := row[field]; ok {
				continue
			}
			if i < len(record) {
				row[field] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
