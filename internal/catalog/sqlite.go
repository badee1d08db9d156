package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

const jobsQuery = `
	SELECT name, url, short_description, full_description, requirements
	FROM jobs
	ORDER BY rowid
`

// LoadJobsSQLite reads the job catalog from the jobs table of a SQLite file.
// A missing file is reported as an error instead of creating an empty database.
func LoadJobsSQLite(ctx context.Context, path string, opts LoadOptions) (*Jobs, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening jobs database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening jobs database %q: %w", path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, jobsQuery)
	if err != nil {
		return nil, fmt.Errorf("querying jobs from %q: %w", path, err)
	}
	defer rows.Close()

	jobs := &Jobs{}
	for rows.Next() {
		var name, url, short, full, reqs sql.NullString
		if err := rows.Scan(&name, &url, &short, &full, &reqs); err != nil {
			return nil, fmt.Errorf("scanning job row %d: %w", jobs.Len()+1, err)
		}

		record := &JobRecord{
			Row:              jobs.Len(),
			Name:             name.String,
			URL:              url.String,
			ShortDescription: short.String,
			FullDescription:  full.String,
			Requirements:     reqs.String,
		}
		cleanRecord(record, opts)
		jobs.Items = append(jobs.Items, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading jobs from %q: %w", path, err)
	}

	opts.logger().Debug("jobs database loaded", zap.String("path", path), zap.Int("count", jobs.Len()))
	return jobs, nil
}
