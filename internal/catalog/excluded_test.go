package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestJobsExclude(t *testing.T) {
	jobs := &Jobs{Items: []*JobRecord{
		{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"},
	}}

	removed := jobs.Exclude([]string{"C", "A", "missing"})
	if len(removed) != 2 {
		t.Fatalf("expected 2 removed, got %v", removed)
	}

	names := jobs.Names()
	if len(names) != 2 || names[0] != "B" || names[1] != "D" {
		t.Fatalf("expected order to be kept, got %v", names)
	}

	if removed := (*Jobs)(nil).Exclude([]string{"A"}); removed != nil {
		t.Fatalf("expected nil table to be a no-op, got %v", removed)
	}
}

func TestExcludedJobsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excluded.json")

	excluded, err := LoadExcludedJobs(path)
	if err != nil {
		t.Fatalf("expected missing file to be an empty list, got %v", err)
	}
	if len(excluded.Items) != 0 {
		t.Fatalf("expected empty list, got %d", len(excluded.Items))
	}

	excluded.Append(Exclude(&JobRecord{Name: "Sapper", URL: "https://example.test/sapper"}, "too loud"))
	if err := excluded.ToFile(path); err != nil {
		t.Fatalf("writing: %v", err)
	}

	loaded, err := LoadExcludedJobs(path)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}
	if names := loaded.Names(); len(names) != 1 || names[0] != "Sapper" {
		t.Fatalf("unexpected names: %v", names)
	}
	if loaded.Items[0].Reason != "too loud" || loaded.Items[0].ExcludedAt.IsZero() {
		t.Fatalf("unexpected entry: %+v", loaded.Items[0])
	}
}

func TestLoadExcludedJobsErrors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if excluded, err := LoadExcludedJobs(empty); err != nil || len(excluded.Items) != 0 {
		t.Fatalf("expected empty file to be an empty list, got %v", err)
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte("{"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := LoadExcludedJobs(broken); err == nil {
		t.Fatalf("expected decoding error")
	}
}
