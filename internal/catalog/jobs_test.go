package catalog

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const jobsCSV = `Nazwa_Zawodu,Link,Krotki_Opis,Pelny_Opis,Wymagania,Extra
Mechanik,https://example.com/mechanik,Naprawiam maszyny,"montaż instalacji, praca fizyczna",prawo jazdy,ignored
 Księgowy ,https://example.com/ksiegowy,Finanse,Praca w biurze,organizacja pracy
,,tylko opis
`

func TestReadJobsCSV(t *testing.T) {
	jobs, err := ReadJobsCSV(strings.NewReader(jobsCSV), LoadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if jobs.Len() != 3 {
		t.Fatalf("expected 3 jobs, got %d", jobs.Len())
	}

	first := jobs.Items[0]
	if first.Name != "Mechanik" || first.URL != "https://example.com/mechanik" {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if first.FullDescription != "montaż instalacji, praca fizyczna" {
		t.Fatalf("unexpected full description %q", first.FullDescription)
	}

	if jobs.Items[1].Name != "Księgowy" {
		t.Fatalf("expected trimmed name, got %q", jobs.Items[1].Name)
	}

	short := jobs.Items[2]
	if short.Requirements != "" || short.FullDescription != "" {
		t.Fatalf("expected missing fields to decode empty, got %+v", short)
	}
	if short.ID() != "#2" {
		t.Fatalf("expected positional id for unnamed row, got %q", short.ID())
	}
	if jobs.FindByID("Mechanik") != first {
		t.Fatalf("expected FindByID to return the first record")
	}
}

func TestReadJobsCSVEnglishHeaders(t *testing.T) {
	input := "name;url;short_description;full_description;requirements\nPilot;u;krótko;pełno;wymagania\n"
	jobs, err := ReadJobsCSV(strings.NewReader(input), LoadOptions{Separator: ';'})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobs.Len() != 1 || jobs.Items[0].Requirements != "wymagania" {
		t.Fatalf("unexpected jobs: %+v", jobs.Items)
	}
}

func TestReadJobsCSVEmpty(t *testing.T) {
	jobs, err := ReadJobsCSV(strings.NewReader(""), LoadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobs.Len() != 0 {
		t.Fatalf("expected no jobs, got %d", jobs.Len())
	}
}

func TestReadJobsCSVConvertsHTML(t *testing.T) {
	input := "name,full_description\nAnalityk,\"<p>Analiza <strong>danych</strong></p>\"\n"
	jobs, err := ReadJobsCSV(strings.NewReader(input), LoadOptions{HTML: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := jobs.Items[0].FullDescription
	if strings.Contains(got, "<p>") || !strings.Contains(got, "Analiza") {
		t.Fatalf("expected html to be converted, got %q", got)
	}
}

func TestLoadJobsCSVMissingFile(t *testing.T) {
	_, err := LoadJobsCSV(filepath.Join(t.TempDir(), "missing.csv"), LoadOptions{})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestFingerprint(t *testing.T) {
	a, _ := ReadJobsCSV(strings.NewReader(jobsCSV), LoadOptions{})
	b, _ := ReadJobsCSV(strings.NewReader(jobsCSV), LoadOptions{})
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("expected equal fingerprints for equal tables")
	}

	b.Items[0].Requirements = "inne"
	if a.Fingerprint() == b.Fingerprint() {
		t.Fatalf("expected fingerprint to change with contents")
	}

	var empty *Jobs
	if empty.Fingerprint() == a.Fingerprint() {
		t.Fatalf("expected empty table to have a distinct fingerprint")
	}
}

func TestDumpToTmpFile(t *testing.T) {
	jobs, _ := ReadJobsCSV(strings.NewReader(jobsCSV), LoadOptions{})
	name, err := jobs.DumpToTmpFile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer os.Remove(name)

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("reading dump: %v", err)
	}
	if !strings.Contains(string(data), "Mechanik") {
		t.Fatalf("expected dump to contain job names, got %s", data)
	}
}

func TestLoadJobsSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening fixture db: %v", err)
	}
	_, err = db.Exec(`
		CREATE TABLE jobs (name TEXT, url TEXT, short_description TEXT, full_description TEXT, requirements TEXT);
		INSERT INTO jobs VALUES ('Mechanik', 'u1', 'Naprawiam maszyny', NULL, 'siła');
		INSERT INTO jobs VALUES ('Grafik', 'u2', 'grafika', 'projektowanie', NULL);
	`)
	if err != nil {
		t.Fatalf("seeding fixture db: %v", err)
	}
	db.Close()

	jobs, err := LoadJobsSQLite(context.Background(), path, LoadOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobs.Len() != 2 {
		t.Fatalf("expected 2 jobs, got %d", jobs.Len())
	}
	if jobs.Items[0].FullDescription != "" || jobs.Items[1].Requirements != "" {
		t.Fatalf("expected NULL columns to decode empty: %+v %+v", jobs.Items[0], jobs.Items[1])
	}
	if jobs.Items[1].Row != 1 {
		t.Fatalf("expected row index 1, got %d", jobs.Items[1].Row)
	}
}

func TestLoadJobsSQLiteMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")
	if _, err := LoadJobsSQLite(context.Background(), path, LoadOptions{}); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected database file not to be created")
	}
}
