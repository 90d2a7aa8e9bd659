// Package export persists harvested leads to tabular files.
package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/m-zajac/leadharvester/internal/app"
	"github.com/pkg/errors"
)

// Column order of the output file. Stable: downstream consumers parse by header.
var csvHeader = []string{
	"email",
	"github_username",
	"name",
	"repository",
	"repo_description",
	"repo_stars",
	"repo_language",
	"company",
	"bio",
}

// CSVWriter persists leads as comma-separated values under a base directory.
// This struct is an adapter for app.LeadSink.
type CSVWriter struct {
	dir string
}

var _ app.LeadSink = &CSVWriter{}

// NewCSVWriter creates new CSVWriter instance writing files into given directory.
func NewCSVWriter(dir string) *CSVWriter {
	return &CSVWriter{
		dir: dir,
	}
}

// Persist writes all leads to the named file, header row first, one row per
// lead in given order. An existing file is overwritten. With no leads this
// is a no-op: no file is created or truncated.
func (w *CSVWriter) Persist(leads []app.Lead, filename string) error {
	if len(leads) == 0 {
		return nil
	}

	path := filepath.Join(w.dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output file")
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(csvHeader); err != nil {
		return errors.Wrap(err, "writing csv header")
	}
	for _, lead := range leads {
		row := []string{
			lead.Email,
			lead.GithubUsername,
			lead.Name,
			lead.Repository,
			lead.RepoDescription,
			strconv.Itoa(lead.RepoStars),
			lead.RepoLanguage,
			lead.Company,
			lead.Bio,
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "writing csv row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, "flushing csv data")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "closing output file")
	}

	return nil
}
