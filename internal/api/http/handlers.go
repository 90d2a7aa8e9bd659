package http

import (
	"net/http"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/m-zajac/leadharvester/internal/app"
)

type harvestRequest struct {
	Token            string   `json:"token"`
	Queries          []string `json:"queries"`
	QueriesRaw       string   `json:"queries_raw"`
	MaxReposPerQuery int      `json:"max_repos_per_query"`
	Concurrency      int      `json:"concurrency"`
	OutputFilename   string   `json:"output_filename"`
}

// NewHarvestHandler creates handlerfunc streaming harvest events as
// newline-delimited JSON, one event per line, flushed as they arrive.
func NewHarvestHandler(service Service, l logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "", http.StatusMethodNotAllowed)
			return
		}

		var req harvestRequest
		if err := jsoniter.ConfigFastest.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/x-ndjson; charset=utf-8")

		flusher, _ := w.(http.Flusher)
		enc := jsoniter.ConfigFastest.NewEncoder(w)
		for ev := range service.Harvest(r.Context(), app.HarvestRequest{
			Token:            req.Token,
			Queries:          req.Queries,
			QueriesRaw:       req.QueriesRaw,
			MaxReposPerQuery: req.MaxReposPerQuery,
			Concurrency:      req.Concurrency,
			OutputFilename:   req.OutputFilename,
		}) {
			if err := enc.Encode(ev); err != nil {
				// Client is gone; the canceled request context stops the run.
				l.Infof("encoding event: %v", err)
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}

// NewDownloadHandler creates handlerfunc serving harvested csv files.
// Requested names containing a path separator or not ending in the csv
// extension are rejected.
func NewDownloadHandler(getFilename func(*http.Request) string, leadsDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := getFilename(r)
		if !validDownloadName(name) {
			http.Error(w, "invalid filename", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		http.ServeFile(w, r, filepath.Join(leadsDir, name))
	}
}

func validDownloadName(name string) bool {
	if name == "" || name == ".csv" {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}

	return strings.HasSuffix(name, ".csv")
}
