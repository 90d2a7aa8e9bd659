// Package main implements a command line harvester that runs queries
// directly against the github api and prints events to stdout, one
// json object per line.
package main

import (
	"context"
	"flag"
	netHttp "net/http"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/m-zajac/leadharvester/internal/adapter/github"
	"github.com/m-zajac/leadharvester/internal/api/http/limiter"
	"github.com/m-zajac/leadharvester/internal/app"
	"github.com/m-zajac/leadharvester/internal/export"
	"github.com/sirupsen/logrus"
)

var (
	queries    = flag.String("q", "", "Search queries separated by ';'")
	maxRepos   = flag.Int("max-repos", app.DefaultMaxReposPerQuery, "Maximum repositories processed per query")
	workers    = flag.Int("workers", app.DefaultConcurrency, "Number of concurrent repository workers")
	output     = flag.String("o", app.DefaultOutputFilename, "Output csv filename")
	outputDir  = flag.String("dir", ".", "Directory for the output csv file")
	token      = flag.String("token", "", "Github api token (defaults to GITHUB_TOKEN env)")
	apiAddress = flag.String("api", "https://api.github.com", "Github api address")
	rateLimit  = flag.Float64("rate", 0.5, "Maximum github api call frequency per second")
)

func main() {
	flag.Parse()

	l := logrus.New()
	l.Level = logrus.WarnLevel

	authToken := *token
	if authToken == "" {
		authToken = os.Getenv("GITHUB_TOKEN")
	}

	httpClient := &netHttp.Client{
		Timeout: 30 * time.Second,
	}
	clientFactory := github.NewFactory(
		limiter.NewHTTPDoer(httpClient, *rateLimit),
		*apiAddress,
		authToken,
		0, 0,
		nil, 0,
		l,
	)

	service := app.NewService(
		clientFactory,
		export.NewCSVWriter(*outputDir),
		l,
	)

	enc := jsoniter.ConfigFastest.NewEncoder(os.Stdout)
	for ev := range service.Harvest(context.Background(), app.HarvestRequest{
		QueriesRaw:       *queries,
		MaxReposPerQuery: *maxRepos,
		Concurrency:      *workers,
		OutputFilename:   *output,
	}) {
		if err := enc.Encode(ev); err != nil {
			l.Fatalf("encoding event: %v", err)
		}
	}
}
