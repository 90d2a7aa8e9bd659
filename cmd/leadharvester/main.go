package main

import (
	netHttp "net/http"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/m-zajac/leadharvester/internal/adapter/github"
	"github.com/m-zajac/leadharvester/internal/api/http"
	"github.com/m-zajac/leadharvester/internal/api/http/limiter"
	"github.com/m-zajac/leadharvester/internal/app"
	"github.com/m-zajac/leadharvester/internal/database"
	"github.com/m-zajac/leadharvester/internal/export"
	"github.com/sirupsen/logrus"
)

func main() {
	l := logrus.New()
	l.Level = logrus.InfoLevel

	var conf Config
	if err := envconfig.Process("", &conf); err != nil {
		l.Fatalf("couldn't parse config: %v", err)
	}

	httpClient := &netHttp.Client{
		Timeout: 30 * time.Second,
	}
	limitedHTTPClient := limiter.NewHTTPDoer(
		httpClient,
		conf.GithubAPIRateLimit,
	)

	var profileStore github.ProfileStore
	if conf.ProfileDBPath != "" {
		boltStore, err := database.NewBoltProfileStore(
			conf.ProfileDBPath,
			conf.ProfileDBBucketName,
		)
		if err != nil {
			l.Fatalf("couldn't create bolt profile store: %v", err)
		}
		defer boltStore.Close()
		profileStore = boltStore
	}

	clientFactory := github.NewFactory(
		limitedHTTPClient,
		conf.GithubAPIAddress,
		conf.GithubAPIToken,
		conf.ProfileCacheSize,
		conf.ProfileCacheTTL,
		profileStore,
		conf.ProfileDBDataTTL,
		l.WithField("component", "githubFactory"),
	)

	sink := export.NewCSVWriter(conf.LeadsDir)

	service := app.NewService(
		clientFactory,
		sink,
		l.WithField("component", "service"),
	)

	mux := http.NewMux(
		service,
		conf.LeadsDir,
		conf.DownloadTimeout,
		l.WithField("component", "mux"),
	)
	server := http.NewServer(
		conf.HTTPServerAddress,
		conf.HTTPProfileServerAddress,
		mux,
		l.WithField("component", "httpServer"),
	)

	server.Run()
}
