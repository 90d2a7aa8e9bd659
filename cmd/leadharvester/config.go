package main

import "time"

// Config is the container for app configuration
type Config struct {
	// HTTPServerAddress - listen address for http server
	HTTPServerAddress string `default:"0.0.0.0:8080"`

	// HTTPProfileServerAddress - listen address for profiler http server. If empty, profiler server is disabled
	HTTPProfileServerAddress string `default:""`

	// DownloadTimeout - timeout for csv download requests
	DownloadTimeout time.Duration `default:"30s"`

	// GithubAPIAddress - address for rest api with protocol
	GithubAPIAddress string `default:"https://api.github.com"`

	// GithubAPIToken - default auth token for rest github api, used when a harvest request carries none
	GithubAPIToken string `default:""`

	// GithubAPIRateLimit - max frequency for github rest api calls
	GithubAPIRateLimit float64 `default:"0.5"`

	// ProfileCacheSize - maximum number of user profiles cached in memory per run
	ProfileCacheSize int `default:"10000"`

	// ProfileCacheTTL - maximum lifetime for in-memory profile cache entries
	ProfileCacheTTL time.Duration `default:"10m"`

	// ProfileDBPath - filepath for bolt db with user profiles. If empty, persistent profile store is disabled
	ProfileDBPath string `default:"./profiles.data"`

	// ProfileDBBucketName - bolt db bucket name
	ProfileDBBucketName string `default:"profiles"`

	// ProfileDBDataTTL - maximum age for stored profiles before they are refreshed
	ProfileDBDataTTL time.Duration `default:"8h"`

	// LeadsDir - directory for harvested csv files
	LeadsDir string `default:"."`
}
