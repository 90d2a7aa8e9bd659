package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/m-zajac/leadharvester/internal/app"
	"github.com/sirupsen/logrus"
)

// Service can run harvest jobs.
//go:generate mockgen -destination mock/service.go -package mock github.com/m-zajac/leadharvester/internal/api/http Service
type Service interface {
	Harvest(ctx context.Context, req app.HarvestRequest) <-chan app.Event
}

// NewMux creates router for app's http server.
//
// The harvest route streams for the whole run and is deliberately left
// outside the timeout middleware.
func NewMux(service Service, leadsDir string, downloadTimeout time.Duration, l logrus.FieldLogger) *http.ServeMux {
	loggingMiddleware := NewLoggingMiddleware(l)
	timeoutMiddleware := NewTimeoutMiddleware(downloadTimeout)

	harvestHandler := NewHarvestHandler(service, l)
	harvestHandler = loggingMiddleware(harvestHandler)

	downloadPath := "/leads/"
	downloadHandler := NewDownloadHandler(
		func(r *http.Request) string {
			return strings.TrimPrefix(r.URL.Path, downloadPath)
		},
		leadsDir,
	)
	downloadHandler = loggingMiddleware(timeoutMiddleware(downloadHandler))

	m := http.NewServeMux()
	m.HandleFunc("/harvest", harvestHandler)
	m.HandleFunc(downloadPath, downloadHandler)

	return m
}
