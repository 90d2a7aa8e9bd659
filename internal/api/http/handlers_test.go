package http

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	jsoniter "github.com/json-iterator/go"
	"github.com/m-zajac/leadharvester/internal/api/http/mock"
	"github.com/m-zajac/leadharvester/internal/app"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventsChannel(events ...app.Event) <-chan app.Event {
	ch := make(chan app.Event, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)

	return ch
}

func TestNewHarvestHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		setupMock  func(*mock.MockService)
		newRequest func() *http.Request
		wantStatus int
		wantPhases []string
	}{
		{
			name: "streams all events as ndjson",
			setupMock: func(m *mock.MockService) {
				m.EXPECT().
					Harvest(gomock.Any(), app.HarvestRequest{
						Token:       "run-token",
						Queries:     []string{"language:go"},
						Concurrency: 2,
					}).
					Return(eventsChannel(
						app.QueriesReceivedEvent{
							Phase:        app.PhaseQueriesReceived,
							Queries:      []string{"language:go"},
							TotalQueries: 1,
						},
						app.LeadAddedEvent{
							Phase:   app.PhaseLeadAdded,
							Email:   "alice@example.com",
							Reasons: []string{},
						},
						app.FinishedEvent{
							Phase:      app.PhaseFinished,
							LeadsTotal: 1,
							File:       "leads.csv",
						},
					))
			},
			newRequest: func() *http.Request {
				body := `{"token":"run-token","queries":["language:go"],"concurrency":2}`
				return httptest.NewRequest(http.MethodPost, "/harvest", strings.NewReader(body))
			},
			wantStatus: http.StatusOK,
			wantPhases: []string{"queries_received", "lead_added", "finished"},
		},
		{
			name:      "method not allowed",
			setupMock: func(m *mock.MockService) {},
			newRequest: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/harvest", nil)
			},
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:      "invalid body",
			setupMock: func(m *mock.MockService) {},
			newRequest: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/harvest", strings.NewReader("{not json"))
			},
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := mock.NewMockService(ctrl)
			tt.setupMock(service)

			handler := NewHarvestHandler(service, logrus.New())

			w := httptest.NewRecorder()
			handler(w, tt.newRequest())

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantPhases == nil {
				return
			}

			assert.Equal(t, "application/x-ndjson; charset=utf-8", w.Header().Get("Content-Type"))

			lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
			require.Len(t, lines, len(tt.wantPhases))
			for i, line := range lines {
				var payload map[string]interface{}
				require.NoError(t, jsoniter.Unmarshal([]byte(line), &payload))
				assert.Equal(t, tt.wantPhases[i], payload["phase"])
			}
		})
	}
}

func TestNewHarvestHandlerLeadAddedFields(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mock.NewMockService(ctrl)
	service.EXPECT().
		Harvest(gomock.Any(), gomock.Any()).
		Return(eventsChannel(app.LeadAddedEvent{
			Phase:          app.PhaseLeadAdded,
			Email:          "alice@example.com",
			Repository:     "alice/tool",
			Name:           "Alice",
			RepoStars:      42,
			GithubUsername: "alice",
			Reasons:        []string{},
		}))

	handler := NewHarvestHandler(service, logrus.New())

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodPost, "/harvest", strings.NewReader(`{"queries":["q"]}`)))

	require.Equal(t, http.StatusOK, w.Code)
	line := strings.TrimSpace(w.Body.String())

	var payload map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal([]byte(line), &payload))
	assert.Equal(t, "alice@example.com", payload["email"])
	assert.Equal(t, "alice/tool", payload["repository"])
	assert.Equal(t, float64(42), payload["repo_stars"])
	assert.Equal(t, "alice", payload["github_username"])
	assert.Equal(t, []interface{}{}, payload["reasons"])
}

func TestNewDownloadHandler(t *testing.T) {
	t.Parallel()

	dir, err := ioutil.TempDir("", "downloads")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	content := "email,github_username\nalice@example.com,alice\n"
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "leads.csv"), []byte(content), 0644))

	tests := []struct {
		name       string
		filename   string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid file",
			filename:   "leads.csv",
			wantStatus: http.StatusOK,
			wantBody:   content,
		},
		{
			name:       "missing file",
			filename:   "other.csv",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "wrong extension",
			filename:   "leads.txt",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty name",
			filename:   "",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "extension only",
			filename:   ".csv",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "path separator",
			filename:   "../secrets.csv",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "windows path separator",
			filename:   `..\secrets.csv`,
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := NewDownloadHandler(
				func(*http.Request) string { return tt.filename },
				dir,
			)

			w := httptest.NewRecorder()
			handler(w, httptest.NewRequest(http.MethodGet, "/leads/x", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}
