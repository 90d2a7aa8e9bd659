package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/m-zajac/leadharvester/internal/app"
	"github.com/m-zajac/leadharvester/internal/emailcheck"
)

// HTTPDoer can execute http request.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

const commitsPerPage = 100

// Client mines the GitHub REST API for repositories, owner profiles and
// commit author emails. This struct is an adapter for app.DirectoryClient.
//
// All methods are best effort: any failure yields an empty result and the
// cause of the most recent search failure is recorded for LastError.
// On 401 with a token configured, every call retries once unauthenticated
// before giving up.
type Client struct {
	doer      HTTPDoer
	address   string
	authToken string

	searchResponseMaxSize  int
	userResponseMaxSize    int
	commitsResponseMaxSize int

	mu        sync.Mutex
	lastError string
}

var _ app.DirectoryClient = &Client{}

// NewClient creates new github client.
// authToken is optional.
func NewClient(doer HTTPDoer, address string, authToken string) *Client {
	c := Client{
		doer:      doer,
		address:   address,
		authToken: authToken,

		searchResponseMaxSize:  1024 * 1024 * 10,
		userResponseMaxSize:    1024 * 1024,
		commitsResponseMaxSize: 1024 * 1024 * 30,
	}

	return &c
}

// SearchRepositories returns repositories matching given search query,
// sorted by stars. Returns an empty slice on any failure; callers
// distinguish "no matches" from "failed" via LastError.
func (c *Client) SearchRepositories(ctx context.Context, query string, perPage int) []app.RepositoryRecord {
	if perPage < 1 {
		perPage = 1
	}

	u := c.address + "/search/repositories"
	v := make(url.Values)
	v.Set("q", query)
	v.Set("sort", "stars")
	v.Set("order", "desc")
	v.Set("per_page", strconv.Itoa(perPage))
	u += "?" + v.Encode()

	res, err := c.get(ctx, u, c.searchResponseMaxSize, true)
	if err != nil {
		c.setLastError("Request error: " + errorClass(err))
		return nil
	}

	if res.status == http.StatusUnauthorized {
		c.setLastError("Unauthorized (bad or missing token)")
		if c.authToken == "" {
			return nil
		}
		res, err = c.get(ctx, u, c.searchResponseMaxSize, false)
		if err != nil || res.status != http.StatusOK {
			return nil
		}
	}

	switch {
	case res.status == http.StatusForbidden:
		if res.header.Get("X-RateLimit-Remaining") == "0" {
			c.setLastError("Rate limited (403). Wait before retry.")
		} else {
			c.setLastError("Forbidden (403). Possibly missing scopes or abuse detection.")
		}
		return nil
	case res.status >= 400:
		c.setLastError(fmt.Sprintf("HTTP %d: %s", res.status, responseMessage(res.body)))
		return nil
	}

	var resp searchResponse
	if err := json.Unmarshal(res.body, &resp); err != nil {
		c.setLastError("Request error: " + errorClass(err))
		return nil
	}

	c.setLastError("")

	return resp.ToRecords()
}

// UserByLogin returns the public profile of given user.
// A 404 yields an explicit "not found": empty profile, ok false, no recorded
// error. Transport and HTTP failures yield the same empty result.
func (c *Client) UserByLogin(ctx context.Context, login string) (app.UserProfile, bool) {
	u := c.address + "/users/" + url.PathEscape(login)

	res, err := c.get(ctx, u, c.userResponseMaxSize, true)
	if err != nil {
		return app.UserProfile{}, false
	}
	if res.status == http.StatusUnauthorized && c.authToken != "" {
		res, err = c.get(ctx, u, c.userResponseMaxSize, false)
		if err != nil {
			return app.UserProfile{}, false
		}
	}
	if res.status >= 400 {
		return app.UserProfile{}, false
	}

	var resp userResponse
	if err := json.Unmarshal(res.body, &resp); err != nil {
		return app.UserProfile{}, false
	}

	return resp.ToProfile(), true
}

// CommitAuthors pages through the repository's recent commits and returns
// one entry per unique acceptable author email, in first-seen order, with
// the name the email was first seen with. Failures stop pagination and
// return the results collected so far.
func (c *Client) CommitAuthors(ctx context.Context, fullName string, maxPages int) []app.CommitAuthor {
	if maxPages < 1 {
		maxPages = 1
	}

	seen := make(map[string]bool)
	var authors []app.CommitAuthor
	for page := 1; page <= maxPages; page++ {
		v := make(url.Values)
		v.Set("per_page", strconv.Itoa(commitsPerPage))
		v.Set("page", strconv.Itoa(page))
		u := c.address + "/repos/" + fullName + "/commits?" + v.Encode()

		res, err := c.get(ctx, u, c.commitsResponseMaxSize, true)
		if err != nil {
			break
		}
		if res.status == http.StatusUnauthorized && c.authToken != "" {
			res, err = c.get(ctx, u, c.commitsResponseMaxSize, false)
			if err != nil {
				break
			}
		}
		if res.status >= 400 {
			break
		}

		var resp commitsResponse
		if err := json.Unmarshal(res.body, &resp); err != nil {
			break
		}
		if len(resp) == 0 {
			break
		}

		for _, item := range resp {
			email := item.Commit.Author.Email
			if !emailcheck.Acceptable(email) {
				continue
			}
			email = strings.ToLower(email)
			if seen[email] {
				continue
			}
			seen[email] = true
			authors = append(authors, app.CommitAuthor{
				Email: email,
				Name:  item.Commit.Author.Name,
			})
		}

		if !hasNextPage(res.header) {
			break
		}
	}

	return authors
}

// LastError returns the recorded diagnostic of the most recent failed search
// call, or an empty string after a successful one. The value is advisory
// text, not a control flow signal.
func (c *Client) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastError
}

func (c *Client) setLastError(msg string) {
	c.mu.Lock()
	c.lastError = msg
	c.mu.Unlock()
}

type apiResult struct {
	status int
	header http.Header
	body   []byte
}

func (c *Client) get(ctx context.Context, url string, maxBytes int, withAuth bool) (*apiResult, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating http request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if withAuth && c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.doer.Do(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	// Always drain body before close to allow connection reuse.
	// See: http://tleyden.github.io/blog/2016/11/21/tuning-the-go-http-client-library-for-load-testing/
	defer func() {
		_, _ = io.CopyN(ioutil.Discard, resp.Body, 1024)
		resp.Body.Close()
	}()

	body, err := ioutil.ReadAll(io.LimitReader(resp.Body, int64(maxBytes)))
	if err != nil {
		return nil, fmt.Errorf("reading http response body: %w", err)
	}

	return &apiResult{
		status: resp.StatusCode,
		header: resp.Header,
		body:   body,
	}, nil
}

// responseMessage extracts the platform's error message from a failure body.
func responseMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}

	msg := string(body)
	if len(msg) > 120 {
		msg = msg[:120]
	}

	return msg
}

// errorClass names a transport failure by its type, mirroring the diagnostic
// style of the recorded last-error strings.
func errorClass(err error) string {
	if uerr, ok := err.(*url.Error); ok {
		if uerr.Timeout() {
			return "Timeout"
		}
		err = uerr.Err
	}

	return fmt.Sprintf("%T", err)
}

func hasNextPage(h http.Header) bool {
	return strings.Contains(h.Get("Link"), `rel="next"`)
}
