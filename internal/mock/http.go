package mock

import (
	"bytes"
	"io/ioutil"
	"net/http"
	"sync"
)

// HTTPDoer mocks http.Client.
// Responses are scripted: the i-th Do returns the i-th status/body/header
// (indices wrap around).
type HTTPDoer struct {
	Statuses []int
	Bodies   [][]byte
	Headers  []http.Header

	DoFunc    func(*http.Request) (*http.Response, error)
	Responses []*http.Response

	mu sync.Mutex
	i  int
}

// Do fakes executing http request.
func (d *HTTPDoer) Do(r *http.Request) (*http.Response, error) {
	if d.DoFunc != nil {
		return d.DoFunc(r)
	}

	d.mu.Lock()
	defer func() {
		d.i++
		d.mu.Unlock()
	}()

	status := http.StatusOK
	if len(d.Statuses) > 0 {
		status = d.Statuses[d.i%len(d.Statuses)]
	}
	var data []byte
	if len(d.Bodies) > 0 {
		data = d.Bodies[d.i%len(d.Bodies)]
	}
	body := ioutil.NopCloser(bytes.NewBuffer(data))

	header := http.Header{}
	if len(d.Headers) > 0 {
		header = d.Headers[d.i%len(d.Headers)]
	}

	response := &http.Response{
		StatusCode: status,
		Body:       body,
		Header:     header,
		Request:    r,
	}
	d.Responses = append(d.Responses, response)

	return response, nil
}
