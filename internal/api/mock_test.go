package api

import (
	"io"
	"net/url"
	"sync"
	"testing"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/bogdanfinn/tls-client/bandwidth"
)

// MockResponseBody is a ReadCloser that simulates reading response data
type MockResponseBody struct {
	data []byte
	pos  int
}

// NewMockResponseBody creates a new MockResponseBody with the given data
func NewMockResponseBody(data []byte) *MockResponseBody {
	return &MockResponseBody{data: data, pos: 0}
}

// Read implements the io.Reader interface
func (m *MockResponseBody) Read(p []byte) (n int, err error) {
	if m.pos >= len(m.data) {
		return 0, io.EOF
	}
	n = copy(p, m.data[m.pos:])
	m.pos += n
	return n, nil
}

// Close implements the io.Closer interface
func (m *MockResponseBody) Close() error {
	return nil
}

// recordedRequest captures what the client sent
type recordedRequest struct {
	Method string
	URL    string
	Header fhttp.Header
	Body   string
}

// MockHttpClient is a mock implementation of tls_client.HttpClient for testing
type MockHttpClient struct {
	mu         sync.Mutex
	StatusCode int
	Body       []byte
	Err        error
	DoFunc     func(req *fhttp.Request) (*fhttp.Response, error)
	Requests   []recordedRequest
	IdleClosed bool
}

func (m *MockHttpClient) GetCookies(u *url.URL) []*fhttp.Cookie          { return nil }
func (m *MockHttpClient) SetCookies(u *url.URL, cookies []*fhttp.Cookie) {}
func (m *MockHttpClient) SetCookieJar(jar fhttp.CookieJar)               {}
func (m *MockHttpClient) GetCookieJar() fhttp.CookieJar                  { return nil }
func (m *MockHttpClient) SetProxy(proxyUrl string) error                 { return nil }
func (m *MockHttpClient) GetProxy() string                               { return "" }
func (m *MockHttpClient) SetFollowRedirect(followRedirect bool)          {}
func (m *MockHttpClient) GetFollowRedirect() bool                        { return false }
func (m *MockHttpClient) Get(url string) (*fhttp.Response, error)        { return nil, nil }
func (m *MockHttpClient) Head(url string) (*fhttp.Response, error)       { return nil, nil }
func (m *MockHttpClient) Post(url, contentType string, body io.Reader) (*fhttp.Response, error) {
	return nil, nil
}
func (m *MockHttpClient) GetBandwidthTracker() bandwidth.BandwidthTracker { return nil }

// CloseIdleConnections implements the tls_client.HttpClient interface
func (m *MockHttpClient) CloseIdleConnections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IdleClosed = true
}

// Do implements the tls_client.HttpClient interface
func (m *MockHttpClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	rec := recordedRequest{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header.Clone(),
	}
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		rec.Body = string(data)
	}

	m.mu.Lock()
	m.Requests = append(m.Requests, rec)
	doFunc := m.DoFunc
	m.mu.Unlock()

	if doFunc != nil {
		return doFunc(req)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &fhttp.Response{
		StatusCode: m.StatusCode,
		Body:       NewMockResponseBody(m.Body),
		Header:     make(fhttp.Header),
	}, nil
}

// LastRequest returns the most recent request, or a zero value
func (m *MockHttpClient) LastRequest() recordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return recordedRequest{}
	}
	return m.Requests[len(m.Requests)-1]
}

// RequestCount returns how many requests were made
func (m *MockHttpClient) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// NewMockHttpClient creates a new MockHttpClient with a fixed response
func NewMockHttpClient(body []byte, statusCode int) *MockHttpClient {
	return &MockHttpClient{Body: body, StatusCode: statusCode}
}

// NewMockHttpClientWithError creates a new MockHttpClient that returns an error
func NewMockHttpClientWithError(err error) *MockHttpClient {
	return &MockHttpClient{Err: err}
}

func newTestClient(t *testing.T, mock *MockHttpClient) *Client {
	client, err := NewClient("http://chat.test:8080/", WithHTTPClient(mock))
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	return client
}
