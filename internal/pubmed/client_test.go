// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citation-engine/internal/httputil"
	"github.com/pdiddy/citation-engine/pkg/types"
)

const esearchBody = `{"header":{},"esearchresult":{"count":"2","retmax":"2","idlist":["26017442","31452104"]}}`

const esummaryBody = `{
  "result": {
    "uids": ["31452104", "26017442"],
    "26017442": {
      "uid": "26017442",
      "pubdate": "2015 May 28",
      "source": "Nature",
      "authors": [
        {"name": "LeCun Y", "authtype": "Author"},
        {"name": "Bengio Y", "authtype": "Author"},
        {"name": "Hinton G", "authtype": "Author"}
      ],
      "title": "Deep learning.",
      "volume": "521",
      "issue": "7553",
      "pages": "436-44",
      "articleids": [
        {"idtype": "pubmed", "value": "26017442"},
        {"idtype": "doi", "value": "10.1038/nature14539"}
      ]
    },
    "31452104": {
      "uid": "31452104",
      "pubdate": "Autumn",
      "source": "J Example",
      "authors": [],
      "title": "Untitled work",
      "articleids": []
    }
  }
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL), WithRateLimit(-1))
}

func TestSearch(t *testing.T) {
	var calls []string
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
		assert.Equal(t, "pubmed", r.URL.Query().Get("db"))
		assert.Equal(t, "json", r.URL.Query().Get("retmode"))
		switch {
		case strings.HasSuffix(r.URL.Path, "/esearch.fcgi"):
			assert.Equal(t, "deep learning", r.URL.Query().Get("term"))
			assert.Equal(t, "5", r.URL.Query().Get("retmax"))
			w.Write([]byte(esearchBody))
		case strings.HasSuffix(r.URL.Path, "/esummary.fcgi"):
			assert.Equal(t, "26017442,31452104", r.URL.Query().Get("id"))
			w.Write([]byte(esummaryBody))
		default:
			http.NotFound(w, r)
		}
	})

	results, err := c.Search(context.Background(), "deep learning", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, []string{"/esearch.fcgi", "/esummary.fcgi"}, calls)

	// uids order wins over idlist order.
	assert.Equal(t, "31452104", results[0].ID)
	assert.Equal(t, 0, results[0].Year)
	assert.Empty(t, results[0].Authors)
	assert.NotNil(t, results[0].Authors)

	dl := results[1]
	assert.Equal(t, "26017442", dl.ID)
	assert.Equal(t, "Deep learning.", dl.Title)
	assert.Equal(t, []string{"LeCun Y", "Bengio Y", "Hinton G"}, dl.Authors)
	assert.Equal(t, 2015, dl.Year)
	assert.Equal(t, "Nature", dl.Journal)
	assert.Equal(t, "521", dl.Volume)
	assert.Equal(t, "7553", dl.Issue)
	assert.Equal(t, "436-44", dl.Pages)
	assert.Equal(t, "10.1038/nature14539", dl.DOI)
}

func TestSearchEmptyIDListSkipsSummary(t *testing.T) {
	var summaries int32
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/esummary.fcgi") {
			atomic.AddInt32(&summaries, 1)
		}
		w.Write([]byte(`{"esearchresult":{"count":"0","idlist":[]}}`))
	})

	results, err := c.Search(context.Background(), "nothing matches", 0)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, atomic.LoadInt32(&summaries))
}

func TestSearchEmptyQuery(t *testing.T) {
	c := NewClient(WithBaseURL("http://127.0.0.1:1"), WithRateLimit(-1))
	_, err := c.Search(context.Background(), "   ", 5)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearchFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "esearch status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "busy", http.StatusTooManyRequests)
			},
			check: func(t *testing.T, err error) {
				var se *httputil.StatusError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
			},
		},
		{
			name: "esearch missing result",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"header":{}}`))
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrInvalidResponse)
			},
		},
		{
			name: "esearch not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>`))
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrInvalidResponse)
			},
		},
		{
			name: "esummary status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if strings.HasSuffix(r.URL.Path, "/esearch.fcgi") {
					w.Write([]byte(esearchBody))
					return
				}
				http.Error(w, "down", http.StatusBadGateway)
			},
			check: func(t *testing.T, err error) {
				var se *httputil.StatusError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, http.StatusBadGateway, se.StatusCode)
				assert.Contains(t, err.Error(), "summaries")
			},
		},
		{
			name: "esummary missing result",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if strings.HasSuffix(r.URL.Path, "/esearch.fcgi") {
					w.Write([]byte(esearchBody))
					return
				}
				w.Write([]byte(`{}`))
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrInvalidResponse)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, tt.handler)
			results, err := c.Search(context.Background(), "q", 5)
			require.Error(t, err)
			assert.Nil(t, results)
			tt.check(t, err)
		})
	}
}

func TestSummariesSkipsUnavailable(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":{"uids":["1","2"],"1":{"uid":"1","error":"cannot get document summary"},"2":{"uid":"2","title":"Kept","pubdate":"2020"}}}`))
	})

	results, err := c.Summaries(context.Background(), []string{"1", "2", "3"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "2", results[0].ID)
	assert.Equal(t, 2020, results[0].Year)
}

func TestRequestParameters(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "secret", q.Get("api_key"))
		assert.Equal(t, "me@example.org", q.Get("email"))
		assert.Equal(t, "citation-engine", q.Get("tool"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "200", q.Get("retmax"))
		w.Write([]byte(`{"esearchresult":{"idlist":[]}}`))
	})
	opts := []Option{WithAPIKey("secret"), WithEmail("me@example.org"), WithTool("citation-engine"), WithUserAgent("test-agent")}
	for _, opt := range opts {
		opt(c)
	}

	_, err := c.SearchIDs(context.Background(), "q", 1000)
	require.NoError(t, err)
}

func TestCancelledContext(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(esearchBody))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Search(ctx, "q", 5)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewClientRateDefaults(t *testing.T) {
	assert.Equal(t, anonymousRate, NewClient().rps)
	assert.Equal(t, keyedRate, NewClient(WithAPIKey("k")).rps)
	assert.Nil(t, NewClient(WithRateLimit(-1)).limiter)
}

func TestNewClientFromConfig(t *testing.T) {
	cfg := types.SearchConfig{
		BaseURL:    "http://example.org/eutils/",
		MaxResults: 7,
		APIKey:     "k",
		Email:      "e",
		Tool:       "t",
	}
	cfg.UserAgent = "ua"

	c := NewClientFromConfig(cfg)
	assert.Equal(t, "http://example.org/eutils", c.baseURL)
	assert.Equal(t, 7, c.maxResults)
	assert.Equal(t, "k", c.apiKey)
	assert.Equal(t, "ua", c.userAgent)
	assert.Equal(t, keyedRate, c.rps)

	d := NewClientFromConfig(types.SearchConfig{})
	assert.Equal(t, DefaultBaseURL, d.baseURL)
	assert.Equal(t, DefaultMaxResults, d.maxResults)
	assert.Equal(t, anonymousRate, d.rps)
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"2023 Jan 5", 2023},
		{"2019", 2019},
		{"  2001 Spring", 2001},
		{"Spring 2001", 0},
		{"", 0},
		{"2020-01", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseYear(tt.in), tt.in)
	}
}

func TestSearchErrorOmitsAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := NewClient(WithBaseURL(base), WithAPIKey("SECRETKEY123"), WithRateLimit(-1))
	_, err := c.Search(context.Background(), "cancer", 5)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRETKEY123")
	assert.Contains(t, err.Error(), "searching PubMed")
}
