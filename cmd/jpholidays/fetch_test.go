package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
)

func TestMain(m *testing.M) {
	retryBaseDelay = 0 // Eliminate sleep in retry loops for all tests.
	os.Exit(m.Run())
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newHTTPResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func newCKANResponseJSON(t *testing.T, csvURL string) string {
	t.Helper()
	resp := ckanResponse{Success: true}
	resp.Result.Resources = []ckanResource{
		{URL: "https://www8.cao.go.jp/chosei/shukujitsu/readme.pdf", Format: "PDF"},
		{URL: csvURL, Format: "csv"},
	}
	b, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(b)
}

func toShiftJIS(t *testing.T, s string) string {
	t.Helper()
	b, err := japanese.ShiftJIS.NewEncoder().String(s)
	require.NoError(t, err)
	return b
}

const sampleCSV = "国民の祝日・休日月日,国民の祝日・休日名称\r\n2015/1/1,元日\r\n2015/1/12,成人の日\r\n"

// --- validateCSVURL ---

func TestValidateCSVURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"allowed host syukujitsu", "https://www8.cao.go.jp/chosei/shukujitsu/syukujitsu.csv", false},
		{"allowed host www.cao.go.jp", "https://www.cao.go.jp/some/path.csv", false},
		{"blocked evil host", "https://evil.example.com/syukujitsu.csv", true},
		{"blocked similar domain", "https://www8.cao.go.jp.evil.com/syukujitsu.csv", true},
		{"blocked HTTP", "http://www8.cao.go.jp/chosei/shukujitsu/syukujitsu.csv", true},
		{"blocked empty URL", "", true},
		{"invalid URL parse", "://invalid", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCSVURL(tt.url)
			assert.Equal(t, tt.wantErr, err != nil, "validateCSVURL(%q) error = %v", tt.url, err)
		})
	}

	assert.ErrorContains(t, validateCSVURL("https://evil.example.com/a.csv"), "not a Cabinet Office host")
	assert.ErrorContains(t, validateCSVURL("http://www8.cao.go.jp/a.csv"), "not an https URL")
}

// --- parseCSV ---

func TestParseCSV_Valid(t *testing.T) {
	t.Parallel()

	holidays, err := parseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, holidays, 2)
	assert.Equal(t, "元日", holidays[0].name)
	assert.Equal(t, time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC), holidays[0].date)
}

func TestParseCSV_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		csv     string
		wantMsg string
	}{
		{"invalid header", "date,name\r\n2015/1/1,元日\r\n", "国民の祝日"},
		{"invalid date", "国民の祝日月日,国民の祝日名称\r\nnot-a-date,元日\r\n", "invalid date"},
		{"too few columns", "国民の祝日月日,国民の祝日名称\r\n2015/1/1\r\n", "expected 2 columns"},
		{"single-column header", "国民の祝日月日\r\n2015/1/1,元日\r\n", "unexpected header columns"},
		{"empty input", "", "reading header"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCSV(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseCSV_EmptyRows(t *testing.T) {
	t.Parallel()

	csv := "国民の祝日月日,国民の祝日名称\r\n2015/1/1,元日\r\n,\r\n,元日\r\n2015/5/3,憲法記念日\r\n"
	holidays, err := parseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, holidays, 2)
}

// --- resolveCSVURL ---

func TestResolveCSVURL_Success(t *testing.T) {
	t.Parallel()

	expectedURL := "https://www8.cao.go.jp/chosei/shukujitsu/syukujitsu.csv"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		fmt.Fprint(w, newCKANResponseJSON(t, expectedURL))
	}))
	defer ts.Close()

	src := &source{client: ts.Client(), ckanURL: ts.URL}
	got, err := src.resolveCSVURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expectedURL, got)
}

func TestResolveCSVURL_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-OK status", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"success false", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"success":false}`)
		}},
		{"no CSV resource", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"success":true,"result":{"resources":[{"url":"https://www8.cao.go.jp/a.json","format":"JSON"}]}}`)
		}},
		{"disallowed host", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"success":true,"result":{"resources":[{"url":"https://evil.example.com/a.csv","format":"CSV"}]}}`)
		}},
		{"invalid JSON", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "not json")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			src := &source{client: ts.Client(), ckanURL: ts.URL}
			_, err := src.resolveCSVURL(context.Background())
			assert.ErrorContains(t, err, "catalog lookup")
		})
	}
}

// --- fetchWithRetry ---

func TestFetchWithRetry_DecodesShiftJIS(t *testing.T) {
	t.Parallel()

	body := toShiftJIS(t, sampleCSV)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer ts.Close()

	src := &source{client: ts.Client()}
	rc, err := src.fetchWithRetry(context.Background(), ts.URL)
	require.NoError(t, err)
	defer rc.Close()

	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, sampleCSV, string(b))
}

func TestFetchWithRetry_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, "ok")
	}))
	defer ts.Close()

	src := &source{client: ts.Client()}
	rc, err := src.fetchWithRetry(context.Background(), ts.URL)
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchWithRetry_GivesUp(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	src := &source{client: ts.Client()}
	_, err := src.fetchWithRetry(context.Background(), ts.URL)
	require.Error(t, err)
	assert.Equal(t, int32(maxRetries), calls.Load())
}

func TestFetchWithRetry_ClientErrorNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	src := &source{client: ts.Client()}
	_, err := src.fetchWithRetry(context.Background(), ts.URL)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

// --- fetch ---

func TestFetch_FallsBackWhenCKANFails(t *testing.T) {
	t.Parallel()

	body := toShiftJIS(t, sampleCSV)
	client := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			switch req.URL.String() {
			case ckanAPIURL:
				return newHTTPResponse(http.StatusInternalServerError, ""), nil
			case fallbackURL1:
				return newHTTPResponse(http.StatusNotFound, ""), nil
			case fallbackURL2:
				return newHTTPResponse(http.StatusOK, body), nil
			}
			return nil, fmt.Errorf("unexpected request %s", req.URL)
		}),
	}

	src := newSource()
	src.client = client
	rc, err := src.fetch(context.Background())
	require.NoError(t, err)
	defer rc.Close()

	holidays, err := parseCSV(rc)
	require.NoError(t, err)
	assert.Len(t, holidays, 2)
}

func TestFetch_AllFail(t *testing.T) {
	t.Parallel()

	client := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return newHTTPResponse(http.StatusNotFound, ""), nil
		}),
	}

	src := newSource()
	src.client = client
	_, err := src.fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all URLs failed")
}

func TestOpenCSVFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "syukujitsu.csv")
	require.NoError(t, os.WriteFile(path, []byte(toShiftJIS(t, sampleCSV)), 0o644))

	rc, err := openCSVFile(path)
	require.NoError(t, err)
	defer rc.Close()

	holidays, err := parseCSV(rc)
	require.NoError(t, err)
	require.Len(t, holidays, 2)
	assert.Equal(t, "成人の日", holidays[1].name)
}
