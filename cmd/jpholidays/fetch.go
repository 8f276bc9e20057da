package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

const (
	// e-Gov catalog entry of the Cabinet Office holiday dataset.
	ckanAPIURL = "https://data.e-gov.go.jp/data/api/action/package_show?id=cao_20190522_0002"

	// Known download locations, tried when the catalog gives no answer.
	fallbackURL1 = "https://www8.cao.go.jp/chosei/shukujitsu/syukujitsu.csv"
	fallbackURL2 = "https://www8.cao.go.jp/chosei/shukujitsu/shukujitsu.csv"

	httpTimeout = 30 * time.Second
	maxRetries  = 3

	maxJSONResponseSize = 1 << 20
	maxCSVResponseSize  = 5 << 20

	userAgent = "jpholidays/1.0 (https://github.com/rabitt1ove/jp-holidays)"
)

// retryBaseDelay doubles after each failed attempt. Tests set it to zero.
var retryBaseDelay = 2 * time.Second

var allowedCSVHosts = map[string]bool{
	"www8.cao.go.jp": true,
	"www.cao.go.jp":  true,
}

// ckanResponse is the part of a CKAN package_show reply the lookup reads.
type ckanResponse struct {
	Success bool `json:"success"`
	Result  struct {
		Resources []ckanResource `json:"resources"`
	} `json:"result"`
}

type ckanResource struct {
	URL    string `json:"url"`
	Format string `json:"format"`
}

// officialHoliday is one row of the Cabinet Office CSV.
type officialHoliday struct {
	date time.Time
	name string
}

// source locates the official holiday CSV.
type source struct {
	client    *http.Client
	ckanURL   string
	fallbacks []string
}

func newSource() *source {
	return &source{
		client:    &http.Client{Timeout: httpTimeout},
		ckanURL:   ckanAPIURL,
		fallbacks: []string{fallbackURL1, fallbackURL2},
	}
}

// resolveCSVURL asks the e-Gov data catalog which URL currently serves the
// holiday CSV. The catalog answer must point at an allowed host.
func (s *source) resolveCSVURL(ctx context.Context) (string, error) {
	log.Printf("looking up the holiday CSV in the data catalog: %s", s.ckanURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.ckanURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("catalog lookup: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("catalog lookup: status %d", resp.StatusCode)
	}

	var pkg ckanResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONResponseSize)).Decode(&pkg); err != nil {
		return "", fmt.Errorf("catalog lookup: decoding response: %w", err)
	}
	if !pkg.Success {
		return "", errors.New("catalog lookup: request not successful")
	}

	idx := slices.IndexFunc(pkg.Result.Resources, func(r ckanResource) bool {
		return r.URL != "" && strings.EqualFold(r.Format, "CSV")
	})
	if idx < 0 {
		return "", errors.New("catalog lookup: dataset has no CSV resource")
	}
	u := pkg.Result.Resources[idx].URL
	if err := validateCSVURL(u); err != nil {
		return "", fmt.Errorf("catalog lookup: %w", err)
	}
	log.Printf("  official list at %s", u)
	return u, nil
}

// validateCSVURL accepts only HTTPS URLs on the Cabinet Office hosts, so a
// tampered catalog entry cannot redirect the download.
func validateCSVURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	switch {
	case err != nil:
		return fmt.Errorf("parsing %q: %w", rawURL, err)
	case u.Scheme != "https":
		return fmt.Errorf("%q is not an https URL", rawURL)
	case !allowedCSVHosts[u.Hostname()]:
		return fmt.Errorf("%q is not a Cabinet Office host", u.Hostname())
	}
	return nil
}

// fetch resolves the CSV URL and downloads it, trying the CKAN result first
// and then each fallback URL. The returned reader yields UTF-8.
func (s *source) fetch(ctx context.Context) (io.ReadCloser, error) {
	var urls []string
	if resolved, err := s.resolveCSVURL(ctx); err != nil {
		log.Printf("  %v; trying the fixed URLs", err)
	} else {
		urls = append(urls, resolved)
	}
	for _, fb := range s.fallbacks {
		if len(urls) == 0 || urls[0] != fb {
			urls = append(urls, fb)
		}
	}

	var lastErr error
	for _, u := range urls {
		rc, err := s.fetchWithRetry(ctx, u)
		if err != nil {
			lastErr = err
			continue
		}
		return rc, nil
	}
	return nil, fmt.Errorf("all URLs failed, last error: %w", lastErr)
}

// fetchWithRetry fetches a URL with exponential backoff retries on
// throttling and server errors.
func (s *source) fetchWithRetry(ctx context.Context, u string) (io.ReadCloser, error) {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay * time.Duration(1<<(attempt-1))
			log.Printf("  retrying in %v (attempt %d/%d)", delay, attempt+1, maxRetries)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		log.Printf("fetching %s", u)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("GET %s: %w", u, err)
			log.Printf("  failed: %v", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("GET %s: status %d", u, resp.StatusCode)
			log.Printf("  failed: status %d (retryable)", resp.StatusCode)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("GET %s: status %d", u, resp.StatusCode)
		}

		return shiftJISReader{
			Reader: transform.NewReader(io.LimitReader(resp.Body, maxCSVResponseSize), japanese.ShiftJIS.NewDecoder()),
			Closer: resp.Body,
		}, nil
	}
	return nil, lastErr
}

// openCSVFile opens a locally saved copy of the Shift_JIS encoded CSV.
func openCSVFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return shiftJISReader{
		Reader: transform.NewReader(f, japanese.ShiftJIS.NewDecoder()),
		Closer: f,
	}, nil
}

type shiftJISReader struct {
	io.Reader
	io.Closer
}

// parseCSV parses the Cabinet Office holiday CSV and validates its format.
func parseCSV(r io.Reader) ([]officialHoliday, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("unexpected header columns: %d (expected 2)", len(header))
	}
	if !strings.Contains(header[0], "国民の祝日") {
		return nil, fmt.Errorf("unexpected header: %q (expected to contain '国民の祝日')", header[0])
	}

	var holidays []officialHoliday
	lineNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNum++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: expected 2 columns, got %d", lineNum, len(record))
		}

		dateStr := strings.TrimSpace(record[0])
		name := strings.TrimSpace(record[1])
		if dateStr == "" || name == "" {
			continue
		}

		t, err := time.Parse("2006/1/2", dateStr)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid date %q: %w", lineNum, dateStr, err)
		}
		holidays = append(holidays, officialHoliday{date: t, name: name})
	}
	return holidays, nil
}
