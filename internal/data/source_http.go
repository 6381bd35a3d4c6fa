package data

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cinestats/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
)

var errRemoteNotFound = errors.New("not found")

// httpSource downloads the three CSV tables from a remote base URL.
type httpSource struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	maxRetries int
	movies     string
	cast       string
	crew       string
	log        *log.Helper
}

func newHTTPSource(c *conf.Data_Source, logger log.Logger) *httpSource {
	return &httpSource{
		client: &http.Client{
			Timeout: c.Timeout.AsDuration(),
		},
		baseURL:    strings.TrimRight(c.Url, "/"),
		apiKey:     c.ApiKey,
		maxRetries: int(c.MaxRetries),
		movies:     c.Movies,
		cast:       c.Cast,
		crew:       c.Crew,
		log:        log.NewHelper(logger),
	}
}

func (s *httpSource) Load(ctx context.Context) (*tables, error) {
	var t tables
	var err error
	if t.movies, err = fetchTable(ctx, s, s.movies, decodeMovies); err != nil {
		return nil, err
	}
	if t.cast, err = fetchTable(ctx, s, s.cast, decodeCast); err != nil {
		return nil, err
	}
	if t.crew, err = fetchTable(ctx, s, s.crew, decodeCrew); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *httpSource) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

func fetchTable[T any](ctx context.Context, s *httpSource, name string, decode func(io.Reader) ([]T, error)) ([]T, error) {
	var lastErr error

	// Retry logic with linear backoff
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * 100 * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			s.log.Infof("retrying dataset download '%s', attempt %d/%d", name, attempt, s.maxRetries)
		}

		rows, err := doFetch(ctx, s, name, decode)
		if err == nil {
			return rows, nil
		}
		lastErr = err

		// Don't retry on 404
		if errors.Is(err, errRemoteNotFound) {
			break
		}
	}

	s.log.Errorf("dataset download '%s' failed after %d attempts: %v", name, s.maxRetries+1, lastErr)
	return nil, lastErr
}

func doFetch[T any](ctx context.Context, s *httpSource, name string, decode func(io.Reader) ([]T, error)) ([]T, error) {
	target, err := url.JoinPath(s.baseURL, name)
	if err != nil {
		return nil, fmt.Errorf("invalid table url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("X-API-Key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", target, errRemoteNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	rows, err := decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", target, err)
	}
	return rows, nil
}
