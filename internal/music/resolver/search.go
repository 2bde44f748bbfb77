package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"

	"github.com/hironha/nina/pkg/retrylimit"
)

var watchURLPattern = regexp.MustCompile(`"url":"/watch\?v=([a-zA-Z0-9_-]{11})`)

// searchFirstVideoURL scrapes the YouTube results page and returns the first
// watch URL for the query.
func (r *Resolver) searchFirstVideoURL(ctx context.Context, query string) (string, error) {
	searchURL := fmt.Sprintf("%s/results?search_query=%s", r.baseURL, url.QueryEscape(query))

	var body []byte
	err := retrylimit.WithRetryMax(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
		if err != nil {
			return err
		}
		resp, err := r.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("search failed with status code %d", resp.StatusCode)
		}
		body, err = io.ReadAll(resp.Body)
		return err
	}, r.limiter, resolveAttempts)
	if err != nil {
		return "", err
	}

	matches := watchURLPattern.FindSubmatch(body)
	if len(matches) < 2 {
		return "", ErrNoMatch
	}
	return fmt.Sprintf("%s/watch?v=%s", r.baseURL, string(matches[1])), nil
}
