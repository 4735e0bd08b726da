package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Source yields the raw bytes of one JSON resource.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// HTTPSource fetches a URL with a cache-defeating query parameter and no-store semantics.
type HTTPSource struct {
	URL    string
	Client *http.Client
	Now    func() time.Time
}

func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	return &HTTPSource{URL: url, Client: client}
}

// BustCache appends v=<unix millis>, with & when the URL already has a query.
func BustCache(rawURL string, now time.Time) string {
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + "v=" + strconv.FormatInt(now.UnixMilli(), 10)
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, BustCache(s.URL, now()), nil)
	if err != nil {
		return nil, &FetchError{URL: s.URL, Err: err}
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: s.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{URL: s.URL, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: s.URL, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

func (s *HTTPSource) String() string { return s.URL }

// ObjectDownloader is the read side of a backup object store.
type ObjectDownloader interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

// ObjectSource reads a resource from an object store (the R2 backup bucket).
type ObjectSource struct {
	Store ObjectDownloader
	Key   string
}

func (s *ObjectSource) Fetch(ctx context.Context) ([]byte, error) {
	body, err := s.Store.Download(ctx, s.Key)
	if err != nil {
		return nil, &FetchError{URL: "object://" + s.Key, Err: err}
	}
	return body, nil
}

func (s *ObjectSource) String() string { return "object://" + s.Key }
