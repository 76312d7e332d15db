// Package wiki fetches short descriptive snippets from the Wikipedia REST
// summary endpoint. Responses are memoized; the same POI shows up across
// regenerations of the same trip.
package wiki

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	gocache "github.com/patrickmn/go-cache"

	"github.com/tripweaver/tripweaver/internal/enrichment"
)

const summaryURL = "https://en.wikipedia.org/api/rest_v1/page/summary/"

type Source struct {
	client *resty.Client
	cache  *gocache.Cache
}

func New() *Source {
	return &Source{
		client: resty.New().SetTimeout(8 * time.Second),
		cache:  gocache.New(30*time.Minute, 10*time.Minute),
	}
}

var _ enrichment.Source = (*Source)(nil)

type summaryResponse struct {
	Extract string `json:"extract"`
}

// FetchText returns the page summary for "<name>" (falling back to
// "<name> <city>") or an empty string when no page exists.
func (s *Source) FetchText(ctx context.Context, name, city string) (string, error) {
	key := strings.ToLower(name + "|" + city)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(string), nil
	}

	text, err := s.fetch(ctx, name)
	if err != nil {
		return "", err
	}
	if text == "" && city != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(city)) {
		text, err = s.fetch(ctx, name+" "+city)
		if err != nil {
			return "", err
		}
	}

	s.cache.Set(key, text, gocache.DefaultExpiration)
	return text, nil
}

func (s *Source) fetch(ctx context.Context, query string) (string, error) {
	var out summaryResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get(summaryURL + url.PathEscape(query))
	if err != nil {
		return "", err
	}
	if resp.StatusCode() == 404 {
		return "", nil
	}
	if resp.IsError() {
		return "", nil // enrichment is best-effort; treat as absent
	}
	return out.Extract, nil
}
