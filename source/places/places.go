// Package places adapts a places/points-of-interest API into the places
// source.
package places

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/wanderlab/voyago/schema"
	"github.com/wanderlab/voyago/source"
	"github.com/wanderlab/voyago/utils/request"
)

var (
	_defaultBaseURL   = "https://places.googleapis.com/v1"
	_defaultMinPlaces = 3
)

// Adapter fetches place records over HTTP.
type Adapter struct {
	baseURL   string
	apiKey    string
	client    *http.Client
	minPlaces int
}

var _ source.PlaceProvider = (*Adapter)(nil)

// Option configures the Adapter.
type Option func(*Adapter)

// WithBaseURL overrides the provider endpoint.
func WithBaseURL(u string) Option {
	return func(a *Adapter) {
		if u != "" {
			a.baseURL = u
		}
	}
}

// WithAPIKey sets the provider API key.
func WithAPIKey(key string) Option {
	return func(a *Adapter) {
		a.apiKey = key
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(a *Adapter) {
		a.client = c
	}
}

// WithMinPlaces sets the count below which a response is considered degraded.
func WithMinPlaces(n int) Option {
	return func(a *Adapter) {
		if n >= 0 {
			a.minPlaces = n
		}
	}
}

// New returns a places adapter.
func New(opts ...Option) *Adapter {
	a := &Adapter{
		baseURL:   _defaultBaseURL,
		client:    http.DefaultClient,
		minPlaces: _defaultMinPlaces,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type placesResponse struct {
	Results []struct {
		Name     string  `json:"name"`
		Category string  `json:"category"`
		Lat      float64 `json:"lat"`
		Lng      float64 `json:"lng"`
	} `json:"results"`
}

// Fetch retrieves place records for the destination, optionally filtered by
// interest tags. Records with unknown categories are dropped rather than
// guessed at.
func (a *Adapter) Fetch(ctx context.Context, dest schema.DestinationCandidate, interests []string) source.Result[*schema.PlaceInfo] {
	query := url.Values{}
	query.Set("q", dest.Label())
	if len(interests) > 0 {
		query.Set("interests", strings.Join(interests, ","))
	}
	if a.apiKey != "" {
		query.Set("key", a.apiKey)
	}

	var resp placesResponse
	err := request.JSON(ctx, a.client, http.MethodGet, a.baseURL+"/places/search", query, "", &resp)
	if err != nil {
		return source.Failed[*schema.PlaceInfo](source.ClassifyHTTP(err), err)
	}
	if resp.Results == nil {
		return source.Failed[*schema.PlaceInfo](source.MalformedResponse,
			errors.New("places response missing results field"))
	}

	info := &schema.PlaceInfo{Destination: dest.Label()}
	dropped := 0
	for _, rec := range resp.Results {
		category, ok := parseCategory(rec.Category)
		if !ok || strings.TrimSpace(rec.Name) == "" {
			dropped++
			continue
		}
		info.Places = append(info.Places, schema.Place{
			Name:     strings.TrimSpace(rec.Name),
			Category: category,
			Lat:      rec.Lat,
			Lng:      rec.Lng,
		})
	}

	switch {
	case len(info.Places) == 0:
		return source.Degraded(info, "no usable places returned")
	case len(info.Places) < a.minPlaces:
		return source.Degraded(info,
			fmt.Sprintf("only %d place(s) returned", len(info.Places)))
	case dropped > 0:
		return source.Degraded(info,
			fmt.Sprintf("%d record(s) dropped for unknown categories", dropped))
	}
	return source.Ok(info)
}

func parseCategory(s string) (schema.PlaceCategory, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "attraction", "sight", "poi":
		return schema.PlaceAttraction, true
	case "food", "restaurant", "cafe":
		return schema.PlaceFood, true
	case "lodging", "hotel", "accommodation":
		return schema.PlaceLodging, true
	}
	return "", false
}
