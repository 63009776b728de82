// Package forecast adapts a daily-forecast weather API into the weather
// source. The wire contract follows the OpenWeather daily forecast shape.
package forecast

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/wanderlab/voyago/schema"
	"github.com/wanderlab/voyago/source"
	"github.com/wanderlab/voyago/utils/request"
)

var _defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Adapter fetches per-day weather outlooks over HTTP.
type Adapter struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ source.WeatherProvider = (*Adapter)(nil)

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

// New returns a weather adapter.
func New(opts ...Option) *Adapter {
	a := &Adapter{
		baseURL: _defaultBaseURL,
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type forecastResponse struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	List []struct {
		Dt   int64 `json:"dt"`
		Temp struct {
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		} `json:"temp"`
		Pop     float64 `json:"pop"`
		Weather []struct {
			Main string `json:"main"`
		} `json:"weather"`
	} `json:"list"`
}

// Fetch retrieves the outlook for the destination and window. A response
// covering fewer days than requested resolves to Degraded, never to a
// fabricated full window.
func (a *Adapter) Fetch(ctx context.Context, dest schema.DestinationCandidate, start time.Time, days int) source.Result[*schema.WeatherOutlook] {
	query := url.Values{}
	query.Set("q", dest.Label())
	query.Set("cnt", strconv.Itoa(days))
	query.Set("units", "metric")
	if a.apiKey != "" {
		query.Set("appid", a.apiKey)
	}

	var resp forecastResponse
	err := request.JSON(ctx, a.client, http.MethodGet, a.baseURL+"/forecast/daily", query, "", &resp)
	if err != nil {
		return source.Failed[*schema.WeatherOutlook](source.ClassifyHTTP(err), err)
	}
	if len(resp.List) == 0 {
		return source.Failed[*schema.WeatherOutlook](source.MalformedResponse,
			errors.New("forecast response contains no days"))
	}

	sort.Slice(resp.List, func(i, j int) bool {
		return resp.List[i].Dt < resp.List[j].Dt
	})

	outlook := &schema.WeatherOutlook{Destination: dest.Label()}
	for i, rec := range resp.List {
		if i >= days {
			break
		}
		condition := ""
		if len(rec.Weather) > 0 {
			condition = rec.Weather[0].Main
		}
		date := time.Unix(rec.Dt, 0).UTC()
		if rec.Dt == 0 {
			date = start.UTC().AddDate(0, 0, i)
		}
		outlook.Days = append(outlook.Days, schema.DayForecast{
			Date:       date,
			TempMin:    rec.Temp.Min,
			TempMax:    rec.Temp.Max,
			PrecipProb: rec.Pop,
			Condition:  condition,
		})
	}

	if len(outlook.Days) < days {
		return source.Degraded(outlook,
			fmt.Sprintf("forecast covers %d of %d requested days", len(outlook.Days), days))
	}
	return source.Ok(outlook)
}
