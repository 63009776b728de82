// Package aggregate fans out to the recommender, weather and places sources
// and merges their results into one TripPlan.
package aggregate

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/wanderlab/voyago/schema"
	"github.com/wanderlab/voyago/source"
	"github.com/wanderlab/voyago/utils/parallel"
)

var (
	_defaultLLMTimeout     = 10 * time.Second
	_defaultWeatherTimeout = 5 * time.Second
	_defaultPlacesTimeout  = 5 * time.Second
	_defaultRetryCount     = 1

	_retryBackoffMin = 500 * time.Millisecond
	_retryBackoffMax = 1500 * time.Millisecond
)

// ErrNoDestinationsAvailable is returned when the recommender fails.
// Destinations are the anchor entity; nothing downstream is meaningful
// without at least one candidate.
var ErrNoDestinationsAvailable = errors.New("no destinations available")

// Aggregator coordinates the three sources for one planning request.
type Aggregator struct {
	recommender source.Recommender
	weather     source.WeatherProvider
	places      source.PlaceProvider

	llmTimeout     time.Duration
	weatherTimeout time.Duration
	placesTimeout  time.Duration
	retryCount     int
	backoff        func(attempt int) time.Duration
	sleep          func(context.Context, time.Duration) error
	now            func() time.Time
}

// Option configures the Aggregator.
type Option func(*Aggregator)

// WithLLMTimeout sets the per-call timeout for the recommender.
func WithLLMTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.llmTimeout = d
		}
	}
}

// WithWeatherTimeout sets the per-call timeout for the weather source.
func WithWeatherTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.weatherTimeout = d
		}
	}
}

// WithPlacesTimeout sets the per-call timeout for the places source.
func WithPlacesTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.placesTimeout = d
		}
	}
}

// WithRetryCount sets how many retries a transient failure gets per adapter
// call.
func WithRetryCount(n int) Option {
	return func(a *Aggregator) {
		if n >= 0 {
			a.retryCount = n
		}
	}
}

// WithBackoff overrides the retry backoff schedule.
func WithBackoff(fn func(attempt int) time.Duration) Option {
	return func(a *Aggregator) {
		if fn != nil {
			a.backoff = fn
		}
	}
}

// WithNow overrides the clock.
func WithNow(fn func() time.Time) Option {
	return func(a *Aggregator) {
		if fn != nil {
			a.now = fn
		}
	}
}

// New returns an Aggregator over the three sources.
func New(rec source.Recommender, weather source.WeatherProvider, places source.PlaceProvider, opts ...Option) (*Aggregator, error) {
	if rec == nil {
		return nil, errors.New("missing recommender source")
	}
	if weather == nil {
		return nil, errors.New("missing weather source")
	}
	if places == nil {
		return nil, errors.New("missing places source")
	}
	a := &Aggregator{
		recommender:    rec,
		weather:        weather,
		places:         places,
		llmTimeout:     _defaultLLMTimeout,
		weatherTimeout: _defaultWeatherTimeout,
		placesTimeout:  _defaultPlacesTimeout,
		retryCount:     _defaultRetryCount,
		backoff:        jitteredBackoff,
		sleep:          sleepCtx,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Aggregate runs the fan-out and merges the settled results. The recommender
// anchors the plan: its failure fails the whole request. Weather and places
// failures are recorded in the status map and the plan proceeds without them.
//
// When the traveler supplied an explicit destination all three sources run
// concurrently. Without one, weather and places have nothing to query until a
// candidate exists, so the recommender runs first and the remaining two fan
// out concurrently against the top-ranked candidate.
func (a *Aggregator) Aggregate(ctx context.Context, prefs schema.Preferences) (*schema.TripPlan, error) {
	plan := &schema.TripPlan{
		Preferences: prefs,
		Status:      make(schema.StatusMap, 3),
		CreatedAt:   a.now(),
	}

	if prefs.HasExplicitDestination() {
		a.fanOutAll(ctx, prefs, plan)
	} else {
		a.fanOutStaged(ctx, prefs, plan)
	}

	if !plan.Status.Usable(schema.SourceRecommend) || len(plan.Candidates) == 0 {
		return nil, errors.Wrap(ErrNoDestinationsAvailable,
			plan.Status[schema.SourceRecommend].Reason)
	}
	return plan, nil
}

// fanOutAll issues all three calls concurrently against the explicit
// destination and waits for all of them to settle. Weather and places are
// fetched for the explicit destination, so it is pinned as the chosen
// candidate afterwards regardless of how the model scored it.
func (a *Aggregator) fanOutAll(ctx context.Context, prefs schema.Preferences, plan *schema.TripPlan) {
	seed := schema.DestinationCandidate{
		Name:       prefs.Destination,
		Provenance: schema.ProvenanceTraveler,
	}
	results := parallel.Parallel[func(*schema.TripPlan)](func(i int) func(*schema.TripPlan) {
		switch i {
		case 0:
			res := a.fetchCandidates(ctx, prefs)
			return func(p *schema.TripPlan) { a.applyCandidates(p, res) }
		case 1:
			res := a.fetchWeather(ctx, seed, prefs.TripDays)
			return func(p *schema.TripPlan) { applyWeather(p, res) }
		default:
			res := a.fetchPlaces(ctx, seed, prefs.Interests)
			return func(p *schema.TripPlan) { applyPlaces(p, res) }
		}
	}, 3, 3)
	for _, apply := range results {
		apply(plan)
	}
	if len(plan.Candidates) > 0 {
		pinDestination(plan, seed)
	}
}

// pinDestination moves the traveler's destination to the front of the ranked
// candidate list, seeding it when the recommender left it out. The rest of
// the ranking is preserved as alternatives.
func pinDestination(plan *schema.TripPlan, seed schema.DestinationCandidate) {
	for i, c := range plan.Candidates {
		if c.Matches(seed.Name) {
			if i > 0 {
				copy(plan.Candidates[1:i+1], plan.Candidates[:i])
				plan.Candidates[0] = c
			}
			return
		}
	}
	plan.Candidates = append([]schema.DestinationCandidate{seed}, plan.Candidates...)
}

// fanOutStaged resolves candidates first, then fetches weather and places
// concurrently for the top-ranked one.
func (a *Aggregator) fanOutStaged(ctx context.Context, prefs schema.Preferences, plan *schema.TripPlan) {
	recRes := a.fetchCandidates(ctx, prefs)
	a.applyCandidates(plan, recRes)
	if len(plan.Candidates) == 0 {
		return
	}

	chosen := plan.Chosen()
	results := parallel.Parallel[func(*schema.TripPlan)](func(i int) func(*schema.TripPlan) {
		if i == 0 {
			res := a.fetchWeather(ctx, chosen, prefs.TripDays)
			return func(p *schema.TripPlan) { applyWeather(p, res) }
		}
		res := a.fetchPlaces(ctx, chosen, prefs.Interests)
		return func(p *schema.TripPlan) { applyPlaces(p, res) }
	}, 2, 2)
	for _, apply := range results {
		apply(plan)
	}
}

func (a *Aggregator) fetchCandidates(ctx context.Context, prefs schema.Preferences) source.Result[[]schema.DestinationCandidate] {
	return fetchWithRetry(ctx, a, a.llmTimeout,
		func(cctx context.Context) source.Result[[]schema.DestinationCandidate] {
			return a.recommender.Fetch(cctx, prefs)
		})
}

func (a *Aggregator) fetchWeather(ctx context.Context, dest schema.DestinationCandidate, days int) source.Result[*schema.WeatherOutlook] {
	start := a.now()
	return fetchWithRetry(ctx, a, a.weatherTimeout,
		func(cctx context.Context) source.Result[*schema.WeatherOutlook] {
			return a.weather.Fetch(cctx, dest, start, days)
		})
}

func (a *Aggregator) fetchPlaces(ctx context.Context, dest schema.DestinationCandidate, interests []string) source.Result[*schema.PlaceInfo] {
	return fetchWithRetry(ctx, a, a.placesTimeout,
		func(cctx context.Context) source.Result[*schema.PlaceInfo] {
			return a.places.Fetch(cctx, dest, interests)
		})
}

func (a *Aggregator) applyCandidates(plan *schema.TripPlan, res source.Result[[]schema.DestinationCandidate]) {
	plan.Status[schema.SourceRecommend] = res.Status()
	if candidates, ok := res.Value(); ok {
		plan.Candidates = Rank(candidates)
	}
}

func applyWeather(plan *schema.TripPlan, res source.Result[*schema.WeatherOutlook]) {
	plan.Status[schema.SourceWeather] = res.Status()
	if outlook, ok := res.Value(); ok {
		plan.Weather = outlook
	}
}

func applyPlaces(plan *schema.TripPlan, res source.Result[*schema.PlaceInfo]) {
	plan.Status[schema.SourcePlaces] = res.Status()
	if info, ok := res.Value(); ok {
		plan.Places = info
	}
}

// fetchWithRetry applies the per-call timeout and retries transient failures
// with jittered backoff. Retries are per adapter call, not per aggregate
// request; AuthInvalid and MalformedResponse are contract errors and never
// retried.
func fetchWithRetry[T any](ctx context.Context, a *Aggregator, timeout time.Duration, fn func(context.Context) source.Result[T]) source.Result[T] {
	run := func() source.Result[T] {
		cctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return fn(cctx)
	}

	res := run()
	for attempt := 1; attempt <= a.retryCount && res.Retryable(); attempt++ {
		if err := a.sleep(ctx, a.backoff(attempt)); err != nil {
			return res
		}
		res = run()
	}
	return res
}

// Rank orders candidates by score descending with alphabetical name as the
// tie-break, deduplicating by normalized name+country. Equal inputs always
// produce equal orderings.
func Rank(candidates []schema.DestinationCandidate) []schema.DestinationCandidate {
	seen := make(map[string]struct{}, len(candidates))
	ranked := make([]schema.DestinationCandidate, 0, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c.Key()]; dup {
			continue
		}
		seen[c.Key()] = struct{}{}
		ranked = append(ranked, c)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

func jitteredBackoff(int) time.Duration {
	spread := int64(_retryBackoffMax - _retryBackoffMin)
	return _retryBackoffMin + time.Duration(rand.Int63n(spread))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
