// Package planner is the trip planning orchestrator: it validates
// preferences, fans out to the sources through the aggregator, derives the
// itinerary and packing list, and owns caching for repeated requests.
package planner

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/wanderlab/voyago/aggregate"
	"github.com/wanderlab/voyago/cache"
	"github.com/wanderlab/voyago/config"
	"github.com/wanderlab/voyago/itinerary"
	"github.com/wanderlab/voyago/packing"
	"github.com/wanderlab/voyago/preference"
	"github.com/wanderlab/voyago/schema"
	"github.com/wanderlab/voyago/source"
	"github.com/wanderlab/voyago/utils/json"
	"github.com/wanderlab/voyago/visa"
)

var _defaultCacheTTL = 15 * time.Minute

// SelectionPolicy decides how the final destination is surfaced when several
// high-scoring candidates exist.
type SelectionPolicy string

const (
	// SelectPresentAll keeps the full ranked candidate list with the top one
	// chosen, letting the caller offer a choice.
	SelectPresentAll SelectionPolicy = "present-all"
	// SelectTopRanked keeps only the top-ranked candidate.
	SelectTopRanked SelectionPolicy = "top-ranked"
)

// Planner sequences one planning request:
// Validating -> Fetching -> Aggregating -> Deriving -> Complete | Failed.
// Failed is only reachable from validation or from the aggregator reporting
// no candidate destinations; every other partial failure degrades into a
// Complete result with a populated status map.
type Planner struct {
	prefs       *preference.Model
	aggregator  *aggregate.Aggregator
	synthesizer *itinerary.Synthesizer
	deriver     *packing.Deriver
	advisor     *visa.Advisor

	store     cache.Store
	cacheTTL  time.Duration
	selection SelectionPolicy
	now       func() time.Time
	newID     func() string
}

// Option configures the Planner.
type Option func(*Planner)

// WithPreferenceModel overrides the preference validation model.
func WithPreferenceModel(m *preference.Model) Option {
	return func(p *Planner) {
		if m != nil {
			p.prefs = m
		}
	}
}

// WithSynthesizer overrides the itinerary synthesizer.
func WithSynthesizer(s *itinerary.Synthesizer) Option {
	return func(p *Planner) {
		if s != nil {
			p.synthesizer = s
		}
	}
}

// WithCache enables read-through/write-through caching on the given store.
func WithCache(store cache.Store) Option {
	return func(p *Planner) {
		p.store = store
	}
}

// WithCacheTTL overrides how long cached plans stay valid.
func WithCacheTTL(ttl time.Duration) Option {
	return func(p *Planner) {
		if ttl > 0 {
			p.cacheTTL = ttl
		}
	}
}

// WithVisaAdvisor enables best-effort visa guidance on completed plans.
func WithVisaAdvisor(a *visa.Advisor) Option {
	return func(p *Planner) {
		p.advisor = a
	}
}

// WithSelectionPolicy sets how the final destination is surfaced.
func WithSelectionPolicy(policy SelectionPolicy) Option {
	return func(p *Planner) {
		if policy == SelectPresentAll || policy == SelectTopRanked {
			p.selection = policy
		}
	}
}

// WithNow overrides the clock.
func WithNow(fn func() time.Time) Option {
	return func(p *Planner) {
		if fn != nil {
			p.now = fn
		}
	}
}

// New returns a Planner over the given aggregator.
func New(agg *aggregate.Aggregator, opts ...Option) (*Planner, error) {
	if agg == nil {
		return nil, errors.New("missing aggregator")
	}
	p := &Planner{
		prefs:       preference.NewModel(),
		aggregator:  agg,
		synthesizer: itinerary.New(),
		deriver:     packing.New(),
		cacheTTL:    _defaultCacheTTL,
		selection:   SelectPresentAll,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// NewFromConfig builds the aggregator from the recognized configuration
// surface and returns a Planner over it.
func NewFromConfig(cfg config.Config, rec source.Recommender, weather source.WeatherProvider, places source.PlaceProvider, opts ...Option) (*Planner, error) {
	agg, err := aggregate.New(rec, weather, places,
		aggregate.WithLLMTimeout(cfg.LLMTimeout()),
		aggregate.WithWeatherTimeout(cfg.WeatherTimeout()),
		aggregate.WithPlacesTimeout(cfg.PlacesTimeout()),
		aggregate.WithRetryCount(cfg.RetryCount),
	)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{
		WithPreferenceModel(preference.NewModel(preference.WithMaxTripDays(cfg.MaxTripLengthDays))),
		WithCacheTTL(cfg.CacheTTL()),
	}, opts...)
	return New(agg, opts...)
}

// PlanTrip is the single entry point consumed by the presentation layer.
// It returns a Complete result with whatever succeeded, or an error for
// invalid input and for requests with no candidate destinations.
func (p *Planner) PlanTrip(ctx context.Context, raw preference.Raw) (*schema.PlanResult, error) {
	// Validating
	prefs, err := p.prefs.Validate(raw)
	if err != nil {
		return &schema.PlanResult{State: schema.StatePlanFailed}, err
	}

	fingerprint := preference.Fingerprint(prefs, p.now())
	if cached, ok := p.readCache(ctx, fingerprint); ok {
		return cached, nil
	}

	// Fetching / Aggregating
	plan, err := p.aggregator.Aggregate(ctx, prefs)
	if err != nil {
		return &schema.PlanResult{State: schema.StatePlanFailed}, err
	}
	if ctx.Err() != nil {
		// caller gave up; discard partial results, never cache them
		return &schema.PlanResult{State: schema.StatePlanFailed}, ctx.Err()
	}
	plan.ID = p.newID()
	if p.selection == SelectTopRanked && len(plan.Candidates) > 1 {
		plan.Candidates = plan.Candidates[:1]
	}
	plan.ChosenIndex = 0

	// Deriving: itinerary and packing list are pure functions of the plan
	result := &schema.PlanResult{
		State:     schema.StateComplete,
		Plan:      plan,
		Itinerary: p.synthesizer.Synthesize(plan),
		Packing:   p.deriver.Derive(plan),
		Status:    plan.Status,
	}
	if p.advisor != nil {
		result.Visa = p.advisor.Advise(ctx, plan.Chosen(), prefs.Nationality)
	}

	if ctx.Err() == nil {
		p.writeCache(ctx, fingerprint, result)
	}
	return result, nil
}

func (p *Planner) readCache(ctx context.Context, key string) (*schema.PlanResult, bool) {
	if p.store == nil {
		return nil, false
	}
	data, ok, err := p.store.Get(ctx, key)
	if err != nil {
		log.Printf("Warning: cache read failed: %v", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var result schema.PlanResult
	if err := json.Unmarshal(data, &result); err != nil {
		log.Printf("Warning: discarding undecodable cache entry: %v", err)
		return nil, false
	}
	return &result, true
}

func (p *Planner) writeCache(ctx context.Context, key string, result *schema.PlanResult) {
	if p.store == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		log.Printf("Warning: cache encode failed: %v", err)
		return
	}
	if err := p.store.Put(ctx, key, data, p.cacheTTL); err != nil {
		log.Printf("Warning: cache write failed: %v", err)
	}
}
