// Package itinerary synthesizes a day-by-day schedule from a TripPlan. The
// synthesizer is a pure function of its input; it holds no derivation state.
package itinerary

import (
	"github.com/wanderlab/voyago/schema"
)

var (
	_defaultDailyAttractions = 3
	_defaultDailyMeals       = 1

	_attractionMinutes = 120
	_mealMinutes       = 90
	_lodgingMinutes    = 30
)

// SkipReasonNoPlaces is the marker reason used when place data never arrived.
// Callers must render a skipped itinerary distinctly from a schedule with
// zero activities.
const SkipReasonNoPlaces = "place data unavailable"

// Synthesizer builds itineraries with a fixed daily activity cap so no single
// day is overloaded.
type Synthesizer struct {
	dailyAttractions int
	dailyMeals       int
}

// Option configures the Synthesizer.
type Option func(*Synthesizer)

// WithDailyAttractions sets the attraction cap per day.
func WithDailyAttractions(n int) Option {
	return func(s *Synthesizer) {
		if n > 0 {
			s.dailyAttractions = n
		}
	}
}

// WithDailyMeals sets the meal slots per day.
func WithDailyMeals(n int) Option {
	return func(s *Synthesizer) {
		if n > 0 {
			s.dailyMeals = n
		}
	}
}

// New returns a Synthesizer with the default daily caps.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		dailyAttractions: _defaultDailyAttractions,
		dailyMeals:       _defaultDailyMeals,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize distributes the plan's places across exactly TripDays days using
// round-robin interleave. When place data is absent it returns an explicit
// skipped marker rather than an empty, misleading schedule.
func (s *Synthesizer) Synthesize(plan *schema.TripPlan) *schema.Itinerary {
	days := plan.Preferences.TripDays
	if plan.Places == nil {
		return &schema.Itinerary{Skipped: true, SkipReason: SkipReasonNoPlaces}
	}

	byCategory := plan.Places.ByCategory()
	attractions := deal(byCategory[schema.PlaceAttraction], days, s.dailyAttractions)
	meals := deal(byCategory[schema.PlaceFood], days, s.dailyMeals)
	lodgings := deal(byCategory[schema.PlaceLodging], days, 1)

	out := &schema.Itinerary{Days: make([]schema.ItineraryDay, days)}
	for d := 0; d < days; d++ {
		day := schema.ItineraryDay{Day: d + 1}
		for _, p := range attractions[d] {
			day.Activities = append(day.Activities, schema.Activity{
				Name:        p.Name,
				Category:    p.Category,
				DurationMin: _attractionMinutes,
			})
		}
		for _, p := range meals[d] {
			day.Activities = append(day.Activities, schema.Activity{
				Name:        p.Name,
				Category:    p.Category,
				DurationMin: _mealMinutes,
			})
		}
		for _, p := range lodgings[d] {
			day.Activities = append(day.Activities, schema.Activity{
				Name:        p.Name,
				Category:    p.Category,
				DurationMin: _lodgingMinutes,
			})
		}
		out.Days[d] = day
	}
	return out
}

// deal distributes places across days like dealing cards, capping how many
// land on each day. Overflow beyond days*cap is dropped rather than
// overloading any single day.
func deal(places []schema.Place, days, limit int) [][]schema.Place {
	out := make([][]schema.Place, days)
	if days == 0 || limit == 0 {
		return out
	}
	for i, p := range places {
		day := i % days
		if len(out[day]) >= limit {
			continue
		}
		out[day] = append(out[day], p)
	}
	return out
}
