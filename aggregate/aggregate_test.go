package aggregate

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderlab/voyago/schema"
	"github.com/wanderlab/voyago/source"
)

type fakeRecommender struct {
	results []source.Result[[]schema.DestinationCandidate]
	calls   atomic.Int32
}

func (f *fakeRecommender) Fetch(context.Context, schema.Preferences) source.Result[[]schema.DestinationCandidate] {
	i := int(f.calls.Add(1)) - 1
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	return f.results[i]
}

type fakeWeather struct {
	results []source.Result[*schema.WeatherOutlook]
	calls   atomic.Int32
}

func (f *fakeWeather) Fetch(context.Context, schema.DestinationCandidate, time.Time, int) source.Result[*schema.WeatherOutlook] {
	i := int(f.calls.Add(1)) - 1
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	return f.results[i]
}

type fakePlaces struct {
	results []source.Result[*schema.PlaceInfo]
	calls   atomic.Int32
}

func (f *fakePlaces) Fetch(context.Context, schema.DestinationCandidate, []string) source.Result[*schema.PlaceInfo] {
	i := int(f.calls.Add(1)) - 1
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	return f.results[i]
}

func candidates() []schema.DestinationCandidate {
	return []schema.DestinationCandidate{
		{Name: "Lisbon", Country: "Portugal", Score: 0.9, Provenance: schema.ProvenanceAISuggested},
		{Name: "Valletta", Country: "Malta", Score: 0.8, Provenance: schema.ProvenanceAISuggested},
	}
}

func outlook() *schema.WeatherOutlook {
	return &schema.WeatherOutlook{
		Destination: "Lisbon, Portugal",
		Days:        []schema.DayForecast{{TempMin: 18, TempMax: 28, PrecipProb: 0.1, Condition: "Clear"}},
	}
}

func placeInfo() *schema.PlaceInfo {
	return &schema.PlaceInfo{
		Destination: "Lisbon, Portugal",
		Places:      []schema.Place{{Name: "Belém Tower", Category: schema.PlaceAttraction}},
	}
}

func noBackoff() Option {
	return WithBackoff(func(int) time.Duration { return 0 })
}

var prefs = schema.Preferences{
	Budget:    schema.BudgetMedium,
	Interests: []string{"beach"},
	Climate:   schema.ClimateWarm,
	TripDays:  5,
}

func TestAggregateAllSourcesHealthy(t *testing.T) {
	t.Parallel()

	rec := &fakeRecommender{results: []source.Result[[]schema.DestinationCandidate]{source.Ok(candidates())}}
	weather := &fakeWeather{results: []source.Result[*schema.WeatherOutlook]{source.Ok(outlook())}}
	places := &fakePlaces{results: []source.Result[*schema.PlaceInfo]{source.Ok(placeInfo())}}

	agg, err := New(rec, weather, places, noBackoff())
	require.NoError(t, err)

	plan, err := agg.Aggregate(context.Background(), prefs)
	require.NoError(t, err)
	require.Len(t, plan.Candidates, 2)
	assert.Equal(t, "Lisbon", plan.Chosen().Name)
	assert.NotNil(t, plan.Weather)
	assert.NotNil(t, plan.Places)
	assert.True(t, plan.Status.OK(schema.SourceRecommend))
	assert.True(t, plan.Status.OK(schema.SourceWeather))
	assert.True(t, plan.Status.OK(schema.SourcePlaces))
}

func TestAggregateRecommenderFailureIsFatal(t *testing.T) {
	t.Parallel()

	rec := &fakeRecommender{results: []source.Result[[]schema.DestinationCandidate]{
		source.Failed[[]schema.DestinationCandidate](source.AuthInvalid, errors.New("bad key")),
	}}
	weather := &fakeWeather{results: []source.Result[*schema.WeatherOutlook]{source.Ok(outlook())}}
	places := &fakePlaces{results: []source.Result[*schema.PlaceInfo]{source.Ok(placeInfo())}}

	agg, err := New(rec, weather, places, noBackoff())
	require.NoError(t, err)

	_, err = agg.Aggregate(context.Background(), prefs)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoDestinationsAvailable)
	// without a destination there is nothing for the other sources to query
	assert.Zero(t, weather.calls.Load())
	assert.Zero(t, places.calls.Load())
}

func TestAggregateWeatherFailureDegrades(t *testing.T) {
	t.Parallel()

	rec := &fakeRecommender{results: []source.Result[[]schema.DestinationCandidate]{source.Ok(candidates())}}
	weather := &fakeWeather{results: []source.Result[*schema.WeatherOutlook]{
		source.Failed[*schema.WeatherOutlook](source.AuthInvalid, errors.New("bad key")),
	}}
	places := &fakePlaces{results: []source.Result[*schema.PlaceInfo]{source.Ok(placeInfo())}}

	agg, err := New(rec, weather, places, noBackoff())
	require.NoError(t, err)

	plan, err := agg.Aggregate(context.Background(), prefs)
	require.NoError(t, err)
	assert.Nil(t, plan.Weather)
	assert.Equal(t, schema.StateFailed, plan.Status[schema.SourceWeather].State)
	assert.NotNil(t, plan.Places)
}

func TestAggregateRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	rec := &fakeRecommender{results: []source.Result[[]schema.DestinationCandidate]{
		source.Failed[[]schema.DestinationCandidate](source.RateLimited, errors.New("429")),
		source.Ok(candidates()),
	}}
	weather := &fakeWeather{results: []source.Result[*schema.WeatherOutlook]{source.Ok(outlook())}}
	places := &fakePlaces{results: []source.Result[*schema.PlaceInfo]{source.Ok(placeInfo())}}

	agg, err := New(rec, weather, places, noBackoff())
	require.NoError(t, err)

	plan, err := agg.Aggregate(context.Background(), prefs)
	require.NoError(t, err)
	assert.Equal(t, int32(2), rec.calls.Load())
	assert.True(t, plan.Status.OK(schema.SourceRecommend))
}

func TestAggregateDoesNotRetryContractErrors(t *testing.T) {
	t.Parallel()

	rec := &fakeRecommender{results: []source.Result[[]schema.DestinationCandidate]{
		source.Failed[[]schema.DestinationCandidate](source.MalformedResponse, errors.New("bad schema")),
		source.Ok(candidates()),
	}}
	weather := &fakeWeather{results: []source.Result[*schema.WeatherOutlook]{source.Ok(outlook())}}
	places := &fakePlaces{results: []source.Result[*schema.PlaceInfo]{source.Ok(placeInfo())}}

	agg, err := New(rec, weather, places, noBackoff())
	require.NoError(t, err)

	_, err = agg.Aggregate(context.Background(), prefs)
	require.Error(t, err)
	assert.Equal(t, int32(1), rec.calls.Load())
}

func TestAggregateExplicitDestinationFansOutAll(t *testing.T) {
	t.Parallel()

	rec := &fakeRecommender{results: []source.Result[[]schema.DestinationCandidate]{source.Ok(candidates())}}
	weather := &fakeWeather{results: []source.Result[*schema.WeatherOutlook]{source.Ok(outlook())}}
	places := &fakePlaces{results: []source.Result[*schema.PlaceInfo]{source.Ok(placeInfo())}}

	agg, err := New(rec, weather, places, noBackoff())
	require.NoError(t, err)

	explicit := prefs
	explicit.Destination = "Lisbon"
	plan, err := agg.Aggregate(context.Background(), explicit)
	require.NoError(t, err)
	assert.Equal(t, int32(1), rec.calls.Load())
	assert.Equal(t, int32(1), weather.calls.Load())
	assert.Equal(t, int32(1), places.calls.Load())
	assert.NotNil(t, plan.Weather)
}

func TestAggregateExplicitDestinationPinsChosen(t *testing.T) {
	t.Parallel()

	// the model prefers Paris, but weather and places were fetched for the
	// traveler's Lisbon, so Lisbon must be the chosen candidate
	rec := &fakeRecommender{results: []source.Result[[]schema.DestinationCandidate]{
		source.Ok([]schema.DestinationCandidate{
			{Name: "Paris", Country: "France", Score: 0.95, Provenance: schema.ProvenanceAISuggested},
			{Name: "Lisbon", Country: "Portugal", Score: 0.70, Provenance: schema.ProvenanceAISuggested},
		}),
	}}
	weather := &fakeWeather{results: []source.Result[*schema.WeatherOutlook]{source.Ok(outlook())}}
	places := &fakePlaces{results: []source.Result[*schema.PlaceInfo]{source.Ok(placeInfo())}}

	agg, err := New(rec, weather, places, noBackoff())
	require.NoError(t, err)

	explicit := prefs
	explicit.Destination = "Lisbon"
	plan, err := agg.Aggregate(context.Background(), explicit)
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", plan.Chosen().Name)
	require.Len(t, plan.Candidates, 2)
	assert.Equal(t, "Paris", plan.Candidates[1].Name)
}

func TestAggregateExplicitDestinationSeededWhenOmitted(t *testing.T) {
	t.Parallel()

	rec := &fakeRecommender{results: []source.Result[[]schema.DestinationCandidate]{
		source.Ok([]schema.DestinationCandidate{
			{Name: "Paris", Country: "France", Score: 0.95, Provenance: schema.ProvenanceAISuggested},
		}),
	}}
	weather := &fakeWeather{results: []source.Result[*schema.WeatherOutlook]{source.Ok(outlook())}}
	places := &fakePlaces{results: []source.Result[*schema.PlaceInfo]{source.Ok(placeInfo())}}

	agg, err := New(rec, weather, places, noBackoff())
	require.NoError(t, err)

	explicit := prefs
	explicit.Destination = "Lisbon"
	plan, err := agg.Aggregate(context.Background(), explicit)
	require.NoError(t, err)
	require.Len(t, plan.Candidates, 2)
	assert.Equal(t, "Lisbon", plan.Chosen().Name)
	assert.Equal(t, schema.ProvenanceTraveler, plan.Chosen().Provenance)
}

func TestRankDeterministic(t *testing.T) {
	t.Parallel()

	t.Run("score descending", func(t *testing.T) {
		t.Parallel()
		ranked := Rank([]schema.DestinationCandidate{
			{Name: "B", Country: "X", Score: 0.5},
			{Name: "A", Country: "X", Score: 0.9},
		})
		assert.Equal(t, "A", ranked[0].Name)
	})

	t.Run("alphabetical tie break", func(t *testing.T) {
		t.Parallel()
		ranked := Rank([]schema.DestinationCandidate{
			{Name: "Zagreb", Country: "Croatia", Score: 0.8},
			{Name: "Athens", Country: "Greece", Score: 0.8},
		})
		assert.Equal(t, "Athens", ranked[0].Name)
		assert.Equal(t, "Zagreb", ranked[1].Name)
	})

	t.Run("duplicates removed", func(t *testing.T) {
		t.Parallel()
		ranked := Rank([]schema.DestinationCandidate{
			{Name: "Lisbon", Country: "Portugal", Score: 0.9},
			{Name: "LISBON", Country: "portugal", Score: 0.4},
		})
		assert.Len(t, ranked, 1)
	})
}
