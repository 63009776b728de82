package source

import (
	"context"
	"time"

	"github.com/wanderlab/voyago/schema"
)

// Recommender proposes destination candidates for a set of preferences.
type Recommender interface {
	Fetch(ctx context.Context, prefs schema.Preferences) Result[[]schema.DestinationCandidate]
}

// WeatherProvider fetches the per-day outlook for a destination and window.
type WeatherProvider interface {
	Fetch(ctx context.Context, dest schema.DestinationCandidate, start time.Time, days int) Result[*schema.WeatherOutlook]
}

// PlaceProvider fetches place records for a destination, optionally filtered
// by interest tags.
type PlaceProvider interface {
	Fetch(ctx context.Context, dest schema.DestinationCandidate, interests []string) Result[*schema.PlaceInfo]
}
