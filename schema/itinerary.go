package schema

// Activity is one scheduled entry on an itinerary day.
type Activity struct {
	Name        string        `json:"name"`
	Category    PlaceCategory `json:"category"`
	DurationMin int           `json:"duration_min"`
}

// ItineraryDay is one day of the synthesized schedule.
type ItineraryDay struct {
	Day        int        `json:"day"`
	Activities []Activity `json:"activities"`
}

// Itinerary is the day-by-day schedule derived from a TripPlan. A skipped
// itinerary is distinct from an empty one: Skipped means place data was
// absent, not that zero activities were found.
type Itinerary struct {
	Days       []ItineraryDay `json:"days,omitempty"`
	Skipped    bool           `json:"skipped,omitempty"`
	SkipReason string         `json:"skip_reason,omitempty"`
}
