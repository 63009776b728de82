package schema

import "strings"

// BudgetTier is the traveler's budget band.
type BudgetTier string

const (
	BudgetLow    BudgetTier = "low"
	BudgetMedium BudgetTier = "medium"
	BudgetHigh   BudgetTier = "high"
)

// Climate is the traveler's preferred climate.
type Climate string

const (
	ClimateWarm      Climate = "warm"
	ClimateCool      Climate = "cool"
	ClimateTropical  Climate = "tropical"
	ClimateTemperate Climate = "temperate"
	ClimateAny       Climate = "any"
)

// Preferences is the validated, normalized form of a planning request.
// Interests are lower-cased and deduplicated; TripDays is already clamped.
type Preferences struct {
	Budget      BudgetTier `json:"budget"`
	Interests   []string   `json:"interests"`
	Climate     Climate    `json:"climate"`
	TripDays    int        `json:"trip_days"`
	Origin      string     `json:"origin,omitempty"`
	Destination string     `json:"destination,omitempty"`
	Nationality string     `json:"nationality,omitempty"`
	SurpriseMe  bool       `json:"surprise_me,omitempty"`
}

// InterestLine renders the interest set for prompt building.
func (p Preferences) InterestLine() string {
	if len(p.Interests) == 0 {
		return "any"
	}
	return strings.Join(p.Interests, ", ")
}

// HasExplicitDestination reports whether the traveler already picked a place.
func (p Preferences) HasExplicitDestination() bool {
	return strings.TrimSpace(p.Destination) != ""
}
