// Package preference validates raw trip requests into normalized
// schema.Preferences and derives the cache fingerprint for a request.
package preference

import (
	"fmt"
	"log"
	"strings"

	"github.com/thoas/go-funk"

	"github.com/wanderlab/voyago/schema"
)

// Raw is the unvalidated user input.
type Raw struct {
	Budget      string   `json:"budget"`
	Interests   []string `json:"interests"`
	Climate     string   `json:"climate"`
	TripDays    int      `json:"trip_days"`
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Nationality string   `json:"nationality"`
	SurpriseMe  bool     `json:"surprise_me"`
}

// ValidationError is a user-fixable input error. It is never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

var _defaultMaxTripDays = 30

// Model validates and normalizes raw input.
type Model struct {
	maxTripDays int
}

// Option configures the Model.
type Option func(*Model)

// WithMaxTripDays overrides the trip length clamp.
func WithMaxTripDays(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.maxTripDays = n
		}
	}
}

// NewModel returns a Model with the default clamp.
func NewModel(opts ...Option) *Model {
	m := &Model{maxTripDays: _defaultMaxTripDays}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Validate turns raw input into normalized Preferences or a *ValidationError.
// Trip lengths above the configured maximum are clamped with a warning rather
// than rejected; an empty interest set is only accepted with the surprise-me
// flag.
func (m *Model) Validate(raw Raw) (schema.Preferences, error) {
	var prefs schema.Preferences

	budget, err := parseBudget(raw.Budget)
	if err != nil {
		return prefs, err
	}
	climate, err := parseClimate(raw.Climate)
	if err != nil {
		return prefs, err
	}

	if raw.TripDays < 1 {
		return prefs, &ValidationError{Field: "trip_days", Message: "trip length must be at least 1 day"}
	}
	days := raw.TripDays
	if days > m.maxTripDays {
		log.Printf("Warning: trip length %d exceeds maximum %d days, clamping", days, m.maxTripDays)
		days = m.maxTripDays
	}

	interests := normalizeInterests(raw.Interests)
	if len(interests) == 0 && !raw.SurpriseMe {
		return prefs, &ValidationError{Field: "interests", Message: "select at least one interest or set surprise_me"}
	}

	prefs = schema.Preferences{
		Budget:      budget,
		Interests:   interests,
		Climate:     climate,
		TripDays:    days,
		Origin:      strings.TrimSpace(raw.Origin),
		Destination: strings.TrimSpace(raw.Destination),
		Nationality: strings.TrimSpace(raw.Nationality),
		SurpriseMe:  raw.SurpriseMe,
	}
	return prefs, nil
}

func parseBudget(s string) (schema.BudgetTier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "medium", "mid-range":
		return schema.BudgetMedium, nil
	case "low", "budget":
		return schema.BudgetLow, nil
	case "high", "luxury":
		return schema.BudgetHigh, nil
	}
	return "", &ValidationError{Field: "budget", Message: fmt.Sprintf("unknown budget tier %q", s)}
}

func parseClimate(s string) (schema.Climate, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any", "no preference":
		return schema.ClimateAny, nil
	case "warm":
		return schema.ClimateWarm, nil
	case "cool":
		return schema.ClimateCool, nil
	case "tropical":
		return schema.ClimateTropical, nil
	case "temperate":
		return schema.ClimateTemperate, nil
	}
	return "", &ValidationError{Field: "climate", Message: fmt.Sprintf("unknown climate %q", s)}
}

func normalizeInterests(raw []string) []string {
	cleaned := make([]string, 0, len(raw))
	for _, tag := range raw {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return funk.UniqString(cleaned)
}
