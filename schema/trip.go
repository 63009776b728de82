package schema

import "time"

// SourceName identifies one of the upstream providers.
type SourceName string

const (
	SourceRecommend SourceName = "recommend"
	SourceWeather   SourceName = "weather"
	SourcePlaces    SourceName = "places"
)

// SourceState is the per-source outcome recorded on a TripPlan.
type SourceState string

const (
	StateOK       SourceState = "ok"
	StateDegraded SourceState = "degraded"
	StateFailed   SourceState = "failed"
)

// SourceStatus is one status map entry.
type SourceStatus struct {
	State  SourceState `json:"state"`
	Reason string      `json:"reason,omitempty"`
}

// StatusMap records success/degraded/failed per source. It is the contract
// that lets downstream consumers render partial results honestly.
type StatusMap map[SourceName]SourceStatus

// OK reports whether the named source fully succeeded.
func (m StatusMap) OK(name SourceName) bool {
	return m[name].State == StateOK
}

// Usable reports whether the named source produced any data at all.
func (m StatusMap) Usable(name SourceName) bool {
	s := m[name].State
	return s == StateOK || s == StateDegraded
}

// TripPlan is the unified aggregate produced for one planning request.
// The planner owns it for the lifetime of the request; derived artifacts are
// pure functions of (TripPlan, Preferences).
type TripPlan struct {
	ID          string                 `json:"id"`
	Preferences Preferences            `json:"preferences"`
	Candidates  []DestinationCandidate `json:"candidates"`
	ChosenIndex int                    `json:"chosen_index"`
	Weather     *WeatherOutlook        `json:"weather,omitempty"`
	Places      *PlaceInfo             `json:"places,omitempty"`
	Status      StatusMap              `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
}

// Chosen returns the selected destination candidate. Candidates are
// guaranteed non-empty on any plan that reaches the deriving stage.
func (p *TripPlan) Chosen() DestinationCandidate {
	if p.ChosenIndex < 0 || p.ChosenIndex >= len(p.Candidates) {
		return p.Candidates[0]
	}
	return p.Candidates[p.ChosenIndex]
}
