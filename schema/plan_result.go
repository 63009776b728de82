package schema

// PlanState is a stage of the planning request lifecycle.
type PlanState string

const (
	StateValidating  PlanState = "validating"
	StateFetching    PlanState = "fetching"
	StateAggregating PlanState = "aggregating"
	StateDeriving    PlanState = "deriving"
	StateComplete    PlanState = "complete"
	StatePlanFailed  PlanState = "failed"
)

// PlanResult is what the planner hands back to the presentation layer.
// A Complete result with a degraded status map still carries everything that
// succeeded; consumers must flag what did not instead of fabricating it.
type PlanResult struct {
	State     PlanState    `json:"state"`
	Plan      *TripPlan    `json:"plan,omitempty"`
	Itinerary *Itinerary   `json:"itinerary,omitempty"`
	Packing   *PackingList `json:"packing,omitempty"`
	Visa      *VisaInfo    `json:"visa,omitempty"`
	Status    StatusMap    `json:"status,omitempty"`
}

// Complete reports whether the request reached the terminal success state.
func (r *PlanResult) Complete() bool {
	return r.State == StateComplete
}
