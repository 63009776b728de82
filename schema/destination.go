package schema

import (
	"fmt"
	"strings"
)

const (
	// ProvenanceAISuggested marks candidates produced by the recommender model.
	ProvenanceAISuggested = "ai-suggested"
	// ProvenanceTraveler marks the destination the traveler asked for.
	ProvenanceTraveler = "traveler-specified"
)

// DestinationCandidate is one destination proposed by the recommender,
// immutable once produced.
type DestinationCandidate struct {
	Name       string  `json:"name"`
	Country    string  `json:"country"`
	Score      float64 `json:"score"`
	Rationale  string  `json:"rationale"`
	Provenance string  `json:"provenance"`
}

// Key returns the normalized name+country identity used for deduplication.
func (d DestinationCandidate) Key() string {
	return norm(d.Name) + "|" + norm(d.Country)
}

// Matches reports whether the candidate refers to the named destination,
// accepting either the bare name or the "Name, Country" form.
func (d DestinationCandidate) Matches(dest string) bool {
	n := norm(dest)
	return n != "" && (n == norm(d.Name) || n == norm(d.Label()))
}

func norm(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Label renders the candidate for prompts and provider queries.
func (d DestinationCandidate) Label() string {
	if d.Country == "" {
		return d.Name
	}
	return fmt.Sprintf("%s, %s", d.Name, d.Country)
}
