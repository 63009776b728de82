package recommend

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/wanderlab/voyago/schema"
	"github.com/wanderlab/voyago/utils/json"
)

type candidatePayload struct {
	Destinations []candidateJSON `json:"destinations"`
}

type candidateJSON struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Score     float64 `json:"score"`
	Rationale string  `json:"rationale"`
}

// parseCandidates validates model output against the candidate schema.
// dropped counts entries discarded for schema violations; err is non-nil only
// when no valid candidate survives.
func parseCandidates(raw string) (candidates []schema.DestinationCandidate, dropped int, err error) {
	var payload candidatePayload
	if uerr := json.UnmarshalClean(raw, &payload); uerr != nil {
		// some models answer with a bare array
		var list []candidateJSON
		if aerr := json.UnmarshalClean(raw, &list); aerr != nil {
			return nil, 0, errors.Wrap(uerr, "response is not candidate JSON")
		}
		payload.Destinations = list
	}
	if len(payload.Destinations) == 0 {
		return nil, 0, errors.New("response contains no destinations")
	}

	seen := make(map[string]struct{}, len(payload.Destinations))
	for _, c := range payload.Destinations {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			dropped++
			continue
		}
		candidate := schema.DestinationCandidate{
			Name:       name,
			Country:    strings.TrimSpace(c.Country),
			Score:      clampScore(c.Score),
			Rationale:  strings.TrimSpace(c.Rationale),
			Provenance: schema.ProvenanceAISuggested,
		}
		if _, dup := seen[candidate.Key()]; dup {
			dropped++
			continue
		}
		seen[candidate.Key()] = struct{}{}
		candidates = append(candidates, candidate)
	}

	if len(candidates) == 0 {
		return nil, dropped, errors.New("all destinations failed schema validation")
	}
	return candidates, dropped, nil
}

func clampScore(s float64) float64 {
	switch {
	case s < 0:
		return 0
	case s > 1:
		return 1
	}
	return s
}
