package recommend

import (
	"fmt"
	"strings"

	"github.com/wanderlab/voyago/schema"
)

const systemPrompt = `You are a travel destination recommender.
You always answer with a single JSON object of the form:
{"destinations": [{"name": "...", "country": "...", "score": 0.0, "rationale": "..."}]}
score is a number between 0 and 1 reflecting how well the destination fits the traveler's preferences.
rationale is one short sentence. Do not include any text outside the JSON object.`

const strictRetryPrompt = `Your previous answer did not parse as the required JSON.
Respond again with ONLY the JSON object {"destinations": [...]} and nothing else.
Every entry must have the fields name, country, score and rationale.`

func userPrompt(prefs schema.Preferences, maxCandidates int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest up to %d travel destinations for these preferences:\n", maxCandidates)
	fmt.Fprintf(&b, "- Budget: %s\n", prefs.Budget)
	fmt.Fprintf(&b, "- Interests: %s\n", prefs.InterestLine())
	fmt.Fprintf(&b, "- Preferred climate: %s\n", prefs.Climate)
	fmt.Fprintf(&b, "- Trip length: %d days\n", prefs.TripDays)
	if prefs.Origin != "" {
		fmt.Fprintf(&b, "- Departing from: %s\n", prefs.Origin)
	}
	if prefs.HasExplicitDestination() {
		fmt.Fprintf(&b, "- The traveler already has %s in mind; include and score it first.\n", prefs.Destination)
	}
	if prefs.SurpriseMe {
		b.WriteString("- The traveler asked to be surprised; favor less obvious picks.\n")
	}
	return b.String()
}

func degradedReason(dropped int) string {
	return fmt.Sprintf("%d candidate(s) dropped for schema violations", dropped)
}
