// Package visa provides best-effort visa guidance. Advisory data is never
// authoritative and always carries the disclaimer; lookup failures degrade to
// an unknown requirement instead of failing the planning request.
package visa

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/wanderlab/voyago/llm"
	"github.com/wanderlab/voyago/schema"
	"github.com/wanderlab/voyago/utils/json"
	"github.com/wanderlab/voyago/utils/ratelimit"
)

const systemPrompt = `You summarize visa requirements for travelers.
Answer with a single JSON object:
{"requirement": "visa-free|visa-on-arrival|e-visa|embassy-required|unknown", "processing_time": "...", "note": "..."}
Use "unknown" when unsure. Do not include any text outside the JSON object.`

// Advisor looks up advisory visa requirements via a model.
type Advisor struct {
	model   llm.LLM
	limiter *ratelimit.TokenBucket
}

// Option configures the Advisor.
type Option func(*Advisor)

// WithLimiter throttles model calls with a token bucket.
func WithLimiter(tb *ratelimit.TokenBucket) Option {
	return func(a *Advisor) {
		a.limiter = tb
	}
}

// New returns an Advisor backed by the given model.
func New(model llm.LLM, opts ...Option) (*Advisor, error) {
	if model == nil {
		return nil, errors.New("missing llm model")
	}
	a := &Advisor{model: model}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

type visaPayload struct {
	Requirement    string `json:"requirement"`
	ProcessingTime string `json:"processing_time"`
	Note           string `json:"note"`
}

// Advise returns guidance for the destination. It never fails: any lookup or
// parse problem resolves to an unknown requirement with the disclaimer
// attached.
func (a *Advisor) Advise(ctx context.Context, dest schema.DestinationCandidate, nationality string) *schema.VisaInfo {
	info := &schema.VisaInfo{
		Destination: dest.Label(),
		Requirement: schema.VisaUnknown,
		Disclaimer:  schema.VisaDisclaimer,
	}
	if strings.TrimSpace(nationality) == "" {
		info.Note = "traveler nationality not provided"
		return info
	}

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			info.Note = "advisory lookup unavailable"
			return info
		}
	}

	prompt := fmt.Sprintf(
		"Visa requirement for a %s citizen traveling to %s. Include the processing time estimate if a visa is needed.",
		nationality, dest.Label())
	gen, err := a.model.GenerateContent(ctx,
		[]llm.Message{llm.NewSystemMessage(systemPrompt), llm.NewUserMessage(prompt)},
		llm.WithJSONMode(), llm.WithTemperature(0))
	if err != nil {
		info.Note = "advisory lookup unavailable"
		return info
	}

	var payload visaPayload
	if err := json.UnmarshalClean(gen.Content, &payload); err != nil {
		info.Note = "advisory lookup unavailable"
		return info
	}

	info.Requirement = parseRequirement(payload.Requirement)
	info.ProcessingTime = strings.TrimSpace(payload.ProcessingTime)
	info.Note = strings.TrimSpace(payload.Note)
	return info
}

func parseRequirement(s string) schema.VisaRequirement {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "visa-free", "visa free":
		return schema.VisaFree
	case "visa-on-arrival", "visa on arrival":
		return schema.VisaOnArrival
	case "e-visa", "evisa":
		return schema.VisaEVisa
	case "embassy-required", "embassy visa required":
		return schema.VisaEmbassy
	}
	return schema.VisaUnknown
}
