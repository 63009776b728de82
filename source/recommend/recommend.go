// Package recommend adapts an LLM into the destination recommender source.
package recommend

import (
	"context"
	"errors"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/wanderlab/voyago/llm"
	"github.com/wanderlab/voyago/schema"
	"github.com/wanderlab/voyago/source"
	"github.com/wanderlab/voyago/utils/ratelimit"
)

var (
	_defaultMaxCandidates = 5
	_defaultTemperature   = float32(0.7)
)

// Adapter turns model completions into ranked destination candidates.
type Adapter struct {
	model         llm.LLM
	limiter       *ratelimit.TokenBucket
	maxCandidates int
}

var _ source.Recommender = (*Adapter)(nil)

// Option configures the Adapter.
type Option func(*Adapter)

// WithLimiter throttles model calls with a token bucket.
func WithLimiter(tb *ratelimit.TokenBucket) Option {
	return func(a *Adapter) {
		a.limiter = tb
	}
}

// WithMaxCandidates caps how many destinations are requested.
func WithMaxCandidates(n int) Option {
	return func(a *Adapter) {
		if n > 0 {
			a.maxCandidates = n
		}
	}
}

// New returns a recommender backed by the given model.
func New(model llm.LLM, opts ...Option) (*Adapter, error) {
	if model == nil {
		return nil, errors.New("missing llm model")
	}
	a := &Adapter{
		model:         model,
		maxCandidates: _defaultMaxCandidates,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Fetch asks the model for destination candidates. The model's output must
// parse into the candidate schema; on parse failure the call is retried once
// with a stricter prompt before resolving to Failed(MalformedResponse).
func (a *Adapter) Fetch(ctx context.Context, prefs schema.Preferences) source.Result[[]schema.DestinationCandidate] {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return source.Failed[[]schema.DestinationCandidate](source.Timeout, err)
		}
	}

	messages := []llm.Message{
		llm.NewSystemMessage(systemPrompt),
		llm.NewUserMessage(userPrompt(prefs, a.maxCandidates)),
	}

	gen, err := a.model.GenerateContent(ctx, messages,
		llm.WithJSONMode(), llm.WithTemperature(_defaultTemperature))
	if err != nil {
		return source.Failed[[]schema.DestinationCandidate](classify(err), err)
	}

	candidates, dropped, err := parseCandidates(gen.Content)
	if err != nil {
		// one strict retry, then give up on the contract
		messages = append(messages, llm.NewUserMessage(strictRetryPrompt))
		gen, retryErr := a.model.GenerateContent(ctx, messages,
			llm.WithJSONMode(), llm.WithTemperature(0))
		if retryErr != nil {
			return source.Failed[[]schema.DestinationCandidate](classify(retryErr), retryErr)
		}
		candidates, dropped, err = parseCandidates(gen.Content)
		if err != nil {
			return source.Failed[[]schema.DestinationCandidate](source.MalformedResponse, err)
		}
	}

	if dropped > 0 {
		return source.Degraded(candidates, degradedReason(dropped))
	}
	return source.Ok(candidates)
}

// classify maps model client errors onto the shared failure taxonomy.
func classify(err error) source.ErrorKind {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == 429:
			return source.RateLimited
		case apiErr.HTTPStatusCode == 401 || apiErr.HTTPStatusCode == 403:
			return source.AuthInvalid
		case apiErr.HTTPStatusCode >= 500:
			return source.Unreachable
		default:
			return source.MalformedResponse
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return source.Timeout
	}
	return source.Unreachable
}
