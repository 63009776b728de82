package llm

// GenerateOptions is the set of options for a single generation call.
type GenerateOptions struct {
	Temperature float32
	MaxTokens   int
	JSONMode    bool
	StopWords   []string
}

// GenerateOption configures GenerateOptions.
type GenerateOption func(*GenerateOptions)

// DefaultGenerateOptions returns the options used when none are supplied.
func DefaultGenerateOptions() *GenerateOptions {
	return &GenerateOptions{
		Temperature: 0.7,
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = t
	}
}

// WithMaxTokens caps the completion length.
func WithMaxTokens(n int) GenerateOption {
	return func(o *GenerateOptions) {
		o.MaxTokens = n
	}
}

// WithJSONMode forces the provider's JSON response format.
func WithJSONMode() GenerateOption {
	return func(o *GenerateOptions) {
		o.JSONMode = true
	}
}

// WithStopWords sets the stop sequences.
func WithStopWords(words []string) GenerateOption {
	return func(o *GenerateOptions) {
		o.StopWords = words
	}
}
