package openai

import (
	"net/http"

	goopenai "github.com/sashabaranov/go-openai"
)

type options struct {
	token        string
	model        string
	baseURL      string
	organization string
	apiType      goopenai.APIType
	apiVersion   string
	httpClient   *http.Client
}

// Option configures the OpenAI client.
type Option func(*options)

// WithToken sets the API token.
func WithToken(token string) Option {
	return func(o *options) {
		o.token = token
	}
}

// WithModel sets the model name.
func WithModel(model string) Option {
	return func(o *options) {
		if model != "" {
			o.model = model
		}
	}
}

// WithBaseURL sets a custom API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithOrganization sets the organization ID.
func WithOrganization(organization string) Option {
	return func(o *options) {
		o.organization = organization
	}
}

// WithAPIType selects between the OpenAI and Azure API flavors.
func WithAPIType(apiType goopenai.APIType) Option {
	return func(o *options) {
		o.apiType = apiType
	}
}

// WithAPIVersion sets the API version, used with Azure.
func WithAPIVersion(apiVersion string) Option {
	return func(o *options) {
		o.apiVersion = apiVersion
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}
