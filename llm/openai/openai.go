package openai

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	goopenai "github.com/sashabaranov/go-openai"

	"github.com/wanderlab/voyago/llm"
)

type LLM struct {
	client *goopenai.Client
	model  string
}

var (
	_ llm.LLM = (*LLM)(nil)

	_defaultModel = "gpt-4o-mini"
)

// newClient creates an instance of the internal client.
func newClient(opt *options) (*goopenai.Client, error) {
	if len(opt.token) == 0 {
		return nil, errors.New("missing the OpenAI API key, set it in the OPENAI_API_KEY environment variable")
	}

	config := goopenai.DefaultConfig(opt.token)
	if opt.apiType == goopenai.APITypeAzure {
		config = goopenai.DefaultAzureConfig(opt.token, opt.baseURL)
	}
	if opt.baseURL != "" {
		config.BaseURL = opt.baseURL
	}
	config.OrgID = opt.organization

	if opt.httpClient != nil {
		config.HTTPClient = opt.httpClient
	}
	if opt.apiVersion != "" {
		config.APIVersion = opt.apiVersion
	}

	return goopenai.NewClientWithConfig(config), nil
}

// New returns a new OpenAI LLM.
func New(opts ...Option) (*LLM, error) {
	option := &options{
		apiType:    goopenai.APITypeOpenAI,
		httpClient: http.DefaultClient,
		model:      _defaultModel,
	}

	for _, opt := range opts {
		opt(option)
	}
	c, err := newClient(option)
	if err != nil {
		return nil, err
	}
	return &LLM{
		client: c,
		model:  option.model,
	}, nil
}

// GenerateContent implements the llm.LLM interface.
func (l *LLM) GenerateContent(ctx context.Context, messages []llm.Message, opts ...llm.GenerateOption) (*llm.Generation, error) {
	options := llm.DefaultGenerateOptions()
	for _, opt := range opts {
		opt(options)
	}

	msgs := make([]goopenai.ChatCompletionMessage, 0, len(messages))
	for _, mc := range messages {
		msgs = append(msgs, goopenai.ChatCompletionMessage{
			Role:    string(mc.Role),
			Content: mc.Content,
		})
	}
	req := goopenai.ChatCompletionRequest{
		Model:               l.model,
		Messages:            msgs,
		Stop:                options.StopWords,
		Temperature:         options.Temperature,
		MaxCompletionTokens: options.MaxTokens,
	}
	if options.JSONMode {
		req.ResponseFormat = &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := l.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, "chat completion request failed")
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("chat completion returned no choices")
	}

	return &llm.Generation{
		Content:     resp.Choices[0].Message.Content,
		TotalTokens: resp.Usage.TotalTokens,
	}, nil
}
