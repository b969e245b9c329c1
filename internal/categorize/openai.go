package categorize

import (
	"context"
	"errors"
	"math"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI categorizes through the chat completions API.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI builds the adapter. baseURL may be empty for the public API.
func NewOpenAI(apiKey, model, baseURL string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, &Error{Kind: ErrNotConfigured, Err: errors.New("OPENAI_API_KEY not set")}
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

func (o *OpenAI) Categorize(ctx context.Context, descriptions []string) ([]*string, error) {
	msg, err := userMessage(descriptions)
	if err != nil {
		return nil, err
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		// Zero is dropped by omitempty and the API would default to 1.
		Temperature: math.SmallestNonzeroFloat32,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: msg},
		},
	})
	if err != nil {
		return nil, classifyOpenAIError(err)
	}

	content := "[]"
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}
	return ParseCategories(content, len(descriptions)), nil
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &Error{Kind: ErrService, Status: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &Error{Kind: ErrService, Status: reqErr.HTTPStatusCode, Err: err}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &Error{Kind: ErrNetwork, Err: err}
}
