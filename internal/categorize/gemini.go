package categorize

import (
	"context"
	"errors"
	"net"
	"net/url"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// Gemini categorizes through the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini builds the adapter. baseURL may be empty for the public API.
func NewGemini(ctx context.Context, apiKey, model, baseURL string) (*Gemini, error) {
	if apiKey == "" {
		return nil, &Error{Kind: ErrNotConfigured, Err: errors.New("GEMINI_API_KEY not set")}
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, &Error{Kind: ErrNotConfigured, Err: err}
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Categorize(ctx context.Context, descriptions []string) ([]*string, error) {
	msg, err := userMessage(descriptions)
	if err != nil {
		return nil, err
	}

	temperature := float32(0)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(msg), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SystemPrompt}}},
		Temperature:       &temperature,
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		return nil, classifyTransportError(err)
	}
	return ParseCategories(resp.Text(), len(descriptions)), nil
}

// classifyTransportError separates unreachable hosts from error replies.
func classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return &Error{Kind: ErrNetwork, Err: err}
	}
	return &Error{Kind: ErrService, Err: err}
}
