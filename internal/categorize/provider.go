package categorize

import (
	"context"
	"fmt"

	"github.com/insightdelivered/statement-points/internal/config"
)

// FromConfig builds the configured categorizer. A missing key or the
// "none" provider yields an ErrNotConfigured error.
func FromConfig(ctx context.Context, cfg config.CategorizerConfig) (Categorizer, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		c, err := NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.ProviderGemini:
		c, err := NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, "")
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.ProviderNone:
		return nil, &Error{Kind: ErrNotConfigured}
	default:
		return nil, &Error{Kind: ErrNotConfigured, Err: fmt.Errorf("unknown provider %q", cfg.Provider)}
	}
}
