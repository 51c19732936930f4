package llm

import (
	"fmt"

	"github.com/lumenlearn/skillaudit/internal/domain"
)

// Provider constants
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderMock      = "mock"
)

// NewExtractor creates an extractor client based on the provider name.
// Returns an error if the provider is unknown or the API key is empty
// (except for mock).
func NewExtractor(provider, apiKey string) (domain.Extractor, error) {
	switch provider {
	case ProviderOpenAI:
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for OpenAI provider")
		}
		return NewOpenAIClient(apiKey), nil

	case ProviderAnthropic:
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for Anthropic provider")
		}
		return NewAnthropicClient(apiKey), nil

	case ProviderGemini:
		if apiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		return NewGeminiClient(apiKey), nil

	case ProviderMock:
		return NewMockExtractor(), nil

	default:
		return nil, fmt.Errorf("unknown extractor provider: %s (valid options: openai, anthropic, gemini, mock)", provider)
	}
}
