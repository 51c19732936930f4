package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/lumenlearn/skillaudit/internal/domain"
)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicModel       = "claude-3-5-haiku-20241022"
	anthropicVersion     = "2023-06-01"
)

type AnthropicClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewAnthropicClient(apiKey string) *AnthropicClient {
	return &AnthropicClient{
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *AnthropicClient) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	body, err := json.Marshal(anthropicRequest{
		Model:     anthropicModel,
		MaxTokens: maxTokens,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal anthropic request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicMessagesURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create anthropic request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read anthropic response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result anthropicResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("unmarshal anthropic response: %w", err)
	}

	if result.Error != nil {
		return "", fmt.Errorf("anthropic API error: %s", result.Error.Message)
	}

	if len(result.Content) == 0 {
		return "", fmt.Errorf("anthropic API returned no content")
	}

	return strings.TrimSpace(result.Content[0].Text), nil
}

func (c *AnthropicClient) ExtractIntake(ctx context.Context, profile *domain.StudentProfile) (domain.StageResult[domain.IntakeSignals], error) {
	raw, err := c.complete(ctx, fmt.Sprintf(intakePrompt, profileSection(profile)), 2048)
	if err != nil {
		return domain.StageResult[domain.IntakeSignals]{}, fmt.Errorf("extract intake: %w", err)
	}
	out, err := decodeIntake(raw)
	return domain.StageResult[domain.IntakeSignals]{Output: out, Raw: raw}, err
}

func (c *AnthropicClient) AnalyzeGaps(ctx context.Context, profile *domain.StudentProfile, intake *domain.IntakeSignals) (domain.StageResult[domain.GapAnalysis], error) {
	raw, err := c.complete(ctx, fmt.Sprintf(gapPrompt, profileSection(profile), contextJSON(intake)), 2048)
	if err != nil {
		return domain.StageResult[domain.GapAnalysis]{}, fmt.Errorf("analyze gaps: %w", err)
	}
	out, err := decodeGaps(raw)
	return domain.StageResult[domain.GapAnalysis]{Output: out, Raw: raw}, err
}

func (c *AnthropicClient) RecommendOpportunities(ctx context.Context, profile *domain.StudentProfile, intake *domain.IntakeSignals, gaps *domain.GapAnalysis) (domain.StageResult[domain.RecommendationSet], error) {
	raw, err := c.complete(ctx, fmt.Sprintf(recommendPrompt, profileSection(profile), contextJSON(intake), contextJSON(gaps)), 2048)
	if err != nil {
		return domain.StageResult[domain.RecommendationSet]{}, fmt.Errorf("recommend opportunities: %w", err)
	}
	out, err := decodeRecommendations(raw)
	return domain.StageResult[domain.RecommendationSet]{Output: out, Raw: raw}, err
}

func (c *AnthropicClient) GeneratePlan(ctx context.Context, profile *domain.StudentProfile, intake *domain.IntakeSignals, gaps *domain.GapAnalysis, recs *domain.RecommendationSet) (domain.StageResult[domain.ActionPlan], error) {
	raw, err := c.complete(ctx, fmt.Sprintf(planPrompt, profileSection(profile), contextJSON(intake), contextJSON(gaps), contextJSON(recs)), 4096)
	if err != nil {
		return domain.StageResult[domain.ActionPlan]{}, fmt.Errorf("generate plan: %w", err)
	}
	out, err := decodePlan(raw)
	return domain.StageResult[domain.ActionPlan]{Output: out, Raw: raw}, err
}
