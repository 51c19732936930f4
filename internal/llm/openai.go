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
	openAIChatURL = "https://api.openai.com/v1/chat/completions"
	chatModel     = "gpt-4o-mini"
)

type OpenAIClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

// chat types for OpenAI API
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *OpenAIClient) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       chatModel,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIChatURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("unmarshal chat response: %w", err)
	}

	if result.Error != nil {
		return "", fmt.Errorf("chat API error: %s", result.Error.Message)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("chat API returned no choices")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

func (c *OpenAIClient) ExtractIntake(ctx context.Context, profile *domain.StudentProfile) (domain.StageResult[domain.IntakeSignals], error) {
	raw, err := c.complete(ctx, fmt.Sprintf(intakePrompt, profileSection(profile)))
	if err != nil {
		return domain.StageResult[domain.IntakeSignals]{}, fmt.Errorf("extract intake: %w", err)
	}
	out, err := decodeIntake(raw)
	return domain.StageResult[domain.IntakeSignals]{Output: out, Raw: raw}, err
}

func (c *OpenAIClient) AnalyzeGaps(ctx context.Context, profile *domain.StudentProfile, intake *domain.IntakeSignals) (domain.StageResult[domain.GapAnalysis], error) {
	raw, err := c.complete(ctx, fmt.Sprintf(gapPrompt, profileSection(profile), contextJSON(intake)))
	if err != nil {
		return domain.StageResult[domain.GapAnalysis]{}, fmt.Errorf("analyze gaps: %w", err)
	}
	out, err := decodeGaps(raw)
	return domain.StageResult[domain.GapAnalysis]{Output: out, Raw: raw}, err
}

func (c *OpenAIClient) RecommendOpportunities(ctx context.Context, profile *domain.StudentProfile, intake *domain.IntakeSignals, gaps *domain.GapAnalysis) (domain.StageResult[domain.RecommendationSet], error) {
	raw, err := c.complete(ctx, fmt.Sprintf(recommendPrompt, profileSection(profile), contextJSON(intake), contextJSON(gaps)))
	if err != nil {
		return domain.StageResult[domain.RecommendationSet]{}, fmt.Errorf("recommend opportunities: %w", err)
	}
	out, err := decodeRecommendations(raw)
	return domain.StageResult[domain.RecommendationSet]{Output: out, Raw: raw}, err
}

func (c *OpenAIClient) GeneratePlan(ctx context.Context, profile *domain.StudentProfile, intake *domain.IntakeSignals, gaps *domain.GapAnalysis, recs *domain.RecommendationSet) (domain.StageResult[domain.ActionPlan], error) {
	raw, err := c.complete(ctx, fmt.Sprintf(planPrompt, profileSection(profile), contextJSON(intake), contextJSON(gaps), contextJSON(recs)))
	if err != nil {
		return domain.StageResult[domain.ActionPlan]{}, fmt.Errorf("generate plan: %w", err)
	}
	out, err := decodePlan(raw)
	return domain.StageResult[domain.ActionPlan]{Output: out, Raw: raw}, err
}
