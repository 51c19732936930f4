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

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

type GeminiClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

func (c *GeminiClient) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{
				Parts: []geminiPart{{Text: prompt}},
				Role:  "user",
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", geminiBaseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result geminiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("unmarshal gemini response: %w", err)
	}

	if result.Error != nil {
		return "", fmt.Errorf("gemini API error: %s", result.Error.Message)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini API returned no content")
	}

	return strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text), nil
}

func (c *GeminiClient) ExtractIntake(ctx context.Context, profile *domain.StudentProfile) (domain.StageResult[domain.IntakeSignals], error) {
	raw, err := c.complete(ctx, fmt.Sprintf(intakePrompt, profileSection(profile)))
	if err != nil {
		return domain.StageResult[domain.IntakeSignals]{}, fmt.Errorf("extract intake: %w", err)
	}
	out, err := decodeIntake(raw)
	return domain.StageResult[domain.IntakeSignals]{Output: out, Raw: raw}, err
}

func (c *GeminiClient) AnalyzeGaps(ctx context.Context, profile *domain.StudentProfile, intake *domain.IntakeSignals) (domain.StageResult[domain.GapAnalysis], error) {
	raw, err := c.complete(ctx, fmt.Sprintf(gapPrompt, profileSection(profile), contextJSON(intake)))
	if err != nil {
		return domain.StageResult[domain.GapAnalysis]{}, fmt.Errorf("analyze gaps: %w", err)
	}
	out, err := decodeGaps(raw)
	return domain.StageResult[domain.GapAnalysis]{Output: out, Raw: raw}, err
}

func (c *GeminiClient) RecommendOpportunities(ctx context.Context, profile *domain.StudentProfile, intake *domain.IntakeSignals, gaps *domain.GapAnalysis) (domain.StageResult[domain.RecommendationSet], error) {
	raw, err := c.complete(ctx, fmt.Sprintf(recommendPrompt, profileSection(profile), contextJSON(intake), contextJSON(gaps)))
	if err != nil {
		return domain.StageResult[domain.RecommendationSet]{}, fmt.Errorf("recommend opportunities: %w", err)
	}
	out, err := decodeRecommendations(raw)
	return domain.StageResult[domain.RecommendationSet]{Output: out, Raw: raw}, err
}

func (c *GeminiClient) GeneratePlan(ctx context.Context, profile *domain.StudentProfile, intake *domain.IntakeSignals, gaps *domain.GapAnalysis, recs *domain.RecommendationSet) (domain.StageResult[domain.ActionPlan], error) {
	raw, err := c.complete(ctx, fmt.Sprintf(planPrompt, profileSection(profile), contextJSON(intake), contextJSON(gaps), contextJSON(recs)))
	if err != nil {
		return domain.StageResult[domain.ActionPlan]{}, fmt.Errorf("generate plan: %w", err)
	}
	out, err := decodePlan(raw)
	return domain.StageResult[domain.ActionPlan]{Output: out, Raw: raw}, err
}
