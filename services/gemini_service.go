package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Ajmalajjuca/Bite-check/utils"
)

const nutritionPrompt = `You are a precise food nutrition analyzer.
Analyze the food in this image and respond in this exact format:

Food: [Name of dish or items]
Portion estimate: [e.g. medium bowl, 1 slice, etc.]
Calories: [number] kcal
Protein: [number]g
Carbs: [number]g
Fat: [number]g

If multiple items, list them separately.
Be accurate and realistic.`

// NoResultText is returned when the model answers without any text part.
const NoResultText = "No result from AI."

type GeminiService struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type GeminiRequest struct {
	Contents []Content `json:"contents"`
}

type Content struct {
	Parts []Part `json:"parts"`
}

type Part struct {
	InlineData *InlineData `json:"inlineData,omitempty"`
	Text       string      `json:"text,omitempty"`
}

type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type GeminiResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type Candidate struct {
	Content Content `json:"content"`
}

func NewGeminiService(apiKey, baseURL, model string, timeout time.Duration) *GeminiService {
	return &GeminiService{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Analyze sends the photo with the fixed nutrition prompt and returns the
// model's free-form reply.
func (gs *GeminiService) Analyze(ctx context.Context, img *utils.ImageData) (string, error) {
	if gs.apiKey == "" {
		return "", fmt.Errorf("gemini API key missing")
	}

	requestBody := GeminiRequest{
		Contents: []Content{
			{
				Parts: []Part{
					{InlineData: &InlineData{MimeType: img.MimeType, Data: img.Base64}},
					{Text: nutritionPrompt},
				},
			},
		},
	}
	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", gs.baseURL, gs.model, url.QueryEscape(gs.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := gs.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		return "", fmt.Errorf("gemini API error %d: %s", resp.StatusCode, preview)
	}

	var response GeminiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %w", err)
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return NoResultText, nil
	}
	text := response.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return NoResultText, nil
	}
	return text, nil
}
