package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kaptinlin/jsonrepair"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrClientNotInitialised is returned when attempting to call the API without a configured client.
	ErrClientNotInitialised = errors.New("openai client not initialised")
	// ErrEmptySymptoms is returned when there is nothing to analyse.
	ErrEmptySymptoms = errors.New("symptoms cannot be empty")
	// ErrNoResponse is returned when the model produced no text.
	ErrNoResponse = errors.New("no response from AI")
	// ErrInvalidResponse is returned when the model text is not an analysis object.
	ErrInvalidResponse = errors.New("invalid response from AI")
)

// UpstreamError carries a non-2xx answer from the AI API.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("openai: status %d: %s", e.StatusCode, e.Body)
}

// Severity grades how urgently symptoms need attention.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Analysis is the structured assessment returned for a symptom description.
type Analysis struct {
	Severity        Severity `json:"severity"`
	Analysis        string   `json:"analysis"`
	Recommendations []string `json:"recommendations"`
	IsEmergency     bool     `json:"isEmergency"`
}

// Client wraps the OpenAI SDK for symptom analysis.
type Client struct {
	client  *openai.Client
	model   openai.ChatModel
	timeout time.Duration
}

// New returns a Client. Without an apiKey the client is inert and every call
// returns ErrClientNotInitialised.
func New(apiKey, model string, opts ...option.RequestOption) *Client {
	if apiKey == "" {
		return &Client{}
	}
	chatModel := openai.ChatModel(model)
	if chatModel == "" {
		chatModel = openai.ChatModelGPT4oMini
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := openai.NewClient(opts...)
	return &Client{
		client:  &client,
		model:   chatModel,
		timeout: 15 * time.Second,
	}
}

// Enabled reports whether an API key was configured.
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

const symptomPrompt = `You are a medical AI assistant. Analyze the following symptoms and provide a health assessment.

SYMPTOMS: %q

Please respond with a JSON object in this exact format:
{
    "severity": "low|medium|high",
    "analysis": "Detailed analysis of the symptoms",
    "recommendations": ["recommendation1", "recommendation2", "recommendation3"],
    "isEmergency": true/false
}

Guidelines:
- Use "low" for minor symptoms that can be managed at home
- Use "medium" for symptoms that need medical attention within 24-48 hours
- Use "high" for serious symptoms requiring immediate medical attention
- Set isEmergency to true only for life-threatening conditions
- Provide 3-4 practical recommendations
- Be professional but accessible in your analysis
- Always emphasize that this is not a substitute for professional medical advice

IMPORTANT: Respond ONLY with the JSON object, no additional text.`

// AnalyzeSymptoms asks the model to assess free-text symptoms.
func (c *Client) AnalyzeSymptoms(ctx context.Context, symptoms string) (Analysis, error) {
	symptoms = strings.TrimSpace(symptoms)
	if symptoms == "" {
		return Analysis{}, ErrEmptySymptoms
	}
	if !c.Enabled() {
		return Analysis{}, ErrClientNotInitialised
	}

	req := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(fmt.Sprintf(symptomPrompt, symptoms)),
					},
				},
			},
		},
		Temperature:         openai.Float(0.3),
		TopP:                openai.Float(0.95),
		MaxCompletionTokens: openai.Int(1024),
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return Analysis{}, &UpstreamError{StatusCode: apiErr.StatusCode, Body: apiErr.RawJSON()}
		}
		return Analysis{}, fmt.Errorf("openai: analyze symptoms: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Analysis{}, ErrNoResponse
	}
	return parseAnalysis(resp.Choices[0].Message.Content)
}

// parseAnalysis turns model text into an Analysis. Markdown fences are
// stripped and slightly malformed JSON is repaired before decoding.
func parseAnalysis(text string) (Analysis, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(text, "```json", ""), "```", ""))
	if cleaned == "" {
		return Analysis{}, ErrNoResponse
	}

	var result Analysis
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(cleaned)
		if repairErr != nil {
			return Analysis{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		result = Analysis{}
		if err := json.Unmarshal([]byte(repaired), &result); err != nil {
			return Analysis{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}

	switch Severity(strings.ToLower(string(result.Severity))) {
	case SeverityLow:
		result.Severity = SeverityLow
	case SeverityHigh:
		result.Severity = SeverityHigh
	default:
		result.Severity = SeverityMedium
	}
	if result.Recommendations == nil {
		result.Recommendations = []string{}
	}
	return result, nil
}
