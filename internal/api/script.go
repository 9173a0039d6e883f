package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samerh/leadline/internal/models"
)

const (
	openAIBaseURL = "https://api.openai.com/v1"
	scriptModel   = "gpt-4o-mini"
	scriptTimeout = 60 * time.Second
)

// ScriptClient generates personalized cold-calling scripts through the
// OpenAI chat completions endpoint.
type ScriptClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	logger     *log.Logger
}

// NewScriptClient creates a script generation client
func NewScriptClient(apiKey string, logger *log.Logger) *ScriptClient {
	return &ScriptClient{
		httpClient: &http.Client{
			Timeout: scriptTimeout,
		},
		apiKey:  apiKey,
		baseURL: openAIBaseURL,
		logger:  logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate produces a cold-calling script for one business. callerService
// describes what the caller sells; searchQuery is the category the user
// searched for.
func (c *ScriptClient) Generate(callerService, searchQuery string, business *models.Business) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not configured")
	}

	reqBody := chatRequest{
		Model: scriptModel,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are an expert cold calling coach who writes scripts that actually get results. Focus on being direct, valuable, and respectful of the prospect's time.",
			},
			{
				Role:    "user",
				Content: buildScriptPrompt(callerService, searchQuery, business),
			},
		},
		MaxTokens:   400,
		Temperature: 0.7,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+"/chat/completions", strings.NewReader(string(bodyBytes)))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	if c.logger != nil {
		c.logger.Info("POST chat completion", "model", scriptModel, "business", business.Name)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Script request failed", "error", err)
		}
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if c.logger != nil {
			c.logger.Error("Script API error", "status", resp.StatusCode, "response", string(body))
		}
		return "", fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("OpenAI error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// buildScriptPrompt constructs the user prompt for one business
func buildScriptPrompt(callerService, searchQuery string, business *models.Business) string {
	businessType := searchQuery
	if len(business.Categories) > 0 {
		businessType = strings.Join(business.Categories, ", ")
	}
	location := business.Address
	if location == "" {
		location = "your area"
	}
	rating := "N/A"
	if business.Rating > 0 {
		rating = fmt.Sprintf("%.1f", business.Rating)
	}

	return fmt.Sprintf(`Generate a direct, effective cold calling script for the following scenario:

CALLER INFORMATION:
- Service provided: %s
- Target business type searched: %s

BUSINESS BEING CALLED:
- Business name: %s
- Business type: %s
- Location: %s
- Rating: %s

REQUIREMENTS:
1. Keep it under 30 seconds when spoken (leave time for receiver to respond)
2. Be extremely direct - get to the point immediately
3. Start with a specific, relevant hook that grabs attention
4. Include ONE clear value proposition - no fluff
5. End with a simple question that requires a yes/no answer
6. Sound like a real person, not a salesperson
7. Address the most urgent pain point that %s businesses face
8. Include natural pauses for the receiver to speak
9. Use conversational language, not corporate speak

FORMAT: Write the script as a natural conversation with [PAUSE] markers where the caller should wait for a response. Make it sound like you're talking to a friend, not pitching a product.`,
		callerService, searchQuery, business.Name, businessType, location, rating, businessType)
}

// FallbackScript returns a fill-in-the-blanks template used when no
// OpenAI key is configured
func FallbackScript(callerService, searchQuery, businessName string) string {
	return fmt.Sprintf(`Hi, this is [Your Name] calling from [Your Company].

I noticed %s is a %s business, and I specialize in %s.

Many %s businesses like yours struggle with [specific pain point]. We've helped similar businesses increase their [specific benefit] by [percentage]%%.

[PAUSE for response]

Would you be interested in a quick 5-minute conversation about how we could help %s achieve similar results?`,
		businessName, searchQuery, callerService, searchQuery, businessName)
}
