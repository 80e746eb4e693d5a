// Package gemini wraps the Gemini API as a blueprint generator.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/ashureev/draftlab/internal/domain"
)

// Generation parameters, matching the tuning the service was built around.
const (
	temperature     = 0.1
	topK            = 40
	topP            = 0.95
	maxOutputTokens = 8192
)

// Generator produces blueprints from rendered prompts. One attempt per call;
// failures are typed and surfaced, never retried here.
type Generator interface {
	GenerateBlueprint(ctx context.Context, prompt string) (*domain.Blueprint, error)
}

// Client is a Generator backed by the Gemini API.
type Client struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

// Ensure Client implements Generator.
var _ Generator = (*Client)(nil)

// NewClient dials the Gemini API and configures the generation model.
func NewClient(ctx context.Context, apiKey, modelName string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, &AuthError{Err: errors.New("api key is empty")}
	}

	gc, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := gc.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopK(topK)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(maxOutputTokens)
	model.ResponseMIMEType = "text/plain"

	return &Client{client: gc, model: model, timeout: timeout}, nil
}

// Close releases the underlying API connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// GenerateBlueprint sends one prompt to the model, bounded by the configured
// timeout, and parses the reply into a Blueprint. Cancellation of ctx
// propagates to the API call.
func (c *Client) GenerateBlueprint(ctx context.Context, prompt string) (*domain.Blueprint, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, classify(err)
	}

	text, err := completionText(resp)
	if err != nil {
		return nil, err
	}
	return parseBlueprint(text)
}

// completionText extracts the text parts of the first candidate.
func completionText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &ParseError{Reason: "model returned no candidates"}
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if b.Len() == 0 {
		return "", &ParseError{Reason: "model returned no text"}
	}
	return b.String(), nil
}
