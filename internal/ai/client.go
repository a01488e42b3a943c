// Package ai wraps the hosted Gemini API behind the four calls the portal
// makes: comment moderation, post verification, the assistant chat, and the
// external content feed. Every call is advisory; callers substitute a
// permissive default when an error comes back.
package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type Classification struct {
	IsApproved bool   `json:"isApproved"`
	Reason     string `json:"reason"`
}

type Verification struct {
	IsReliable bool    `json:"isReliable"`
	Score      float64 `json:"score"`
	Reason     string  `json:"reason"`
}

// ContentItem is one externally summarized feed entry.
type ContentItem struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	Type         string `json:"type"`
	Category     string `json:"category"`
	Date         string `json:"date"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("ai: API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("ai: create client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

func (c *Client) ClassifyComment(ctx context.Context, text string) (Classification, error) {
	prompt := fmt.Sprintf("%s\nComment: %s", commentFilterPrompt, text)

	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"isApproved": {Type: genai.TypeBoolean},
					"reason":     {Type: genai.TypeString},
				},
				Required: []string{"isApproved", "reason"},
			},
		})
	if err != nil {
		return Classification{}, fmt.Errorf("ai: classify comment: %w", err)
	}

	return parseClassification([]byte(resp.Text()))
}

func (c *Client) VerifyPost(ctx context.Context, title, content string) (Verification, error) {
	prompt := fmt.Sprintf("%s\nTitle: %s\nBody: %s", verificationPrompt, title, content)

	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"isReliable": {Type: genai.TypeBoolean},
					"score":      {Type: genai.TypeNumber},
					"reason":     {Type: genai.TypeString},
				},
				Required: []string{"isReliable", "score", "reason"},
			},
		})
	if err != nil {
		return Verification{}, fmt.Errorf("ai: verify post: %w", err)
	}

	return parseVerification([]byte(resp.Text()))
}

// Chat returns a free-form assistant reply for a user message.
func (c *Client) Chat(ctx context.Context, userMessage string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(userMessage),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(assistantPrompt, genai.RoleUser),
		})
	if err != nil {
		return "", fmt.Errorf("ai: chat: %w", err)
	}
	return resp.Text(), nil
}

// FetchRecentContent asks the model for a batch of summarized feed items used
// to seed the portal.
func (c *Client) FetchRecentContent(ctx context.Context) ([]ContentItem, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(recentContentPrompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &genai.Schema{
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":        {Type: genai.TypeString},
						"content":      {Type: genai.TypeString},
						"type":         {Type: genai.TypeString},
						"category":     {Type: genai.TypeString},
						"date":         {Type: genai.TypeString},
						"thumbnailUrl": {Type: genai.TypeString},
					},
					Required: []string{"title", "content", "type"},
				},
			},
		})
	if err != nil {
		return nil, fmt.Errorf("ai: fetch recent content: %w", err)
	}

	return parseContentItems([]byte(resp.Text()))
}
