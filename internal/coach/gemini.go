package coach

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-3-flash-preview"

// Completer produces an assistant reply from a conversation and a system
// instruction.
type Completer interface {
	Complete(ctx context.Context, history []Message, systemInstruction string) (string, error)
}

// Gemini is a Completer backed by Google's Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}

	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Complete(ctx context.Context, history []Message, systemInstruction string) (string, error) {
	contents := conversationContents(history)

	var config *genai.GenerateContentConfig
	if systemInstruction != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: systemInstruction}},
			},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return text, nil
}

// conversationContents flattens the conversation into user-role contents.
// Prior assistant replies are folded in as quoted user turns so the model
// sees its own history without a second role.
func conversationContents(history []Message) []*genai.Content {
	var contents []*genai.Content

	for _, msg := range history {
		text := msg.Content
		if text == "" {
			continue
		}

		if msg.Role == RoleAssistant {
			text = fmt.Sprintf("[Previous Assistant Response]: %s", text)
		}

		contents = append(contents, &genai.Content{
			Role:  "user",
			Parts: []*genai.Part{{Text: text}},
		})
	}

	return contents
}
