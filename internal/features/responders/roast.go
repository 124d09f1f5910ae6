// Package responders — roast.go builds the /roastme prompt and calls
// the OpenAI chat API.
package responders

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const roastFallback = "Sorry, I couldn't roast you this time. The roast machine needs to cool down."

// ChatMessage is one channel message fed into the roast prompt.
type ChatMessage struct {
	AuthorID string
	Username string
	Content  string
}

// Roaster generates roasts from recent channel history.
type Roaster struct {
	client *openai.Client
	model  string
}

// NewRoaster creates the roast generator. A nil client disables it.
func NewRoaster(apiKey, model string) *Roaster {
	if apiKey == "" {
		return &Roaster{model: model}
	}
	return &Roaster{client: openai.NewClient(apiKey), model: model}
}

// Enabled reports whether an API key was configured.
func (r *Roaster) Enabled() bool {
	return r.client != nil
}

// Roast generates a playful roast of targetUserID from the history.
func (r *Roaster) Roast(ctx context.Context, history []ChatMessage, targetUserID string) (string, error) {
	if r.client == nil {
		return "", fmt.Errorf("roast generator is not configured")
	}

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: RoastPrompt(FormatHistory(history, targetUserID)),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate roast: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("roast completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// FormatHistory renders the chat history oldest-first, with the roast
// target marked as THE_USER.
func FormatHistory(history []ChatMessage, targetUserID string) string {
	lines := make([]string, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		msg := history[i]
		name := msg.Username
		if msg.AuthorID == targetUserID {
			name = "THE_USER"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", name, msg.Content))
	}
	return strings.Join(lines, "\n")
}

// RoastPrompt wraps the chat context in the roast instructions.
func RoastPrompt(messageContext string) string {
	return fmt.Sprintf(`You are a comedy roast bot. Your job is to playfully roast the user marked as THE_USER based on their messages in this chat history:

%s

Create a single paragraph roast that playfully teases THE_USER about their conversation style, vocabulary choices, or topics they've discussed.
The roast should be funny, clever, and unexpected, but not mean-spirited or genuinely hurtful.
Keep it under 250 characters.
Do not use any disclaimers or explanations - just deliver the roast directly.`, messageContext)
}
