// Package prompt produces the text of the evening mindset prompt.
package prompt

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const systemPrompt = `You write a single short journaling prompt for an evening mindset check-in in a fitness and habit tracking app. One sentence, warm, reflective, no emojis, no preamble.`

var fallbackPrompts = []string{
	"What is one thing you did today that your future self will thank you for?",
	"Which habit felt easiest today, and why?",
	"What drained your energy today, and what restored it?",
	"Name one small win from today that you almost overlooked.",
	"If tomorrow had one priority only, what would it be?",
	"What did your body tell you today that you listened to?",
	"What would make tomorrow feel 1% better than today?",
}

type Generator struct {
	client *openai.Client
	model  string
}

// New returns a generator. With an empty API key it only serves the
// static rotation.
func New(apiKey, baseURL, model string) *Generator {
	if apiKey == "" {
		return &Generator{}
	}
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Generator{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Evening returns tonight's prompt text. Generation is best-effort: on
// any model failure a static prompt is chosen by calendar day, so the
// sweep never blocks on the model.
func (g *Generator) Evening(ctx context.Context, now time.Time) string {
	if g.client == nil {
		return fallback(now)
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Write tonight's journal prompt."},
		},
		MaxTokens: 80,
	})
	if err != nil {
		log.Printf("[prompt] generation failed, using fallback: %v", err)
		return fallback(now)
	}
	if len(resp.Choices) == 0 {
		return fallback(now)
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return fallback(now)
	}
	return text
}

func fallback(now time.Time) string {
	return fallbackPrompts[now.YearDay()%len(fallbackPrompts)]
}
