package service

import (
	"context"

	"github.com/openai/openai-go"

	"bounce/model"
	"bounce/platform"
)

var logger = platform.Logger

// FallbackMessage is returned to the user whenever the completion API
// fails or answers with an unusable shape. The conversation keeps
// flowing instead of surfacing provider errors.
const FallbackMessage = "Sorry, we are unable to process your request at this time. The OpenAI API is currently unavailable. Please try again later."

// Completions produces the assistant reply for a conversation.
type Completions interface {
	Complete(ctx context.Context, conv model.Conversation) string
}

// OpenAICompletions calls the chat completion API with a configured model.
type OpenAICompletions struct {
	client *openai.Client
	model  string
}

func NewOpenAICompletions(client *openai.Client, model string) *OpenAICompletions {
	return &OpenAICompletions{client: client, model: model}
}

// Complete sends the ordered turn list and extracts the assistant text.
// Any failure yields FallbackMessage.
func (s *OpenAICompletions) Complete(ctx context.Context, conv model.Conversation) string {
	params := openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{}),
		Model:    openai.F(s.model),
	}
	for _, turn := range conv {
		var content any = turn.Content
		params.Messages.Value = append(params.Messages.Value, openai.ChatCompletionMessageParam{
			Role:    openai.F(openai.ChatCompletionMessageParamRole(turn.Role)),
			Content: openai.F(content),
		})
	}

	resp, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		logger.Warnf("[completion] chat completion error: %s", err)
		return FallbackMessage
	}
	if len(resp.Choices) == 0 {
		logger.Warnf("[completion] chat completion returned no choices")
		return FallbackMessage
	}
	return resp.Choices[0].Message.Content
}
