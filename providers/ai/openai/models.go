package openai

import "github.com/leofalp/tangshi/providers/ai"

/*
	CHAT COMPLETIONS API - INPUT
*/

// chatCompletionRequest represents the /v1/chat/completions request format
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"` // system, user, assistant
	Content string `json:"content"`
}

/*
	CHAT COMPLETIONS API - OUTPUT
*/

// chatCompletionResponse represents the /v1/chat/completions response format
type chatCompletionResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   *chatUsage   `json:"usage,omitempty"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"` // stop, length, content_filter
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// requestFromGeneric converts a generic ChatRequest to the chat completions
// wire format. The system prompt becomes the first message.
func requestFromGeneric(request ai.ChatRequest, model string, temperature float64) chatCompletionRequest {
	messages := make([]chatMessage, 0, len(request.Messages)+1)
	if request.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: string(ai.RoleSystem), Content: request.SystemPrompt})
	}
	for _, message := range request.Messages {
		messages = append(messages, chatMessage{Role: string(message.Role), Content: message.Content})
	}

	out := chatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: &temperature,
	}
	if request.Model != "" {
		out.Model = request.Model
	}

	if config := request.GenerationConfig; config != nil {
		if config.Temperature > 0 {
			t := float64(config.Temperature)
			out.Temperature = &t
		}
		if config.MaxTokens > 0 {
			maxTokens := config.MaxTokens
			out.MaxTokens = &maxTokens
		}
	}

	return out
}

// responseToGeneric converts the first choice of a chat completions response
// to a generic ChatResponse.
func responseToGeneric(response chatCompletionResponse) *ai.ChatResponse {
	choice := response.Choices[0]
	out := &ai.ChatResponse{
		Id:           response.ID,
		Model:        response.Model,
		Content:      choice.Message.Content,
		FinishReason: choice.FinishReason,
	}

	if response.Usage != nil {
		out.Usage = &ai.Usage{
			PromptTokens:     response.Usage.PromptTokens,
			CompletionTokens: response.Usage.CompletionTokens,
			TotalTokens:      response.Usage.TotalTokens,
		}
	}

	return out
}
