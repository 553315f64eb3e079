package fetcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const titlePrompt = `You are an helpful assistant. Your task is to write a title for a short video clip, based on the part of the transcript a user gives you.
Answer with the title only, at most ten words, in the language of the transcript. No quotes, no introductory sentences like "Title:".
`

const maxSnippetRunes = 2000

type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(apiKey string) *OpenAI {
	return NewOpenAIWithClient(openai.NewClient(apiKey))
}

func NewOpenAIWithClient(client *openai.Client) *OpenAI {
	return &OpenAI{
		client: client,
		model:  openai.GPT3Dot5Turbo,
	}
}

func (o *OpenAI) FetchTitle(ctx context.Context, snippet string) (string, error) {
	if r := []rune(snippet); len(r) > maxSnippetRunes {
		snippet = string(r[:maxSnippetRunes])
	}

	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: titlePrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: snippet,
				},
			},
		})
	if err != nil {
		return "", fmt.Errorf("failed to fetch title: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("failed to fetch title: no choices in response")
	}

	title := resp.Choices[len(resp.Choices)-1].Message.Content
	return strings.Trim(strings.TrimSpace(title), `"'`), nil
}
