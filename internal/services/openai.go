package services

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type openaiGenerator struct {
	client     *openai.Client
	modelName  string
	embedModel openai.EmbeddingModel
}

// NewOpenAIGenerator builds a TextGenerator backed by the OpenAI API.
func NewOpenAIGenerator(apiKey string) TextGenerator {
	return &openaiGenerator{
		client:     openai.NewClient(apiKey),
		modelName:  openai.GPT4TurboPreview,
		embedModel: openai.AdaEmbeddingV2,
	}
}

// GenerateText implements TextGenerator.
func (o *openaiGenerator) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.modelName,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an expert HR interviewer. Always answer with the exact JSON structure requested.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response generated")
	}

	text := resp.Choices[0].Message.Content
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

// GenerateEmbedding implements TextGenerator.
func (o *openaiGenerator) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if len(text) > 40000 {
		text = text[:40000]
	}

	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: o.embedModel,
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return resp.Data[0].Embedding, nil
}
