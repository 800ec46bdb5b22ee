package openai

import (
	"context"
	"errors"
	"sync"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sharvik/CritiqueAPI/internal/config"
	"github.com/sharvik/CritiqueAPI/internal/critique/analyzer"
	"github.com/sharvik/CritiqueAPI/internal/customHttpClient"
	"github.com/sharvik/CritiqueAPI/pkg/logger_i"
)

type llmClient struct {
	client    sdk.Client
	modelName string
}

var logger *logger_i.Logger
var openaiClient *llmClient
var once sync.Once

func GetOpenAIClient(modelName string, apikey string) analyzer.TextGenerator {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_openai")
		if apikey == "" {
			logger.Error("OpenAI API key is not set")
			return
		}
		c := sdk.NewClient(
			option.WithAPIKey(apikey),
			option.WithHTTPClient(customHttpClient.Pooled()),
		)
		openaiClient = &llmClient{client: c, modelName: modelName}
		logger.Debug("OpenAI client created", "model", modelName)
		logger.Info("OpenAI client created")
	})

	if openaiClient == nil {
		return nil
	}
	return &llmClient{client: openaiClient.client, modelName: openaiClient.modelName}
}

func (c *llmClient) Generate(ctx context.Context, prompt string) (string, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	resp, err := c.client.Chat.Completions.New(ctx, sdk.ChatCompletionNewParams{
		Model: sdk.ChatModel(c.modelName),
		Messages: []sdk.ChatCompletionMessageParamUnion{
			sdk.SystemMessage(config.ModelContext),
			sdk.UserMessage(prompt),
		},
	})
	if err != nil {
		log.Error("Error generating content from OpenAI", "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("empty completion from openai")
	}
	return resp.Choices[0].Message.Content, nil
}
