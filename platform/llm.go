package platform

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"bounce/config"
)

var (
	LLMClient *openai.Client
)

func InitLLMClient(cfg *config.Config) {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
	}
	if cfg.LLMBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.LLMBaseURL))
	}
	LLMClient = openai.NewClient(opts...)
}
