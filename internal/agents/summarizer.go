package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/providers/llm"
)

type Summarizer interface {
	Summarize(ctx context.Context, query, toolResult string) (string, error)
}

// LLMSummarizer turns raw tool output into the final answer.
type LLMSummarizer struct {
	Client      llm.Client
	Temperature float32
}

func (s *LLMSummarizer) Summarize(ctx context.Context, query, toolResult string) (string, error) {
	out, err := s.Client.Generate(ctx, llm.Request{
		Prompt:      buildSummaryPrompt(query, toolResult),
		Temperature: s.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func buildSummaryPrompt(query, toolResult string) string {
	return fmt.Sprintf("You are a golf research assistant. Here is the tool result:\n\n%s\n\n"+
		"Please summarize the answer as a helpful response to the user query: \"%s\"", toolResult, query)
}
