package service

import (
	"context"
	"fmt"
	"time"

	"bookhub/internal/cache"
)

// TextGenerator is the inference offload; satisfied by llm.WorkerPool.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type LLMService interface {
	SummarizeBook(ctx context.Context, title, author string) (string, error)
	SummarizeContent(ctx context.Context, content string) (string, error)
	Recommend(ctx context.Context, prompt string) (string, error)
}

type llmService struct {
	generator TextGenerator
	cache     *cache.GenerationCache
	timeout   time.Duration
}

// NewLLMService wraps the worker pool with prompt building, a per-call
// deadline and an optional generation cache (nil disables caching).
func NewLLMService(generator TextGenerator, genCache *cache.GenerationCache, timeout time.Duration) LLMService {
	return &llmService{
		generator: generator,
		cache:     genCache,
		timeout:   timeout,
	}
}

func (s *llmService) SummarizeBook(ctx context.Context, title, author string) (string, error) {
	prompt := fmt.Sprintf("Summarize book title %s by %s in 150 words.", title, author)
	return s.generate(ctx, "book-summary", prompt)
}

func (s *llmService) SummarizeContent(ctx context.Context, content string) (string, error) {
	prompt := fmt.Sprintf("Summarize the following content:\n%s", content)
	return s.generate(ctx, "summary", prompt)
}

func (s *llmService) Recommend(ctx context.Context, prompt string) (string, error) {
	prompt = fmt.Sprintf("Recommend 5 books based on: %s", prompt)
	return s.generate(ctx, "recommend", prompt)
}

func (s *llmService) generate(ctx context.Context, kind, prompt string) (string, error) {
	if out, ok := s.cache.Get(ctx, kind, prompt); ok {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate %s: %w", kind, err)
	}

	s.cache.Set(ctx, kind, prompt, out)
	return out, nil
}
