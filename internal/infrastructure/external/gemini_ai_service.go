package external

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/luvnft/Palm/internal/domain/entities"
	"github.com/luvnft/Palm/internal/domain/repositories"
)

var (
	ErrPromptBlocked    = errors.New("prompt was blocked")
	ErrCandidateBlocked = errors.New("candidate was blocked")
	ErrNoCandidates     = errors.New("no candidates in response")
)

// finish reasons for which the model withheld its answer
var blockedFinishReasons = map[string]bool{
	"SAFETY":     true,
	"RECITATION": true,
}

// GeminiAIService calls the Gemini API through the google.golang.org/genai SDK.
type GeminiAIService struct {
	pool repositories.GenAIClientPool
}

func NewGeminiAIService(pool repositories.GenAIClientPool) repositories.ImageTextAIService {
	return &GeminiAIService{
		pool: pool,
	}
}

func (s *GeminiAIService) DescribeImage(ctx context.Context, request *entities.ReadingRequest) (*entities.TextResult, error) {
	client, err := s.pool.GetGenAIClient(ctx)
	if err != nil {
		return nil, err
	}

	contents, config := buildGenAIRequest(request)

	resp, err := client.Models.GenerateContent(ctx, request.Model(), contents, config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	return textFromGenAIResponse(resp)
}

// 指示文 → 画像 の順で2パートを組み立てる
func buildGenAIRequest(request *entities.ReadingRequest) ([]*genai.Content, *genai.GenerateContentConfig) {
	image := request.Image()

	parts := []*genai.Part{
		genai.NewPartFromText(request.Prompt()),
		genai.NewPartFromBytes(image.Data(), image.MimeType()),
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	params := request.Parameters()

	var safetySettings []*genai.SafetySetting
	for _, setting := range request.SafetySettings() {
		safetySettings = append(safetySettings, &genai.SafetySetting{
			Category:  genai.HarmCategory(setting.Category),
			Threshold: genai.HarmBlockThreshold(setting.Threshold),
		})
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(params.Temperature()),
		TopK:            genai.Ptr(float32(params.TopK())),
		TopP:            genai.Ptr(params.TopP()),
		MaxOutputTokens: params.MaxOutputTokens(),
		SafetySettings:  safetySettings,
	}

	return contents, config
}

func textFromGenAIResponse(resp *genai.GenerateContentResponse) (*entities.TextResult, error) {
	if resp == nil {
		return nil, ErrNoCandidates
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("%w: %s", ErrPromptBlocked, resp.PromptFeedback.BlockReason)
	}

	if len(resp.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	finishReason := string(resp.Candidates[0].FinishReason)
	slog.Info("Gemini API response",
		"candidatesCount", len(resp.Candidates),
		"finishReason", finishReason)

	if blockedFinishReasons[finishReason] {
		return nil, fmt.Errorf("%w: %s", ErrCandidateBlocked, finishReason)
	}

	return entities.NewTextResult(resp.Text(), finishReason), nil
}

func (s *GeminiAIService) Close() error {
	return s.pool.Close()
}
