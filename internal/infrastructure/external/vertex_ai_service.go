package external

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cloud.google.com/go/vertexai/genai"

	"github.com/luvnft/Palm/internal/domain/entities"
	"github.com/luvnft/Palm/internal/domain/repositories"
	"github.com/luvnft/Palm/internal/domain/valueobjects"
)

// VertexAIService calls Gemini on Vertex AI through the cloud.google.com/go/vertexai SDK.
type VertexAIService struct {
	pool repositories.VertexAIClientPool
}

func NewVertexAIService(pool repositories.VertexAIClientPool) repositories.ImageTextAIService {
	return &VertexAIService{
		pool: pool,
	}
}

func (s *VertexAIService) DescribeImage(ctx context.Context, request *entities.ReadingRequest) (*entities.TextResult, error) {
	client, err := s.pool.GetVertexAIClient(ctx)
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(request.Model())
	configureVertexModel(model, request)

	image := request.Image()
	prompt := []genai.Part{
		genai.Text(request.Prompt()),
		genai.Blob{MIMEType: image.MimeType(), Data: image.Data()},
	}

	resp, err := model.GenerateContent(ctx, prompt...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	return textFromVertexResponse(resp)
}

func configureVertexModel(model *genai.GenerativeModel, request *entities.ReadingRequest) {
	params := request.Parameters()

	model.SetTemperature(params.Temperature())
	model.SetTopK(params.TopK())
	model.SetTopP(params.TopP())
	model.SetMaxOutputTokens(params.MaxOutputTokens())

	model.SafetySettings = nil
	for _, setting := range request.SafetySettings() {
		model.SafetySettings = append(model.SafetySettings, &genai.SafetySetting{
			Category:  vertexHarmCategory(setting.Category),
			Threshold: vertexHarmBlockThreshold(setting.Threshold),
		})
	}
}

func textFromVertexResponse(resp *genai.GenerateContentResponse) (*entities.TextResult, error) {
	if resp == nil {
		return nil, ErrNoCandidates
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		return nil, fmt.Errorf("%w: %s", ErrPromptBlocked, resp.PromptFeedback.BlockReason)
	}

	if len(resp.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	candidate := resp.Candidates[0]
	slog.Info("Vertex AI response",
		"candidatesCount", len(resp.Candidates),
		"finishReason", candidate.FinishReason.String())

	switch candidate.FinishReason {
	case genai.FinishReasonSafety, genai.FinishReasonRecitation:
		return nil, fmt.Errorf("%w: %s", ErrCandidateBlocked, candidate.FinishReason)
	}

	var sb strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}

	return entities.NewTextResult(sb.String(), candidate.FinishReason.String()), nil
}

func vertexHarmCategory(category valueobjects.HarmCategory) genai.HarmCategory {
	switch category {
	case valueobjects.HarmCategoryHarassment:
		return genai.HarmCategoryHarassment
	case valueobjects.HarmCategoryHateSpeech:
		return genai.HarmCategoryHateSpeech
	case valueobjects.HarmCategorySexuallyExplicit:
		return genai.HarmCategorySexuallyExplicit
	case valueobjects.HarmCategoryDangerousContent:
		return genai.HarmCategoryDangerousContent
	default:
		return genai.HarmCategoryUnspecified
	}
}

func vertexHarmBlockThreshold(threshold valueobjects.HarmBlockThreshold) genai.HarmBlockThreshold {
	switch threshold {
	case valueobjects.BlockLowAndAbove:
		return genai.HarmBlockThresholdBlockLowAndAbove
	case valueobjects.BlockMediumAndAbove:
		return genai.HarmBlockThresholdBlockMediumAndAbove
	case valueobjects.BlockOnlyHigh:
		return genai.HarmBlockThresholdBlockOnlyHigh
	case valueobjects.BlockNone:
		return genai.HarmBlockThresholdBlockNone
	default:
		return genai.HarmBlockThresholdUnspecified
	}
}

func (s *VertexAIService) Close() error {
	return s.pool.Close()
}
