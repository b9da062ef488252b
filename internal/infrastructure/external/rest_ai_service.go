package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/luvnft/Palm/internal/domain/entities"
	"github.com/luvnft/Palm/internal/domain/repositories"
	"github.com/luvnft/Palm/model"
)

// RESTAIService calls generateContent over plain HTTP without an SDK.
type RESTAIService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewRESTAIService(baseURL, apiKey string, httpClient *http.Client) repositories.ImageTextAIService {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &RESTAIService{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

func (s *RESTAIService) DescribeImage(ctx context.Context, request *entities.ReadingRequest) (*entities.TextResult, error) {
	reqBody, err := json.Marshal(buildRESTRequest(request))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", s.baseURL, url.PathEscape(request.Model()))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-goog-api-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr model.ErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("API request failed with status %d (%s): %s",
				resp.StatusCode, apiErr.Error.Status, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed model.GenerateContentResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if parsed.PromptFeedback != nil && parsed.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("%w: %s", ErrPromptBlocked, parsed.PromptFeedback.BlockReason)
	}

	if len(parsed.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	finishReason := parsed.Candidates[0].FinishReason
	slog.Info("REST API response",
		"candidatesCount", len(parsed.Candidates),
		"finishReason", finishReason)

	if blockedFinishReasons[finishReason] {
		return nil, fmt.Errorf("%w: %s", ErrCandidateBlocked, finishReason)
	}

	return entities.NewTextResult(parsed.Text(), finishReason), nil
}

func buildRESTRequest(request *entities.ReadingRequest) *model.GenerateContentRequest {
	image := request.Image()
	params := request.Parameters()

	var safetySettings []model.SafetySetting
	for _, setting := range request.SafetySettings() {
		safetySettings = append(safetySettings, model.SafetySetting{
			Category:  string(setting.Category),
			Threshold: string(setting.Threshold),
		})
	}

	return &model.GenerateContentRequest{
		Contents: []model.Content{
			{
				Role: "user",
				Parts: []model.Part{
					{Text: request.Prompt()},
					{InlineData: &model.InlineData{
						MimeType: image.MimeType(),
						Data:     image.ToBase64(),
					}},
				},
			},
		},
		GenerationConfig: &model.GenerationConfig{
			Temperature:     params.Temperature(),
			TopK:            params.TopK(),
			TopP:            params.TopP(),
			MaxOutputTokens: params.MaxOutputTokens(),
		},
		SafetySettings: safetySettings,
	}
}

func (s *RESTAIService) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}
