package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/luvnft/Palm/internal/domain/entities"
	"github.com/luvnft/Palm/internal/domain/services"
	"github.com/luvnft/Palm/internal/domain/valueobjects"
)

// ReadingSettings is fixed at startup and shared by every request.
type ReadingSettings struct {
	Model   string
	Prompt  string
	Timeout time.Duration // 0 = no deadline
}

type ReadingUseCase struct {
	domainService  *services.ReadingDomainService
	settings       ReadingSettings
	parameters     *valueobjects.GenerationParameters
	safetySettings []valueobjects.SafetySetting
}

func NewReadingUseCase(domainService *services.ReadingDomainService, settings ReadingSettings) *ReadingUseCase {
	return &ReadingUseCase{
		domainService:  domainService,
		settings:       settings,
		parameters:     valueobjects.DefaultGenerationParameters(),
		safetySettings: valueobjects.DefaultSafetySettings(),
	}
}

type ReadingInput struct {
	ImageData []byte
	MimeType  string
}

type ReadingOutput struct {
	RequestID entities.ReadingRequestID
	Text      string
}

func (uc *ReadingUseCase) Execute(ctx context.Context, input ReadingInput) (*ReadingOutput, error) {
	image, err := valueobjects.NewImageData(input.ImageData, input.MimeType)
	if err != nil {
		return nil, fmt.Errorf("invalid image: %w", err)
	}

	request, err := entities.NewReadingRequest(
		uc.settings.Model,
		uc.settings.Prompt,
		image,
		uc.parameters,
		uc.safetySettings,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	slog.Info("Execute", "requestID", request.ID(), "model", request.Model(),
		"mimeType", image.MimeType(), "format", image.Format(), "size", image.Size())

	if uc.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.settings.Timeout)
		defer cancel()
	}

	result, err := uc.domainService.ProcessReading(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", request.ID(), err)
	}

	return &ReadingOutput{
		RequestID: request.ID(),
		Text:      result.Text(),
	}, nil
}
