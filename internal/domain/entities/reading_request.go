package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/luvnft/Palm/internal/domain/valueobjects"
)

type ReadingRequestID string

// ReadingRequest is one instruction+image call to the model. It lives for a single upload.
type ReadingRequest struct {
	id             ReadingRequestID
	model          string
	prompt         string
	image          *valueobjects.ImageData
	parameters     *valueobjects.GenerationParameters
	safetySettings []valueobjects.SafetySetting
	createdAt      time.Time
}

func NewReadingRequest(
	model string,
	prompt string,
	image *valueobjects.ImageData,
	parameters *valueobjects.GenerationParameters,
	safetySettings []valueobjects.SafetySetting,
) (*ReadingRequest, error) {
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	if prompt == "" {
		return nil, fmt.Errorf("prompt is required")
	}

	if image == nil {
		return nil, fmt.Errorf("image is required")
	}

	if parameters == nil {
		parameters = valueobjects.DefaultGenerationParameters()
	}

	if safetySettings == nil {
		safetySettings = valueobjects.DefaultSafetySettings()
	}

	return &ReadingRequest{
		id:             ReadingRequestID(uuid.NewString()),
		model:          model,
		prompt:         prompt,
		image:          image,
		parameters:     parameters,
		safetySettings: safetySettings,
		createdAt:      time.Now(),
	}, nil
}

func (r *ReadingRequest) ID() ReadingRequestID {
	return r.id
}

func (r *ReadingRequest) Model() string {
	return r.model
}

func (r *ReadingRequest) Prompt() string {
	return r.prompt
}

func (r *ReadingRequest) Image() *valueobjects.ImageData {
	return r.image
}

func (r *ReadingRequest) Parameters() *valueobjects.GenerationParameters {
	return r.parameters
}

func (r *ReadingRequest) SafetySettings() []valueobjects.SafetySetting {
	return r.safetySettings
}

func (r *ReadingRequest) CreatedAt() time.Time {
	return r.createdAt
}
