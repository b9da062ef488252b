package valueobjects

import (
	"fmt"
)

type HarmCategory string
type HarmBlockThreshold string

// Values use the API's wire names so every backend can pass them through.
const (
	HarmCategoryHarassment       HarmCategory = "HARM_CATEGORY_HARASSMENT"
	HarmCategoryHateSpeech       HarmCategory = "HARM_CATEGORY_HATE_SPEECH"
	HarmCategorySexuallyExplicit HarmCategory = "HARM_CATEGORY_SEXUALLY_EXPLICIT"
	HarmCategoryDangerousContent HarmCategory = "HARM_CATEGORY_DANGEROUS_CONTENT"
)

const (
	BlockLowAndAbove    HarmBlockThreshold = "BLOCK_LOW_AND_ABOVE"
	BlockMediumAndAbove HarmBlockThreshold = "BLOCK_MEDIUM_AND_ABOVE"
	BlockOnlyHigh       HarmBlockThreshold = "BLOCK_ONLY_HIGH"
	BlockNone           HarmBlockThreshold = "BLOCK_NONE"
)

type SafetySetting struct {
	Category  HarmCategory
	Threshold HarmBlockThreshold
}

type GenerationParameters struct {
	temperature     float32
	topK            int32
	topP            float32
	maxOutputTokens int32
}

func NewGenerationParameters(
	temperature float32,
	topK int32,
	topP float32,
	maxOutputTokens int32,
) (*GenerationParameters, error) {
	if temperature < 0 || temperature > 2 {
		return nil, fmt.Errorf("temperature must be between 0 and 2, got %v", temperature)
	}

	if topK < 1 {
		return nil, fmt.Errorf("topK must be positive, got %d", topK)
	}

	if topP <= 0 || topP > 1 {
		return nil, fmt.Errorf("topP must be in (0, 1], got %v", topP)
	}

	if maxOutputTokens < 1 {
		return nil, fmt.Errorf("maxOutputTokens must be positive, got %d", maxOutputTokens)
	}

	return &GenerationParameters{
		temperature:     temperature,
		topK:            topK,
		topP:            topP,
		maxOutputTokens: maxOutputTokens,
	}, nil
}

// DefaultGenerationParameters is the sampling setup used for every reading.
func DefaultGenerationParameters() *GenerationParameters {
	params, _ := NewGenerationParameters(0.4, 32, 1, 4096)
	return params
}

// DefaultSafetySettings returns a fresh copy so callers cannot alter the shared policy.
func DefaultSafetySettings() []SafetySetting {
	return []SafetySetting{
		{Category: HarmCategoryHarassment, Threshold: BlockMediumAndAbove},
		{Category: HarmCategoryHateSpeech, Threshold: BlockMediumAndAbove},
		{Category: HarmCategorySexuallyExplicit, Threshold: BlockMediumAndAbove},
		{Category: HarmCategoryDangerousContent, Threshold: BlockMediumAndAbove},
	}
}

func (p *GenerationParameters) Temperature() float32 {
	return p.temperature
}

func (p *GenerationParameters) TopK() int32 {
	return p.topK
}

func (p *GenerationParameters) TopP() float32 {
	return p.topP
}

func (p *GenerationParameters) MaxOutputTokens() int32 {
	return p.maxOutputTokens
}
