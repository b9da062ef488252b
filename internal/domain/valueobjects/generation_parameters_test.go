package valueobjects

import (
	"testing"
)

func TestNewGenerationParameters(t *testing.T) {
	tests := []struct {
		name            string
		temperature     float32
		topK            int32
		topP            float32
		maxOutputTokens int32
		wantErr         bool
	}{
		{
			name:            "valid parameters",
			temperature:     0.4,
			topK:            32,
			topP:            1,
			maxOutputTokens: 4096,
			wantErr:         false,
		},
		{
			name:            "temperature too low",
			temperature:     -0.1,
			topK:            32,
			topP:            1,
			maxOutputTokens: 4096,
			wantErr:         true,
		},
		{
			name:            "temperature too high",
			temperature:     2.5,
			topK:            32,
			topP:            1,
			maxOutputTokens: 4096,
			wantErr:         true,
		},
		{
			name:            "topK zero",
			temperature:     0.4,
			topK:            0,
			topP:            1,
			maxOutputTokens: 4096,
			wantErr:         true,
		},
		{
			name:            "topP zero",
			temperature:     0.4,
			topK:            32,
			topP:            0,
			maxOutputTokens: 4096,
			wantErr:         true,
		},
		{
			name:            "topP above one",
			temperature:     0.4,
			topK:            32,
			topP:            1.1,
			maxOutputTokens: 4096,
			wantErr:         true,
		},
		{
			name:            "maxOutputTokens zero",
			temperature:     0.4,
			topK:            32,
			topP:            1,
			maxOutputTokens: 0,
			wantErr:         true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerationParameters(tt.temperature, tt.topK, tt.topP, tt.maxOutputTokens)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewGenerationParameters() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultGenerationParameters(t *testing.T) {
	params := DefaultGenerationParameters()

	if params.Temperature() != 0.4 {
		t.Errorf("Temperature() = %v, want 0.4", params.Temperature())
	}
	if params.TopK() != 32 {
		t.Errorf("TopK() = %v, want 32", params.TopK())
	}
	if params.TopP() != 1 {
		t.Errorf("TopP() = %v, want 1", params.TopP())
	}
	if params.MaxOutputTokens() != 4096 {
		t.Errorf("MaxOutputTokens() = %v, want 4096", params.MaxOutputTokens())
	}
}

func TestDefaultSafetySettings(t *testing.T) {
	settings := DefaultSafetySettings()

	wantCategories := []HarmCategory{
		HarmCategoryHarassment,
		HarmCategoryHateSpeech,
		HarmCategorySexuallyExplicit,
		HarmCategoryDangerousContent,
	}
	if len(settings) != len(wantCategories) {
		t.Fatalf("expected %d settings, got %d", len(wantCategories), len(settings))
	}
	for i, s := range settings {
		if s.Category != wantCategories[i] {
			t.Errorf("settings[%d].Category = %s, want %s", i, s.Category, wantCategories[i])
		}
		if s.Threshold != BlockMediumAndAbove {
			t.Errorf("settings[%d].Threshold = %s, want %s", i, s.Threshold, BlockMediumAndAbove)
		}
	}

	settings[0].Threshold = BlockNone
	if DefaultSafetySettings()[0].Threshold != BlockMediumAndAbove {
		t.Error("mutating a returned slice must not change the default policy")
	}
}
