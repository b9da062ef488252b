package external

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/luvnft/Palm/internal/domain/entities"
	"github.com/luvnft/Palm/internal/domain/valueobjects"
	"github.com/luvnft/Palm/model"
)

func newTestRequest(t *testing.T, data []byte) *entities.ReadingRequest {
	t.Helper()
	image, err := valueobjects.NewImageData(data, "image/jpeg")
	if err != nil {
		t.Fatalf("Failed to create image data: %v", err)
	}
	request, err := entities.NewReadingRequest("gemini-2.5-flash", "read this palm", image, nil, nil)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	return request
}

func TestRESTAIService_DescribeImage(t *testing.T) {
	var gotPath, gotKey string
	var gotBody model.GenerateContentRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &gotBody); err != nil {
			t.Errorf("server could not decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"a palm"}]},"finishReason":"STOP"}]}`)
	}))
	defer server.Close()

	service := NewRESTAIService(server.URL, "secret", server.Client())
	imageBytes := []byte{0xFF, 0xD8, 0xFF, 0x00}

	result, err := service.DescribeImage(context.Background(), newTestRequest(t, imageBytes))
	if err != nil {
		t.Fatalf("DescribeImage() error = %v", err)
	}

	if result.Text() != "a palm" {
		t.Errorf("Text() = %q, want %q", result.Text(), "a palm")
	}
	if gotPath != "/v1beta/models/gemini-2.5-flash:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "secret" {
		t.Errorf("api key header = %q", gotKey)
	}

	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 2 {
		t.Fatalf("expected one content with two parts, got %+v", gotBody.Contents)
	}
	parts := gotBody.Contents[0].Parts
	if parts[0].Text != "read this palm" || parts[0].InlineData != nil {
		t.Errorf("first part should be the instruction, got %+v", parts[0])
	}
	if parts[1].InlineData == nil {
		t.Fatal("second part should be inline image data")
	}
	if parts[1].InlineData.MimeType != "image/jpeg" {
		t.Errorf("mimeType = %q", parts[1].InlineData.MimeType)
	}
	if parts[1].InlineData.Data != base64.StdEncoding.EncodeToString(imageBytes) {
		t.Errorf("image data is not the base64 of the upload")
	}

	cfg := gotBody.GenerationConfig
	if cfg == nil || cfg.Temperature != 0.4 || cfg.TopK != 32 || cfg.TopP != 1 || cfg.MaxOutputTokens != 4096 {
		t.Errorf("unexpected generation config: %+v", cfg)
	}
	if len(gotBody.SafetySettings) != 4 {
		t.Fatalf("expected 4 safety settings, got %d", len(gotBody.SafetySettings))
	}
	for _, s := range gotBody.SafetySettings {
		if s.Threshold != "BLOCK_MEDIUM_AND_ABOVE" {
			t.Errorf("threshold for %s = %s", s.Category, s.Threshold)
		}
	}
}

func TestRESTAIService_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{
			name:    "invalid key",
			status:  http.StatusBadRequest,
			body:    `{"error":{"code":400,"message":"API key not valid.","status":"INVALID_ARGUMENT"}}`,
			wantMsg: "API key not valid.",
		},
		{
			name:    "non-json error body",
			status:  http.StatusBadGateway,
			body:    `upstream down`,
			wantMsg: "upstream down",
		},
		{
			name:    "blocked prompt",
			status:  http.StatusOK,
			body:    `{"promptFeedback":{"blockReason":"SAFETY"}}`,
			wantErr: ErrPromptBlocked,
		},
		{
			name:    "blocked candidate",
			status:  http.StatusOK,
			body:    `{"candidates":[{"finishReason":"SAFETY"}]}`,
			wantErr: ErrCandidateBlocked,
		},
		{
			name:    "no candidates",
			status:  http.StatusOK,
			body:    `{"candidates":[]}`,
			wantErr: ErrNoCandidates,
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    `{"candidates":`,
			wantMsg: "failed to parse response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer server.Close()

			service := NewRESTAIService(server.URL, "k", server.Client())
			_, err := service.DescribeImage(context.Background(), newTestRequest(t, []byte("img")))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestRESTAIService_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	service := NewRESTAIService(url, "k", nil)
	if _, err := service.DescribeImage(context.Background(), newTestRequest(t, []byte("img"))); err == nil {
		t.Fatal("expected error for unreachable server")
	}
}
