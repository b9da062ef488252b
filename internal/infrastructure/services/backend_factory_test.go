package services

import (
	"context"
	"testing"

	"github.com/luvnft/Palm/internal/config"
	"github.com/luvnft/Palm/internal/domain/repositories"
	"github.com/luvnft/Palm/internal/infrastructure/external"
)

func TestNewImageTextAIService(t *testing.T) {
	tests := []struct {
		name    string
		backend config.Backend
		check   func(repositories.ImageTextAIService) bool
		wantErr bool
	}{
		{
			name:    "gemini",
			backend: config.BackendGemini,
			check: func(s repositories.ImageTextAIService) bool {
				_, ok := s.(*external.GeminiAIService)
				return ok
			},
		},
		{
			name:    "rest",
			backend: config.BackendREST,
			check: func(s repositories.ImageTextAIService) bool {
				_, ok := s.(*external.RESTAIService)
				return ok
			},
		},
		{
			name:    "vertex",
			backend: config.BackendVertex,
			check: func(s repositories.ImageTextAIService) bool {
				_, ok := s.(*external.VertexAIService)
				return ok
			},
		},
		{
			name:    "unknown",
			backend: config.Backend("openai"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				Backend:    tt.backend,
				APIKey:     "k",
				APIBaseURL: config.DefaultAPIBaseURL,
				Location:   "us-central1",
			}

			service, err := NewImageTextAIService(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewImageTextAIService() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !tt.check(service) {
				t.Errorf("unexpected service type %T", service)
			}
			if err := service.Close(); err != nil {
				t.Errorf("Close() error = %v", err)
			}
		})
	}
}

func TestGenAIClientPool_ReusesClient(t *testing.T) {
	pool := NewClientPoolService(&repositories.AIClientConfig{APIKey: "test-key"})

	first, err := pool.GenAIPool().GetGenAIClient(context.Background())
	if err != nil {
		t.Fatalf("GetGenAIClient() error = %v", err)
	}
	second, err := pool.GenAIPool().GetGenAIClient(context.Background())
	if err != nil {
		t.Fatalf("GetGenAIClient() error = %v", err)
	}
	if first != second {
		t.Error("expected the same client instance on repeated calls")
	}

	if err := pool.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	third, err := pool.GenAIPool().GetGenAIClient(context.Background())
	if err != nil {
		t.Fatalf("GetGenAIClient() after Close error = %v", err)
	}
	if third == first {
		t.Error("expected a fresh client after Close")
	}
}
