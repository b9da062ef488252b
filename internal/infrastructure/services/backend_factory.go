package services

import (
	"fmt"
	"net/http"

	"github.com/luvnft/Palm/internal/config"
	"github.com/luvnft/Palm/internal/domain/repositories"
	"github.com/luvnft/Palm/internal/infrastructure/external"
)

// NewImageTextAIService picks the inference backend named in cfg.
// SDK clients are created on first use, so no network call happens here.
func NewImageTextAIService(cfg *config.Config) (repositories.ImageTextAIService, error) {
	pool := NewClientPoolService(&repositories.AIClientConfig{
		APIKey:    cfg.APIKey,
		ProjectID: cfg.ProjectID,
		Location:  cfg.Location,
	})

	switch cfg.Backend {
	case config.BackendGemini:
		return external.NewGeminiAIService(pool.GenAIPool()), nil
	case config.BackendVertex:
		return external.NewVertexAIService(pool.VertexAIPool()), nil
	case config.BackendREST:
		return external.NewRESTAIService(cfg.APIBaseURL, cfg.APIKey, &http.Client{}), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
