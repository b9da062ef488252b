package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/luvnft/Palm/internal/domain/entities"
	"github.com/luvnft/Palm/internal/domain/repositories"
)

var ErrServiceBusy = errors.New("service temporarily unavailable due to high demand")

type ReadingDomainService struct {
	aiService repositories.ImageTextAIService
}

func NewReadingDomainService(aiService repositories.ImageTextAIService) *ReadingDomainService {
	return &ReadingDomainService{
		aiService: aiService,
	}
}

func (s *ReadingDomainService) ProcessReading(ctx context.Context, request *entities.ReadingRequest) (*entities.TextResult, error) {
	if err := s.validateRequest(request); err != nil {
		return nil, fmt.Errorf("request validation failed: %w", err)
	}

	result, err := s.aiService.DescribeImage(ctx, request)
	if err != nil {
		if s.isQuotaError(err) {
			return nil, fmt.Errorf("%w: %w", ErrServiceBusy, err)
		}
		return nil, fmt.Errorf("reading generation failed: %w", err)
	}

	if result == nil {
		return nil, fmt.Errorf("no result returned")
	}

	return result, nil
}

func (s *ReadingDomainService) validateRequest(request *entities.ReadingRequest) error {
	if request == nil {
		return fmt.Errorf("request is required")
	}

	if request.Image() == nil {
		return fmt.Errorf("image is required")
	}

	if request.Prompt() == "" {
		return fmt.Errorf("prompt is required")
	}

	return nil
}

func (s *ReadingDomainService) isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "quota exceeded") ||
		strings.Contains(errStr, "resourceexhausted") ||
		strings.Contains(errStr, "resource_exhausted") ||
		strings.Contains(errStr, "error 429")
}
