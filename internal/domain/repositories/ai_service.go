package repositories

import (
	"context"

	"github.com/luvnft/Palm/internal/domain/entities"
)

// 画像+指示文からテキストを生成するサービス
type ImageTextAIService interface {
	DescribeImage(ctx context.Context, request *entities.ReadingRequest) (*entities.TextResult, error)

	Close() error
}
