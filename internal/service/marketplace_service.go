package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/mayank0365/SlotSwapper/internal/dto"
	"github.com/mayank0365/SlotSwapper/internal/repository"
)

// MarketplaceService 可交换时间段市场
type MarketplaceService interface {
	// ListSwappable 返回他人所有 SWAPPABLE 时间段（含所有者信息），按 start_time 升序
	ListSwappable(ctx context.Context, userID string) ([]dto.EventResponse, error)
}

type marketplaceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMarketplaceService 创建 MarketplaceService 实例
func NewMarketplaceService(repo *repository.Repository, logger *zap.Logger) MarketplaceService {
	return &marketplaceService{repo: repo, logger: logger}
}

func (s *marketplaceService) ListSwappable(ctx context.Context, userID string) ([]dto.EventResponse, error) {
	events, err := s.repo.Event.ListSwappable(ctx, userID)
	if err != nil {
		s.logger.Error("查询可交换时间段失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toEventResponses(events), nil
}
