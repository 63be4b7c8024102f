package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mayank0365/SlotSwapper/internal/repository"
	pkgerrors "github.com/mayank0365/SlotSwapper/pkg/errors"
	"github.com/mayank0365/SlotSwapper/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth        AuthService
	Event       EventService
	Marketplace MarketplaceService
	Swap        SwapService
	Export      ExportService
}

// TokenBlacklist Token 黑名单存储（Redis 实现见 pkg/redis）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// NewService 创建 Service 聚合
// blacklist 为 nil 时登出与刷新不做黑名单处理
func NewService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(repo, jwtMgr, blacklist, logger),
		Event:       NewEventService(repo, logger),
		Marketplace: NewMarketplaceService(repo, logger),
		Swap:        NewSwapService(repo, logger),
		Export:      NewExportService(repo, logger),
	}
}

// logInternal 仅记录非业务错误，业务错误由 Handler 映射为 4xx
func logInternal(logger *zap.Logger, msg string, err error, fields ...zap.Field) {
	if pkgerrors.KindOf(err) != 0 {
		return
	}
	logger.Error(msg, append(fields, zap.Error(err))...)
}
