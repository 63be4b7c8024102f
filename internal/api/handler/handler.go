package handler

import (
	"context"

	"github.com/mayank0365/SlotSwapper/internal/service"
)

// Pinger 健康检查依赖（数据库）
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth   *AuthHandler
	Event  *EventHandler
	Swap   *SwapHandler
	Export *ExportHandler
	Health *HealthHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, db Pinger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(svc.Auth),
		Event:  NewEventHandler(svc.Event),
		Swap:   NewSwapHandler(svc.Marketplace, svc.Swap),
		Export: NewExportHandler(svc.Export),
		Health: NewHealthHandler(db),
	}
}
