package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mayank0365/SlotSwapper/internal/dto"
	"github.com/mayank0365/SlotSwapper/internal/model"
	"github.com/mayank0365/SlotSwapper/internal/repository"
	pkgerrors "github.com/mayank0365/SlotSwapper/pkg/errors"
)

// ── 时间段模块业务错误 ──

var (
	ErrEventNotFound      = pkgerrors.NotFound(12001, "时间段不存在")
	ErrEventForbidden     = pkgerrors.Authorization(12002, "无权操作该时间段")
	ErrEventTitleRequired = pkgerrors.Validation(12003, "标题不能为空")
	ErrEventTimeRequired  = pkgerrors.Validation(12004, "开始时间和结束时间不能为空")
	ErrEventTimeRange     = pkgerrors.Validation(12005, "结束时间必须晚于开始时间")
	ErrEventStatusInvalid = pkgerrors.Validation(12006, "状态只能设置为 BUSY 或 SWAPPABLE")
	ErrEventStatusLocked  = pkgerrors.Validation(12007, "时间段正在换班中，无法修改状态")
	ErrEventSwapPending   = pkgerrors.Conflict(12008, "时间段正在换班中，无法删除")
)

// EventService 个人日程业务接口
type EventService interface {
	Create(ctx context.Context, ownerID string, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	// ListOwn 按 start_time 升序返回调用者的全部时间段
	ListOwn(ctx context.Context, ownerID string) ([]dto.EventResponse, error)
	Update(ctx context.Context, ownerID, eventID string, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	Delete(ctx context.Context, ownerID, eventID string) error
}

type eventService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEventService 创建 EventService 实例
func NewEventService(repo *repository.Repository, logger *zap.Logger) EventService {
	return &eventService{repo: repo, logger: logger}
}

func (s *eventService) Create(ctx context.Context, ownerID string, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if req.StartTime == nil || req.EndTime == nil {
		return nil, ErrEventTimeRequired
	}

	status := model.EventStatusBusy
	if req.Status != nil {
		status = model.EventStatus(*req.Status)
		if !status.OwnerSettable() {
			return nil, ErrEventStatusInvalid
		}
	}

	event := &model.Event{
		Title:     strings.TrimSpace(req.Title),
		StartTime: req.StartTime.UTC(),
		EndTime:   req.EndTime.UTC(),
		Status:    status,
		OwnerID:   ownerID,
	}
	event.CreatedBy = &ownerID
	event.UpdatedBy = &ownerID

	if err := validateEvent(event); err != nil {
		return nil, err
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.logger.Error("创建时间段失败", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, err
	}

	return toEventResponse(event), nil
}

func (s *eventService) ListOwn(ctx context.Context, ownerID string) ([]dto.EventResponse, error) {
	events, err := s.repo.Event.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("查询时间段列表失败", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, err
	}
	return toEventResponses(events), nil
}

func (s *eventService) Update(ctx context.Context, ownerID, eventID string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.getOwned(ctx, ownerID, eventID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = strings.TrimSpace(*req.Title)
	}
	if req.StartTime != nil {
		event.StartTime = req.StartTime.UTC()
	}
	if req.EndTime != nil {
		event.EndTime = req.EndTime.UTC()
	}
	if req.Status != nil {
		next := model.EventStatus(*req.Status)
		if next != event.Status {
			// 换班进行中的时间段状态由换班流程独占
			if event.Status == model.EventStatusSwapPending {
				return nil, ErrEventStatusLocked
			}
			if !next.OwnerSettable() {
				return nil, ErrEventStatusInvalid
			}
			event.Status = next
		}
	}

	// 部分更新后重新校验完整记录
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	event.UpdatedBy = &ownerID
	if err := s.repo.Event.Update(ctx, event); err != nil {
		logInternal(s.logger, "更新时间段失败", err, zap.String("event_id", eventID))
		return nil, err
	}

	return toEventResponse(event), nil
}

func (s *eventService) Delete(ctx context.Context, ownerID, eventID string) error {
	event, err := s.getOwned(ctx, ownerID, eventID)
	if err != nil {
		return err
	}

	if event.Status == model.EventStatusSwapPending {
		return ErrEventSwapPending
	}

	if err := s.repo.Event.Delete(ctx, eventID, ownerID); err != nil {
		s.logger.Error("删除时间段失败", zap.String("event_id", eventID), zap.Error(err))
		return err
	}

	s.logger.Info("时间段已删除", zap.String("event_id", eventID), zap.String("owner_id", ownerID))
	return nil
}

// getOwned 加载时间段并校验归属
func (s *eventService) getOwned(ctx context.Context, ownerID, eventID string) (*model.Event, error) {
	event, err := s.repo.Event.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询时间段失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}
	if !event.IsOwnedBy(ownerID) {
		return nil, ErrEventForbidden
	}
	return event, nil
}

// validateEvent 校验时间段完整性：标题非空、时间齐全、end > start、状态合法
func validateEvent(e *model.Event) error {
	if e.Title == "" {
		return ErrEventTitleRequired
	}
	if e.StartTime.IsZero() || e.EndTime.IsZero() {
		return ErrEventTimeRequired
	}
	if !e.EndTime.After(e.StartTime) {
		return ErrEventTimeRange
	}
	if !e.Status.Valid() {
		return ErrEventStatusInvalid
	}
	return nil
}
