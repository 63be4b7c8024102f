package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mayank0365/SlotSwapper/internal/dto"
	"github.com/mayank0365/SlotSwapper/internal/model"
	"github.com/mayank0365/SlotSwapper/internal/repository"
	pkgerrors "github.com/mayank0365/SlotSwapper/pkg/errors"
)

// ── 换班模块业务错误 ──

var (
	ErrSwapSlotNotFound          = pkgerrors.NotFound(13001, "时间段不存在")
	ErrSwapNotSlotOwner          = pkgerrors.Authorization(13002, "只能使用自己的时间段发起换班")
	ErrSwapSameOwner             = pkgerrors.Validation(13003, "不能与自己的时间段交换")
	ErrSwapRequestExists         = pkgerrors.Conflict(13004, "该时间段组合已有待处理的换班申请")
	ErrSwapMySlotNotSwappable    = pkgerrors.Validation(13005, "你的时间段必须处于 SWAPPABLE 状态")
	ErrSwapTheirSlotNotSwappable = pkgerrors.Validation(13006, "目标时间段当前不可交换")
	ErrSwapRequestNotFound       = pkgerrors.NotFound(13007, "换班申请不存在")
	ErrSwapNotReceiver           = pkgerrors.Authorization(13008, "无权响应该换班申请")
	ErrSwapAlreadyResponded      = pkgerrors.Validation(13009, "该换班申请已处理")
	ErrSwapSlotDeleted           = pkgerrors.Validation(13010, "关联的时间段已删除，无法完成交换")
)

// SwapService 换班协商业务接口
//
// 状态机：
//   - 时间段：SWAPPABLE → SWAP_PENDING → BUSY（接受）/ SWAPPABLE（拒绝）
//   - 申请：PENDING → ACCEPTED / REJECTED（终态）
//
// CreateRequest 与 Respond 均在单个事务内完成，涉及的行以 FOR UPDATE 加锁
type SwapService interface {
	CreateRequest(ctx context.Context, requesterID string, req *dto.CreateSwapRequest) (*dto.SwapRequestResponse, error)
	Respond(ctx context.Context, responderID, requestID string, accepted bool) (*dto.SwapRequestResponse, error)
	// ListIncoming 调用者作为接收方的申请，按创建时间倒序
	ListIncoming(ctx context.Context, userID string) ([]dto.SwapRequestResponse, error)
	// ListOutgoing 调用者作为发起方的申请，按创建时间倒序
	ListOutgoing(ctx context.Context, userID string) ([]dto.SwapRequestResponse, error)
}

type swapService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewSwapService 创建 SwapService 实例
func NewSwapService(repo *repository.Repository, logger *zap.Logger) SwapService {
	return &swapService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ═══════════════════════════════════════════════════════════
// CreateRequest — 发起换班
// ═══════════════════════════════════════════════════════════

func (s *swapService) CreateRequest(ctx context.Context, requesterID string, req *dto.CreateSwapRequest) (*dto.SwapRequestResponse, error) {
	var requestID string

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		// 1. 锁定两个时间段
		slots, err := tx.Event.GetByIDsForUpdate(ctx, []string{req.MySlotID, req.TheirSlotID})
		if err != nil {
			return err
		}
		mySlot := findEvent(slots, req.MySlotID)
		theirSlot := findEvent(slots, req.TheirSlotID)
		if mySlot == nil || theirSlot == nil {
			return ErrSwapSlotNotFound
		}

		// 2. 归属校验
		if !mySlot.IsOwnedBy(requesterID) {
			return ErrSwapNotSlotOwner
		}
		if req.MySlotID == req.TheirSlotID || theirSlot.IsOwnedBy(requesterID) {
			return ErrSwapSameOwner
		}

		// 3. 重复申请校验
		exists, err := tx.SwapRequest.ExistsPending(ctx, mySlot.EventID, theirSlot.EventID)
		if err != nil {
			return err
		}
		if exists {
			return ErrSwapRequestExists
		}

		// 4. 状态校验
		if mySlot.Status != model.EventStatusSwappable {
			return ErrSwapMySlotNotSwappable
		}
		if theirSlot.Status != model.EventStatusSwappable {
			return ErrSwapTheirSlotNotSwappable
		}

		// 5. 创建申请并锁定两个时间段
		swapReq := &model.SwapRequest{
			RequesterID: requesterID,
			ReceiverID:  theirSlot.OwnerID,
			MySlotID:    mySlot.EventID,
			TheirSlotID: theirSlot.EventID,
			Status:      model.SwapStatusPending,
		}
		if err := tx.SwapRequest.Create(ctx, swapReq); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return ErrSwapRequestExists
			}
			return err
		}

		for _, slot := range []*model.Event{mySlot, theirSlot} {
			slot.Status = model.EventStatusSwapPending
			slot.UpdatedBy = &requesterID
			if err := tx.Event.Update(ctx, slot); err != nil {
				return err
			}
		}

		requestID = swapReq.SwapRequestID
		return nil
	})
	if err != nil {
		logInternal(s.logger, "发起换班失败", err,
			zap.String("requester_id", requesterID),
			zap.String("my_slot_id", req.MySlotID),
			zap.String("their_slot_id", req.TheirSlotID),
		)
		return nil, err
	}

	s.logger.Info("换班申请已创建",
		zap.String("swap_request_id", requestID),
		zap.String("requester_id", requesterID),
	)
	return s.loadPopulated(ctx, requestID)
}

// ═══════════════════════════════════════════════════════════
// Respond — 接收方接受 / 拒绝
// ═══════════════════════════════════════════════════════════
//
// 接受：两个时间段互换所有者并置为 BUSY
// 拒绝：两个时间段恢复 SWAPPABLE，所有者不变
// 时间段被删除时：接受失败；拒绝仅恢复仍存在的时间段

func (s *swapService) Respond(ctx context.Context, responderID, requestID string, accepted bool) (*dto.SwapRequestResponse, error) {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		swapReq, err := tx.SwapRequest.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSwapRequestNotFound
			}
			return err
		}
		if swapReq.ReceiverID != responderID {
			return ErrSwapNotReceiver
		}
		if swapReq.Status != model.SwapStatusPending {
			return ErrSwapAlreadyResponded
		}

		slots, err := tx.Event.GetByIDsForUpdate(ctx, []string{swapReq.MySlotID, swapReq.TheirSlotID})
		if err != nil {
			return err
		}
		mySlot := findEvent(slots, swapReq.MySlotID)
		theirSlot := findEvent(slots, swapReq.TheirSlotID)

		var touched []*model.Event
		if accepted {
			if mySlot == nil || theirSlot == nil {
				return ErrSwapSlotDeleted
			}
			mySlot.OwnerID, theirSlot.OwnerID = theirSlot.OwnerID, mySlot.OwnerID
			mySlot.Status = model.EventStatusBusy
			theirSlot.Status = model.EventStatusBusy
			touched = []*model.Event{mySlot, theirSlot}
			swapReq.Status = model.SwapStatusAccepted
		} else {
			for _, slot := range []*model.Event{mySlot, theirSlot} {
				if slot == nil {
					continue
				}
				slot.Status = model.EventStatusSwappable
				touched = append(touched, slot)
			}
			swapReq.Status = model.SwapStatusRejected
		}

		for _, slot := range touched {
			slot.UpdatedBy = &responderID
			if err := tx.Event.Update(ctx, slot); err != nil {
				return err
			}
		}

		respondedAt := s.now()
		swapReq.RespondedAt = &respondedAt
		return tx.SwapRequest.Update(ctx, swapReq)
	})
	if err != nil {
		logInternal(s.logger, "响应换班失败", err,
			zap.String("swap_request_id", requestID),
			zap.String("responder_id", responderID),
		)
		return nil, err
	}

	s.logger.Info("换班申请已处理",
		zap.String("swap_request_id", requestID),
		zap.Bool("accepted", accepted),
	)
	return s.loadPopulated(ctx, requestID)
}

// ═══════════════════════════════════════════════════════════
// 列表查询
// ═══════════════════════════════════════════════════════════

func (s *swapService) ListIncoming(ctx context.Context, userID string) ([]dto.SwapRequestResponse, error) {
	reqs, err := s.repo.SwapRequest.ListByReceiver(ctx, userID)
	if err != nil {
		s.logger.Error("查询收到的换班申请失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toSwapRequestResponses(reqs), nil
}

func (s *swapService) ListOutgoing(ctx context.Context, userID string) ([]dto.SwapRequestResponse, error) {
	reqs, err := s.repo.SwapRequest.ListByRequester(ctx, userID)
	if err != nil {
		s.logger.Error("查询发出的换班申请失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toSwapRequestResponses(reqs), nil
}

// loadPopulated 事务提交后重新加载完整关联
func (s *swapService) loadPopulated(ctx context.Context, requestID string) (*dto.SwapRequestResponse, error) {
	full, err := s.repo.SwapRequest.GetByID(ctx, requestID)
	if err != nil {
		s.logger.Error("加载换班申请失败", zap.String("swap_request_id", requestID), zap.Error(err))
		return nil, err
	}
	return toSwapRequestResponse(full), nil
}

func findEvent(events []model.Event, id string) *model.Event {
	for i := range events {
		if events[i].EventID == id {
			return &events[i]
		}
	}
	return nil
}
