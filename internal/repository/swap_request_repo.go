package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mayank0365/SlotSwapper/internal/model"
	pkgerrors "github.com/mayank0365/SlotSwapper/pkg/errors"
)

// SwapRequestRepository 换班申请数据访问接口
type SwapRequestRepository interface {
	// Create 创建申请；同一时间段对已存在 PENDING 申请时返回 ErrDuplicateKey
	Create(ctx context.Context, req *model.SwapRequest) error
	// GetByID 查询申请并加载双方用户与两个时间段（已删除的时间段为 nil）
	GetByID(ctx context.Context, id string) (*model.SwapRequest, error)
	// GetByIDForUpdate 行级锁查询，必须在事务连接上调用
	GetByIDForUpdate(ctx context.Context, id string) (*model.SwapRequest, error)
	ExistsPending(ctx context.Context, mySlotID, theirSlotID string) (bool, error)
	Update(ctx context.Context, req *model.SwapRequest) error
	ListByReceiver(ctx context.Context, receiverID string) ([]model.SwapRequest, error)
	ListByRequester(ctx context.Context, requesterID string) ([]model.SwapRequest, error)
}

type swapRequestRepo struct {
	db *gorm.DB
}

// NewSwapRequestRepo 创建 SwapRequestRepository 实例
func NewSwapRequestRepo(db *gorm.DB) SwapRequestRepository {
	return &swapRequestRepo{db: db}
}

// populated 预加载展示所需的全部关联
func populated(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Requester").
		Preload("Receiver").
		Preload("MySlot").
		Preload("TheirSlot")
}

func (r *swapRequestRepo) Create(ctx context.Context, req *model.SwapRequest) error {
	return translateWriteError(r.db.WithContext(ctx).Create(req).Error)
}

func (r *swapRequestRepo) GetByID(ctx context.Context, id string) (*model.SwapRequest, error) {
	var req model.SwapRequest
	err := populated(r.db.WithContext(ctx)).
		Where("swap_request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *swapRequestRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.SwapRequest, error) {
	var req model.SwapRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("swap_request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *swapRequestRepo) ExistsPending(ctx context.Context, mySlotID, theirSlotID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SwapRequest{}).
		Where("my_slot_id = ? AND their_slot_id = ? AND status = ?", mySlotID, theirSlotID, model.SwapStatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *swapRequestRepo) Update(ctx context.Context, req *model.SwapRequest) error {
	oldVersion := req.Version
	result := r.db.WithContext(ctx).
		Model(&model.SwapRequest{}).
		Where("swap_request_id = ? AND version = ?", req.SwapRequestID, oldVersion).
		Updates(map[string]interface{}{
			"status":       req.Status,
			"responded_at": req.RespondedAt,
			"version":      oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	req.Version = oldVersion + 1
	return nil
}

func (r *swapRequestRepo) ListByReceiver(ctx context.Context, receiverID string) ([]model.SwapRequest, error) {
	var reqs []model.SwapRequest
	err := populated(r.db.WithContext(ctx)).
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *swapRequestRepo) ListByRequester(ctx context.Context, requesterID string) ([]model.SwapRequest, error) {
	var reqs []model.SwapRequest
	err := populated(r.db.WithContext(ctx)).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}
