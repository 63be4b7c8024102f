package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mayank0365/SlotSwapper/internal/model"
	pkgerrors "github.com/mayank0365/SlotSwapper/pkg/errors"
)

// EventRepository 时间段数据访问接口
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	// GetByIDsForUpdate 按 event_id 顺序对多行加 FOR UPDATE 锁
	// 必须在 Repository.Transaction 提供的事务连接上调用
	GetByIDsForUpdate(ctx context.Context, ids []string) ([]model.Event, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Event, error)
	ListSwappable(ctx context.Context, excludeOwnerID string) ([]model.Event, error)
	// Update 乐观锁更新，版本不匹配返回 ErrOptimisticLock
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo 创建 EventRepository 实例
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("event_id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) GetByIDsForUpdate(ctx context.Context, ids []string) ([]model.Event, error) {
	var events []model.Event
	if len(ids) == 0 {
		return events, nil
	}
	// 固定加锁顺序，避免两个事务交叉锁同一对时间段时死锁
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("event_id IN ?", ids).
		Order("event_id ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("start_time ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepo) ListSwappable(ctx context.Context, excludeOwnerID string) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("status = ? AND owner_id <> ?", model.EventStatusSwappable, excludeOwnerID).
		Order("start_time ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepo) Update(ctx context.Context, event *model.Event) error {
	oldVersion := event.Version
	result := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("event_id = ? AND version = ?", event.EventID, oldVersion).
		Updates(map[string]interface{}{
			"title":      event.Title,
			"start_time": event.StartTime,
			"end_time":   event.EndTime,
			"status":     event.Status,
			"owner_id":   event.OwnerID,
			"updated_by": event.UpdatedBy,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	event.Version = oldVersion + 1
	return nil
}

// Delete 软删除，换班申请中的引用保留，读取时视为"已删除"
func (r *eventRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("event_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
