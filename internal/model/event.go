package model

import "time"

// EventStatus 时间段状态
type EventStatus string

const (
	EventStatusBusy        EventStatus = "BUSY"
	EventStatusSwappable   EventStatus = "SWAPPABLE"
	EventStatusSwapPending EventStatus = "SWAP_PENDING"
)

// Valid 是否为已知状态
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusBusy, EventStatusSwappable, EventStatusSwapPending:
		return true
	}
	return false
}

// OwnerSettable 所有者可直接设置的状态（BUSY / SWAPPABLE）
// SWAP_PENDING 只能由换班流程写入
func (s EventStatus) OwnerSettable() bool {
	return s == EventStatusBusy || s == EventStatusSwappable
}

// Event 日程时间段表 — 对应 events
type Event struct {
	EventID   string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	Title     string      `gorm:"type:varchar(200);not null"                     json:"title"`
	StartTime time.Time   `gorm:"type:timestamptz;not null"                      json:"start_time"`
	EndTime   time.Time   `gorm:"type:timestamptz;not null"                      json:"end_time"`
	Status    EventStatus `gorm:"type:varchar(20);not null;default:'BUSY'"       json:"status"`
	OwnerID   string      `gorm:"type:uuid;not null;index"                       json:"owner_id"`
	VersionedModel

	// 关联
	Owner *User `gorm:"foreignKey:OwnerID;references:UserID" json:"owner,omitempty"`
}

// TableName 指定表名
func (Event) TableName() string { return "events" }

// IsOwnedBy 判断时间段是否属于指定用户
func (e *Event) IsOwnedBy(userID string) bool {
	return e.OwnerID == userID
}
