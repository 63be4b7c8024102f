package model

import "time"

// SwapStatus 换班申请状态
type SwapStatus string

const (
	SwapStatusPending  SwapStatus = "PENDING"
	SwapStatusAccepted SwapStatus = "ACCEPTED"
	SwapStatusRejected SwapStatus = "REJECTED"
)

// IsTerminal ACCEPTED / REJECTED 为终态，不再流转
func (s SwapStatus) IsTerminal() bool {
	return s == SwapStatusAccepted || s == SwapStatusRejected
}

// SwapRequest 换班申请表 — 对应 swap_requests
// MySlot 为发起方提供的时间段，TheirSlot 为目标时间段
type SwapRequest struct {
	SwapRequestID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"swap_request_id"`
	RequesterID   string     `gorm:"type:uuid;not null;index"                       json:"requester_id"`
	ReceiverID    string     `gorm:"type:uuid;not null;index"                       json:"receiver_id"`
	MySlotID      string     `gorm:"type:uuid;not null"                             json:"my_slot_id"`
	TheirSlotID   string     `gorm:"type:uuid;not null"                             json:"their_slot_id"`
	Status        SwapStatus `gorm:"type:varchar(20);not null;default:'PENDING'"    json:"status"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
	CreatedAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
	Version       int        `gorm:"not null;default:1"                             json:"version"`

	// 关联（被引用的时间段可能已软删除，此时为 nil）
	Requester *User  `gorm:"foreignKey:RequesterID;references:UserID"  json:"requester,omitempty"`
	Receiver  *User  `gorm:"foreignKey:ReceiverID;references:UserID"   json:"receiver,omitempty"`
	MySlot    *Event `gorm:"foreignKey:MySlotID;references:EventID"    json:"my_slot,omitempty"`
	TheirSlot *Event `gorm:"foreignKey:TheirSlotID;references:EventID" json:"their_slot,omitempty"`
}

// TableName 指定表名
func (SwapRequest) TableName() string { return "swap_requests" }
