package dto

import "time"

// ── 换班模块 DTO ──

// CreateSwapRequest 发起换班请求
type CreateSwapRequest struct {
	MySlotID    string `json:"mySlotId"    binding:"required"`
	TheirSlotID string `json:"theirSlotId" binding:"required"`
}

// RespondSwapRequest 响应换班请求，accepted 必须显式给出 true/false
type RespondSwapRequest struct {
	Accepted *bool `json:"accepted" binding:"required"`
}

// SwapSlotResponse 换班申请中引用的时间段
// 时间段已被删除时仅返回 id 与 deleted=true
type SwapSlotResponse struct {
	ID        string     `json:"id"`
	Deleted   bool       `json:"deleted"`
	Title     string     `json:"title,omitempty"`
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Status    string     `json:"status,omitempty"`
	OwnerID   string     `json:"ownerId,omitempty"`
}

// SwapRequestResponse 换班申请响应（含双方用户与两个时间段）
type SwapRequestResponse struct {
	ID          string            `json:"id"`
	Status      string            `json:"status"`
	RequesterID string            `json:"requesterId"`
	ReceiverID  string            `json:"receiverId"`
	Requester   *UserBrief        `json:"requester,omitempty"`
	Receiver    *UserBrief        `json:"receiver,omitempty"`
	MySlot      *SwapSlotResponse `json:"mySlot"`
	TheirSlot   *SwapSlotResponse `json:"theirSlot"`
	CreatedAt   time.Time         `json:"createdAt"`
	RespondedAt *time.Time        `json:"respondedAt,omitempty"`
}
