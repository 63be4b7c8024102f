package dto

import "time"

// ── 时间段模块 DTO ──

// CreateEventRequest 创建时间段请求
// Status 可选，缺省为 BUSY
type CreateEventRequest struct {
	Title     string     `json:"title"     binding:"required,max=200"`
	StartTime *time.Time `json:"startTime" binding:"required"`
	EndTime   *time.Time `json:"endTime"   binding:"required"`
	Status    *string    `json:"status"`
}

// UpdateEventRequest 更新时间段请求（仅更新提供的字段）
type UpdateEventRequest struct {
	Title     *string    `json:"title"     binding:"omitempty,max=200"`
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Status    *string    `json:"status"`
}

// EventResponse 时间段信息响应
type EventResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	StartTime time.Time  `json:"startTime"`
	EndTime   time.Time  `json:"endTime"`
	Status    string     `json:"status"`
	OwnerID   string     `json:"ownerId"`
	Owner     *UserBrief `json:"owner,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// DeleteEventResponse 删除确认
type DeleteEventResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
