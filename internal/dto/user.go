package dto

import "time"

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserBrief 用户简要信息（嵌入时间段 / 换班申请响应）
type UserBrief struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
