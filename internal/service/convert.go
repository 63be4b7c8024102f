package service

import (
	"github.com/mayank0365/SlotSwapper/internal/dto"
	"github.com/mayank0365/SlotSwapper/internal/model"
)

// ── model → dto 转换 ──

func toUserBrief(u *model.User) *dto.UserBrief {
	if u == nil {
		return nil
	}
	return &dto.UserBrief{ID: u.UserID, Name: u.Name, Email: u.Email}
}

func toUserResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func toEventResponse(e *model.Event) *dto.EventResponse {
	return &dto.EventResponse{
		ID:        e.EventID,
		Title:     e.Title,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Status:    string(e.Status),
		OwnerID:   e.OwnerID,
		Owner:     toUserBrief(e.Owner),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toEventResponses(events []model.Event) []dto.EventResponse {
	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, *toEventResponse(&events[i]))
	}
	return result
}

// toSwapSlot 被引用的时间段不存在时降级为 deleted 标记
func toSwapSlot(id string, e *model.Event) *dto.SwapSlotResponse {
	if e == nil {
		return &dto.SwapSlotResponse{ID: id, Deleted: true}
	}
	start, end := e.StartTime, e.EndTime
	return &dto.SwapSlotResponse{
		ID:        e.EventID,
		Title:     e.Title,
		StartTime: &start,
		EndTime:   &end,
		Status:    string(e.Status),
		OwnerID:   e.OwnerID,
	}
}

func toSwapRequestResponse(r *model.SwapRequest) *dto.SwapRequestResponse {
	return &dto.SwapRequestResponse{
		ID:          r.SwapRequestID,
		Status:      string(r.Status),
		RequesterID: r.RequesterID,
		ReceiverID:  r.ReceiverID,
		Requester:   toUserBrief(r.Requester),
		Receiver:    toUserBrief(r.Receiver),
		MySlot:      toSwapSlot(r.MySlotID, r.MySlot),
		TheirSlot:   toSwapSlot(r.TheirSlotID, r.TheirSlot),
		CreatedAt:   r.CreatedAt,
		RespondedAt: r.RespondedAt,
	}
}

func toSwapRequestResponses(reqs []model.SwapRequest) []dto.SwapRequestResponse {
	result := make([]dto.SwapRequestResponse, 0, len(reqs))
	for i := range reqs {
		result = append(result, *toSwapRequestResponse(&reqs[i]))
	}
	return result
}
