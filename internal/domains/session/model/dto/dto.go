package dto

import (
	"time"

	"baize/internal/domains/session/model"
	"baize/shared"
	gDto "baize/shared/dto"
)

type StartSessionRequest struct {
	UserID string `json:"user_id" validate:"omitempty,uuid"`
}

type SessionResponse struct {
	ID          string   `json:"id"`
	TableID     string   `json:"table_id"`
	UserID      string   `json:"user_id"`
	StartTime   string   `json:"start_time"`
	EndTime     *string  `json:"end_time,omitempty"`
	TotalAmount *float64 `json:"total_amount,omitempty"`
	Status      string   `json:"status"`

	// AccruedCost is the live estimate for an open session. It is filled only
	// by the active-session lookup, never persisted.
	AccruedCost *float64 `json:"accrued_cost,omitempty"`

	gDto.Metadata
}

func (r *SessionResponse) FromModel(mod model.Session) {
	r.ID = mod.ID
	r.TableID = mod.TableID
	r.UserID = mod.UserID
	r.StartTime = mod.StartTime.Format(time.RFC3339)
	r.Status = mod.Status

	if mod.EndTime != nil {
		endTime := mod.EndTime.Format(time.RFC3339)
		r.EndTime = &endTime
	}

	r.TotalAmount = mod.TotalAmount
	r.Metadata.FromModel(mod.Metadata)
}

type GetSessionsResponse struct {
	Sessions  []SessionResponse `json:"sessions"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetSessionsResponse) FromModels(models []model.Session, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Sessions = make([]SessionResponse, len(models))
	for i, mod := range models {
		r.Sessions[i].FromModel(mod)
	}
}
