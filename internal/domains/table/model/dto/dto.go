package dto

import (
	"baize/internal/domains/table/model"
	"baize/shared"
	"baize/shared/constant"
	gDto "baize/shared/dto"
	gModel "baize/shared/model"
	"baize/shared/timezone"

	"github.com/google/uuid"
)

type CreateTableRequest struct {
	TableNumber int     `json:"table_number" validate:"required,gt=0"`
	TableType   string  `json:"table_type"   validate:"required,oneof=pool snooker billiard"`
	HourlyRate  float64 `json:"hourly_rate"  validate:"required,gt=0"`
}

func (c *CreateTableRequest) ToModel(user string) model.Table {
	return model.Table{
		ID:          uuid.NewString(),
		TableNumber: c.TableNumber,
		TableType:   c.TableType,
		HourlyRate:  c.HourlyRate,
		Status:      constant.TableStatusAvailable,
		Active:      true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateTableRequest struct {
	TableNumber int     `db:"table_number" json:"table_number" validate:"omitempty,gt=0"`
	TableType   string  `db:"table_type"   json:"table_type"   validate:"omitempty,oneof=pool snooker billiard"`
	HourlyRate  float64 `db:"hourly_rate"  json:"hourly_rate"  validate:"omitempty,gt=0"`
}

type UpdateTableStatusRequest struct {
	Status string `json:"status"  validate:"required,oneof=available occupied reserved maintenance"`
	UserID string `json:"user_id" validate:"omitempty,uuid"`
}

type TableResponse struct {
	ID               string  `json:"id"`
	TableNumber      int     `json:"table_number"`
	TableType        string  `json:"table_type"`
	HourlyRate       float64 `json:"hourly_rate"`
	Status           string  `json:"status"`
	CurrentSessionID *string `json:"current_session_id,omitempty"`
	Active           bool    `json:"active"`
	gDto.Metadata
}

func (r *TableResponse) FromModel(model model.Table) {
	r.ID = model.ID
	r.TableNumber = model.TableNumber
	r.TableType = model.TableType
	r.HourlyRate = model.HourlyRate
	r.Status = model.Status
	r.CurrentSessionID = model.CurrentSessionID
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetTablesResponse struct {
	Tables    []TableResponse `json:"tables"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetTablesResponse) FromModels(models []model.Table, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tables = make([]TableResponse, len(models))
	for i, mod := range models {
		r.Tables[i].FromModel(mod)
	}
}
