package dto

import (
	"time"

	"github.com/google/uuid"

	"baize/internal/domains/license/model"
	"baize/shared"
	"baize/shared/constant"
	gDto "baize/shared/dto"
	gModel "baize/shared/model"
	"baize/shared/timezone"
)

type RegisterLicenseRequest struct {
	BusinessName string `json:"business_name" validate:"required,min=2,max=100"`
	OwnerName    string `json:"owner_name"    validate:"required,min=2,max=100"`
	Email        string `json:"email"         validate:"required,email"`
	Phone        string `json:"phone"         validate:"required,min=6,max=20"`
	Address      string `json:"address"       validate:"required,max=255"`
	TableCount   int    `json:"table_count"   validate:"required,gt=0"`
}

func (r *RegisterLicenseRequest) ToModel() model.License {
	// Leads come in unauthenticated, the registrant is the author.
	return model.License{
		ID:            uuid.NewString(),
		BusinessName:  r.BusinessName,
		OwnerName:     r.OwnerName,
		Email:         r.Email,
		Phone:         r.Phone,
		Address:       r.Address,
		TableCount:    r.TableCount,
		Status:        constant.LicenseStatusPending,
		AccessGranted: constant.LicenseAccessNone,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  constant.ContextGuest,
			ModifiedBy: constant.ContextGuest,
		},
	}
}

type ProcessLicenseRequest struct {
	Status        string  `json:"status"         validate:"required,oneof=approved rejected"`
	AccessGranted string  `json:"access_granted" validate:"omitempty,oneof=none trial full"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type LicenseResponse struct {
	ID            string  `json:"id"`
	BusinessName  string  `json:"business_name"`
	OwnerName     string  `json:"owner_name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	TableCount    int     `json:"table_count"`
	Status        string  `json:"status"`
	AccessGranted string  `json:"access_granted"`
	Notes         *string `json:"notes,omitempty"`
	ProcessedBy   *string `json:"processed_by,omitempty"`
	ProcessedAt   *string `json:"processed_at,omitempty"`
	gDto.Metadata
}

func (r *LicenseResponse) FromModel(mod model.License) {
	r.ID = mod.ID
	r.BusinessName = mod.BusinessName
	r.OwnerName = mod.OwnerName
	r.Email = mod.Email
	r.Phone = mod.Phone
	r.Address = mod.Address
	r.TableCount = mod.TableCount
	r.Status = mod.Status
	r.AccessGranted = mod.AccessGranted
	r.Notes = mod.Notes
	r.ProcessedBy = mod.ProcessedBy

	if mod.ProcessedAt != nil {
		processedAt := mod.ProcessedAt.Format(time.RFC3339)
		r.ProcessedAt = &processedAt
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetLicensesResponse struct {
	Licenses  []LicenseResponse `json:"licenses"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetLicensesResponse) FromModels(models []model.License, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Licenses = make([]LicenseResponse, len(models))
	for i, mod := range models {
		r.Licenses[i].FromModel(mod)
	}
}
