package dto

import (
	"time"

	"github.com/google/uuid"

	"baize/internal/domains/user/model"
	"baize/shared"
	"baize/shared/constant"
	gDto "baize/shared/dto"
	gModel "baize/shared/model"
	"baize/shared/timezone"
)

type CreateUserRequest struct {
	Username string  `json:"username"  validate:"required,min=3,max=50,alphanum"`
	Password string  `json:"password"  validate:"required,min=8"`
	FullName string  `json:"full_name" validate:"required,min=2,max=100"`
	Role     string  `json:"role"      validate:"omitempty,oneof=employee manager admin super_admin"`
	Shift    *string `json:"shift,omitempty" validate:"omitempty,oneof=morning evening night"`
}

func (r *CreateUserRequest) ToModel(createdBy string, hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = constant.RoleEmployee
	}

	return model.User{
		ID:       uuid.NewString(),
		Username: r.Username,
		Password: hashedPassword,
		FullName: r.FullName,
		Role:     role,
		Shift:    r.Shift,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}
}

type UpdateUserRequest struct {
	FullName *string `json:"full_name,omitempty" db:"full_name" validate:"omitempty,min=2,max=100"`
	Role     *string `json:"role,omitempty"      db:"role"      validate:"omitempty,oneof=employee manager admin super_admin"`
	Shift    *string `json:"shift,omitempty"     db:"shift"     validate:"omitempty,oneof=morning evening night"`
	Active   *bool   `json:"active,omitempty"    db:"active"`
}

type UserResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	FullName  string  `json:"full_name"`
	Role      string  `json:"role"`
	Shift     *string `json:"shift,omitempty"`
	LastLogin *string `json:"last_login,omitempty"`
	Active    bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(mod model.User) {
	r.ID = mod.ID
	r.Username = mod.Username
	r.FullName = mod.FullName
	r.Role = mod.Role
	r.Shift = mod.Shift
	if mod.LastLogin != nil {
		lastLogin := mod.LastLogin.Format(time.RFC3339)
		r.LastLogin = &lastLogin
	}
	r.Active = mod.Active
	r.Metadata.FromModel(mod.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
