package admin

import "github.com/ledgerdesk/ledgerdesk/internal/domain"

// CreateAdminRequest is the request body for creating an admin.
type CreateAdminRequest struct {
	FirstName string `json:"firstName" binding:"omitempty,max=100"`
	LastName  string `json:"lastName" binding:"omitempty,max=100"`
	Username  string `json:"username" binding:"required,min=3,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"omitempty,max=32"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	RoleIDs   []uint `json:"roleIds" binding:"omitempty,dive,min=1"`
}

// UpdateAdminRequest is the request body for updating an admin.
type UpdateAdminRequest struct {
	FirstName string `json:"firstName" binding:"omitempty,max=100"`
	LastName  string `json:"lastName" binding:"omitempty,max=100"`
	Phone     string `json:"phone" binding:"omitempty,max=32"`
	RoleIDs   []uint `json:"roleIds" binding:"omitempty,dive,min=1"`
}

func (r CreateAdminRequest) toInput() domain.CreateAdminInput {
	return domain.CreateAdminInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Username:  r.Username,
		Email:     r.Email,
		Phone:     r.Phone,
		Password:  r.Password,
		RoleIDs:   r.RoleIDs,
	}
}

func (r UpdateAdminRequest) toInput() domain.UpdateAdminInput {
	return domain.UpdateAdminInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		RoleIDs:   r.RoleIDs,
	}
}
