package auth

import "github.com/ledgerdesk/ledgerdesk/internal/domain"

// LoginRequest represents the input for admin login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=8"`
}

// RegisterRequest represents the input for admin registration.
type RegisterRequest struct {
	FirstName string `json:"firstName" form:"firstName" binding:"max=100"`
	LastName  string `json:"lastName" form:"lastName" binding:"max=100"`
	Username  string `json:"username" form:"username" binding:"required,min=3,max=100"`
	Email     string `json:"email" form:"email" binding:"required,email"`
	Phone     string `json:"phone" form:"phone" binding:"max=32"`
	Password  string `json:"password" form:"password" binding:"required,min=8,max=72"`
}

// PermissionResponse is one granted capability in a profile payload.
type PermissionResponse struct {
	Action  string `json:"action"`
	Subject string `json:"subject"`
}

// ProfileResponse is the signed-in admin's identity and granted capabilities.
// Clients build their capability gate from the permissions list.
type ProfileResponse struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Email       string               `json:"email"`
	Permissions []PermissionResponse `json:"permissions"`
}

// LoginResponse is the payload returned after a successful sign-in.
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt int64           `json:"expiresAt"`
	Admin     ProfileResponse `json:"admin"`
}

// newProfileResponse flattens an admin's role grants into a profile payload.
func newProfileResponse(admin *domain.Admin) ProfileResponse {
	perms := admin.Permissions()
	out := make([]PermissionResponse, 0, len(perms))
	for _, p := range perms {
		out = append(out, PermissionResponse{Action: p.Action, Subject: p.Subject})
	}
	return ProfileResponse{
		ID:          admin.ID,
		Name:        admin.Name(),
		Email:       admin.Email,
		Permissions: out,
	}
}
