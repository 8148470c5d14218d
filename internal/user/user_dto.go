package user

type ListParams struct {
	Page   int
	Limit  int
	Role   string
	Search string
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type UpdateStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6,max=72,nefield=CurrentPassword"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

type UserResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	IsActive   bool   `json:"is_active"`
	CreatedAt  string `json:"created_at"`
}

type ListResult struct {
	Items []UserResponse
	Total int64
}
