package auth

type RegisterRequest struct {
	Name       string `json:"name" binding:"required,max=255"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6,max=72"`
	Role       string `json:"role" binding:"required"`
	Department string `json:"department" binding:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id,omitempty"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
}

type LoginResponse struct {
	AuthResponse
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type MeResponse struct {
	AuthResponse
	Department  string   `json:"department,omitempty"`
	Permissions []string `json:"permissions"`
}
