// internal/domain/user/dto.go
package user

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required"`
	PhotoURL string `json:"photo_url"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type UpdateRoleRequest struct {
	Role Role `json:"role" binding:"required"`
}

type UpdateProfileRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name"`
	PhotoURL string `json:"photo_url"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type RegisterResponse struct {
	User    User `json:"user"`
	Created bool `json:"created"`
}
