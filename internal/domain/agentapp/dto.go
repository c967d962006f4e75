// internal/domain/agentapp/dto.go
package agentapp

type ApplyRequest struct {
	Email      string `json:"email" binding:"required,email"`
	FullName   string `json:"full_name" binding:"required"`
	Experience string `json:"experience"`
	Specialty  string `json:"specialty"`
}

type RejectRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}
