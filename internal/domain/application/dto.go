// internal/domain/application/dto.go
package application

type SubmitRequest struct {
	CustomerEmail    string   `json:"customer_email" binding:"required,email"`
	CustomerName     string   `json:"customer_name" binding:"required"`
	PolicyID         string   `json:"policy_id" binding:"required"`
	Address          string   `json:"address"`
	Phone            string   `json:"phone"`
	HealthConditions []string `json:"health_conditions"`
}

type SetStatusRequest struct {
	Status Status `json:"status" binding:"required"`
}

type AssignAgentRequest struct {
	AgentEmail string `json:"agent_email" binding:"required,email"`
}

type RejectRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}
