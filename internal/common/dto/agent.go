package dto

// CreateAgentRequest represents a request to register a field agent
type CreateAgentRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	ContactDetail1 string `json:"contact_detail_1"`
	ContactDetail2 string `json:"contact_detail_2"`
	Email          string `json:"email"`
	AgentLocation  string `json:"agent_location"`
}
