package dto

// CreateLeadRequest represents a request to record a new lead
type CreateLeadRequest struct {
	AgentID             uint   `json:"agent_id" binding:"required"`
	ClientFullName      string `json:"client_full_name" binding:"required"`
	ClientContact1      string `json:"client_contact_1"`
	ClientContact2      string `json:"client_contact_2"`
	ClientEmail         string `json:"client_email"`
	ClientLocation      string `json:"client_location"`
	ClientInterestLevel string `json:"client_interest_level" binding:"omitempty,oneof=low medium high very_high"`
}

// ClaimLeadRequest represents a request to claim a lead for a named
// claimant
type ClaimLeadRequest struct {
	ClaimedBy string `json:"claimedBy"`
}
