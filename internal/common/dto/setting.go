package dto

// SetSettingRequest represents a request to create or update a company
// setting
type SetSettingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}
