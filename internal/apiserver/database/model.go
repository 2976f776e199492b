package database

import (
	"time"

	"github.com/ubuntu-bounty/crm/internal/common/cnst"
)

// SystemUser represents an account that can log into the CRM.
// The login PIN is stored as a bcrypt hash and is never serialized.
type SystemUser struct {
	ID           uint          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string        `json:"name" gorm:"type:varchar(100)"`
	Surname      string        `json:"surname" gorm:"type:varchar(100)"`
	Email        string        `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PhoneNumber1 string        `json:"phone_number_1" gorm:"column:phone_number_1;type:varchar(50)"`
	PhoneNumber2 string        `json:"phone_number_2" gorm:"column:phone_number_2;type:varchar(50)"`
	UserType     cnst.UserType `json:"user_type" gorm:"type:varchar(20);not null;default:'view_only'"`
	LoginPIN     string        `json:"-" gorm:"column:login_pin;not null"`
	IsActive     bool          `json:"is_active" gorm:"not null;default:true"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// FieldAgent represents a field agent who generates leads.
// Agents are soft-deleted: deactivated rows stay behind so historical
// leads keep resolving their agent on joins.
type FieldAgent struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	FullName       string    `json:"full_name" gorm:"type:varchar(255)"`
	ContactDetail1 string    `json:"contact_detail_1" gorm:"column:contact_detail_1;type:varchar(100)"`
	ContactDetail2 string    `json:"contact_detail_2" gorm:"column:contact_detail_2;type:varchar(100)"`
	Email          string    `json:"email" gorm:"type:varchar(255)"`
	AgentLocation  string    `json:"agent_location" gorm:"type:varchar(255);index"`
	IsActive       bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Lead represents a sales lead generated by a field agent.
// A lead is either unclaimed or claimed by a named claimant; the three
// claim fields move together.
type Lead struct {
	ID                  uint               `json:"id" gorm:"primaryKey;autoIncrement"`
	AgentID             uint               `json:"agent_id" gorm:"index"`
	ClientFullName      string             `json:"client_full_name" gorm:"type:varchar(255)"`
	ClientContact1      string             `json:"client_contact_1" gorm:"column:client_contact_1;type:varchar(100)"`
	ClientContact2      string             `json:"client_contact_2" gorm:"column:client_contact_2;type:varchar(100)"`
	ClientEmail         string             `json:"client_email" gorm:"type:varchar(255)"`
	ClientLocation      string             `json:"client_location" gorm:"type:varchar(255)"`
	ClientInterestLevel cnst.InterestLevel `json:"client_interest_level" gorm:"type:varchar(20);default:'medium'"`
	IsClaimed           bool               `json:"is_claimed" gorm:"not null;default:false;index"`
	ClaimedBy           *string            `json:"claimed_by" gorm:"type:varchar(255)"`
	ClaimedAt           *time.Time         `json:"claimed_at"`
	CreatedAt           time.Time          `json:"created_at"`
}

// CompanySetting is a key-value pair for small configuration such as
// the uploaded logo URL
type CompanySetting struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	SettingKey   string    `json:"setting_key" gorm:"type:varchar(100);uniqueIndex;not null"`
	SettingValue string    `json:"setting_value" gorm:"type:text"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AgentWithLeadCounts is a FieldAgent augmented with lead counters
// computed in a single grouped query
type AgentWithLeadCounts struct {
	FieldAgent
	TotalLeads     int64 `json:"total_leads"`
	ClaimedLeads   int64 `json:"claimed_leads"`
	UnclaimedLeads int64 `json:"unclaimed_leads"`
}

// LeadWithAgent is a Lead joined to its agent for display.
// AgentName is nil when the lead references no known agent.
type LeadWithAgent struct {
	Lead
	AgentName     *string `json:"agent_name"`
	AgentLocation *string `json:"agent_location,omitempty"`
}

// LocationCount is the number of active agents registered in a location
type LocationCount struct {
	AgentLocation string `json:"agent_location"`
	AgentCount    int64  `json:"agent_count"`
}

// DashboardStats holds the aggregate counters shown on the dashboard
type DashboardStats struct {
	TotalAgents    int64 `json:"totalAgents"`
	TotalLeads     int64 `json:"totalLeads"`
	ClaimedLeads   int64 `json:"claimedLeads"`
	UnclaimedLeads int64 `json:"unclaimedLeads"`
	WeeklyLeads    int64 `json:"weeklyLeads"`
	MonthlyLeads   int64 `json:"monthlyLeads"`
}
