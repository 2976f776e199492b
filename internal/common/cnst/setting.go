package cnst

const (
	// SettingCompanyLogo is the setting key holding the uploaded company logo URL
	SettingCompanyLogo = "company_logo"

	// DefaultLoginPIN is assigned to newly created users when no PIN is provided
	DefaultLoginPIN = "2025"
)
